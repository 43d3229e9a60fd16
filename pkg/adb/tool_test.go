package adb

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	mu     sync.Mutex
	calls  []call
	output string
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{name: name, args: args})
	return f.output, f.err
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestNewToolNotFound(t *testing.T) {
	_, err := NewTool("definitely-not-a-real-binary-name-12345")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToolNotFound))
}

func TestPairSuccess(t *testing.T) {
	runner := &fakeRunner{output: "Successfully paired to 192.168.1.50:42001 [guid=adb-xyz]"}
	tool := newToolUnchecked(WithRunner(runner))

	err := tool.Pair(context.Background(), "192.168.1.50:42001", "123456")
	require.NoError(t, err)

	require.Equal(t, 1, runner.callCount())
	assert.Equal(t, []string{"pair", "192.168.1.50:42001", "123456"}, runner.calls[0].args)
}

func TestPairZeroExitWithoutMarker(t *testing.T) {
	runner := &fakeRunner{output: "Failed: Wrong password or connection was dropped."}
	tool := newToolUnchecked(WithRunner(runner))

	err := tool.Pair(context.Background(), "192.168.1.50:42001", "123456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPairFailed))
}

func TestPairNonzeroExit(t *testing.T) {
	runner := &fakeRunner{output: "", err: errors.New("exit status 1")}
	tool := newToolUnchecked(WithRunner(runner))

	err := tool.Pair(context.Background(), "192.168.1.50:42001", "123456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPairFailed))
}

func TestConnectSuccess(t *testing.T) {
	runner := &fakeRunner{output: "connected to 192.168.1.50:5555"}
	tool := newToolUnchecked(WithRunner(runner))

	err := tool.Connect(context.Background(), "192.168.1.50:5555")
	require.NoError(t, err)

	require.Equal(t, 1, runner.callCount())
	assert.Equal(t, []string{"connect", "192.168.1.50:5555"}, runner.calls[0].args)
}

func TestConnectAlreadyConnected(t *testing.T) {
	runner := &fakeRunner{output: "already connected to 192.168.1.50:5555"}
	tool := newToolUnchecked(WithRunner(runner))

	err := tool.Connect(context.Background(), "192.168.1.50:5555")
	assert.NoError(t, err)
}

func TestConnectFailure(t *testing.T) {
	runner := &fakeRunner{output: "failed to connect to '192.168.1.50:5555': Connection refused"}
	tool := newToolUnchecked(WithRunner(runner))

	err := tool.Connect(context.Background(), "192.168.1.50:5555")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectFailed))
}

type blockingRunner struct{}

func (blockingRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestPairTimeout(t *testing.T) {
	tool := newToolUnchecked(WithRunner(blockingRunner{}), WithPairTimeout(20*time.Millisecond))

	start := time.Now()
	err := tool.Pair(context.Background(), "192.168.1.50:42001", "123456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPairFailed))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestConnectTimeout(t *testing.T) {
	tool := newToolUnchecked(WithRunner(blockingRunner{}), WithConnectTimeout(20*time.Millisecond))

	err := tool.Connect(context.Background(), "192.168.1.50:5555")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectFailed))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "hello", firstLine("\n  hello\nworld"))
	assert.Equal(t, "(no output)", firstLine("  \n \n"))
}

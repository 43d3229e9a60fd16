package adb

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Default invocation timeouts.
const (
	// DefaultPairTimeout bounds one `adb pair` invocation.
	DefaultPairTimeout = 30 * time.Second

	// DefaultConnectTimeout bounds one `adb connect` invocation.
	DefaultConnectTimeout = 5 * time.Second
)

// Success markers in tool output. Exit code zero alone is not trusted:
// adb reports some failures with a zero exit.
const (
	pairSuccessMarker    = "successfully paired"
	connectSuccessMarker = "connected"
)

// Tool errors.
var (
	// ErrToolNotFound - the adb binary is not on the execution path.
	ErrToolNotFound = errors.New("adb binary not found in PATH")

	// ErrPairFailed - `adb pair` exited nonzero or without the success marker.
	ErrPairFailed = errors.New("adb pair failed")

	// ErrConnectFailed - `adb connect` exited nonzero or without the success marker.
	ErrConnectFailed = errors.New("adb connect failed")
)

// Runner executes an external command and returns its combined output.
// The default runner shells out; tests inject fakes.
type Runner interface {
	// Run executes name with args, bounded by the context deadline.
	// Combined stdout+stderr is returned even when err is non-nil.
	Run(ctx context.Context, name string, args ...string) (output string, err error)
}

// execRunner runs commands through os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// NewRunner returns the default os/exec based runner.
func NewRunner() Runner {
	return execRunner{}
}

// Tool invokes the external adb binary for pairing and connection.
type Tool struct {
	path           string
	runner         Runner
	pairTimeout    time.Duration
	connectTimeout time.Duration
}

// Option configures a Tool.
type Option func(*Tool)

// WithRunner replaces the command runner (used by tests).
func WithRunner(r Runner) Option {
	return func(t *Tool) { t.runner = r }
}

// WithPairTimeout overrides the pair invocation timeout.
func WithPairTimeout(d time.Duration) Option {
	return func(t *Tool) { t.pairTimeout = d }
}

// WithConnectTimeout overrides the connect invocation timeout.
func WithConnectTimeout(d time.Duration) Option {
	return func(t *Tool) { t.connectTimeout = d }
}

// NewTool creates a Tool for the adb binary at path. An empty path
// resolves "adb" on the execution search path; ErrToolNotFound is
// returned when resolution fails, which callers treat as a soft failure
// (feature disabled, not a crash).
func NewTool(path string, opts ...Option) (*Tool, error) {
	if path == "" {
		path = "adb"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrToolNotFound, path)
	}

	t := &Tool{
		path:           resolved,
		runner:         execRunner{},
		pairTimeout:    DefaultPairTimeout,
		connectTimeout: DefaultConnectTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// NewToolWithRunner creates a Tool that executes through the given
// runner and skips PATH resolution. Intended for tests and callers that
// provide their own execution strategy.
func NewToolWithRunner(r Runner, opts ...Option) *Tool {
	opts = append([]Option{WithRunner(r)}, opts...)
	return newToolUnchecked(opts...)
}

// newToolUnchecked skips PATH resolution; for tests with a fake runner.
func newToolUnchecked(opts ...Option) *Tool {
	t := &Tool{
		path:           "adb",
		runner:         execRunner{},
		pairTimeout:    DefaultPairTimeout,
		connectTimeout: DefaultConnectTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Path returns the resolved binary path.
func (t *Tool) Path() string {
	return t.path
}

// Pair runs `adb pair <endpoint> <code>`. Success requires a zero exit
// code and the "Successfully paired" marker in the output.
func (t *Tool) Pair(ctx context.Context, endpoint, code string) error {
	ctx, cancel := context.WithTimeout(ctx, t.pairTimeout)
	defer cancel()

	output, err := t.runner.Run(ctx, t.path, "pair", endpoint, code)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPairFailed, firstLine(output), err)
	}
	if !strings.Contains(strings.ToLower(output), pairSuccessMarker) {
		return fmt.Errorf("%w: %s", ErrPairFailed, firstLine(output))
	}
	return nil
}

// Connect runs `adb connect <endpoint>`. Success requires a zero exit
// code and a "connected" marker in the combined output, which also
// matches adb's "already connected" response.
func (t *Tool) Connect(ctx context.Context, endpoint string) error {
	ctx, cancel := context.WithTimeout(ctx, t.connectTimeout)
	defer cancel()

	output, err := t.runner.Run(ctx, t.path, "connect", endpoint)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConnectFailed, firstLine(output), err)
	}
	if !strings.Contains(strings.ToLower(output), connectSuccessMarker) {
		return fmt.Errorf("%w: %s", ErrConnectFailed, firstLine(output))
	}
	return nil
}

// firstLine trims output to its first non-empty line for error messages.
func firstLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return "(no output)"
}

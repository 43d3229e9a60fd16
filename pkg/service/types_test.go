package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceStateString(t *testing.T) {
	assert.Equal(t, "IDLE", StateIdle.String())
	assert.Equal(t, "RUNNING", StateRunning.String())
	assert.Equal(t, "UNKNOWN", ServiceState(99).String())
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventStarted, "STARTED"},
		{EventStopped, "STOPPED"},
		{EventPaired, "PAIRED"},
		{EventPairFailed, "PAIR_FAILED"},
		{EventConnected, "CONNECTED"},
		{EventConnectFailed, "CONNECT_FAILED"},
		{EventType(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30*time.Second, cfg.PairTimeout)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 3, cfg.ConnectAttempts)
	assert.Equal(t, 2*time.Second, cfg.ConnectBackoff)
	assert.Equal(t, time.Second, cfg.OpportunisticBackoff)
	assert.False(t, cfg.ReconnectOnReappear)
}

func TestConfigValidateFillsDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.validate())

	def := DefaultConfig()
	assert.Equal(t, def.PairTimeout, cfg.PairTimeout)
	assert.Equal(t, def.ConnectAttempts, cfg.ConnectAttempts)
	assert.Equal(t, def.ConnectBackoff, cfg.ConnectBackoff)
	assert.NotNil(t, cfg.SessionLogger)
}

func TestConfigValidateRejectsNegatives(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConnectAttempts = -1
	assert.ErrorIs(t, cfg.validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.ConnectBackoff = -time.Second
	assert.ErrorIs(t, cfg.validate(), ErrInvalidConfig)
}

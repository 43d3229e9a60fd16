package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/docmine17/adbee-go/pkg/adb"
	"github.com/docmine17/adbee-go/pkg/discovery"
	"github.com/docmine17/adbee-go/pkg/log"
)

// Service errors.
var (
	ErrNotStarted           = errors.New("service not started")
	ErrToolUnavailable      = errors.New("adb tool unavailable")
	ErrDiscoveryUnavailable = errors.New("network discovery unavailable")
	ErrNoCredentials        = errors.New("no pairing credentials generated")
	ErrInvalidConfig        = errors.New("invalid configuration")
)

// ServiceState represents the service state.
type ServiceState uint8

const (
	// StateIdle - service created but no session running.
	StateIdle ServiceState = iota

	// StateRunning - a pairing session is active.
	StateRunning
)

// String returns the state name.
func (s ServiceState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	default:
		return "UNKNOWN"
	}
}

// EventType identifies a session event delivered to handlers.
type EventType uint8

const (
	// EventStarted - a pairing session began.
	EventStarted EventType = iota

	// EventStopped - the pairing session ended.
	EventStopped

	// EventPaired - a device completed pairing. Endpoint carries the
	// device address.
	EventPaired

	// EventPairFailed - a pairing invocation failed.
	EventPairFailed

	// EventConnected - a device connected. Endpoint carries "ip:port".
	EventConnected

	// EventConnectFailed - all connect attempts for an endpoint failed.
	EventConnectFailed
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "STARTED"
	case EventStopped:
		return "STOPPED"
	case EventPaired:
		return "PAIRED"
	case EventPairFailed:
		return "PAIR_FAILED"
	case EventConnected:
		return "CONNECTED"
	case EventConnectFailed:
		return "CONNECT_FAILED"
	default:
		return "UNKNOWN"
	}
}

// Event is delivered to registered event handlers.
type Event struct {
	// Type is the event type.
	Type EventType

	// SessionID identifies the pairing session the event belongs to.
	SessionID string

	// Endpoint is the remote address the event relates to. Paired
	// events carry the bare device address, Connected events "ip:port".
	Endpoint string

	// Err carries the failure for *Failed events.
	Err error
}

// EventHandler receives service events. Handlers are invoked on their
// own goroutine and must not be assumed to run in delivery order.
type EventHandler func(Event)

// Config configures an AdbService.
type Config struct {
	// AdbPath is the adb binary path. Empty resolves "adb" from PATH.
	AdbPath string

	// Interface restricts mDNS browsing to one network interface.
	// Empty browses all multicast-capable interfaces.
	Interface string

	// PairTimeout bounds one pair invocation.
	PairTimeout time.Duration

	// ConnectTimeout bounds one connect attempt.
	ConnectTimeout time.Duration

	// ConnectAttempts is the maximum connect attempts per endpoint.
	ConnectAttempts int

	// ConnectBackoff is the delay between standard connect attempts.
	ConnectBackoff time.Duration

	// OpportunisticBackoff is the delay between connect attempts made
	// right after a successful pairing.
	OpportunisticBackoff time.Duration

	// ReconnectOnReappear re-arms connection for an endpoint whose
	// announcement was removed, so a reappearance triggers a new
	// connect instead of being deduplicated.
	ReconnectOnReappear bool

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// SessionLogger captures structured session events (optional).
	SessionLogger log.Logger

	// Browser overrides the mDNS browser (used by tests).
	Browser discovery.Browser

	// Tool overrides the adb tool (used by tests). When nil the
	// service resolves the binary from AdbPath at session start.
	Tool Pairer
}

// Pairer drives the external pairing tool.
type Pairer interface {
	Pair(ctx context.Context, endpoint, code string) error
	Connect(ctx context.Context, endpoint string) error
}

// Compile-time interface satisfaction check.
var _ Pairer = (*adb.Tool)(nil)

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		PairTimeout:          adb.DefaultPairTimeout,
		ConnectTimeout:       adb.DefaultConnectTimeout,
		ConnectAttempts:      3,
		ConnectBackoff:       2 * time.Second,
		OpportunisticBackoff: time.Second,
	}
}

// validate checks config invariants, filling zero fields with defaults.
func (c *Config) validate() error {
	def := DefaultConfig()
	if c.PairTimeout <= 0 {
		c.PairTimeout = def.PairTimeout
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.ConnectAttempts == 0 {
		c.ConnectAttempts = def.ConnectAttempts
	}
	if c.ConnectAttempts < 1 {
		return ErrInvalidConfig
	}
	if c.ConnectBackoff < 0 || c.OpportunisticBackoff < 0 {
		return ErrInvalidConfig
	}
	if c.ConnectBackoff == 0 {
		c.ConnectBackoff = def.ConnectBackoff
	}
	if c.OpportunisticBackoff == 0 {
		c.OpportunisticBackoff = def.OpportunisticBackoff
	}
	if c.SessionLogger == nil {
		c.SessionLogger = log.NoopLogger{}
	}
	return nil
}

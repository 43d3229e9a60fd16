package log

import (
	"time"
)

// Event represents a pairing session event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the pairing session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Endpoint is the remote "ip:port" the event relates to, if any.
	Endpoint string `cbor:"4,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Discovery   *DiscoveryEvent   `cbor:"5,keyasint,omitempty"` // mDNS announcements
	Pairing     *PairingEvent     `cbor:"6,keyasint,omitempty"` // adb pair outcomes
	Connect     *ConnectEvent     `cbor:"7,keyasint,omitempty"` // adb connect attempts
	StateChange *StateChangeEvent `cbor:"8,keyasint,omitempty"` // service lifecycle
	Error       *ErrorEventData   `cbor:"9,keyasint,omitempty"` // failures
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryDiscovery indicates an mDNS announcement was observed.
	CategoryDiscovery Category = 0
	// CategoryPairing indicates a pairing invocation.
	CategoryPairing Category = 1
	// CategoryConnect indicates a connect attempt.
	CategoryConnect Category = 2
	// CategoryState indicates a service state change.
	CategoryState Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryDiscovery:
		return "DISCOVERY"
	case CategoryPairing:
		return "PAIRING"
	case CategoryConnect:
		return "CONNECT"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// DiscoveryEvent captures an observed mDNS announcement.
type DiscoveryEvent struct {
	// ServiceType is the full DNS-SD type ("_adb-tls-pairing._tcp" etc).
	ServiceType string `cbor:"1,keyasint"`

	// Instance is the announced instance name.
	Instance string `cbor:"2,keyasint"`

	// Change describes what happened ("added", "removed", "updated").
	Change string `cbor:"3,keyasint"`
}

// PairingEvent captures the outcome of one `adb pair` invocation.
type PairingEvent struct {
	// Success indicates whether pairing completed.
	Success bool `cbor:"1,keyasint"`

	// Detail carries the failure reason when Success is false.
	Detail string `cbor:"2,keyasint,omitempty"`
}

// ConnectEvent captures a single `adb connect` attempt.
type ConnectEvent struct {
	// Attempt is the 1-based attempt number.
	Attempt int `cbor:"1,keyasint"`

	// Success indicates whether the attempt connected.
	Success bool `cbor:"2,keyasint"`

	// Detail carries the failure reason when Success is false.
	Detail string `cbor:"3,keyasint,omitempty"`
}

// StateChangeEvent captures service lifecycle transitions.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors during a session.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}

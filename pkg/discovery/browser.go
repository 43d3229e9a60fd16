package discovery

import (
	"context"
	"log/slog"
)

// Browser provides mDNS service browsing for one ADB service type.
// Implementations deliver tagged events on the given channel until the
// context is cancelled, then close it.
type Browser interface {
	// Browse starts browsing for the given service kind. It returns once
	// browsing is registered; events arrive asynchronously. The events
	// channel is closed when ctx is cancelled.
	Browse(ctx context.Context, kind ServiceKind, events chan<- Event) error
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// Logger receives debug output. Nil disables it.
	Logger *slog.Logger
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{Interface: ""}
}

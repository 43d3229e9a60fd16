package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes session events to an slog.Logger.
// Useful for development when you want to see session events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("category", event.Category.String()),
	}

	if event.Endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", event.Endpoint))
	}

	// Add type-specific attributes
	switch {
	case event.Discovery != nil:
		attrs = append(attrs,
			slog.String("service_type", event.Discovery.ServiceType),
			slog.String("instance", event.Discovery.Instance),
			slog.String("change", event.Discovery.Change),
		)
	case event.Pairing != nil:
		attrs = append(attrs, slog.Bool("success", event.Pairing.Success))
		if event.Pairing.Detail != "" {
			attrs = append(attrs, slog.String("detail", event.Pairing.Detail))
		}
	case event.Connect != nil:
		attrs = append(attrs,
			slog.Int("attempt", event.Connect.Attempt),
			slog.Bool("success", event.Connect.Success),
		)
		if event.Connect.Detail != "" {
			attrs = append(attrs, slog.String("detail", event.Connect.Detail))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "session", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)

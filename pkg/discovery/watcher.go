package discovery

import (
	"context"
	"log/slog"
	"sync"
)

// Listener receives tagged browse events for one service kind.
// Calls arrive from the watcher's delivery goroutines; implementations
// must be safe for concurrent use.
type Listener func(Event)

// Watcher owns the browse subscriptions for one pairing session: one
// browser registration per ADB service type, each feeding a listener.
// A Watcher is single-use - once stopped it cannot be restarted.
type Watcher struct {
	browser Browser
	logger  *slog.Logger

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    sync.WaitGroup
}

// NewWatcher creates a watcher on the given browser. A nil logger
// disables debug output.
func NewWatcher(browser Browser, logger *slog.Logger) *Watcher {
	return &Watcher{browser: browser, logger: logger}
}

// Start registers both browses and begins delivering events. Each
// listener receives the events for its service kind on a dedicated
// delivery goroutine, so a slow pairing listener cannot stall connect
// events. Returns ErrAlreadyStarted if called twice.
func (w *Watcher) Start(ctx context.Context, pairingListener, connectListener Listener) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}

	browseCtx, cancel := context.WithCancel(ctx)

	if err := w.browse(browseCtx, KindPairing, pairingListener); err != nil {
		cancel()
		return err
	}
	if err := w.browse(browseCtx, KindConnect, connectListener); err != nil {
		cancel()
		w.done.Wait()
		return err
	}

	w.cancel = cancel
	w.started = true
	return nil
}

// browse registers one browser subscription and starts its delivery
// goroutine.
func (w *Watcher) browse(ctx context.Context, kind ServiceKind, listener Listener) error {
	events := make(chan Event)
	if err := w.browser.Browse(ctx, kind, events); err != nil {
		return err
	}

	w.done.Add(1)
	go func() {
		defer w.done.Done()
		for ev := range events {
			if ev.Announcement == nil {
				continue
			}
			w.debugLog("watcher: event",
				"kind", ev.Kind.String(),
				"service", kind.String(),
				"instance", ev.Announcement.Instance)
			if listener != nil {
				listener(ev)
			}
		}
	}()
	return nil
}

// Stop cancels both browses and waits for the delivery goroutines to
// drain. Safe to call when never started or already stopped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.done.Wait()
}

func (w *Watcher) debugLog(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Debug(msg, args...)
	}
}

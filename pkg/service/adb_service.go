package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/docmine17/adbee-go/pkg/adb"
	"github.com/docmine17/adbee-go/pkg/discovery"
	"github.com/docmine17/adbee-go/pkg/log"
	"github.com/docmine17/adbee-go/pkg/pairing"
)

// AdbService orchestrates wireless ADB pairing sessions. It publishes
// pairing credentials, watches the network for device announcements and
// drives the external adb tool to pair and connect. Outcomes are
// reported asynchronously through registered event handlers.
type AdbService struct {
	mu sync.Mutex

	config Config
	state  ServiceState
	creds  *pairing.Credentials

	// Session members, valid while state is Running
	sessionID string
	tool      Pairer
	watcher   *discovery.Watcher
	ctx       context.Context
	cancel    context.CancelFunc

	// Connection tracking for the active session. connected holds
	// endpoints that completed a connect; inflight holds endpoints
	// with a connect worker currently running.
	connected map[string]struct{}
	inflight  map[string]struct{}
	lastSeen  string

	// generation invalidates in-flight workers of superseded sessions.
	generation atomic.Uint64

	workers sync.WaitGroup

	// Event handlers
	eventHandlers []EventHandler

	// Logger for debug output (optional)
	logger *slog.Logger

	// Session logger for structured event capture
	sessionLogger log.Logger

	// sleep waits between connect attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) bool
}

// NewAdbService creates a service from the given configuration.
func NewAdbService(config Config) (*AdbService, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &AdbService{
		config:        config,
		state:         StateIdle,
		logger:        config.Logger,
		sessionLogger: config.SessionLogger,
		sleep:         sleepCtx,
	}, nil
}

// GenerateCredentials creates and stores fresh pairing credentials.
// The next session started uses them; a running session is unaffected.
func (s *AdbService) GenerateCredentials() (*pairing.Credentials, error) {
	creds, err := pairing.NewCredentials()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()

	s.debugLog("generated pairing credentials",
		"sessionID", creds.SessionID,
		"serviceName", creds.ServiceName)

	c := *creds
	return &c, nil
}

// Credentials returns a copy of the current pairing credentials, or nil
// when none have been generated.
func (s *AdbService) Credentials() *pairing.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds == nil {
		return nil
	}
	c := *s.creds
	return &c
}

// ConnectedEndpoints returns the endpoints that connected during the
// current session, sorted. Empty when no session is running.
func (s *AdbService) ConnectedEndpoints() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.connected))
	for endpoint := range s.connected {
		out = append(out, endpoint)
	}
	sort.Strings(out)
	return out
}

// State returns the current service state.
func (s *AdbService) State() ServiceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnEvent registers an event handler. Handlers registered after a
// session started still receive its subsequent events.
func (s *AdbService) OnEvent(handler EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventHandlers = append(s.eventHandlers, handler)
}

// Start begins a pairing session. A running session is superseded: it
// is stopped first and its in-flight work discarded. Credentials are
// generated when none exist yet.
//
// Environmental problems degrade softly: a missing adb binary or an
// unavailable discovery stack leave the service Idle and return a
// wrapped ErrToolUnavailable / ErrDiscoveryUnavailable.
func (s *AdbService) Start(ctx context.Context) error {
	// Supersession: tear down any active session before starting.
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds == nil {
		creds, err := pairing.NewCredentials()
		if err != nil {
			return fmt.Errorf("generating credentials: %w", err)
		}
		s.creds = creds
	}

	tool := s.config.Tool
	if tool == nil {
		t, err := adb.NewTool(s.config.AdbPath,
			adb.WithPairTimeout(s.config.PairTimeout),
			adb.WithConnectTimeout(s.config.ConnectTimeout))
		if err != nil {
			s.debugLog("adb tool unavailable, pairing disabled", "error", err)
			s.logError(s.creds.SessionID, err, "resolving adb binary")
			return fmt.Errorf("%w: %v", ErrToolUnavailable, err)
		}
		tool = t
	}

	browser := s.config.Browser
	if browser == nil {
		b, err := discovery.NewMDNSBrowser(discovery.BrowserConfig{
			Interface: s.config.Interface,
			Logger:    s.logger,
		})
		if err != nil {
			s.debugLog("mDNS browser unavailable, pairing disabled", "error", err)
			s.logError(s.creds.SessionID, err, "creating mDNS browser")
			return fmt.Errorf("%w: %v", ErrDiscoveryUnavailable, err)
		}
		browser = b
	}

	gen := s.generation.Add(1)
	sessionCtx, cancel := context.WithCancel(ctx)

	watcher := discovery.NewWatcher(browser, s.logger)
	err := watcher.Start(sessionCtx, s.dispatcher(gen, s.handlePairing), s.dispatcher(gen, s.handleConnect))
	if err != nil {
		cancel()
		s.debugLog("discovery start failed, pairing disabled", "error", err)
		s.logError(s.creds.SessionID, err, "starting discovery")
		return fmt.Errorf("%w: %v", ErrDiscoveryUnavailable, err)
	}

	s.sessionID = s.creds.SessionID
	s.tool = tool
	s.watcher = watcher
	s.ctx = sessionCtx
	s.cancel = cancel
	s.connected = make(map[string]struct{})
	s.inflight = make(map[string]struct{})
	s.lastSeen = ""
	s.state = StateRunning

	s.debugLog("pairing session started",
		"sessionID", s.sessionID,
		"serviceName", s.creds.ServiceName)
	s.logStateChange(s.sessionID, StateIdle, StateRunning, "session started")
	s.emitEventLocked(Event{Type: EventStarted, SessionID: s.sessionID})

	return nil
}

// Stop ends the active session. Connection tracking is reset, so a
// later session connects rediscovered devices again. Stop is a no-op
// when no session is running and is safe to call repeatedly.
func (s *AdbService) Stop() {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return
	}

	// Bump the generation first so in-flight workers discard results.
	s.generation.Add(1)

	sessionID := s.sessionID
	cancel := s.cancel
	watcher := s.watcher

	s.state = StateIdle
	s.sessionID = ""
	s.tool = nil
	s.watcher = nil
	s.ctx = nil
	s.cancel = nil
	s.connected = nil
	s.inflight = nil
	s.lastSeen = ""
	s.mu.Unlock()

	cancel()
	watcher.Stop()
	s.workers.Wait()

	s.debugLog("pairing session stopped", "sessionID", sessionID)
	s.logStateChange(sessionID, StateRunning, StateIdle, "session stopped")
	s.emitEvent(Event{Type: EventStopped, SessionID: sessionID})
}

// dispatcher wraps a handler into a discovery listener that runs each
// event on its own worker goroutine, bound to the session generation.
func (s *AdbService) dispatcher(gen uint64, handle func(uint64, discovery.Event)) discovery.Listener {
	return func(ev discovery.Event) {
		if s.generation.Load() != gen {
			return
		}
		s.workers.Add(1)
		go func() {
			defer s.workers.Done()
			handle(gen, ev)
		}()
	}
}

// session snapshots the members a worker needs, or reports false when
// the worker's session has been superseded.
func (s *AdbService) session(gen uint64) (tool Pairer, ctx context.Context, sessionID string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation.Load() != gen || s.state != StateRunning {
		return nil, nil, "", false
	}
	return s.tool, s.ctx, s.sessionID, true
}

// emitEvent delivers the event to all registered handlers.
func (s *AdbService) emitEvent(event Event) {
	s.mu.Lock()
	handlers := make([]EventHandler, len(s.eventHandlers))
	copy(handlers, s.eventHandlers)
	s.mu.Unlock()

	for _, handler := range handlers {
		go handler(event)
	}
}

// emitEventLocked is emitEvent for callers already holding s.mu.
func (s *AdbService) emitEventLocked(event Event) {
	for _, handler := range s.eventHandlers {
		go handler(event)
	}
}

// debugLog logs a debug message if logging is enabled.
func (s *AdbService) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// sleepCtx waits for d, returning false when ctx was canceled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

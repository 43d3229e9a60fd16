package service

import (
	"context"
	"time"

	"github.com/docmine17/adbee-go/pkg/discovery"
)

// handleConnect reacts to announcements on the connect service type.
// Every sighting updates the last seen endpoint, but only a fresh Added
// announcement invokes the connect tool; TTL refreshes of a live
// instance are noted and otherwise ignored. Endpoints that already
// connected in this session are not connected again.
func (s *AdbService) handleConnect(gen uint64, ev discovery.Event) {
	ann := ev.Announcement
	s.logDiscovery(gen, ann, ev.Kind)

	endpoint, err := ann.Endpoint()
	if err != nil {
		s.debugLog("connect announcement without usable address",
			"instance", ann.Instance, "error", err)
		return
	}

	if ev.Kind == discovery.EventRemoved {
		if !s.config.ReconnectOnReappear {
			return
		}
		// Forget the endpoint so its next appearance reconnects.
		s.mu.Lock()
		if s.generation.Load() == gen {
			delete(s.connected, endpoint)
			s.debugLog("endpoint disappeared, re-armed for reconnect", "endpoint", endpoint)
		}
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	if s.generation.Load() != gen || s.state != StateRunning {
		s.mu.Unlock()
		return
	}

	// Record the sighting before any dedup decision so the
	// opportunistic path always has the freshest endpoint.
	s.lastSeen = endpoint

	if ev.Kind != discovery.EventAdded {
		s.mu.Unlock()
		s.debugLog("refresh announcement noted", "endpoint", endpoint)
		return
	}

	if _, done := s.connected[endpoint]; done {
		s.mu.Unlock()
		s.debugLog("endpoint already connected this session", "endpoint", endpoint)
		return
	}
	if _, busy := s.inflight[endpoint]; busy {
		s.mu.Unlock()
		s.debugLog("connect already in progress", "endpoint", endpoint)
		return
	}
	s.inflight[endpoint] = struct{}{}
	tool, ctx, sessionID := s.tool, s.ctx, s.sessionID
	s.mu.Unlock()

	s.attemptConnect(gen, tool, ctx, sessionID, endpoint, s.config.ConnectBackoff)
}

// connectOpportunistic connects to the last seen endpoint without
// waiting for a new announcement, typically right after pairing. A
// no-op when no connect announcement has been seen yet.
func (s *AdbService) connectOpportunistic(gen uint64) {
	s.mu.Lock()
	if s.generation.Load() != gen || s.state != StateRunning {
		s.mu.Unlock()
		return
	}

	endpoint := s.lastSeen
	if endpoint == "" {
		s.mu.Unlock()
		s.debugLog("no connect endpoint seen yet, waiting for announcement")
		return
	}
	if _, done := s.connected[endpoint]; done {
		s.mu.Unlock()
		return
	}
	if _, busy := s.inflight[endpoint]; busy {
		s.mu.Unlock()
		return
	}
	s.inflight[endpoint] = struct{}{}
	tool, ctx, sessionID := s.tool, s.ctx, s.sessionID
	s.mu.Unlock()

	s.attemptConnect(gen, tool, ctx, sessionID, endpoint, s.config.OpportunisticBackoff)
}

// attemptConnect drives up to ConnectAttempts connect invocations with
// the given backoff between attempts and none after the last. A failed
// endpoint stays eligible for future announcements; only a successful
// connect is recorded for dedup.
func (s *AdbService) attemptConnect(gen uint64, tool Pairer, ctx context.Context, sessionID, endpoint string, backoff time.Duration) {
	defer func() {
		s.mu.Lock()
		delete(s.inflight, endpoint)
		s.mu.Unlock()
	}()

	var lastErr error
	for attempt := 1; attempt <= s.config.ConnectAttempts; attempt++ {
		if s.generation.Load() != gen {
			return
		}

		s.debugLog("connecting to device",
			"endpoint", endpoint, "attempt", attempt, "sessionID", sessionID)
		err := tool.Connect(ctx, endpoint)

		// Discard results of a superseded session.
		if s.generation.Load() != gen {
			return
		}
		s.logConnectAttempt(sessionID, endpoint, attempt, err)

		if err == nil {
			s.mu.Lock()
			if s.generation.Load() == gen && s.connected != nil {
				s.connected[endpoint] = struct{}{}
			}
			s.mu.Unlock()

			s.debugLog("connected to device", "endpoint", endpoint, "sessionID", sessionID)
			s.emitEvent(Event{Type: EventConnected, SessionID: sessionID, Endpoint: endpoint})
			return
		}

		lastErr = err
		s.debugLog("connect attempt failed",
			"endpoint", endpoint, "attempt", attempt, "error", err)

		if attempt < s.config.ConnectAttempts {
			if !s.sleep(ctx, backoff) {
				return
			}
		}
	}

	s.emitEvent(Event{Type: EventConnectFailed, SessionID: sessionID, Endpoint: endpoint, Err: lastErr})
}

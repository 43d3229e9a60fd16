package service

import (
	"github.com/docmine17/adbee-go/pkg/discovery"
)

// handlePairing reacts to announcements on the pairing service type.
// A newly discovered instance carries the port of the phone's pairing
// dialog: one pair invocation is made against it, never retried. On
// success an opportunistic connect is attempted against the last seen
// connect endpoint.
func (s *AdbService) handlePairing(gen uint64, ev discovery.Event) {
	ann := ev.Announcement
	s.logDiscovery(gen, ann, ev.Kind)

	if ev.Kind != discovery.EventAdded {
		// Removals mean the pairing dialog closed; updates are TTL
		// refreshes of an instance already handled.
		s.debugLog("ignoring pairing announcement",
			"kind", ev.Kind.String(), "instance", ann.Instance)
		return
	}

	endpoint, err := ann.Endpoint()
	if err != nil {
		s.debugLog("pairing announcement without usable address",
			"instance", ann.Instance, "error", err)
		return
	}

	tool, ctx, sessionID, ok := s.session(gen)
	if !ok {
		return
	}

	s.mu.Lock()
	code := s.creds.Code
	s.mu.Unlock()

	s.debugLog("pairing with device", "endpoint", endpoint, "sessionID", sessionID)
	err = tool.Pair(ctx, endpoint, code)

	// Discard results of a superseded session.
	if s.generation.Load() != gen {
		return
	}

	if err != nil {
		s.debugLog("pairing failed", "endpoint", endpoint, "error", err)
		s.logPairResult(sessionID, endpoint, false, err)
		s.emitEvent(Event{Type: EventPairFailed, SessionID: sessionID, Endpoint: endpoint, Err: err})
		return
	}

	// Paired events carry the bare device address.
	address := endpoint
	if ip, err := ann.PreferredAddress(); err == nil {
		address = ip.String()
	}

	s.debugLog("paired with device", "address", address, "sessionID", sessionID)
	s.logPairResult(sessionID, endpoint, true, nil)
	s.emitEvent(Event{Type: EventPaired, SessionID: sessionID, Endpoint: address})

	// The phone usually announces its connect port before pairing
	// completes; try it right away instead of waiting for the next
	// announcement.
	s.connectOpportunistic(gen)
}

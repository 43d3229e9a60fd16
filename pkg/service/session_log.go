package service

import (
	"time"

	"github.com/docmine17/adbee-go/pkg/discovery"
	"github.com/docmine17/adbee-go/pkg/log"
)

// Structured session capture. These helpers feed the configured
// log.Logger; operational slog output is handled by debugLog.

func (s *AdbService) logDiscovery(gen uint64, ann *discovery.Announcement, kind discovery.EventKind) {
	s.mu.Lock()
	sessionID := s.sessionID
	s.mu.Unlock()
	if s.generation.Load() != gen {
		return
	}

	endpoint, _ := ann.Endpoint()

	var change string
	switch kind {
	case discovery.EventAdded:
		change = "added"
	case discovery.EventRemoved:
		change = "removed"
	default:
		change = "updated"
	}

	s.sessionLogger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Category:  log.CategoryDiscovery,
		Endpoint:  endpoint,
		Discovery: &log.DiscoveryEvent{
			ServiceType: ann.Kind.ServiceType(),
			Instance:    ann.Instance,
			Change:      change,
		},
	})
}

func (s *AdbService) logPairResult(sessionID, endpoint string, success bool, err error) {
	ev := log.Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Category:  log.CategoryPairing,
		Endpoint:  endpoint,
		Pairing:   &log.PairingEvent{Success: success},
	}
	if err != nil {
		ev.Pairing.Detail = err.Error()
	}
	s.sessionLogger.Log(ev)
}

func (s *AdbService) logConnectAttempt(sessionID, endpoint string, attempt int, err error) {
	ev := log.Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Category:  log.CategoryConnect,
		Endpoint:  endpoint,
		Connect:   &log.ConnectEvent{Attempt: attempt, Success: err == nil},
	}
	if err != nil {
		ev.Connect.Detail = err.Error()
	}
	s.sessionLogger.Log(ev)
}

func (s *AdbService) logStateChange(sessionID string, from, to ServiceState, reason string) {
	s.sessionLogger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			OldState: from.String(),
			NewState: to.String(),
			Reason:   reason,
		},
	})
}

func (s *AdbService) logError(sessionID string, err error, context string) {
	s.sessionLogger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Message: err.Error(),
			Context: context,
		},
	})
}

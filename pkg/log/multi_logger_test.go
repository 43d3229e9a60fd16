package log

import (
	"testing"
	"time"
)

// recordingLogger records events for testing
type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(event Event) {
	r.events = append(r.events, event)
}

func TestMultiLoggerCallsAll(t *testing.T) {
	mock1 := &recordingLogger{}
	mock2 := &recordingLogger{}
	mock3 := &recordingLogger{}

	multi := NewMultiLogger(mock1, mock2, mock3)

	event := Event{
		Timestamp: time.Now(),
		SessionID: "sess-123",
		Category:  CategoryPairing,
		Pairing:   &PairingEvent{Success: true},
	}

	multi.Log(event)

	// All loggers should have received the event
	for i, mock := range []*recordingLogger{mock1, mock2, mock3} {
		if len(mock.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(mock.events))
			continue
		}
		if mock.events[0].SessionID != "sess-123" {
			t.Errorf("logger %d: SessionID = %q, want %q", i, mock.events[0].SessionID, "sess-123")
		}
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	multi := NewMultiLogger()

	// Should not panic with empty logger list
	multi.Log(Event{
		Timestamp: time.Now(),
		SessionID: "sess-123",
		Category:  CategoryDiscovery,
	})
}

func TestMultiLoggerSingleLogger(t *testing.T) {
	mock := &recordingLogger{}
	multi := NewMultiLogger(mock)

	event := Event{
		Timestamp: time.Now(),
		SessionID: "sess-456",
		Category:  CategoryConnect,
		Connect:   &ConnectEvent{Attempt: 1, Success: false, Detail: "refused"},
	}

	multi.Log(event)

	if len(mock.events) != 1 {
		t.Fatalf("got %d events, want 1", len(mock.events))
	}
	if mock.events[0].SessionID != "sess-456" {
		t.Errorf("SessionID = %q, want %q", mock.events[0].SessionID, "sess-456")
	}
	if mock.events[0].Connect == nil || mock.events[0].Connect.Detail != "refused" {
		t.Errorf("Connect payload not passed through: %+v", mock.events[0].Connect)
	}
}

func TestMultiLoggerInterfaceSatisfaction(t *testing.T) {
	var _ Logger = (*MultiLogger)(nil)
}

package log

import (
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	event := Event{
		Timestamp: time.Now().Truncate(time.Millisecond),
		SessionID: "2f1a9c44-1111-2222-3333-444455556666",
		Category:  CategoryConnect,
		Endpoint:  "192.168.1.50:5555",
		Connect: &ConnectEvent{
			Attempt: 2,
			Success: false,
			Detail:  "connection refused",
		},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.SessionID != event.SessionID {
		t.Errorf("SessionID = %q, want %q", decoded.SessionID, event.SessionID)
	}
	if decoded.Category != CategoryConnect {
		t.Errorf("Category = %v, want %v", decoded.Category, CategoryConnect)
	}
	if decoded.Endpoint != event.Endpoint {
		t.Errorf("Endpoint = %q, want %q", decoded.Endpoint, event.Endpoint)
	}
	if decoded.Connect == nil {
		t.Fatal("Connect payload missing after round trip")
	}
	if decoded.Connect.Attempt != 2 || decoded.Connect.Success || decoded.Connect.Detail != "connection refused" {
		t.Errorf("Connect payload mismatch: %+v", decoded.Connect)
	}
	if !decoded.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", decoded.Timestamp, event.Timestamp)
	}
}

func TestEncodeOmitsEmptyPayloads(t *testing.T) {
	event := Event{
		Timestamp: time.Now(),
		SessionID: "sess",
		Category:  CategoryState,
		StateChange: &StateChangeEvent{
			NewState: "RUNNING",
		},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.Discovery != nil || decoded.Pairing != nil || decoded.Connect != nil || decoded.Error != nil {
		t.Error("unset payloads should decode as nil")
	}
	if decoded.StateChange == nil || decoded.StateChange.NewState != "RUNNING" {
		t.Errorf("StateChange payload mismatch: %+v", decoded.StateChange)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00, 0x13}); err == nil {
		t.Error("expected error decoding garbage bytes")
	}
}

package discovery_test

import (
	"net"
	"testing"

	"github.com/docmine17/adbee-go/pkg/discovery"
)

func TestPreferredAddressIPv4First(t *testing.T) {
	ann := &discovery.Announcement{
		Kind: discovery.KindPairing,
		Port: 40001,
		Addresses: []net.IP{
			net.ParseIP("fe80::1"),
			net.ParseIP("192.168.1.50"),
		},
	}

	ip, err := ann.PreferredAddress()
	if err != nil {
		t.Fatalf("PreferredAddress failed: %v", err)
	}
	if ip.String() != "192.168.1.50" {
		t.Errorf("Expected IPv4 preferred, got %s", ip)
	}
}

func TestPreferredAddressFallbackToIPv6(t *testing.T) {
	ann := &discovery.Announcement{
		Addresses: []net.IP{net.ParseIP("fe80::1")},
	}

	ip, err := ann.PreferredAddress()
	if err != nil {
		t.Fatalf("PreferredAddress failed: %v", err)
	}
	if ip.String() != "fe80::1" {
		t.Errorf("Expected IPv6 fallback, got %s", ip)
	}
}

func TestPreferredAddressEmpty(t *testing.T) {
	ann := &discovery.Announcement{}

	_, err := ann.PreferredAddress()
	if err != discovery.ErrNoAddresses {
		t.Errorf("Expected ErrNoAddresses, got %v", err)
	}
}

func TestEndpointFormat(t *testing.T) {
	ann := &discovery.Announcement{
		Port:      5555,
		Addresses: []net.IP{net.ParseIP("192.168.1.50")},
	}

	ep, err := ann.Endpoint()
	if err != nil {
		t.Fatalf("Endpoint failed: %v", err)
	}
	if ep != "192.168.1.50:5555" {
		t.Errorf("Unexpected endpoint: %s", ep)
	}
}

func TestEndpointIPv6Bracketed(t *testing.T) {
	ann := &discovery.Announcement{
		Port:      5555,
		Addresses: []net.IP{net.ParseIP("fe80::1")},
	}

	ep, err := ann.Endpoint()
	if err != nil {
		t.Fatalf("Endpoint failed: %v", err)
	}
	if ep != "[fe80::1]:5555" {
		t.Errorf("Unexpected endpoint: %s", ep)
	}
}

func TestServiceKindStrings(t *testing.T) {
	tests := []struct {
		kind discovery.ServiceKind
		name string
		typ  string
	}{
		{discovery.KindPairing, "PAIRING", "_adb-tls-pairing._tcp"},
		{discovery.KindConnect, "CONNECT", "_adb-tls-connect._tcp"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("%v.String() = %q, want %q", tt.kind, got, tt.name)
		}
		if got := tt.kind.ServiceType(); got != tt.typ {
			t.Errorf("%v.ServiceType() = %q, want %q", tt.kind, got, tt.typ)
		}
	}
}

func TestEventKindStrings(t *testing.T) {
	tests := []struct {
		kind discovery.EventKind
		name string
	}{
		{discovery.EventAdded, "ADDED"},
		{discovery.EventRemoved, "REMOVED"},
		{discovery.EventUpdated, "UPDATED"},
		{discovery.EventKind(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("EventKind(%d).String() = %q, want %q", tt.kind, got, tt.name)
		}
	}
}

package discovery

import (
	"errors"
	"net"
	"strconv"
)

// Service type constants for mDNS.
const (
	// ServiceTypePairing is announced by the phone while the QR pairing
	// screen is open.
	ServiceTypePairing = "_adb-tls-pairing._tcp"

	// ServiceTypeConnect is announced by the phone once wireless debugging
	// accepts connections.
	ServiceTypeConnect = "_adb-tls-connect._tcp"

	// Domain is the mDNS domain.
	Domain = "local"
)

// Discovery errors.
var (
	ErrNoAddresses    = errors.New("announcement has no resolvable address")
	ErrBrowseFailed   = errors.New("mDNS browse failed to start")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// ServiceKind identifies which of the two ADB service types an
// announcement belongs to.
type ServiceKind uint8

const (
	// KindPairing is the pairing-announcement service type.
	KindPairing ServiceKind = iota

	// KindConnect is the connect-announcement service type.
	KindConnect
)

// String returns the kind name.
func (k ServiceKind) String() string {
	switch k {
	case KindPairing:
		return "PAIRING"
	case KindConnect:
		return "CONNECT"
	default:
		return "UNKNOWN"
	}
}

// ServiceType returns the mDNS service type string for the kind.
func (k ServiceKind) ServiceType() string {
	if k == KindConnect {
		return ServiceTypeConnect
	}
	return ServiceTypePairing
}

// EventKind tags a browse event. Only EventAdded triggers handler logic;
// removals and updates are surfaced for logging and the optional
// reconnect-on-reappearance policy.
type EventKind uint8

const (
	// EventAdded - a service instance appeared.
	EventAdded EventKind = iota

	// EventRemoved - a service instance disappeared.
	EventRemoved

	// EventUpdated - a service instance changed its records.
	EventUpdated
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "ADDED"
	case EventRemoved:
		return "REMOVED"
	case EventUpdated:
		return "UPDATED"
	default:
		return "UNKNOWN"
	}
}

// Announcement is one resolved mDNS service instance. It is ephemeral:
// produced per event and not retained beyond handling.
type Announcement struct {
	// Kind is the service type the announcement was browsed under.
	Kind ServiceKind

	// Instance is the mDNS instance name (e.g. "adb-XXXXXXXX-abcdef").
	Instance string

	// Host is the hostname (e.g. "Pixel-7.local.").
	Host string

	// Port is the announced port.
	Port uint16

	// Addresses contains resolved IP addresses, IPv4 entries first.
	Addresses []net.IP
}

// PreferredAddress returns the first IPv4 address, falling back to the
// first address of any family. Returns ErrNoAddresses when none resolved.
func (a *Announcement) PreferredAddress() (net.IP, error) {
	for _, ip := range a.Addresses {
		if ip.To4() != nil {
			return ip, nil
		}
	}
	if len(a.Addresses) > 0 {
		return a.Addresses[0], nil
	}
	return nil, ErrNoAddresses
}

// Endpoint returns the announcement's "ip:port" using the preferred
// address.
func (a *Announcement) Endpoint() (string, error) {
	ip, err := a.PreferredAddress()
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(ip.String(), strconv.Itoa(int(a.Port))), nil
}

// Event is a tagged browse event delivered to a watcher listener.
type Event struct {
	// Kind tags the event.
	Kind EventKind

	// Announcement is the affected service instance.
	Announcement *Announcement
}

package discovery

import (
	"context"
	"net"

	"github.com/enbility/zeroconf/v3"
)

// MDNSBrowser implements the Browser interface using zeroconf.
type MDNSBrowser struct {
	config BrowserConfig
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) (*MDNSBrowser, error) {
	return &MDNSBrowser{config: config}, nil
}

// Browse starts browsing for the given service kind. Entries are tracked
// by instance name: the first sighting of an instance is delivered as
// EventAdded, re-announcements of a live instance as EventUpdated, and
// disappearances as EventRemoved. The events channel is closed when the
// context is cancelled.
func (b *MDNSBrowser) Browse(ctx context.Context, kind ServiceKind, events chan<- Event) error {
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	opts := b.browserOptions()

	go func() {
		defer close(events)

		// Live instances by name, used to distinguish added from updated.
		seen := make(map[string]struct{})

		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				ann := entryToAnnouncement(kind, entry)
				if ann == nil {
					continue
				}

				ek := EventAdded
				if _, found := seen[ann.Instance]; found {
					ek = EventUpdated
				} else {
					seen[ann.Instance] = struct{}{}
				}

				select {
				case events <- Event{Kind: ek, Announcement: ann}:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if !ok {
					continue
				}
				if _, found := seen[entry.Instance]; !found {
					continue
				}
				delete(seen, entry.Instance)

				ann := entryToAnnouncement(kind, entry)
				if ann == nil {
					ann = &Announcement{Kind: kind, Instance: entry.Instance}
				}

				select {
				case events <- Event{Kind: EventRemoved, Announcement: ann}:
				case <-ctx.Done():
					return
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	// Start browsing in background
	go func() {
		if err := zeroconf.Browse(ctx, kind.ServiceType(), Domain, entries, removed, opts...); err != nil {
			b.debugLog("browse failed, no announcements will arrive",
				"service", kind.String(), "error", err)
		}
	}()

	return nil
}

func (b *MDNSBrowser) debugLog(msg string, args ...any) {
	if b.config.Logger != nil {
		b.config.Logger.Debug(msg, args...)
	}
}

// browserOptions returns zeroconf client options based on config.
func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption

	// Select specific interface if configured
	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err != nil {
			b.debugLog("interface not found, browsing on all interfaces",
				"interface", b.config.Interface, "error", err)
		} else {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}

	return opts
}

// entryToAnnouncement converts a zeroconf entry to an Announcement.
// IPv4 addresses are placed first so PreferredAddress finds them without
// scanning.
func entryToAnnouncement(kind ServiceKind, entry *zeroconf.ServiceEntry) *Announcement {
	if entry == nil {
		return nil
	}

	addrs := make([]net.IP, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	addrs = append(addrs, entry.AddrIPv4...)
	addrs = append(addrs, entry.AddrIPv6...)

	if entry.Port < 0 || entry.Port > 65535 {
		return nil
	}

	return &Announcement{
		Kind:      kind,
		Instance:  entry.Instance,
		Host:      entry.HostName,
		Port:      uint16(entry.Port),
		Addresses: addrs,
	}
}

// Ensure MDNSBrowser implements Browser interface.
var _ Browser = (*MDNSBrowser)(nil)

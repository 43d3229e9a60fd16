// Package discovery implements mDNS/DNS-SD browsing for ADB wireless
// debugging announcements.
//
// Android uses two separate mDNS service types during QR pairing:
//
// # Pairing Discovery (_adb-tls-pairing._tcp)
//
// The phone advertises this service while the "Pair device with QR code"
// screen is open. The announced port accepts exactly one `adb pair`
// handshake authorized by the pairing code embedded in the QR payload.
//
// # Connect Discovery (_adb-tls-connect._tcp)
//
// The phone advertises this service whenever wireless debugging is
// enabled. The announced port accepts `adb connect` from hosts that have
// previously paired.
//
// Both types are browsed through a single Watcher per pairing session.
// Events are delivered as tagged Event values (added/removed/updated)
// rather than a three-method listener; only additions drive pairing and
// connection logic.
package discovery

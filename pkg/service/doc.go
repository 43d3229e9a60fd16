// Package service implements the wireless ADB pairing orchestrator.
//
// An AdbService runs one pairing session at a time. A session publishes
// a service name and six-digit code (rendered as a QR payload by
// pkg/pairing), browses the LAN for the phone's pairing and connect
// announcements (pkg/discovery), and drives the external adb tool
// (pkg/adb) to pair and connect. Announcements are processed on worker
// goroutines; outcomes are delivered asynchronously to handlers
// registered with OnEvent.
//
// Starting a session while one is running supersedes it: the old
// session is stopped and results from its in-flight work are discarded.
// Environmental problems like a missing adb binary degrade softly, the
// service stays Idle and reports a sentinel error.
package service

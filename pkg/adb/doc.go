// Package adb wraps the external adb command line tool for wireless
// pairing and connection. Invocations are bounded by per-command
// timeouts and classified by both exit code and output markers.
package adb

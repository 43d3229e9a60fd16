// Package pairing generates ADB wireless pairing credentials and the QR
// payload that carries them to the phone.
//
// A pairing session is identified by a fixed service name and a random
// 6-digit code. The phone scans the payload
//
//	WIFI:T:ADB;S:<serviceName>;P:<pairingCode>;;
//
// and then announces _adb-tls-pairing._tcp on the local network; the
// code authorizes the subsequent `adb pair` handshake.
package pairing

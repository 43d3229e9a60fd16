package pairing

import (
	"errors"
	"fmt"
	"strings"
)

// QR payload constants. Android's "Pair device with QR code" scanner
// reuses the Wi-Fi provisioning format with a fixed "ADB" network type.
const (
	// QRPrefix starts every ADB pairing payload.
	QRPrefix = "WIFI:T:ADB;"
)

// QR payload errors.
var (
	ErrInvalidPayload = errors.New("invalid QR payload format")
)

// QRPayload is the parsed content of an ADB pairing QR code.
type QRPayload struct {
	// ServiceName is the published label (field S).
	ServiceName string

	// Code is the 6-digit pairing code (field P).
	Code string
}

// BuildQRPayload formats credentials as the literal string the phone's
// scanner expects: WIFI:T:ADB;S:<serviceName>;P:<pairingCode>;;
func BuildQRPayload(serviceName, code string) string {
	return fmt.Sprintf("WIFI:T:ADB;S:%s;P:%s;;", serviceName, code)
}

// Payload returns the credentials' QR payload string.
func (c *Credentials) Payload() string {
	return BuildQRPayload(c.ServiceName, c.Code)
}

// ParseQRPayload parses an ADB pairing QR payload string.
func ParseQRPayload(content string) (*QRPayload, error) {
	if !strings.HasPrefix(content, QRPrefix) {
		return nil, fmt.Errorf("%w: missing %q prefix", ErrInvalidPayload, QRPrefix)
	}
	if !strings.HasSuffix(content, ";;") {
		return nil, fmt.Errorf("%w: missing terminator", ErrInvalidPayload)
	}

	body := strings.TrimSuffix(strings.TrimPrefix(content, QRPrefix), ";;")

	var p QRPayload
	for _, field := range strings.Split(body, ";") {
		key, value, found := strings.Cut(field, ":")
		if !found {
			return nil, fmt.Errorf("%w: malformed field %q", ErrInvalidPayload, field)
		}
		switch key {
		case "S":
			p.ServiceName = value
		case "P":
			p.Code = value
		default:
			// Unknown fields are tolerated for forward compatibility.
		}
	}

	if p.ServiceName == "" {
		return nil, fmt.Errorf("%w: missing service name", ErrInvalidPayload)
	}
	if err := ValidateCode(p.Code); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return &p, nil
}

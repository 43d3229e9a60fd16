package pairing

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// Pairing code constants.
const (
	// ServiceName is the fixed, non-secret label published in the QR
	// payload. The phone shows it on the pairing screen.
	ServiceName = "adbee"

	// CodeLength is the number of digits in a pairing code.
	CodeLength = 6

	// CodeMin is the smallest valid pairing code (no leading zero).
	CodeMin = 100000

	// CodeMax is the largest valid pairing code.
	CodeMax = 999999
)

// Pairing code errors.
var (
	ErrInvalidCode = errors.New("invalid pairing code")
)

// GenerateCode generates a cryptographically random 6-digit pairing code,
// uniform over [100000, 999999]. The code is the only secret authorizing
// the pairing handshake, so a general-purpose PRNG is not acceptable here.
func GenerateCode() (string, error) {
	span := big.NewInt(CodeMax - CodeMin + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to generate random pairing code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+CodeMin), nil
}

// ValidateCode checks that a code is exactly 6 ASCII digits in range.
func ValidateCode(code string) error {
	if len(code) != CodeLength {
		return fmt.Errorf("%w: must be %d digits", ErrInvalidCode, CodeLength)
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: non-digit character", ErrInvalidCode)
		}
	}
	if code[0] == '0' {
		return fmt.Errorf("%w: out of range", ErrInvalidCode)
	}
	return nil
}

// Credentials is one pairing session's identity: the published service
// name and the secret code. The code is immutable once generated; every
// pairing command issued during the session uses it verbatim.
type Credentials struct {
	// SessionID correlates log events across the session's lifetime.
	SessionID string

	// ServiceName is the published label.
	ServiceName string

	// Code is the 6-digit pairing code.
	Code string
}

// NewCredentials generates fresh credentials. Each call produces an
// independent session.
func NewCredentials() (*Credentials, error) {
	code, err := GenerateCode()
	if err != nil {
		return nil, err
	}
	return &Credentials{
		SessionID:   uuid.NewString(),
		ServiceName: ServiceName,
		Code:        code,
	}, nil
}

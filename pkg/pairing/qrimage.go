package pairing

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the rendered PNG edge length in pixels.
const DefaultQRSize = 280

// RenderPNG encodes the payload as a PNG image with the given edge
// length in pixels. A size of 0 uses DefaultQRSize.
func RenderPNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(payload, qrcode.Low, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR payload: %w", err)
	}
	return png, nil
}

// RenderTerminal encodes the payload as a half-block string suitable for
// printing to a terminal.
func RenderTerminal(payload string) (string, error) {
	qr, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR payload: %w", err)
	}
	return qr.ToSmallString(false), nil
}

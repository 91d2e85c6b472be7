package qr

import (
	"fmt"
	"os"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultPNGSize is the pixel width used for PNG output.
const DefaultPNGSize = 512

// Terminal renders the URI as a small ASCII QR code for display in a
// terminal.
func Terminal(uri string) (string, error) {
	q, err := qrcode.New(uri, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to build QR code: %w", err)
	}
	return q.ToSmallString(false), nil
}

// PNG renders the URI as a PNG image of the given pixel size.
func PNG(uri string, size int) ([]byte, error) {
	data, err := qrcode.Encode(uri, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return data, nil
}

// WritePNG saves the QR code for the URI to path, appending a .png
// extension when missing. An existing file is never overwritten; a
// timestamped name is chosen instead. The path actually written is
// returned.
func WritePNG(uri, path string, size int) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".png") {
		path += ".png"
	}

	outPath := path
	if _, err := os.Stat(outPath); err == nil {
		base := path[:len(path)-len(".png")]
		timestamp := time.Now().Format("20060102-150405")
		outPath = fmt.Sprintf("%s-%s.png", base, timestamp)
	}

	if err := qrcode.WriteFile(uri, qrcode.Medium, size, outPath); err != nil {
		return "", fmt.Errorf("failed to write QR code to %s: %w", outPath, err)
	}

	return outPath, nil
}

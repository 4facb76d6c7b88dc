package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the image size in pixels used for non-positive sizes.
const DefaultSize = 256

var bech32Prefixes = []string{"lightning:", "lnbc", "lntb", "lntbs", "lnbcrt", "lnsb", "lnurl"}

// Payload returns the exact text that Encode puts into the QR code.
func Payload(content string) string {
	content = strings.TrimSpace(content)
	lower := strings.ToLower(content)
	for _, p := range bech32Prefixes {
		if strings.HasPrefix(lower, p) {
			return strings.ToUpper(content)
		}
	}
	return content
}

// Encode creates a PNG QR code for content.
func Encode(content string, size int) ([]byte, error) {
	payload := Payload(content)
	if payload == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := skipqrcode.Encode(payload, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// DataURI creates a base64 PNG data URI for content.
//
//	<img src="{{.QRCode}}">
func DataURI(content string, size int) (string, error) {
	png, err := Encode(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

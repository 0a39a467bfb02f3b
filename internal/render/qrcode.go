package render

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

var errEmptyPayload = errors.New("empty qr payload")

// QRCodePNG encodes payload, typically the preview URL, as a PNG QR code.
// Non-positive sizes use a 256px default.
func QRCodePNG(payload string, sizePx int) ([]byte, error) {
	if payload == "" {
		return nil, errEmptyPayload
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}
	return qrcode.Encode(payload, qrcode.Medium, sizePx)
}

package render

import (
	"bytes"
	"image/png"
	"testing"
)

func TestQRCodePNG(t *testing.T) {
	data, err := QRCodePNG("http://clockface.local:8080/", 0)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != defaultQRCodeSizePx || cfg.Height != defaultQRCodeSizePx {
		t.Errorf("qr = %dx%d, want %d", cfg.Width, cfg.Height, defaultQRCodeSizePx)
	}

	if _, err := QRCodePNG("", 128); err == nil {
		t.Error("empty payload accepted")
	}
}

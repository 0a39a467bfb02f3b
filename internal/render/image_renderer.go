package render

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"sync"

	"github.com/rook-computer/clockface/internal/assets"
	"github.com/rook-computer/clockface/internal/face"
)

// ImageRenderer keeps presented frames in memory. It backs the simulator,
// the preview server and snapshots.
type ImageRenderer struct {
	Logger logger

	mu     sync.Mutex
	width  int
	height int
	fonts  *Fonts
	canvas *Canvas
	last   *image.RGBA
	frames int
}

// NewImageRenderer returns a renderer with a width x height canvas.
// Non-positive sizes fall back to the logical canvas size.
func NewImageRenderer(width, height int) *ImageRenderer {
	if width <= 0 || height <= 0 {
		width, height = CanvasWidth, CanvasHeight
	}
	return &ImageRenderer{width: width, height: height}
}

func (r *ImageRenderer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureCanvas()
	return nil
}

func (r *ImageRenderer) Stop() error { return nil }

func (r *ImageRenderer) Size() (int, int) { return r.width, r.height }

func (r *ImageRenderer) Present(frame face.DisplayList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureCanvas()
	paintFrame(r.canvas, frame)

	out := image.NewRGBA(r.canvas.Image().Bounds())
	copy(out.Pix, r.canvas.Image().Pix)
	r.last = out
	r.frames++
	return nil
}

// LastFrame returns the last presented image, or nil before the first frame.
// The image is not modified afterwards.
func (r *ImageRenderer) LastFrame() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Frames reports how many frames have been presented.
func (r *ImageRenderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// WritePNG encodes the last frame. It writes nothing and returns false when no
// frame has been presented yet.
func (r *ImageRenderer) WritePNG(w io.Writer) (bool, error) {
	img := r.LastFrame()
	if img == nil {
		return false, nil
	}
	return true, png.Encode(w, img)
}

func (r *ImageRenderer) ensureCanvas() {
	if r.canvas != nil {
		return
	}
	r.fonts = LoadFonts(assets.FontTTF, r.Logger)
	r.canvas = NewCanvas(image.NewRGBA(image.Rect(0, 0, r.width, r.height)), r.fonts)
}

// RasterizeFrame draws frame onto a fresh width x height image filled with
// the backdrop. fonts must not be in use by another goroutine.
func RasterizeFrame(frame face.DisplayList, width, height int, fonts *Fonts) *image.RGBA {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == 0 || height == 0 {
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}
	c := NewCanvas(image.NewRGBA(image.Rect(0, 0, width, height)), fonts)
	paintFrame(c, frame)
	return c.Image()
}

// EncodePNG rasterizes frame and returns it PNG-encoded.
func EncodePNG(frame face.DisplayList, width, height int, fonts *Fonts) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, RasterizeFrame(frame, width, height, fonts)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

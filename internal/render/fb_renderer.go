package render

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"sync"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/clockface/internal/assets"
	"github.com/rook-computer/clockface/internal/face"
	"github.com/rook-computer/clockface/internal/render/layout"
)

const defaultFBDevice = "/dev/fb0"

var errNotRunning = errors.New("renderer not running")

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	// Device defaults to /dev/fb0.
	Device string
	Logger logger
	Debug  bool
	// Overscan keeps the picture this many device pixels away from every
	// edge, for TVs that crop the border.
	Overscan int

	mu      sync.Mutex
	fbDev   *fb.Device
	canvas  *Canvas
	fonts   *Fonts
	running atomic.Bool
	frames  int
}

func NewFBRenderer() *FBRenderer { return &FBRenderer{} }

func (r *FBRenderer) Start(ctx context.Context) error {
	path := r.Device
	if path == "" {
		path = defaultFBDevice
	}
	dev, err := fb.Open(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.fbDev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", path, bounds.Dx(), bounds.Dy())
	}

	// Prepare logical canvas
	r.fonts = LoadFonts(assets.FontTTF, r.Logger)
	r.canvas = NewCanvas(image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight)), r.fonts)

	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fbDev != nil {
		r.fbDev.Close()
		r.fbDev = nil
	}
	return nil
}

func (r *FBRenderer) Size() (int, int) { return CanvasWidth, CanvasHeight }

// Present draws frame on the logical canvas and blits it to the device.
func (r *FBRenderer) Present(frame face.DisplayList) error {
	if !r.running.Load() {
		return errNotRunning
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fbDev == nil {
		return errNotRunning
	}
	paintFrame(r.canvas, frame)
	blitToFB(r.fbDev, r.canvas.Image(), r.Overscan)
	r.frames++
	if r.Debug && r.Logger != nil {
		r.Logger.Infof("fb", "frame %d presented, %d commands", r.frames, len(frame))
	}
	return nil
}

// blitToFB scales the canvas into the device, less the overscan margin,
// keeping its aspect ratio. The area around it gets the backdrop color.
func blitToFB(dev draw.Image, canvas *image.RGBA, overscan int) {
	bounds := dev.Bounds()
	target := layout.Fit(canvas.Bounds().Dx(), canvas.Bounds().Dy(), layout.Inset(bounds, overscan))
	if target != bounds {
		draw.Draw(dev, bounds, &image.Uniform{C: Backdrop}, image.Point{}, draw.Src)
	}
	if target.Size() == canvas.Bounds().Size() {
		draw.Draw(dev, target, canvas, image.Point{}, draw.Src)
		return
	}
	xdraw.ApproxBiLinear.Scale(dev, target, canvas, canvas.Bounds(), xdraw.Src, nil)
}

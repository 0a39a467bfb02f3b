package render

import (
	"context"

	"github.com/rook-computer/clockface/internal/face"
)

// Renderer is a host surface a clock face can be presented on.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	// Size returns the logical canvas size (in pixels) frames are laid out in.
	Size() (width int, height int)
	// Present replaces whatever is on screen with frame.
	Present(frame face.DisplayList) error
}

// Screen is something the app can attach to and detach from a renderer.
type Screen interface {
	Start(ctx context.Context) error
	Stop() error
}

// Stub implementations
type NoopRenderer struct {
	Width, Height int
}

func (n *NoopRenderer) Start(ctx context.Context) error      { return nil }
func (n *NoopRenderer) Stop() error                          { return nil }
func (n *NoopRenderer) Size() (int, int)                     { return n.Width, n.Height }
func (n *NoopRenderer) Present(frame face.DisplayList) error { return nil }

// paintFrame clears the canvas to the backdrop and replays frame onto it.
func paintFrame(c *Canvas, frame face.DisplayList) {
	c.Fill(Backdrop)
	frame.Replay(c)
}

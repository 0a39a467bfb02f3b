package render

import (
	"sync"

	"github.com/rook-computer/clockface/internal/face"
)

// Recorder forwards to another renderer and remembers the last frame it
// presented successfully, so the preview server can re-encode it.
type Recorder struct {
	Renderer

	mu    sync.RWMutex
	frame face.DisplayList
	ok    bool
}

func NewRecorder(inner Renderer) *Recorder { return &Recorder{Renderer: inner} }

func (r *Recorder) Present(frame face.DisplayList) error {
	if err := r.Renderer.Present(frame); err != nil {
		return err
	}
	r.mu.Lock()
	r.frame = append(face.DisplayList(nil), frame...)
	r.ok = true
	r.mu.Unlock()
	return nil
}

// LastFrame returns the last presented display list and the canvas size it
// was laid out for. ok is false until a frame has been presented.
func (r *Recorder) LastFrame() (frame face.DisplayList, width, height int, ok bool) {
	r.mu.RLock()
	frame, ok = r.frame, r.ok
	r.mu.RUnlock()
	width, height = r.Renderer.Size()
	return frame, width, height, ok
}

package web

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rook-computer/clockface/internal/face"
	"github.com/rook-computer/clockface/internal/state"
)

// StatusSource abstracts the app state shown by the API.
//
// The concrete implementation is typically *state.Store.
type StatusSource interface {
	Snapshot() state.State
}

// FrameSource returns the frame currently on screen.
//
// The concrete implementation is typically *render.Recorder.
type FrameSource interface {
	LastFrame() (frame face.DisplayList, width, height int, ok bool)
}

// sysLogger matches the component logger used across the app.
type sysLogger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type APIV1Deps struct {
	Status StatusSource
	Frames FrameSource
	// Clock supplies the time when a render request names none, read in
	// Location when that is set.
	Clock    clockwork.Clock
	Location *time.Location
	Logger   sysLogger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Status == nil {
		out.Status = state.NewStore()
	}
	if out.Frames == nil {
		out.Frames = noFrames{}
	}
	if out.Clock == nil {
		out.Clock = clockwork.NewRealClock()
	}
	if out.Logger == nil {
		out.Logger = noopSysLogger{}
	}
	return out
}

func (d APIV1Deps) now() time.Time {
	now := d.Clock.Now()
	if d.Location != nil {
		return now.In(d.Location)
	}
	return now
}

type noFrames struct{}

func (noFrames) LastFrame() (face.DisplayList, int, int, bool) { return nil, 0, 0, false }

type noopSysLogger struct{}

func (noopSysLogger) Infof(string, string, ...interface{})  {}
func (noopSysLogger) Errorf(string, string, ...interface{}) {}

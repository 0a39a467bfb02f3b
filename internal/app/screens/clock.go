package screens

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rook-computer/clockface/internal/face"
	"github.com/rook-computer/clockface/internal/refresh"
	"github.com/rook-computer/clockface/internal/render"
	"github.com/rook-computer/clockface/internal/render/layout"
	"github.com/rook-computer/clockface/internal/state"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type debugLogger interface {
	Debugf(component string, format string, args ...interface{})
}

// AppExiter is implemented by the host application.
// Screens can call Exit to request termination.
type AppExiter interface {
	Exit(err error)
}

// ClockScreen shows an analog clock face. Start attaches it: the first frame
// is presented right away and a scheduler keeps repainting at the style's
// cadence. Stop detaches it and revokes any pending repaint.
type ClockScreen struct {
	Renderer render.Renderer
	Store    *state.Store
	Logger   Logger
	// Exiter, when set, is told about presentation failures.
	Exiter AppExiter
	// Clock defaults to the real clock.
	Clock clockwork.Clock
	// Location is the time zone the face shows; nil means the clock's own.
	Location *time.Location

	style face.StyleConfig

	mu        sync.Mutex
	scheduler *refresh.Scheduler
}

var _ render.Screen = (*ClockScreen)(nil)

func NewClockScreen(renderer render.Renderer, store *state.Store, style face.StyleConfig, logger Logger) *ClockScreen {
	return &ClockScreen{
		Renderer: renderer,
		Store:    store,
		Logger:   logger,
		style:    face.NewStyle(style),
	}
}

func (s *ClockScreen) Style() face.StyleConfig { return s.style }

// Start attaches the screen. Attaching an attached screen does nothing.
func (s *ClockScreen) Start(ctx context.Context) error {
	if s.Renderer == nil {
		return errors.New("no renderer configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler != nil {
		return nil
	}
	if s.Store != nil {
		s.Store.SetStyle(s.style)
		s.Store.SetPhase(state.ATTACHED)
	}
	sched := refresh.New(s.Clock, s.style.Update, s.repaint)
	if s.Logger != nil {
		sched.Logger = s.Logger
		s.Logger.Infof("screen", "attached, update=%s", s.style.Update)
	}
	s.scheduler = sched
	sched.Start(ctx)
	return nil
}

// Stop detaches the screen and waits for a repaint in progress, so nothing
// this screen draws lands after Stop returns. Detaching twice is harmless.
// Stop must not be called from the screen's own repaint path.
func (s *ClockScreen) Stop() error {
	s.mu.Lock()
	sched := s.scheduler
	s.scheduler = nil
	s.mu.Unlock()

	if sched == nil {
		return nil
	}
	sched.Stop()
	if s.Store != nil && s.Store.Snapshot().Phase == state.ATTACHED {
		s.Store.SetPhase(state.DETACHED)
	}
	if s.Logger != nil {
		s.Logger.Infof("screen", "detached after %d frames", sched.Ticks())
	}
	return nil
}

// Attached reports whether a scheduler is running for this screen.
func (s *ClockScreen) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler != nil
}

// Frame lays the face out for now on a width x height canvas: a square of
// the smaller side, centered.
func (s *ClockScreen) Frame(now time.Time, width, height int) face.DisplayList {
	now = s.localTime(now)
	vp := face.MeasureSquare(face.Exactly(float64(width)), face.Exactly(float64(height)))
	square := layout.CenterSquare(image.Rect(0, 0, width, height))
	list := face.Render(face.TimeOfDayFrom(now), s.style, vp)
	return list.Translate(float64(square.Min.X), float64(square.Min.Y))
}

func (s *ClockScreen) repaint(now time.Time) {
	width, height := s.Renderer.Size()
	list := s.Frame(now, width, height)

	if err := s.Renderer.Present(list); err != nil {
		if s.Logger != nil {
			s.Logger.Errorf("screen", "present failed: %v", err)
		}
		if s.Store != nil {
			s.Store.Fail(err)
		}
		if s.Exiter != nil {
			s.Exiter.Exit(err)
		}
		return
	}

	if s.Store != nil {
		s.Store.RecordFrame(state.FrameInfo{
			Time:       face.TimeOfDayFrom(s.localTime(now)),
			Sampled:    now,
			RenderedAt: time.Now(),
			Viewport:   face.MeasureSquare(face.Exactly(float64(width)), face.Exactly(float64(height))),
			Update:     s.style.Update,
			Commands:   len(list),
		})
	}
	if d, ok := s.Logger.(debugLogger); ok {
		d.Debugf("screen", "frame at %s, %d commands", now.Format("15:04:05"), len(list))
	}
}

func (s *ClockScreen) localTime(now time.Time) time.Time {
	if s.Location != nil {
		return now.In(s.Location)
	}
	return now
}

package screens

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rook-computer/clockface/internal/face"
	"github.com/rook-computer/clockface/internal/state"
)

const waitTimeout = 2 * time.Second

type recordingRenderer struct {
	width, height int
	err           error
	frames        chan face.DisplayList
}

func newRecordingRenderer(w, h int) *recordingRenderer {
	return &recordingRenderer{width: w, height: h, frames: make(chan face.DisplayList, 16)}
}

func (r *recordingRenderer) Start(ctx context.Context) error { return nil }
func (r *recordingRenderer) Stop() error                     { return nil }
func (r *recordingRenderer) Size() (int, int)                { return r.width, r.height }
func (r *recordingRenderer) Present(frame face.DisplayList) error {
	r.frames <- frame
	return r.err
}

func (r *recordingRenderer) next(t *testing.T) face.DisplayList {
	t.Helper()
	select {
	case f := <-r.frames:
		return f
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for a frame")
		return nil
	}
}

func (r *recordingRenderer) none(t *testing.T) {
	t.Helper()
	select {
	case <-r.frames:
		t.Fatal("unexpected frame")
	default:
	}
}

type exitRecorder struct{ errs chan error }

func (e *exitRecorder) Exit(err error) { e.errs <- err }

func blockUntilArmed(t *testing.T, clock *clockwork.FakeClock) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("no timer armed: %v", err)
	}
}

func waitForFrames(t *testing.T, store *state.Store, n int64) state.FrameInfo {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		if f := store.Snapshot().Frame; f.Count >= n {
			return f
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("store never recorded %d frames", n)
	return state.FrameInfo{}
}

func TestClockScreenAttachPresentsCenteredFace(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC))
	r := newRecordingRenderer(200, 100)
	store := state.NewStore()
	s := NewClockScreen(r, store, face.DefaultStyle(), nil)
	s.Clock = clock

	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()

	frame := r.next(t)
	bg, ok := frame[0].Primitive.(face.FillCircle)
	if !ok {
		t.Fatalf("first command = %T, want FillCircle", frame[0].Primitive)
	}
	if bg.Center != (face.Point{X: 100, Y: 50}) || bg.Radius != 50 {
		t.Errorf("background = %+v, want centered radius 50", bg)
	}

	info := waitForFrames(t, store, 1)
	if info.Time != (face.TimeOfDay{Hour: 3}) {
		t.Errorf("recorded time = %v, want 03:00:00", info.Time)
	}
	if info.Viewport != (face.Viewport{Width: 100, Height: 100}) {
		t.Errorf("viewport = %+v", info.Viewport)
	}
	if store.Snapshot().Phase != state.ATTACHED {
		t.Errorf("phase = %v, want attached", store.Snapshot().Phase)
	}

	blockUntilArmed(t, clock)
	clock.Advance(time.Second)
	r.next(t)
	if info := waitForFrames(t, store, 2); info.Time.Second != 1 {
		t.Errorf("second frame time = %v", info.Time)
	}
}

func TestClockScreenDetachStopsRepaints(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := newRecordingRenderer(64, 64)
	store := state.NewStore()
	s := NewClockScreen(r, store, face.DefaultStyle(), nil)
	s.Clock = clock

	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	r.next(t)
	blockUntilArmed(t, clock)

	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if s.Attached() {
		t.Error("screen still attached after Stop")
	}
	clock.Advance(5 * time.Second)
	r.none(t)
	if store.Snapshot().Phase != state.DETACHED {
		t.Errorf("phase = %v, want detached", store.Snapshot().Phase)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("second Stop = %v", err)
	}
}

func TestClockScreenReattach(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := newRecordingRenderer(64, 64)
	s := NewClockScreen(r, nil, face.DefaultStyle(), nil)
	s.Clock = clock

	_ = s.Start(context.Background())
	_ = s.Start(context.Background())
	r.next(t)
	blockUntilArmed(t, clock)
	r.none(t)

	_ = s.Stop()
	_ = s.Start(context.Background())
	defer s.Stop()
	r.next(t)
}

func TestClockScreenStaticPaintsOnce(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := newRecordingRenderer(64, 64)
	style := face.DefaultStyle()
	style.Update = face.UpdateStatic
	s := NewClockScreen(r, nil, style, nil)
	s.Clock = clock

	_ = s.Start(context.Background())
	defer s.Stop()
	r.next(t)
	clock.Advance(time.Hour)
	time.Sleep(10 * time.Millisecond)
	r.none(t)
}

func TestClockScreenPresentFailure(t *testing.T) {
	r := newRecordingRenderer(64, 64)
	r.err = errors.New("device gone")
	store := state.NewStore()
	exits := &exitRecorder{errs: make(chan error, 1)}
	s := NewClockScreen(r, store, face.DefaultStyle(), nil)
	s.Clock = clockwork.NewFakeClock()
	s.Exiter = exits

	_ = s.Start(context.Background())
	defer s.Stop()
	r.next(t)

	select {
	case err := <-exits.errs:
		if err == nil || err.Error() != "device gone" {
			t.Errorf("exit err = %v", err)
		}
	case <-time.After(waitTimeout):
		t.Fatal("exiter not called")
	}
	snap := store.Snapshot()
	if snap.Phase != state.ERROR || snap.Frame.Count != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestClockScreenRequiresRenderer(t *testing.T) {
	s := NewClockScreen(nil, nil, face.DefaultStyle(), nil)
	if err := s.Start(context.Background()); err == nil {
		t.Error("Start without renderer should fail")
	}
}

func TestFrameUsesLocation(t *testing.T) {
	s := NewClockScreen(newRecordingRenderer(10, 10), nil, face.DefaultStyle(), nil)
	s.Location = time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)

	frame := s.Frame(now, 100, 100)
	var hour face.Line
	for _, cmd := range frame {
		if cmd.Layer == face.LayerHourHand {
			hour = cmd.Primitive.(face.Line)
		}
	}
	// 03:00 local: hour hand points east
	if hour.To.X <= hour.From.X || math.Abs(hour.To.Y-hour.From.Y) > 1e-9 {
		t.Errorf("hour hand = %+v, want pointing east", hour)
	}
}

// gatedRenderer holds the first Present until released.
type gatedRenderer struct {
	entered chan struct{}
	release chan struct{}
}

func (r *gatedRenderer) Start(ctx context.Context) error { return nil }
func (r *gatedRenderer) Stop() error                     { return nil }
func (r *gatedRenderer) Size() (int, int)                { return 64, 64 }
func (r *gatedRenderer) Present(frame face.DisplayList) error {
	select {
	case r.entered <- struct{}{}:
		<-r.release
	default:
	}
	return nil
}

func TestClockScreenStopWaitsForPresent(t *testing.T) {
	r := &gatedRenderer{entered: make(chan struct{}, 1), release: make(chan struct{})}
	store := state.NewStore()
	s := NewClockScreen(r, store, face.DefaultStyle(), nil)
	s.Clock = clockwork.NewFakeClock()

	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	<-r.entered

	stopped := make(chan struct{})
	go func() {
		_ = s.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		t.Fatal("Stop returned during Present")
	case <-time.After(50 * time.Millisecond):
	}

	close(r.release)
	select {
	case <-stopped:
	case <-time.After(waitTimeout):
		t.Fatal("Stop did not return")
	}
	snap := store.Snapshot()
	if snap.Frame.Count != 1 || snap.Phase != state.DETACHED {
		t.Errorf("count = %d, phase = %v; want 1, detached", snap.Frame.Count, snap.Phase)
	}
}

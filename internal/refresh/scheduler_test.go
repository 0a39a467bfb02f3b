package refresh

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rook-computer/clockface/internal/face"
)

const waitTimeout = 2 * time.Second

type recorder struct {
	ch chan time.Time
}

func newRecorder() *recorder { return &recorder{ch: make(chan time.Time, 16)} }

func (r *recorder) repaint(now time.Time) { r.ch <- now }

func (r *recorder) next(t *testing.T) time.Time {
	t.Helper()
	select {
	case now := <-r.ch:
		return now
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for repaint")
		return time.Time{}
	}
}

func (r *recorder) none(t *testing.T) {
	t.Helper()
	select {
	case now := <-r.ch:
		t.Fatalf("unexpected repaint at %v", now)
	default:
	}
}

func waitDone(t *testing.T, s *Scheduler) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(waitTimeout):
		t.Fatal("scheduler did not stop")
	}
}

// blockUntilArmed waits for the scheduler to register its next timer.
func blockUntilArmed(t *testing.T, clock *clockwork.FakeClock) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("scheduler never armed a timer: %v", err)
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		update     face.UpdateType
		want       time.Duration
		wantRepeat bool
	}{
		{face.UpdateEverySecond, time.Second, true},
		{face.UpdateEveryMinute, time.Minute, true},
		{face.UpdateStatic, 0, false},
		{face.UpdateType(42), time.Second, true},
	}
	for _, tt := range tests {
		got, repeat := Interval(tt.update)
		if got != tt.want || repeat != tt.wantRepeat {
			t.Errorf("Interval(%v) = %v, %v; want %v, %v", tt.update, got, repeat, tt.want, tt.wantRepeat)
		}
	}
}

func TestEverySecondTicks(t *testing.T) {
	start := time.Date(2026, 10, 19, 3, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	rec := newRecorder()
	s := New(clock, face.UpdateEverySecond, rec.repaint)

	s.Start(context.Background())
	defer s.Cancel()

	if got := rec.next(t); !got.Equal(start) {
		t.Errorf("first repaint at %v, want %v", got, start)
	}
	if s.State() != StateScheduled {
		t.Errorf("state = %v, want scheduled", s.State())
	}

	for i := 1; i <= 3; i++ {
		blockUntilArmed(t, clock)
		rec.none(t)
		clock.Advance(time.Second)
		want := start.Add(time.Duration(i) * time.Second)
		if got := rec.next(t); !got.Equal(want) {
			t.Errorf("repaint %d at %v, want %v", i, got, want)
		}
	}
}

func TestEveryMinuteWaitsAFullMinute(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := newRecorder()
	s := New(clock, face.UpdateEveryMinute, rec.repaint)
	s.Start(context.Background())
	defer s.Cancel()

	rec.next(t)
	blockUntilArmed(t, clock)
	clock.Advance(59 * time.Second)
	rec.none(t)
	clock.Advance(time.Second)
	rec.next(t)
}

func TestStaticPaintsOnce(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := newRecorder()
	s := New(clock, face.UpdateStatic, rec.repaint)
	s.Start(context.Background())

	rec.next(t)
	waitDone(t, s)
	if s.State() != StateFinished {
		t.Errorf("state = %v, want finished", s.State())
	}

	clock.Advance(2 * time.Minute)
	rec.none(t)
	if s.Ticks() != 1 {
		t.Errorf("ticks = %d, want 1", s.Ticks())
	}
}

func TestCancelRevokesPendingTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := newRecorder()
	s := New(clock, face.UpdateEverySecond, rec.repaint)
	s.Start(context.Background())

	rec.next(t)
	blockUntilArmed(t, clock)
	s.Cancel()
	waitDone(t, s)

	clock.Advance(10 * time.Second)
	rec.none(t)
	if s.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled", s.State())
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	s := New(clockwork.NewFakeClock(), face.UpdateEverySecond, nil)
	s.Cancel()
	s.Cancel()
	if s.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled", s.State())
	}
	waitDone(t, s)

	// a cancelled scheduler can not be revived
	s.Start(context.Background())
	if s.State() != StateCancelled {
		t.Errorf("state after Start = %v, want cancelled", s.State())
	}
	if s.Ticks() != 0 {
		t.Errorf("ticks = %d, want 0", s.Ticks())
	}
}

func TestCancelAfterStaticFinish(t *testing.T) {
	rec := newRecorder()
	s := New(clockwork.NewFakeClock(), face.UpdateStatic, rec.repaint)
	s.Start(context.Background())
	rec.next(t)
	waitDone(t, s)

	s.Cancel()
	s.Cancel()
	if s.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled", s.State())
	}
}

func TestContextCancelStopsScheduler(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := newRecorder()
	s := New(clock, face.UpdateEverySecond, rec.repaint)
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	rec.next(t)
	blockUntilArmed(t, clock)
	cancel()
	waitDone(t, s)

	clock.Advance(5 * time.Second)
	rec.none(t)
	if s.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled", s.State())
	}
}

func TestCancelFromRepaint(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var s *Scheduler
	s = New(clock, face.UpdateEverySecond, func(time.Time) { s.Cancel() })
	s.Start(context.Background())
	waitDone(t, s)
	if s.Ticks() != 1 {
		t.Errorf("ticks = %d, want 1", s.Ticks())
	}
}

func TestStartTwice(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := newRecorder()
	s := New(clock, face.UpdateEverySecond, rec.repaint)
	s.Start(context.Background())
	s.Start(context.Background())
	defer s.Cancel()

	rec.next(t)
	blockUntilArmed(t, clock)
	rec.none(t)
}

// gate blocks the first repaint until released.
type gate struct {
	entered chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{entered: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gate) repaint(time.Time) {
	select {
	case g.entered <- struct{}{}:
		<-g.release
	default:
	}
}

func TestStopWaitsForRunningRepaint(t *testing.T) {
	g := newGate()
	s := New(clockwork.NewFakeClock(), face.UpdateEverySecond, g.repaint)
	s.Start(context.Background())
	<-g.entered

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		t.Fatal("Stop returned while a repaint was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(g.release)
	select {
	case <-stopped:
	case <-time.After(waitTimeout):
		t.Fatal("Stop did not return after the repaint finished")
	}
	if s.State() != StateCancelled || s.Ticks() != 1 {
		t.Errorf("state = %v, ticks = %d; want cancelled, 1", s.State(), s.Ticks())
	}
}

func TestCancelDoesNotWaitForRepaint(t *testing.T) {
	g := newGate()
	s := New(clockwork.NewFakeClock(), face.UpdateEverySecond, g.repaint)
	s.Start(context.Background())
	<-g.entered

	s.Cancel()
	select {
	case <-s.Done():
		t.Fatal("Done closed while a repaint was running")
	default:
	}
	close(g.release)
	waitDone(t, s)
}

func TestStopBeforeStartAndAfterFinish(t *testing.T) {
	s := New(clockwork.NewFakeClock(), face.UpdateEverySecond, nil)
	s.Stop()
	if s.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled", s.State())
	}

	rec := newRecorder()
	static := New(clockwork.NewFakeClock(), face.UpdateStatic, rec.repaint)
	static.Start(context.Background())
	rec.next(t)
	waitDone(t, static)
	static.Stop()
	if static.Ticks() != 1 {
		t.Errorf("ticks = %d, want 1", static.Ticks())
	}
}

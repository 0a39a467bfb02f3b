// Package refresh decides when a clock face must repaint.
//
// A Scheduler samples the injected clock, asks for a repaint, and re-arms
// itself at the cadence of its update type until it is cancelled. Static
// faces are painted exactly once.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rook-computer/clockface/internal/face"
)

const (
	SecondInterval = 1000 * time.Millisecond
	MinuteInterval = 60000 * time.Millisecond
)

type State int

const (
	StateIdle State = iota
	StateScheduled
	// StateFinished is reached by a static face after its single repaint.
	StateFinished
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScheduled:
		return "scheduled"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// RepaintFunc receives the sampled time. It runs on the scheduler goroutine,
// one call at a time.
type RepaintFunc func(now time.Time)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Interval returns the delay before the next tick. The second result is
// false for static faces. Unknown update types tick every second.
func Interval(update face.UpdateType) (time.Duration, bool) {
	switch update {
	case face.UpdateStatic:
		return 0, false
	case face.UpdateEveryMinute:
		return MinuteInterval, true
	default:
		return SecondInterval, true
	}
}

type Scheduler struct {
	Logger Logger

	clock   clockwork.Clock
	update  face.UpdateType
	repaint RepaintFunc

	mu    sync.Mutex
	state State
	ticks int64
	stop  chan struct{}
	done  chan struct{}
}

// New returns an idle scheduler. A nil clock means the real clock.
func New(clock clockwork.Clock, update face.UpdateType, repaint RepaintFunc) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		clock:   clock,
		update:  update,
		repaint: repaint,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start activates the scheduler: the first repaint happens right away on the
// tick goroutine. Cancelling ctx cancels the scheduler. Start is a no-op
// unless the scheduler is idle.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return
	}
	s.state = StateScheduled
	s.mu.Unlock()

	go s.run(ctx)
}

// Cancel revokes any pending tick. It does not wait for a repaint that is
// already running, so it may be called from the RepaintFunc. Cancelling more
// than once, or before Start, does nothing more.
func (s *Scheduler) Cancel() {
	s.cancel()
}

// Stop cancels the scheduler and waits until the tick loop has exited. Once
// Stop returns no repaint is running and none will start. Stop must not be
// called from the RepaintFunc.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.done
}

func (s *Scheduler) cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateCancelled:
		return false
	case StateIdle:
		// the loop never ran
		close(s.done)
	}
	s.state = StateCancelled
	close(s.stop)
	s.logf("cancelled after %d ticks", s.ticks)
	return true
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ticks reports how many repaints have been requested.
func (s *Scheduler) Ticks() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Done is closed once no further repaint can happen.
func (s *Scheduler) Done() <-chan struct{} { return s.done }

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	interval, repeat := Interval(s.update)
	for {
		if !s.tick() {
			return
		}
		if !repeat {
			s.finish()
			return
		}

		timer := s.clock.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.cancel()
			return
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.Chan():
		}
	}
}

// tick samples the clock and requests a repaint unless cancelled.
func (s *Scheduler) tick() bool {
	s.mu.Lock()
	if s.state != StateScheduled {
		s.mu.Unlock()
		return false
	}
	s.ticks++
	s.mu.Unlock()

	if s.repaint != nil {
		s.repaint(s.clock.Now())
	}
	return true
}

func (s *Scheduler) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateScheduled {
		s.state = StateFinished
		s.logf("static face painted, no further ticks")
	}
}

func (s *Scheduler) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Infof("refresh", format, args...)
	}
}

package state

import (
	"sync"
	"time"

	"github.com/rook-computer/clockface/internal/face"
)

type Phase int

const (
	BOOTING Phase = iota
	ATTACHED
	DETACHED
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case ATTACHED:
		return "attached"
	case DETACHED:
		return "detached"
	case ERROR:
		return "error"
	default:
		return "unknown"
	}
}

// FrameInfo describes the most recently presented frame.
type FrameInfo struct {
	Count      int64
	Time       face.TimeOfDay
	Sampled    time.Time
	RenderedAt time.Time
	Viewport   face.Viewport
	Update     face.UpdateType
	Commands   int
}

type NetworkInfo struct {
	URL string
}

type State struct {
	Phase   Phase
	Style   face.StyleConfig
	Frame   FrameInfo
	Network NetworkInfo
	Err     string
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING, Style: face.DefaultStyle()}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

// Fail moves the store to ERROR and keeps the message for status reporting.
func (store *Store) Fail(err error) {
	store.mu.Lock()
	store.state.Phase = ERROR
	if err != nil {
		store.state.Err = err.Error()
	}
	store.mu.Unlock()
}

func (store *Store) SetStyle(style face.StyleConfig) {
	store.mu.Lock()
	store.state.Style = style
	store.mu.Unlock()
}

// RecordFrame stores info about a presented frame and bumps the frame count.
func (store *Store) RecordFrame(frame FrameInfo) {
	store.mu.Lock()
	frame.Count = store.state.Frame.Count + 1
	store.state.Frame = frame
	store.mu.Unlock()
}

func (store *Store) UpdateNetwork(network NetworkInfo) {
	store.mu.Lock()
	store.state.Network = network
	store.mu.Unlock()
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rook-computer/clockface/internal/app"
	"github.com/rook-computer/clockface/internal/face"
	"github.com/rook-computer/clockface/internal/render"
	"github.com/rook-computer/clockface/internal/style"
)

var errSimulatedPresent = errors.New("simulated present failure")

type SimFaults struct {
	PresentFail bool `json:"presentFail"`
}

// SimControl drives a simulated device: it can move a frozen clock, swap
// styles, inject presentation failures and restart the face after one.
type SimControl struct {
	app        *app.App
	clock      clockwork.Clock
	startStyle face.StyleConfig
	logger     app.Logger
	image      *render.ImageRenderer

	faults struct {
		mu sync.RWMutex
		v  SimFaults
	}

	mu      sync.Mutex
	down    bool
	restart chan struct{}
}

func NewSimControl(a *app.App, clock clockwork.Clock, img *render.ImageRenderer) *SimControl {
	logger := a.Logger
	if logger == nil {
		logger = app.NoopLogger{}
	}
	return &SimControl{
		app:        a,
		clock:      clock,
		startStyle: a.Style,
		logger:     logger,
		image:      img,
		restart:    make(chan struct{}, 1),
	}
}

// Renderer wraps r so that Present honors the injected faults.
func (c *SimControl) Renderer(r render.Renderer) render.Renderer {
	return &faultyRenderer{Renderer: r, control: c}
}

type faultyRenderer struct {
	render.Renderer
	control *SimControl
}

func (r *faultyRenderer) Present(frame face.DisplayList) error {
	if r.control.Faults().PresentFail {
		return errSimulatedPresent
	}
	return r.Renderer.Present(frame)
}

// Run keeps the face running until ctx ends. When the face stops on an
// error it stays down until Reset.
func (c *SimControl) Run(ctx context.Context) {
	for {
		err := c.app.Start(ctx)
		if ctx.Err() != nil {
			return
		}
		c.mu.Lock()
		c.down = true
		c.mu.Unlock()
		c.logger.Errorf("sim", "clock face stopped: %v; POST /sim/reset to restart", err)
		select {
		case <-ctx.Done():
			return
		case <-c.restart:
			c.logger.Infof("sim", "restarting clock face")
		}
	}
}

func (c *SimControl) Faults() SimFaults {
	c.faults.mu.RLock()
	defer c.faults.mu.RUnlock()
	return c.faults.v
}

func (c *SimControl) SetFaults(v SimFaults) {
	c.faults.mu.Lock()
	c.faults.v = v
	c.faults.mu.Unlock()
}

// Reset clears faults, restores the startup style and restarts a stopped face.
func (c *SimControl) Reset() error {
	c.SetFaults(SimFaults{})
	if err := c.app.Restyle(c.startStyle); err != nil {
		return err
	}
	c.mu.Lock()
	if c.down {
		c.down = false
		c.restart <- struct{}{}
	}
	c.mu.Unlock()
	return nil
}

// Down reports whether the face stopped and waits for Reset.
func (c *SimControl) Down() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.down
}

// Advance moves a frozen clock forward.
func (c *SimControl) Advance(d time.Duration) (time.Time, error) {
	fake, ok := c.clock.(*clockwork.FakeClock)
	if !ok {
		return time.Time{}, errors.New("clock is not frozen; start the simulator with --at")
	}
	if d < 0 {
		return time.Time{}, errors.New("cannot move the clock backwards")
	}
	fake.Advance(d)
	return fake.Now(), nil
}

func (c *SimControl) ApplyPreset(name string) error {
	st, issues, err := style.LoadPreset(name)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		c.logger.Infof("sim", "preset %s: %s", name, issue)
	}
	return c.app.Restyle(st)
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Reset(); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/sim/advance", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		by := r.URL.Query().Get("by")
		if by == "" {
			by = "1s"
		}
		d, err := time.ParseDuration(by)
		if err != nil {
			writeSimError(w, http.StatusBadRequest, "invalid duration")
			return
		}
		now, err := control.Advance(d)
		if err != nil {
			writeSimError(w, http.StatusConflict, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "now": face.TimeOfDayFrom(now).String()})
	})

	mux.HandleFunc("/sim/preset/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sim/preset/"), "/")
		if err := control.ApplyPreset(name); err != nil {
			writeSimError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "preset": name})
	})

	mux.HandleFunc("/sim/faults", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, control.Faults())
		case http.MethodPost:
			var patch struct {
				PresentFail *bool `json:"presentFail"`
			}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			current := control.Faults()
			if patch.PresentFail != nil {
				current.PresentFail = *patch.PresentFail
			}
			control.SetFaults(current)
			writeSimJSON(w, http.StatusOK, current)
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	// The canvas as the image renderer holds it, without re-encoding the
	// display list.
	mux.HandleFunc("/sim/canvas.png", func(w http.ResponseWriter, r *http.Request) {
		if control.image == nil || control.image.LastFrame() == nil {
			writeSimError(w, http.StatusNotFound, "no frame presented yet")
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		if _, err := control.image.WritePNG(w); err != nil {
			control.logger.Errorf("sim", "canvas encode failed: %v", err)
		}
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}

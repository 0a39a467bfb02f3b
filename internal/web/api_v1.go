package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rook-computer/clockface/internal/assets"
	"github.com/rook-computer/clockface/internal/face"
	"github.com/rook-computer/clockface/internal/render"
	"github.com/rook-computer/clockface/internal/style"
)

const (
	defaultRenderSize = 512
	maxRenderSize     = 4096

	// headerStyleIssues counts the attributes a render request ignored or
	// adjusted.
	headerStyleIssues = "X-Style-Issues"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type viewportResponse struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type frameResponse struct {
	Count      int64            `json:"count"`
	Time       string           `json:"time"`
	Sampled    time.Time        `json:"sampled"`
	RenderedAt time.Time        `json:"renderedAt"`
	Viewport   viewportResponse `json:"viewport"`
	Update     string           `json:"update"`
	Commands   int              `json:"commands"`
}

type statusResponse struct {
	Phase string         `json:"phase"`
	Frame *frameResponse `json:"frame,omitempty"`
	URL   string         `json:"url,omitempty"`
	Error string         `json:"error,omitempty"`
}

type styleResponse struct {
	Attributes style.Attributes `json:"attributes"`
	Presets    []string         `json:"presets"`
}

type apiV1 struct {
	deps APIV1Deps

	// faces are not safe for concurrent drawing
	fontsMu sync.Mutex
	fonts   *render.Fonts
}

func apiV1RouterWithDeps(deps APIV1Deps) http.Handler {
	api := &apiV1{deps: deps.withDefaults()}
	mux := http.NewServeMux()
	mux.HandleFunc("/status", api.handleStatus)
	mux.HandleFunc("/style", api.handleStyle)
	mux.HandleFunc("/frame.png", api.handleFramePNG)
	mux.HandleFunc("/frame.svg", api.handleFrameSVG)
	mux.HandleFunc("/render.png", api.handleRender)
	mux.HandleFunc("/render.svg", api.handleRender)
	mux.HandleFunc("/qrcode.png", api.handleQRCode)
	return mux
}

func (api *apiV1) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	snap := api.deps.Status.Snapshot()
	resp := statusResponse{Phase: snap.Phase.String(), URL: snap.Network.URL, Error: snap.Err}
	if f := snap.Frame; f.Count > 0 {
		resp.Frame = &frameResponse{
			Count:      f.Count,
			Time:       f.Time.String(),
			Sampled:    f.Sampled,
			RenderedAt: f.RenderedAt,
			Viewport:   viewportResponse{Width: f.Viewport.Width, Height: f.Viewport.Height},
			Update:     f.Update.String(),
			Commands:   f.Commands,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (api *apiV1) handleStyle(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, styleResponse{
		Attributes: style.Encode(api.deps.Status.Snapshot().Style),
		Presets:    assets.PresetNames(),
	})
}

func (api *apiV1) handleFramePNG(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	frame, width, height, ok := api.deps.Frames.LastFrame()
	if !ok || width <= 0 || height <= 0 {
		writeAPIError(w, http.StatusNotFound, "no_frame", "no frame presented yet")
		return
	}
	api.writePNG(w, frame, width, height)
}

func (api *apiV1) handleFrameSVG(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	frame, width, height, ok := api.deps.Frames.LastFrame()
	if !ok || width <= 0 || height <= 0 {
		writeAPIError(w, http.StatusNotFound, "no_frame", "no frame presented yet")
		return
	}
	writeSVG(w, render.RenderSVG(frame, float64(width), float64(height), render.WithBackdrop(render.Backdrop), render.WithLayerGroups()))
}

// handleRender draws a face on demand:
//
//	/render.png?time=15:04:05&size=512&preset=minimal&shape=square
//
// Any other query parameter is applied as a style attribute on top of the
// current style (or the named preset).
func (api *apiV1) handleRender(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	q := r.URL.Query()

	tod := face.TimeOfDayFrom(api.deps.now())
	if raw := q.Get("time"); raw != "" {
		parsed, err := face.ParseTimeOfDay(raw)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_time", err.Error())
			return
		}
		tod = parsed
	}

	size := defaultRenderSize
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRenderSize {
			writeAPIError(w, http.StatusBadRequest, "invalid_size", "size must be between 1 and "+strconv.Itoa(maxRenderSize))
			return
		}
		size = n
	}

	base := api.deps.Status.Snapshot().Style
	if name := q.Get("preset"); name != "" {
		preset, _, err := style.LoadPreset(name)
		if err != nil {
			writeAPIError(w, http.StatusNotFound, "unknown_preset", err.Error())
			return
		}
		base = preset
	}
	attrs := style.Encode(base)
	for key, values := range q {
		switch key {
		case "time", "size", "preset":
			continue
		}
		if len(values) > 0 {
			attrs[key] = values[len(values)-1]
		}
	}
	st, issues := style.Decode(attrs)
	if len(issues) > 0 {
		w.Header().Set(headerStyleIssues, strconv.Itoa(len(issues)))
		api.deps.Logger.Infof("web", "render request style issues: %v", issues)
	}

	frame := face.Render(tod, st, face.Viewport{Width: float64(size), Height: float64(size)})
	if strings.HasSuffix(r.URL.Path, ".svg") {
		writeSVG(w, render.RenderSVG(frame, float64(size), float64(size)))
		return
	}
	api.writePNG(w, frame, size, size)
}

func (api *apiV1) handleQRCode(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	url := api.deps.Status.Snapshot().Network.URL
	if url == "" {
		writeAPIError(w, http.StatusNotFound, "no_url", "preview url unknown")
		return
	}
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, _ = strconv.Atoi(raw)
		if size > maxRenderSize {
			size = maxRenderSize
		}
	}
	data, err := render.QRCodePNG(url, size)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "qrcode_failed", err.Error())
		return
	}
	writeImage(w, "image/png", data)
}

func (api *apiV1) writePNG(w http.ResponseWriter, frame face.DisplayList, width, height int) {
	api.fontsMu.Lock()
	if api.fonts == nil {
		api.fonts = render.LoadFonts(assets.FontTTF, api.deps.Logger)
	}
	data, err := render.EncodePNG(frame, width, height, api.fonts)
	api.fontsMu.Unlock()
	if err != nil {
		api.deps.Logger.Errorf("web", "png encode failed: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	writeImage(w, "image/png", data)
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return false
	}
	return true
}

func writeSVG(w http.ResponseWriter, data []byte) {
	writeImage(w, "image/svg+xml", data)
}

func writeImage(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}

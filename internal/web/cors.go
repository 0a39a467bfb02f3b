package web

import (
	"net/http"
	"strings"
)

var (
	devCORSMethods = strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions}, ",")

	// Frame responses carry the style issue count; a page on another
	// origin can only read it when exposed.
	devCORSExposed = strings.Join([]string{"Content-Length", "Last-Modified", headerStyleIssues}, ",")
)

// WithDevCORS lets a preview page served from another origin (a dev server
// for the web UI, say) call the API and the simulator controls. Only for
// ServerConfig.DevMode.
func WithDevCORS(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", devCORSMethods)
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Set("Access-Control-Expose-Headers", devCORSExposed)
		}

		// preflight never reaches the API
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Package healthcheck exposes the engine's dispatcher state over HTTP.
package healthcheck

import (
	"fmt"
	"net/http"

	"github.com/muhammadchandra19/matchcore/internal/dispatcher"
)

// Handler reports the dispatcher's lifecycle state on GET /health: 503
// until it reaches Running, 200 while Running, 503 again once Stopped.
type Handler struct {
	dispatcher *dispatcher.Dispatcher
}

// New wraps d's State for health reporting.
func New(d *dispatcher.Dispatcher) *Handler {
	return &Handler{dispatcher: d}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !IsHealthCheckRequest(r) {
		http.NotFound(w, r)
		return
	}

	if h.dispatcher.State() != dispatcher.Running {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintln(w, "not ready")
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// IsHealthCheckRequest reports whether r is a GET /health request.
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == "/health"
}

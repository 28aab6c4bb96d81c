package kit

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse is the body of every non-2xx JSON answer.
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func jsonHeaders(h http.Header, cacheable bool) {
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	if !cacheable {
		h.Set("Cache-Control", "no-store")
	}
}

func encode(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	jsonHeaders(w.Header(), true)
	encode(w, status, v)
}

// WriteError answers with an ErrorResponse carrying the chi request id.
// Errors are never cached.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string, details any) {
	jsonHeaders(w.Header(), false)
	encode(w, status, ErrorResponse{
		Error:     msg,
		Details:   details,
		RequestID: chimw.GetReqID(r.Context()),
	})
}

// NotFound and MethodNotAllowed replace chi's plain-text defaults so every
// answer on the router is JSON.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusNotFound, "not found", map[string]string{"path": r.URL.Path})
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusMethodNotAllowed, "method not allowed", map[string]string{"method": r.Method})
}

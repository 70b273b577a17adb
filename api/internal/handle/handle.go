package handle

import (
	"encoding/json"
	"net/http"
	"strings"

	"tuneguess/api/internal/game"
	"tuneguess/api/internal/middleware"
)

type Handle struct {
	Game *game.Service

	// GuessLimits throttles scoring per resolved user, optional.
	GuessLimits *middleware.RateLimiter
}

func New(g *game.Service) *Handle {
	return &Handle{Game: g}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// userID resolves the caller's identity from the X-User-ID header or the
// user_id query param. Authentication proper lives in front of this service.
func userID(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get("X-User-ID")); v != "" {
		return v
	}
	return strings.TrimSpace(r.URL.Query().Get("user_id"))
}

package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"tuneguess/api/internal/game"
)

type guessReq struct {
	UserID string `json:"user_id"`
	Guess  string `json:"guess"`
}

// Guess scores one guess for the caller against today's song.
func (h *Handle) Guess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	uid := req.UserID
	if uid == "" {
		uid = userID(r)
	}
	if uid == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Guess) == "" {
		http.Error(w, "guess is required", http.StatusBadRequest)
		return
	}
	// Throttle on the resolved identity so the rate key is the same no
	// matter whether the caller identified via header, query or body.
	if h.GuessLimits != nil && !h.GuessLimits.Allow(uid) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 180*time.Second)
	defer cancel()

	res, err := h.Game.MakeGuess(ctx, uid, req.Guess)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrNoGuessesLeft):
			http.Error(w, err.Error(), http.StatusTooManyRequests)
		case errors.Is(err, game.ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, "guess error: "+err.Error(), http.StatusBadGateway)
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// History lists the caller's guesses, oldest first.
func (h *Handle) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	uid := userID(r)
	if uid == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	guesses, err := h.Game.History(r.Context(), uid)
	if err != nil {
		http.Error(w, "history error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, guesses)
}

package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tuneguess/api/internal/score"
)

// Score exposes the engine directly for internal callers: a guess plus a
// correct (title, artist) record in, an integer in [0,1000] out.
func (h *Handle) Score(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req score.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.CorrectTitle == "" || req.CorrectArtist == "" {
		http.Error(w, "correct_title and correct_artist are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 180*time.Second)
	defer cancel()

	val, err := h.Game.Engine.Score(ctx, req.Guess, req.CorrectTitle, req.CorrectArtist)
	if err != nil {
		// Only a similarity-service outage lands here; it is retryable.
		http.Error(w, "score error: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"score": val})
}

package handle

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"tuneguess/api/internal/store"
)

// Daily serves today's clip (answer withheld) and yesterday's reveal.
func (h *Handle) Daily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	out, err := h.Game.Daily(r.Context())
	if err != nil {
		http.Error(w, "daily error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Winner serves today's full song, but only to a caller who already won.
func (h *Handle) Winner(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	uid := userID(r)
	if uid == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	won, err := h.Game.HasWonToday(r.Context(), uid)
	if err != nil {
		http.Error(w, "winner error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if !won {
		http.Error(w, "today's song is revealed after a correct guess", http.StatusForbidden)
		return
	}
	song, err := h.Game.Winner(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNoSongsLeft) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "winner error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, store.Song{
		ID:         song.ID,
		Title:      song.Title,
		Artist:     song.Artist,
		ClipURL:    song.ClipURL,
		CreditClip: song.CreditClip,
	})
}

// RandomSong serves any catalog song, answer included. Internal use: the
// public game flow never links it.
func (h *Handle) RandomSong(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	song, err := h.Game.RandomSong(r.Context())
	if err != nil {
		http.Error(w, "random song error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

// SongByID serves one catalog song by its id path segment.
func (h *Handle) SongByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		http.Error(w, "song id is required", http.StatusBadRequest)
		return
	}
	song, err := h.Game.SongByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "song not found", http.StatusNotFound)
			return
		}
		http.Error(w, "song error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

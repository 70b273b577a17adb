package handle

import (
	"encoding/json"
	"net/http"
)

type subscribeReq struct {
	UserID       string `json:"user_id"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// Subscribe toggles a user's premium flag, which controls the daily guess
// limit. Meant for the billing webhook, not for players.
func (h *Handle) Subscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req subscribeReq
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
	if err := h.Game.Subscribe(r.Context(), uid, req.IsSubscribed); err != nil {
		http.Error(w, "subscribe error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user_id": uid, "is_subscribed": req.IsSubscribed})
}

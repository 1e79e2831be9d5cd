package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/courtsidehq/courtside/internal/auth"
	"github.com/courtsidehq/courtside/internal/chats"
	"github.com/courtsidehq/courtside/internal/players"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorResponse{Detail: detail})
}

// respondError maps the error taxonomy to HTTP status codes:
// unauthenticated 401, not found 404, forbidden 403, bad request 400,
// storage failure 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		respondDetail(w, http.StatusUnauthorized, "Authentication required. Set the X-User-Tg-Id header.")
	case errors.Is(err, auth.ErrForbidden):
		respondDetail(w, http.StatusForbidden, "Chat admin access required.")
	case errors.Is(err, auth.ErrChatIDMissing):
		respondDetail(w, http.StatusBadRequest, "chat_id query parameter or X-Chat-Id header required.")
	case errors.Is(err, players.ErrNotFound):
		respondDetail(w, http.StatusNotFound, "Player not found")
	case errors.Is(err, chats.ErrChatNotFound):
		respondDetail(w, http.StatusNotFound, "Chat not found. Register the chat first.")
	default:
		log.Error("Request failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, err.Error())
	}
}

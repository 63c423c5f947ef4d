package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bloglist/app/auth"
	"bloglist/app/logging"
	"bloglist/app/models"
	"bloglist/app/repositories"
	"bloglist/app/services"
)

// Helpers for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}

// sendServiceError maps a service or repository error to a status code.
// Forbidden and not-found are kept apart so clients can tell them apart.
func sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		sendError(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrValidation):
		sendError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repositories.ErrDuplicateUsername):
		sendError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrForbidden):
		sendError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrInvalidCredentials):
		sendError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, auth.ErrInvalidToken):
		sendError(w, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, "not found", http.StatusNotFound)
	default:
		logging.FromContext(r.Context()).Error("request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		sendError(w, "internal server error", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

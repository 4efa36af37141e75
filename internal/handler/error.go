package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vasapolrittideah/auth-api/internal/payload"
	"github.com/vasapolrittideah/auth-api/internal/security"
	"github.com/vasapolrittideah/auth-api/internal/usecase"
)

// respondError maps component-level failures to status codes and the error
// envelope. Only unclassified faults are logged with full detail; the caller
// gets a generic message for those.
func (h *UserHandler) respondError(w http.ResponseWriter, err error) {
	var tokenExpired *usecase.TokenExpiredError
	if errors.As(err, &tokenExpired) {
		respondJSON(w, http.StatusUnauthorized, payload.ErrorResponse{
			Message:   "Token expired!",
			ExpiredAt: tokenExpired.ExpiredAt.String(),
		})
		return
	}

	switch {
	case errors.Is(err, usecase.ErrTokenMissing):
		respondJSON(w, http.StatusUnauthorized, payload.ErrorResponse{
			Message: "Token not found!",
		})
	case errors.Is(err, usecase.ErrInvalidToken):
		respondJSON(w, http.StatusUnauthorized, payload.ErrorResponse{
			Message: "Invalid token!",
		})
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		respondJSON(w, http.StatusBadRequest, payload.ErrorResponse{
			Message:          "Duplicate key!",
			ValidationErrors: []string{"email must be unique!"},
		})
	case errors.Is(err, usecase.ErrUserNotFound):
		respondJSON(w, http.StatusBadRequest, payload.ErrorResponse{
			Message: "User not found with the provided email address!",
		})
	case errors.Is(err, usecase.ErrInvalidPassword):
		respondJSON(w, http.StatusBadRequest, payload.ErrorResponse{
			Message: "Invalid password!",
		})
	case errors.Is(err, usecase.ErrInvalidOldPassword):
		respondJSON(w, http.StatusBadRequest, payload.ErrorResponse{
			Message: "Invalid old password!",
		})
	case errors.Is(err, usecase.ErrSessionNotFound):
		respondJSON(w, http.StatusNotFound, payload.ErrorResponse{
			Message: "Session not found!",
		})
	case errors.Is(err, usecase.ErrInvalidOrExpiredResetToken):
		respondJSON(w, http.StatusBadRequest, payload.ErrorResponse{
			Message: "Invalid or expired reset password link. Please request again to send a reset link!",
		})
	case errors.Is(err, security.ErrWeakPassword):
		respondJSON(w, http.StatusBadRequest, payload.ErrorResponse{
			Message: "Password must be at least 8 characters long and include an uppercase letter, " +
				"a lowercase letter, a number, and a special character!",
		})
	default:
		h.logger.Error().Err(err).Msg("unclassified error")
		respondJSON(w, http.StatusInternalServerError, payload.ErrorResponse{
			Message: "Oops! Something went wrong, please try again later!",
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/auth-api/internal/payload"
	"github.com/vasapolrittideah/auth-api/internal/usecase"
	"github.com/vasapolrittideah/auth-api/internal/validation"
)

// UserHandler exposes the user authentication HTTP surface.
type UserHandler struct {
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *validation.Validator
	logger               *zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	authUsecase usecase.AuthUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		authUsecase:          authUsecase,
		passwordResetUsecase: passwordResetUsecase,
		validator:            validator,
		logger:               logger,
	}
}

// RegisterRoutes mounts the user routes on the given router.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/signin", h.Signin)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/reset-password/{token}", h.ResetPasswordWithToken)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)
			r.Post("/signout", h.Signout)
			r.Post("/signout-all-devices", h.SignoutAllDevices)
			r.Get("/active-sessions", h.ActiveSessions)
			r.Post("/reset-password", h.ResetPassword)
		})
	})
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req payload.SignupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	_, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.Response{
		Success: true,
		Message: "User has been successfully signed up!",
	})
}

func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req payload.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondInvalidBody(w)
		return
	}

	// Blank credentials are rejected before any lookup happens.
	if messages := h.validator.ValidateStruct(req); messages != nil {
		respondJSON(w, http.StatusBadRequest, payload.ErrorResponse{
			Message:          "Email address and password must be provided!",
			ValidationErrors: messages,
		})
		return
	}

	token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
		Device:   deviceFromRequest(r),
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.SigninResponse{
		Success: true,
		Message: "User logged in successfully!",
		Token:   token,
	})
}

func (h *UserHandler) Signout(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	token := bearerToken(r)

	expiredToken, err := h.authUsecase.Logout(r.Context(), userID, token)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.SignoutResponse{
		Success:      true,
		Message:      "User has been successfully logged out!",
		ExpiredToken: expiredToken,
	})
}

func (h *UserHandler) SignoutAllDevices(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	expiredTokens, err := h.authUsecase.LogoutAll(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.SignoutAllResponse{
		Success:       true,
		Message:       "User has been successfully logged out from all devices!",
		ExpiredTokens: expiredTokens,
	})
}

func (h *UserHandler) ActiveSessions(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	activeSessions, err := h.authUsecase.ActiveSessions(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.ActiveSessionsResponse{
		Success:        true,
		Message:        "All user active sessions found!",
		ActiveSessions: activeSessions,
	})
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req payload.ChangePasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.Response{
		Success: true,
		Message: "Password reset has been successfully completed!",
	})
}

func (h *UserHandler) ResetPasswordWithToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req payload.ResetPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.passwordResetUsecase.ResetPasswordWithToken(r.Context(), token, req.Password); err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.Response{
		Success: true,
		Message: "Password reset successful!",
	})
}

func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.Response{
		Success: true,
		Message: "Password reset link has been successfully sent to email!",
	})
}

// decodeAndValidate decodes the JSON body into req and runs payload
// validation, writing the failure response itself. Returns false when the
// request was rejected.
func (h *UserHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.respondInvalidBody(w)
		return false
	}

	if messages := h.validator.ValidateStruct(req); messages != nil {
		respondJSON(w, http.StatusBadRequest, payload.ErrorResponse{
			Message:          "Invalid request data!",
			ValidationErrors: messages,
		})
		return false
	}

	return true
}

func (h *UserHandler) respondInvalidBody(w http.ResponseWriter) {
	respondJSON(w, http.StatusBadRequest, payload.ErrorResponse{
		Message: "Invalid request body!",
	})
}

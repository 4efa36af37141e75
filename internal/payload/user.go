package payload

import "github.com/vasapolrittideah/auth-api/internal/model"

type SignupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SigninRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// Response is the common success envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SigninResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

type SignoutResponse struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message"`
	ExpiredToken *model.SessionToken `json:"expiredToken"`
}

type SignoutAllResponse struct {
	Success       bool                 `json:"success"`
	Message       string               `json:"message"`
	ExpiredTokens []model.SessionToken `json:"expiredTokens"`
}

type ActiveSessionsResponse struct {
	Success        bool                 `json:"success"`
	Message        string               `json:"message"`
	ActiveSessions []model.SessionToken `json:"activeSessions"`
}

// ErrorResponse is the failure envelope. Secrets are never echoed back.
type ErrorResponse struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message"`
	ValidationErrors []string `json:"validationErrors,omitempty"`
	ExpiredAt        string   `json:"expiredAt,omitempty"`
}

package dto

import (
	"time"

	"github.com/epiwatch/backend/internal/application/usecase/auth"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Name          string `json:"name" binding:"required,max=100"`
	Password      string `json:"password" binding:"required"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the body of POST /auth/refresh and /auth/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SessionResponse is returned by register, login and refresh.
type SessionResponse struct {
	AccessToken  string      `json:"access_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
	RefreshToken string      `json:"refresh_token"`
	User         AccountView `json:"user"`
}

// AccountView is the public part of a user account.
type AccountView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToSessionResponse converts a signed-in session.
func ToSessionResponse(out *auth.SessionOutput) SessionResponse {
	return SessionResponse{
		AccessToken:  out.Session.AccessToken,
		ExpiresAt:    out.Session.AccessExpiresAt,
		RefreshToken: out.Session.RefreshToken,
		User: AccountView{
			ID:        out.User.ID.String(),
			Email:     out.User.Email,
			Name:      out.User.Name,
			Role:      string(out.User.Role),
			CreatedAt: out.User.CreatedAt,
		},
	}
}

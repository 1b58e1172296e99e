package auth

import (
	"context"
	"log/slog"

	"github.com/epiwatch/backend/internal/application/adapter"
)

// LogoutUseCase revokes a refresh token.
type LogoutUseCase struct {
	tokens adapter.TokenIssuer
}

// NewLogoutUseCase creates a new LogoutUseCase instance.
func NewLogoutUseCase(tokens adapter.TokenIssuer) *LogoutUseCase {
	return &LogoutUseCase{tokens: tokens}
}

// Execute never fails from the caller's point of view; a store error is only
// logged since the client discards its tokens either way.
func (uc *LogoutUseCase) Execute(ctx context.Context, refreshToken string) {
	if err := uc.tokens.Revoke(ctx, refreshToken); err != nil {
		slog.WarnContext(ctx, "Failed to revoke refresh token on logout", "error", err)
	}
}

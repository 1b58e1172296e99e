package auth

import (
	"context"

	"github.com/epiwatch/backend/internal/application/adapter"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

// RefreshUseCase trades a refresh token for a new session.
type RefreshUseCase struct {
	users  adapter.UserRepository
	tokens adapter.TokenIssuer
}

// NewRefreshUseCase creates a new RefreshUseCase instance.
func NewRefreshUseCase(users adapter.UserRepository, tokens adapter.TokenIssuer) *RefreshUseCase {
	return &RefreshUseCase{users: users, tokens: tokens}
}

// Execute spends refreshToken and issues a new pair. The account is reloaded
// so a role change applies from the next refresh on.
func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (*SessionOutput, error) {
	userID, err := uc.tokens.Redeem(ctx, refreshToken)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid or expired refresh token", err)
	}

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "account no longer exists", err)
	}

	return startSession(ctx, uc.tokens, user)
}

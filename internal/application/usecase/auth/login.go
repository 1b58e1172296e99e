package auth

import (
	"context"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

// LoginInput carries the credentials of a login attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginUseCase exchanges credentials for a session.
type LoginUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordHasher
	tokens    adapter.TokenIssuer
}

// NewLoginUseCase creates a new LoginUseCase instance.
func NewLoginUseCase(users adapter.UserRepository, passwords adapter.PasswordHasher, tokens adapter.TokenIssuer) *LoginUseCase {
	return &LoginUseCase{users: users, passwords: passwords, tokens: tokens}
}

// Execute signs the user in. An unknown email and a wrong password are
// indistinguishable to the caller.
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*SessionOutput, error) {
	user, err := uc.users.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil || !uc.passwords.Matches(user.PasswordHash, input.Password) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid email or password",
			domainerror.ErrInvalidCredentials,
		)
	}
	return startSession(ctx, uc.tokens, user)
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

// RegisterInput is a self-service sign-up request.
type RegisterInput struct {
	Email         string
	Name          string
	Password      string
	TermsAccepted bool
}

// RegisterUseCase opens data entry accounts.
type RegisterUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordHasher
	tokens    adapter.TokenIssuer
	now       func() time.Time
}

// NewRegisterUseCase creates a new RegisterUseCase instance.
func NewRegisterUseCase(users adapter.UserRepository, passwords adapter.PasswordHasher, tokens adapter.TokenIssuer) *RegisterUseCase {
	return &RegisterUseCase{users: users, passwords: passwords, tokens: tokens, now: time.Now}
}

// Execute validates the request, stores the account and signs it in.
func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*SessionOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	switch {
	case email == "" || strings.TrimSpace(input.Name) == "" || input.Password == "":
		return nil, domainerror.NewAuthError(domainerror.ErrCodeMissingFields, "email, name and password are required", nil)
	case !input.TermsAccepted:
		return nil, domainerror.NewAuthError(domainerror.ErrCodeTermsNotAccepted, "terms of use must be accepted", nil)
	case !entity.ValidEmail(email):
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidEmail, "invalid email format", nil)
	}
	if err := uc.passwords.Acceptable(input.Password); err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, err.Error(), err)
	}

	_, err := uc.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "email already exists", domainerror.ErrEmailAlreadyExists)
	case !errors.Is(err, domainerror.ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := uc.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, input.Name, hash, uc.now())
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return startSession(ctx, uc.tokens, user)
}

package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// Identity is what an access token asserts about its bearer.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   entity.UserRole
}

// Session is a freshly issued token pair.
type Session struct {
	AccessToken     string
	AccessExpiresAt time.Time
	RefreshToken    string
}

// TokenIssuer signs access tokens and hands out single-use refresh tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, identity Identity) (*Session, error)

	// Authenticate verifies an access token.
	Authenticate(ctx context.Context, accessToken string) (*Identity, error)

	// Redeem spends a refresh token and returns the account it was issued to.
	Redeem(ctx context.Context, refreshToken string) (uuid.UUID, error)

	// Revoke spends a refresh token without issuing anything. Unknown and
	// already spent tokens are not an error.
	Revoke(ctx context.Context, refreshToken string) error
}

// RefreshTokenStore remembers issued refresh tokens by digest, never in clear.
type RefreshTokenStore interface {
	Remember(ctx context.Context, digest string, userID uuid.UUID, expiresAt time.Time) error

	// Consume marks a live token as revoked. It reports the owner and false
	// when the digest is unknown, expired or already revoked.
	Consume(ctx context.Context, digest string, now time.Time) (uuid.UUID, bool, error)
}

// PasswordHasher hashes account passwords and enforces the password policy.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) bool
	Acceptable(password string) error
}

// UserRepository stores health worker accounts. Lookups by email expect a
// normalized address.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

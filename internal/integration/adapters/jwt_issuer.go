// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour

	issuer = "epiwatch"
)

// TokenDurations configures token lifetimes. Zero values use the defaults.
type TokenDurations struct {
	Access  time.Duration
	Refresh time.Duration
}

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 access tokens. Refresh tokens are random strings
// whose SHA-256 digest is kept in a RefreshTokenStore.
type JWTIssuer struct {
	secret    []byte
	durations TokenDurations
	store     adapter.RefreshTokenStore
	now       func() time.Time
}

// NewJWTIssuer creates a token issuer signing with secret.
func NewJWTIssuer(secret string, durations TokenDurations, store adapter.RefreshTokenStore) *JWTIssuer {
	if durations.Access <= 0 {
		durations.Access = defaultAccessTTL
	}
	if durations.Refresh <= 0 {
		durations.Refresh = defaultRefreshTTL
	}
	return &JWTIssuer{secret: []byte(secret), durations: durations, store: store, now: time.Now}
}

// Issue signs an access token for identity and records a new refresh token.
func (j *JWTIssuer) Issue(ctx context.Context, identity adapter.Identity) (*adapter.Session, error) {
	now := j.now().UTC()
	expiresAt := now.Add(j.durations.Access)

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Email: identity.Email,
		Role:  string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.UserID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}).SignedString(j.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh := newRefreshToken()
	if err := j.store.Remember(ctx, digest(refresh), identity.UserID, now.Add(j.durations.Refresh)); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &adapter.Session{
		AccessToken:     access,
		AccessExpiresAt: expiresAt,
		RefreshToken:    refresh,
	}, nil
}

// Authenticate verifies signature, issuer and expiry of an access token.
func (j *JWTIssuer) Authenticate(_ context.Context, accessToken string) (*adapter.Identity, error) {
	var claims accessClaims
	_, err := jwt.ParseWithClaims(accessToken, &claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainerror.ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject: %w", domainerror.ErrInvalidToken, err)
	}

	return &adapter.Identity{
		UserID: userID,
		Email:  claims.Email,
		Role:   entity.UserRole(claims.Role),
	}, nil
}

// Redeem spends a live refresh token.
func (j *JWTIssuer) Redeem(ctx context.Context, refreshToken string) (uuid.UUID, error) {
	if refreshToken == "" {
		return uuid.Nil, domainerror.ErrInvalidToken
	}
	userID, ok, err := j.store.Consume(ctx, digest(refreshToken), j.now().UTC())
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, domainerror.ErrInvalidToken
	}
	return userID, nil
}

// Revoke spends a refresh token, ignoring whether it was live.
func (j *JWTIssuer) Revoke(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	_, err := j.Redeem(ctx, refreshToken)
	if errors.Is(err, domainerror.ErrInvalidToken) {
		return nil
	}
	return err
}

// newRefreshToken joins two random UUIDs into a 64-character hex string.
func newRefreshToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

var _ adapter.TokenIssuer = (*JWTIssuer)(nil)

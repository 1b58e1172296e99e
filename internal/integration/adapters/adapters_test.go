package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

type storedToken struct {
	userID    uuid.UUID
	expiresAt time.Time
	revoked   bool
}

type memoryTokenStore map[string]*storedToken

func (m memoryTokenStore) Remember(_ context.Context, digest string, userID uuid.UUID, expiresAt time.Time) error {
	m[digest] = &storedToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (m memoryTokenStore) Consume(_ context.Context, digest string, now time.Time) (uuid.UUID, bool, error) {
	tok, ok := m[digest]
	if !ok || tok.revoked || !tok.expiresAt.After(now) {
		return uuid.Nil, false, nil
	}
	tok.revoked = true
	return tok.userID, true, nil
}

func nurse() adapter.Identity {
	return adapter.Identity{UserID: uuid.New(), Email: "nurse@clinic.org", Role: entity.UserRoleSupervisor}
}

func TestJWTIssuer_AccessToken(t *testing.T) {
	ctx := context.Background()
	issuer := NewJWTIssuer("secret", TokenDurations{}, memoryTokenStore{})
	id := nurse()

	session, err := issuer.Issue(ctx, id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(defaultAccessTTL), session.AccessExpiresAt, 5*time.Second)

	got, err := issuer.Authenticate(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, *got)

	_, err = issuer.Authenticate(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)

	_, err = NewJWTIssuer("other", TokenDurations{}, memoryTokenStore{}).Authenticate(ctx, session.AccessToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
}

func TestJWTIssuer_ExpiredAccessToken(t *testing.T) {
	ctx := context.Background()
	issuer := NewJWTIssuer("secret", TokenDurations{Access: time.Minute}, memoryTokenStore{})
	issuedAt := time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issuedAt }

	session, err := issuer.Issue(ctx, nurse())
	require.NoError(t, err)

	issuer.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = issuer.Authenticate(ctx, session.AccessToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
}

func TestJWTIssuer_RefreshTokensAreSingleUse(t *testing.T) {
	ctx := context.Background()
	store := memoryTokenStore{}
	issuer := NewJWTIssuer("secret", TokenDurations{}, store)
	id := nurse()

	session, err := issuer.Issue(ctx, id)
	require.NoError(t, err)
	assert.Len(t, session.RefreshToken, 64)
	assert.NotContains(t, store, session.RefreshToken, "only the digest is stored")

	owner, err := issuer.Redeem(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, id.UserID, owner)

	_, err = issuer.Redeem(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)

	assert.NoError(t, issuer.Revoke(ctx, session.RefreshToken))
	assert.NoError(t, issuer.Revoke(ctx, "never-issued"))
}

func TestJWTIssuer_RevokeBlocksRedeem(t *testing.T) {
	ctx := context.Background()
	issuer := NewJWTIssuer("secret", TokenDurations{}, memoryTokenStore{})

	session, err := issuer.Issue(ctx, nurse())
	require.NoError(t, err)
	require.NoError(t, issuer.Revoke(ctx, session.RefreshToken))

	_, err = issuer.Redeem(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("clinic2024")
	require.NoError(t, err)
	assert.True(t, h.Matches(hash, "clinic2024"))
	assert.False(t, h.Matches(hash, "clinic2025"))

	assert.ErrorIs(t, h.Acceptable("a1"), errPasswordTooShort)
	assert.ErrorIs(t, h.Acceptable("onlyletters"), errPasswordTooSimple)
	assert.ErrorIs(t, h.Acceptable("12345678"), errPasswordTooSimple)
	assert.NoError(t, h.Acceptable("clinic2024"))

	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(99).cost)
}

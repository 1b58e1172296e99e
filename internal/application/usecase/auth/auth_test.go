package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

type memoryUsers map[string]*entity.User

func (m memoryUsers) Create(_ context.Context, user *entity.User) error {
	m[user.Email] = user
	return nil
}

func (m memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range m {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (m memoryUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := m[email]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

// plainHasher prefixes instead of hashing and accepts any password of eight
// or more bytes.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }
func (plainHasher) Matches(hash, password string) bool  { return hash == "plain:"+password }
func (plainHasher) Acceptable(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

// ledgerIssuer hands out random refresh tokens and tracks which are live.
type ledgerIssuer struct {
	live map[string]uuid.UUID
}

func newLedgerIssuer() *ledgerIssuer { return &ledgerIssuer{live: map[string]uuid.UUID{}} }

func (l *ledgerIssuer) Issue(_ context.Context, id adapter.Identity) (*adapter.Session, error) {
	refresh := uuid.NewString()
	l.live[refresh] = id.UserID
	return &adapter.Session{AccessToken: "access-" + string(id.Role), RefreshToken: refresh}, nil
}

func (l *ledgerIssuer) Authenticate(context.Context, string) (*adapter.Identity, error) {
	return nil, errors.New("not used")
}

func (l *ledgerIssuer) Redeem(_ context.Context, token string) (uuid.UUID, error) {
	userID, ok := l.live[token]
	if !ok {
		return uuid.Nil, domainerror.ErrInvalidToken
	}
	delete(l.live, token)
	return userID, nil
}

func (l *ledgerIssuer) Revoke(_ context.Context, token string) error {
	delete(l.live, token)
	return nil
}

func authCode(t *testing.T, err error) domainerror.AuthErrorCode {
	t.Helper()
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr), "expected AuthError, got %v", err)
	return authErr.Code
}

func TestRegister(t *testing.T) {
	users := memoryUsers{}
	uc := NewRegisterUseCase(users, plainHasher{}, newLedgerIssuer())

	out, err := uc.Execute(context.Background(), RegisterInput{
		Email:         "  Nurse@Clinic.org ",
		Name:          " Ana ",
		Password:      "correct-horse",
		TermsAccepted: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "nurse@clinic.org", out.User.Email)
	assert.Equal(t, "Ana", out.User.Name)
	assert.Equal(t, entity.UserRoleDataEntry, out.User.Role)
	assert.Equal(t, "plain:correct-horse", out.User.PasswordHash)
	assert.Equal(t, "access-data_entry", out.Session.AccessToken)
	assert.NotEmpty(t, out.Session.RefreshToken)

	_, err = uc.Execute(context.Background(), RegisterInput{
		Email: "nurse@clinic.org", Name: "Ana", Password: "correct-horse", TermsAccepted: true,
	})
	assert.Equal(t, domainerror.ErrCodeEmailExists, authCode(t, err))
}

func TestRegister_Rejections(t *testing.T) {
	uc := NewRegisterUseCase(memoryUsers{}, plainHasher{}, newLedgerIssuer())

	tests := []struct {
		name  string
		input RegisterInput
		code  domainerror.AuthErrorCode
	}{
		{"missing name", RegisterInput{Email: "a@b.co", Password: "long-enough", TermsAccepted: true}, domainerror.ErrCodeMissingFields},
		{"terms not accepted", RegisterInput{Email: "a@b.co", Name: "A", Password: "long-enough"}, domainerror.ErrCodeTermsNotAccepted},
		{"bad email", RegisterInput{Email: "nope", Name: "A", Password: "long-enough", TermsAccepted: true}, domainerror.ErrCodeInvalidEmail},
		{"weak password", RegisterInput{Email: "a@b.co", Name: "A", Password: "short", TermsAccepted: true}, domainerror.ErrCodeWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			assert.Equal(t, tt.code, authCode(t, err))
		})
	}
}

func TestLogin(t *testing.T) {
	users := memoryUsers{}
	user := entity.NewUser("sup@clinic.org", "Sup", "plain:correct-horse", time.Now())
	user.Role = entity.UserRoleSupervisor
	require.NoError(t, users.Create(context.Background(), user))

	uc := NewLoginUseCase(users, plainHasher{}, newLedgerIssuer())

	out, err := uc.Execute(context.Background(), LoginInput{Email: "SUP@clinic.org", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "access-supervisor", out.Session.AccessToken)
	assert.Equal(t, user.ID, out.User.ID)

	_, err = uc.Execute(context.Background(), LoginInput{Email: "sup@clinic.org", Password: "wrong"})
	assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, err))

	_, err = uc.Execute(context.Background(), LoginInput{Email: "ghost@clinic.org", Password: "correct-horse"})
	assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, err))
}

func TestRefresh_SpendsTokenAndRereadsRole(t *testing.T) {
	ctx := context.Background()
	users := memoryUsers{}
	user := entity.NewUser("nurse@clinic.org", "Ana", "plain:x", time.Now())
	require.NoError(t, users.Create(ctx, user))

	tokens := newLedgerIssuer()
	first, err := startSession(ctx, tokens, user)
	require.NoError(t, err)

	user.Role = entity.UserRoleAdmin

	uc := NewRefreshUseCase(users, tokens)
	out, err := uc.Execute(ctx, first.Session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "access-admin", out.Session.AccessToken)
	assert.NotEqual(t, first.Session.RefreshToken, out.Session.RefreshToken)

	_, err = uc.Execute(ctx, first.Session.RefreshToken)
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))

	_, err = uc.Execute(ctx, "garbage")
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))
}

func TestRefresh_DeletedAccount(t *testing.T) {
	ctx := context.Background()
	tokens := newLedgerIssuer()
	ghost := entity.NewUser("ghost@clinic.org", "Ghost", "plain:x", time.Now())
	session, err := startSession(ctx, tokens, ghost)
	require.NoError(t, err)

	_, err = NewRefreshUseCase(memoryUsers{}, tokens).Execute(ctx, session.Session.RefreshToken)
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	tokens := newLedgerIssuer()
	session, err := startSession(ctx, tokens, entity.NewUser("a@b.co", "A", "plain:x", time.Now()))
	require.NoError(t, err)

	uc := NewLogoutUseCase(tokens)
	uc.Execute(ctx, session.Session.RefreshToken)
	assert.NotContains(t, tokens.live, session.Session.RefreshToken)

	uc.Execute(ctx, "unknown")
}

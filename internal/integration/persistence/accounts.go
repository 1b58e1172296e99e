package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/persistence/model"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(model.UserFromEntity(user)).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", entity.NormalizeEmail(email))
}

func (r *userRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	var row model.UserModel
	err := r.db.WithContext(ctx).Where(where, arg).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

type refreshTokenStore struct {
	db *gorm.DB
}

// NewRefreshTokenStore creates the Postgres-backed refresh token store.
func NewRefreshTokenStore(db *gorm.DB) adapter.RefreshTokenStore {
	return &refreshTokenStore{db: db}
}

func (s *refreshTokenStore) Remember(ctx context.Context, digest string, userID uuid.UUID, expiresAt time.Time) error {
	return s.db.WithContext(ctx).Create(&model.RefreshTokenModel{
		ID:          uuid.New(),
		TokenDigest: digest,
		UserID:      userID,
		ExpiresAt:   expiresAt.UTC(),
		CreatedAt:   time.Now().UTC(),
	}).Error
}

// Consume revokes the token in one conditional update, so two concurrent
// refreshes with the same token cannot both succeed.
func (s *refreshTokenStore) Consume(ctx context.Context, digest string, now time.Time) (uuid.UUID, bool, error) {
	var owner uuid.UUID
	consumed := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.RefreshTokenModel{}).
			Where("token_digest = ? AND revoked = ? AND expires_at > ?", digest, false, now.UTC()).
			Updates(map[string]any{"revoked": true, "revoked_at": now.UTC()})
		if result.Error != nil || result.RowsAffected == 0 {
			return result.Error
		}

		var row model.RefreshTokenModel
		if err := tx.Select("user_id").Where("token_digest = ?", digest).Take(&row).Error; err != nil {
			return err
		}
		owner, consumed = row.UserID, true
		return nil
	})
	if err != nil {
		return uuid.Nil, false, err
	}
	return owner, consumed, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hireloop/jobboard-service/internal/cache"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
)

// UserPostgreSQL implements UserRepository over gorm with a redis read cache
// in front of by-id lookups. Email lookups go straight to the database: they
// feed credential checks and must never serve stale rows.
type UserPostgreSQL struct {
	db        *gorm.DB
	userCache *cache.CacheHelper
}

func NewUserPostgreSQL(db *gorm.DB, userCache *cache.CacheHelper) repositories.UserRepository {
	return &UserPostgreSQL{db: db, userCache: userCache}
}

// userCacheEntry is the cached projection of a user row. The model's json
// tags shape API responses and omit the password hash, so cached rows travel
// through this wrapper to round-trip every persisted column.
type userCacheEntry struct {
	User         models.User `json:"user"`
	PasswordHash string      `json:"passwordHash"`
}

func newUserCacheEntry(user *models.User) userCacheEntry {
	return userCacheEntry{User: *user, PasswordHash: user.PasswordHash}
}

func (e *userCacheEntry) toUser() *models.User {
	user := e.User
	user.PasswordHash = e.PasswordHash
	return &user
}

func (r *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicateEmail
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (r *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var cached userCacheEntry
	if err := r.userCache.Get(ctx, "id:"+id, &cached); err == nil {
		return cached.toUser(), nil
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("fetching user by id: %w", err)
	}

	_ = r.userCache.Set(ctx, "id:"+id, newUserCacheEntry(&user), cache.UserCacheTTL)
	return &user, nil
}

func (r *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}
	return &user, nil
}

func (r *UserPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}
	return count > 0, nil
}

func (r *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicateEmail
		}
		return fmt.Errorf("updating user: %w", err)
	}
	// Invalidation is best effort: the row is already persisted and the TTL
	// bounds staleness if redis is unreachable.
	_ = r.userCache.Delete(ctx, "id:"+user.ID)
	return nil
}

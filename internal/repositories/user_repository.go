package repositories

import (
	"context"
	"errors"

	"github.com/hireloop/jobboard-service/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist. Drivers
	// translate their own not-found signals into this sentinel.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a write violates the unique email
	// index, covering writes that race past the uniqueness pre-check.
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserRepository owns persistence of user records.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
}

// Repository is the root accessor handed to services.
type Repository interface {
	User() UserRepository

	Ping(ctx context.Context) error
	Close() error
}

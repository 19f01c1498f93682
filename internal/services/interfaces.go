package services

import (
	"context"

	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request types live with the validation rules.
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type UpdateProfileRequest = validator.UpdateProfileRequest

// FileUpload is a decoded multipart attachment.
type FileUpload struct {
	Data     []byte
	Filename string
}

// LoginResult carries the authenticated user and the session credential the
// handler turns into a cookie.
type LoginResult struct {
	User  *models.User
	Token string
}

// ===== SERVICE INTERFACES =====

// AuthService orchestrates registration, login, and profile updates over the
// credential store, password hasher, token issuer, and media uploader.
// Logout is purely a cookie operation and lives in the handler.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest, file *FileUpload) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest, file *FileUpload) (*models.User, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/hireloop/jobboard-service/internal/auth"
	"github.com/hireloop/jobboard-service/internal/events"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
	"github.com/hireloop/jobboard-service/internal/uploader"
	"github.com/hireloop/jobboard-service/internal/validator"
)

// bcryptCost is fixed; changing it only affects newly hashed passwords.
const bcryptCost = 10

type authService struct {
	repo      repositories.Repository
	uploader  uploader.Uploader
	tokens    *auth.TokenIssuer
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator

	// uploadTimeout bounds the one unbounded external call in these flows.
	uploadTimeout time.Duration
}

func NewAuthService(
	repo repositories.Repository,
	up uploader.Uploader,
	tokens *auth.TokenIssuer,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
	uploadTimeout time.Duration,
) AuthService {
	return &authService{
		repo:          repo,
		uploader:      up,
		tokens:        tokens,
		publisher:     publisher,
		logger:        logger,
		validator:     v,
		uploadTimeout: uploadTimeout,
	}
}

// Register creates a user with a hashed password and an uploaded profile
// photo. Email uniqueness is checked before the upload so a duplicate email
// never costs a media-store write.
func (s *authService) Register(ctx context.Context, req *RegisterRequest, file *FileUpload) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}
	if file == nil || len(file.Data) == 0 {
		return nil, ErrFileRequired
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	result, err := s.upload(ctx, file)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Role:         models.UserRole(req.Role),
		PasswordHash: string(hash),
		Profile: models.Profile{
			ProfilePhotoURL: result.URL,
		},
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("persisting user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	s.publish(ctx, events.TypeUserRegistered, user)

	return user, nil
}

// Login verifies credentials and the requested role, then issues a session
// credential. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role != models.UserRole(req.Role) {
		return nil, ErrRoleMismatch
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing session token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &LoginResult{User: user, Token: token}, nil
}

// UpdateProfile applies partial updates: only supplied, non-empty fields
// change. When a file is attached it is uploaded before anything mutates, so
// an uploader failure leaves the user untouched.
func (s *authService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest, file *FileUpload) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	var uploaded *uploader.Result
	if file != nil && len(file.Data) > 0 {
		uploaded, err = s.upload(ctx, file)
		if err != nil {
			return nil, err
		}
	}

	if v := req.FullName; v != nil && *v != "" {
		user.FullName = *v
	}
	if v := req.Email; v != nil && *v != "" {
		user.Email = *v
	}
	if v := req.PhoneNumber; v != nil && *v != "" {
		user.PhoneNumber = *v
	}
	if v := req.Bio; v != nil && *v != "" {
		user.Profile.Bio = *v
	}
	if v := req.Skills; v != nil && *v != "" {
		user.Profile.Skills = datatypes.NewJSONSlice(splitSkills(*v))
	}
	if uploaded != nil {
		user.Profile.ResumeURL = uploaded.URL
		user.Profile.ResumeOriginalName = file.Filename
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("persisting user: %w", err)
	}

	s.logger.Info("profile updated", "user_id", user.ID)
	s.publish(ctx, events.TypeUserProfileUpdated, user)

	return user, nil
}

// upload proxies the payload to the media store under an explicit timeout and
// normalizes every failure mode into an UploadError.
func (s *authService) upload(ctx context.Context, file *FileUpload) (*uploader.Result, error) {
	uploadCtx := ctx
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		uploadCtx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	result, err := s.uploader.Upload(uploadCtx, file.Data, file.Filename)
	if err != nil {
		return nil, NewUploadError(err)
	}
	if result == nil || result.URL == "" {
		return nil, NewUploadError(errors.New("uploader returned no usable URL"))
	}
	return result, nil
}

// splitSkills splits the comma-separated form value into an ordered slice,
// trimming whitespace around each entry.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

func (s *authService) publish(ctx context.Context, eventType string, user *models.User) {
	if s.publisher == nil {
		return
	}
	payload := events.UserEvent{UserID: user.ID, Email: user.Email, Role: string(user.Role)}
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.Error("failed to publish event", "type", eventType, "error", err)
	}
}

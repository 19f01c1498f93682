package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hireloop/jobboard-service/internal/auth"
	"github.com/hireloop/jobboard-service/internal/events"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
	"github.com/hireloop/jobboard-service/internal/uploader"
	"github.com/hireloop/jobboard-service/internal/validator"
)

// ===== FAKES =====

type fakeUserRepo struct {
	users map[string]*models.User // keyed by id

	createErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

type fakeRepo struct {
	userRepo *fakeUserRepo
}

func (f *fakeRepo) User() repositories.UserRepository { return f.userRepo }
func (f *fakeRepo) Ping(ctx context.Context) error    { return nil }
func (f *fakeRepo) Close() error                      { return nil }

type fakeUploader struct {
	calls int
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, filename string) (*uploader.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &uploader.Result{
		URL: "https://media.example.com/media/" + filename,
		Key: "media/" + filename,
	}, nil
}

// ===== HELPERS =====

type testDeps struct {
	service   AuthService
	repo      *fakeUserRepo
	uploads   *fakeUploader
	publisher *events.MockEventPublisher
	tokens    *auth.TokenIssuer
}

func newTestService(t *testing.T) *testDeps {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	deps := &testDeps{
		repo:      newFakeUserRepo(),
		uploads:   &fakeUploader{},
		publisher: events.NewMockEventPublisher(nil),
		tokens:    auth.NewTokenIssuer("test-secret", 24*time.Hour),
	}
	deps.service = NewAuthService(
		&fakeRepo{userRepo: deps.repo},
		deps.uploads,
		deps.tokens,
		deps.publisher,
		logger,
		validator.New(),
		time.Second,
	)
	return deps
}

func validRegister() *RegisterRequest {
	return &RegisterRequest{
		FullName:    "Ana",
		Email:       "a@x.com",
		PhoneNumber: "1234567890",
		Password:    "secret1",
		Role:        "seeker",
	}
}

func photoFile() *FileUpload {
	return &FileUpload{Data: []byte("\x89PNG fake image bytes"), Filename: "photo.png"}
}

// ===== REGISTRATION =====

func TestRegisterMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"missing fullname", func(r *RegisterRequest) { r.FullName = "" }},
		{"missing email", func(r *RegisterRequest) { r.Email = "" }},
		{"malformed email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"missing phone", func(r *RegisterRequest) { r.PhoneNumber = "" }},
		{"short phone", func(r *RegisterRequest) { r.PhoneNumber = "12345" }},
		{"missing password", func(r *RegisterRequest) { r.Password = "" }},
		{"short password", func(r *RegisterRequest) { r.Password = "12345" }},
		{"missing role", func(r *RegisterRequest) { r.Role = "" }},
		{"unknown role", func(r *RegisterRequest) { r.Role = "admin" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestService(t)
			req := validRegister()
			tt.mutate(req)

			_, err := deps.service.Register(context.Background(), req, photoFile())

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Empty(t, deps.repo.users, "no user may be persisted")
			assert.Zero(t, deps.uploads.calls, "no upload may happen")
		})
	}
}

func TestRegisterRequiresFile(t *testing.T) {
	deps := newTestService(t)

	_, err := deps.service.Register(context.Background(), validRegister(), nil)
	assert.ErrorIs(t, err, ErrFileRequired)

	_, err = deps.service.Register(context.Background(), validRegister(), &FileUpload{Filename: "empty.png"})
	assert.ErrorIs(t, err, ErrFileRequired)

	assert.Empty(t, deps.repo.users)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	_, err := deps.service.Register(ctx, validRegister(), photoFile())
	require.NoError(t, err)

	_, err = deps.service.Register(ctx, validRegister(), photoFile())
	assert.ErrorIs(t, err, ErrEmailTaken)

	assert.Len(t, deps.repo.users, 1, "exactly one user for the email")
	// Uniqueness is checked before the upload, so the duplicate attempt
	// must not have hit the media store.
	assert.Equal(t, 1, deps.uploads.calls)
}

// A duplicate slipping past the uniqueness pre-check (concurrent
// registration) still surfaces as the conflict error, not a generic failure.
func TestRegisterDuplicateEmailRace(t *testing.T) {
	deps := newTestService(t)
	deps.repo.createErr = repositories.ErrDuplicateEmail

	_, err := deps.service.Register(context.Background(), validRegister(), photoFile())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterHashRoundTrip(t *testing.T) {
	deps := newTestService(t)

	user, err := deps.service.Register(context.Background(), validRegister(), photoFile())
	require.NoError(t, err)

	stored, err := deps.repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
	assert.Equal(t, "https://media.example.com/media/photo.png", stored.Profile.ProfilePhotoURL)
	assert.Equal(t, user.ID, stored.ID)

	published := deps.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeUserRegistered, published[0].Type)
}

func TestRegisterUploaderFailure(t *testing.T) {
	deps := newTestService(t)
	deps.uploads.err = errors.New("bucket unavailable")

	_, err := deps.service.Register(context.Background(), validRegister(), photoFile())

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Empty(t, deps.repo.users, "failed upload must not persist a user")
}

// ===== LOGIN =====

func registerAna(t *testing.T, deps *testDeps) *models.User {
	t.Helper()
	user, err := deps.service.Register(context.Background(), validRegister(), photoFile())
	require.NoError(t, err)
	return user
}

func TestLoginSuccess(t *testing.T) {
	deps := newTestService(t)
	registered := registerAna(t, deps)

	result, err := deps.service.Login(context.Background(), &LoginRequest{
		Email:    "a@x.com",
		Password: "secret1",
		Role:     "seeker",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, result.User.ID)
	assert.Equal(t, "Ana", result.User.FullName)

	userID, err := deps.tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
}

func TestLoginNonEnumeration(t *testing.T) {
	deps := newTestService(t)
	registerAna(t, deps)

	_, errUnknown := deps.service.Login(context.Background(), &LoginRequest{
		Email:    "nobody@x.com",
		Password: "secret1",
		Role:     "seeker",
	})
	_, errWrongPass := deps.service.Login(context.Background(), &LoginRequest{
		Email:    "a@x.com",
		Password: "wrongpass",
		Role:     "seeker",
	})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	// Identical error either way; nothing distinguishes an unknown email
	// from a wrong password.
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLoginRoleMismatch(t *testing.T) {
	deps := newTestService(t)
	registerAna(t, deps)

	_, err := deps.service.Login(context.Background(), &LoginRequest{
		Email:    "a@x.com",
		Password: "secret1",
		Role:     "recruiter",
	})
	assert.ErrorIs(t, err, ErrRoleMismatch)
}

func TestLoginValidation(t *testing.T) {
	deps := newTestService(t)

	_, err := deps.service.Login(context.Background(), &LoginRequest{Email: "a@x.com"})

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

// ===== PROFILE UPDATE =====

func strPtr(s string) *string { return &s }

func TestUpdateProfilePartial(t *testing.T) {
	deps := newTestService(t)
	registered := registerAna(t, deps)

	updated, err := deps.service.UpdateProfile(context.Background(), registered.ID, &UpdateProfileRequest{
		Bio: strPtr("Distributed systems enthusiast"),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Distributed systems enthusiast", updated.Profile.Bio)
	assert.Equal(t, "Ana", updated.FullName)
	assert.Equal(t, "a@x.com", updated.Email)
	assert.Equal(t, "1234567890", updated.PhoneNumber)
	assert.Empty(t, updated.Profile.Skills)
}

func TestUpdateProfileEmptyStringLeavesFieldUnchanged(t *testing.T) {
	deps := newTestService(t)
	registered := registerAna(t, deps)

	updated, err := deps.service.UpdateProfile(context.Background(), registered.ID, &UpdateProfileRequest{
		FullName: strPtr(""),
		Bio:      strPtr("new bio"),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Ana", updated.FullName)
	assert.Equal(t, "new bio", updated.Profile.Bio)
}

func TestUpdateProfileSkillsSplit(t *testing.T) {
	deps := newTestService(t)
	registered := registerAna(t, deps)

	updated, err := deps.service.UpdateProfile(context.Background(), registered.ID, &UpdateProfileRequest{
		Skills: strPtr("go,rust,c++"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust", "c++"}, []string(updated.Profile.Skills))

	updated, err = deps.service.UpdateProfile(context.Background(), registered.ID, &UpdateProfileRequest{
		Skills: strPtr(" go , rust , c++ "),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust", "c++"}, []string(updated.Profile.Skills))
}

func TestUpdateProfileResumeUpload(t *testing.T) {
	deps := newTestService(t)
	registered := registerAna(t, deps)

	updated, err := deps.service.UpdateProfile(context.Background(), registered.ID, &UpdateProfileRequest{}, &FileUpload{
		Data:     []byte("%PDF-1.7 resume"),
		Filename: "ana-resume.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://media.example.com/media/ana-resume.pdf", updated.Profile.ResumeURL)
	assert.Equal(t, "ana-resume.pdf", updated.Profile.ResumeOriginalName)
	// Registration photo survives a resume upload.
	assert.Equal(t, "https://media.example.com/media/photo.png", updated.Profile.ProfilePhotoURL)
}

func TestUpdateProfileUploadFailureChangesNothing(t *testing.T) {
	deps := newTestService(t)
	registered := registerAna(t, deps)
	deps.uploads.err = errors.New("bucket unavailable")

	_, err := deps.service.UpdateProfile(context.Background(), registered.ID, &UpdateProfileRequest{
		Bio: strPtr("should not stick"),
	}, &FileUpload{Data: []byte("%PDF-"), Filename: "r.pdf"})

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)

	stored, getErr := deps.repo.GetByID(context.Background(), registered.ID)
	require.NoError(t, getErr)
	assert.Empty(t, stored.Profile.Bio, "failed upload must not persist any field")
	assert.Empty(t, stored.Profile.ResumeURL)
}

func TestUpdateProfileEmailCollision(t *testing.T) {
	deps := newTestService(t)
	registered := registerAna(t, deps)
	deps.repo.updateErr = repositories.ErrDuplicateEmail

	_, err := deps.service.UpdateProfile(context.Background(), registered.ID, &UpdateProfileRequest{
		Email: strPtr("taken@x.com"),
	}, nil)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	deps := newTestService(t)

	_, err := deps.service.UpdateProfile(context.Background(), "missing-id", &UpdateProfileRequest{
		Bio: strPtr("bio"),
	}, nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfilePublishesEvent(t *testing.T) {
	deps := newTestService(t)
	registered := registerAna(t, deps)
	deps.publisher.ClearEvents()

	_, err := deps.service.UpdateProfile(context.Background(), registered.ID, &UpdateProfileRequest{
		Bio: strPtr("bio"),
	}, nil)
	require.NoError(t, err)

	published := deps.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeUserProfileUpdated, published[0].Type)
}

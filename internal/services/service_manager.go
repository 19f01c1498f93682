package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hireloop/jobboard-service/internal/auth"
	"github.com/hireloop/jobboard-service/internal/events"
	"github.com/hireloop/jobboard-service/internal/repositories"
	"github.com/hireloop/jobboard-service/internal/uploader"
	"github.com/hireloop/jobboard-service/internal/validator"
)

// ServiceManagerConfig bundles the collaborators shared across services.
type ServiceManagerConfig struct {
	Repo          repositories.Repository
	Uploader      uploader.Uploader
	Tokens        *auth.TokenIssuer
	Publisher     events.EventPublisher
	Logger        *slog.Logger
	Validator     *validator.Validator
	UploadTimeout time.Duration
}

type serviceManager struct {
	config      ServiceManagerConfig
	authService AuthService
}

func NewServiceManager(config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		config: config,
		authService: NewAuthService(
			config.Repo,
			config.Uploader,
			config.Tokens,
			config.Publisher,
			config.Logger,
			config.Validator,
			config.UploadTimeout,
		),
	}
}

func (m *serviceManager) Auth() AuthService {
	return m.authService
}

func (m *serviceManager) HealthCheck(ctx context.Context) error {
	if err := m.config.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}

func (m *serviceManager) Shutdown(ctx context.Context) error {
	if m.config.Publisher != nil {
		if err := m.config.Publisher.Close(); err != nil {
			return fmt.Errorf("closing event publisher: %w", err)
		}
	}
	return nil
}

// Package service implements staff authentication: bcrypt credentials and
// JWT access/refresh token issuance.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"clearing_ops_backend/internal/auth/repository"
	"clearing_ops_backend/internal/auth/transport"
	"clearing_ops_backend/platform/apperr"
	"clearing_ops_backend/platform/config"
	"clearing_ops_backend/platform/logger"
)

var (
	errInvalidCredentials  = apperr.Unauthorized("invalid email or password")
	errInvalidRefreshToken = apperr.Unauthorized("invalid refresh token")
)

// Service coordinates authentication operations.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new auth service.
func New(repo repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		cfg:  cfg,
		log:  log,
		now:  time.Now,
	}
}

// Bootstrap creates the first admin account from the environment when the
// user table is empty. A populated table leaves the env values untouched.
func (s *Service) Bootstrap(ctx context.Context) error {
	email := s.cfg.GetBootstrapAdminEmail()
	password := s.cfg.GetBootstrapAdminPassword()
	if email == "" || password == "" {
		return nil
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, err := s.repo.Create(ctx, repository.CreateParams{
		Email:        email,
		Name:         "Administrator",
		Role:         repository.RoleAdmin,
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}

	s.log.Info("bootstrapped admin account", "email", user.Email)
	return nil
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			s.log.AuthEvent("login_failed", req.Email, false, "bad credentials")
			return transport.LoginResponse{}, errInvalidCredentials
		}
		return transport.LoginResponse{}, err
	}

	if !user.IsActive {
		s.log.AuthEvent("login_inactive", req.Email, false, "account disabled")
		return transport.LoginResponse{}, errInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.log.AuthEvent("login_failed", req.Email, false, "bad credentials")
		return transport.LoginResponse{}, errInvalidCredentials
	}

	tokens, err := s.issueTokenPair(user)
	if err != nil {
		return transport.LoginResponse{}, err
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		s.log.Warn("failed to stamp last login", "userId", user.ID, "error", err.Error())
	}

	s.log.AuthEvent("login", user.Email, true, "")
	return transport.LoginResponse{User: user, Tokens: tokens}, nil
}

// Refresh validates a refresh token and issues a new pair.
func (s *Service) Refresh(ctx context.Context, req transport.RefreshRequest) (transport.TokenPair, error) {
	userID, err := s.parseRefreshToken(req.RefreshToken)
	if err != nil {
		return transport.TokenPair{}, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return transport.TokenPair{}, errInvalidRefreshToken
		}
		return transport.TokenPair{}, err
	}
	if !user.IsActive {
		return transport.TokenPair{}, errInvalidRefreshToken
	}

	return s.issueTokenPair(user)
}

// Me returns the authenticated user's account.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// CreateUser adds a staff account.
func (s *Service) CreateUser(ctx context.Context, req transport.CreateUserRequest) (repository.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return repository.User{}, err
	}

	return s.repo.Create(ctx, repository.CreateParams{
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: string(hash),
	})
}

// ListUsers returns all staff accounts.
func (s *Service) ListUsers(ctx context.Context) ([]repository.User, error) {
	return s.repo.List(ctx)
}

// SetUserActive enables or disables an account.
func (s *Service) SetUserActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	return s.repo.SetActive(ctx, id, isActive)
}

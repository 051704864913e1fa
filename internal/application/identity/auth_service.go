package identity

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rosemer/ledger/internal/domain/identity"
	"github.com/rosemer/ledger/internal/domain/shared"
)

// AuthService checks local account credentials and roles
type AuthService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Authenticate verifies the credentials and returns the user's role
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (identity.Role, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", shared.ErrInvalidCredentials
		}
		return "", err
	}
	if !user.CheckPassword(password) {
		s.logger.Warn("failed login attempt", zap.String("username", username))
		return "", shared.ErrInvalidCredentials
	}
	return user.Role, nil
}

// RequireAdmin verifies the credentials and rejects users without the
// administrator role
func (s *AuthService) RequireAdmin(ctx context.Context, username, password string) error {
	role, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	if role != identity.RoleAdministrator {
		return fmt.Errorf("%w: administrator role required", shared.ErrAccessDenied)
	}
	return nil
}

// CreateUser registers a new account
func (s *AuthService) CreateUser(ctx context.Context, username, password string, role identity.Role) error {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return fmt.Errorf("user %q: %w", username, shared.ErrAlreadyExists)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	user, err := identity.NewUser(username, password, role)
	if err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("user created", zap.String("username", username), zap.String("role", string(role)))
	return nil
}

// ChangePassword replaces the password on an existing account
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !user.CheckPassword(oldPassword) {
		return shared.ErrInvalidCredentials
	}
	if err := user.ChangePassword(newPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

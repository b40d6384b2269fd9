// Package user provides the application layer for the admin account
package user

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/domain/user"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/security"
	"github.com/denizsemerci/egeli-betty/internal/ports/inbound"
	"github.com/denizsemerci/egeli-betty/internal/ports/outbound"
	apperrors "github.com/denizsemerci/egeli-betty/pkg/errors"
)

// Service implements the admin account use cases
type Service struct {
	userRepo outbound.UserRepository
	tokens   *security.TokenService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates a new user service
func NewService(
	userRepo outbound.UserRepository,
	tokens *security.TokenService,
	logger *zap.Logger,
) inbound.UserService {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger.Named("user-service"),
	}
}

// Login checks the credentials and issues a session token. An unknown
// username and a wrong password produce the same error, so the response
// leaks nothing about which accounts exist.
func (s *Service) Login(ctx context.Context, cmd inbound.LoginCommand) (*inbound.AuthResponse, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	entity, err := s.userRepo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.NewInvalidCredentialsError()
		}
		return nil, apperrors.NewDatabaseError("find user", err)
	}

	if err := entity.Authenticate(cmd.Password); err != nil {
		s.logger.Warn("Failed login attempt", zap.String("username", cmd.Username))
		return nil, apperrors.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Generate(entity.ID(), entity.Username())
	if err != nil {
		return nil, apperrors.NewInternalError("token generation failed")
	}

	s.logger.Info("Admin logged in", zap.String("username", entity.Username()))

	return &inbound.AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.tokens.Expiration().Seconds()),
		User:        *entityToProfile(entity),
	}, nil
}

// GetProfile returns the settings view of the account
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*inbound.ProfileDTO, error) {
	entity, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entityToProfile(entity), nil
}

// UpdateProfile changes the display name and contact email
func (s *Service) UpdateProfile(ctx context.Context, cmd inbound.UpdateProfileCommand) (*inbound.ProfileDTO, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	entity, err := s.findUser(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	entity.UpdateProfile(cmd.DisplayName, cmd.Email)

	if err := s.userRepo.Update(ctx, entity); err != nil {
		return nil, apperrors.NewDatabaseError("update user", err)
	}

	s.logger.Info("Profile updated", zap.String("username", entity.Username()))
	return entityToProfile(entity), nil
}

// ChangePassword verifies the current password before setting the new one
func (s *Service) ChangePassword(ctx context.Context, cmd inbound.ChangePasswordCommand) error {
	if err := s.validate.Struct(cmd); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	entity, err := s.findUser(ctx, cmd.UserID)
	if err != nil {
		return err
	}

	if err := entity.ChangePassword(cmd.CurrentPassword, cmd.NewPassword); err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return apperrors.NewInvalidCredentialsError()
		}
		return apperrors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Update(ctx, entity); err != nil {
		return apperrors.NewDatabaseError("update user", err)
	}

	s.logger.Info("Password changed", zap.String("username", entity.Username()))
	return nil
}

func (s *Service) findUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	entity, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("Oturum geçersiz")
		}
		return nil, apperrors.NewDatabaseError("find user", err)
	}
	return entity, nil
}

func entityToProfile(entity *user.User) *inbound.ProfileDTO {
	return &inbound.ProfileDTO{
		ID:          entity.ID(),
		Username:    entity.Username(),
		DisplayName: entity.DisplayName(),
		Email:       entity.Email(),
	}
}

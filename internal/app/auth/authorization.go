package auth

import (
	"context"
	"errors"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/repositories"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/logger"
)

// AuthorizationService centralizes the capability checks shared by the
// resource services: ownership on authored resources and role gates on
// faculty or admin operations.
type AuthorizationService struct {
	userRepo *repositories.UserRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo *repositories.UserRepository) *AuthorizationService {
	return &AuthorizationService{userRepo: userRepo}
}

// GetUser loads the acting user or returns ErrUserNotFound.
func (s *AuthorizationService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error loading user for authorization check")
		return nil, err
	}
	return user, nil
}

// IsAdmin reports whether the user holds the admin role.
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}

// ValidateOwnerOrAdmin allows the resource owner and admins, rejects everyone
// else with a permission error.
func (s *AuthorizationService) ValidateOwnerOrAdmin(ctx context.Context, userID, ownerID int64) error {
	if userID == ownerID {
		return nil
	}

	isAdmin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateRole allows users holding any of the given roles.
func (s *AuthorizationService) ValidateRole(ctx context.Context, userID int64, roles ...models.Role) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, role := range roles {
		if user.Role == role {
			return nil
		}
	}
	return apperrors.ErrPermissionDenied
}

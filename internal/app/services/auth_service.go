package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models/dto"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/repositories"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/auth"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/filestorage"
)

// AuthService defines the interface for authentication and profile operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GoogleAuthURL(state string) string
	GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
	GetUserByID(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdatePassword(ctx context.Context, userID int64, req *dto.UpdatePasswordRequest) error
	UpdateProfilePicture(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.UserResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo      *repositories.UserRepository
	jwtService    *auth.JWTService
	googleService *auth.GoogleOAuthService
	fileStorage   *filestorage.LocalStorage
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	jwtService *auth.JWTService,
	googleService *auth.GoogleOAuthService,
	fileStorage *filestorage.LocalStorage,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:      userRepo,
		jwtService:    jwtService,
		googleService: googleService,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

// Register creates a new local account. Students get an enrollment number
// derived from their admission year, program and branch.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.Role(req.Role)

	if role == models.RoleStudent || role == models.RoleFaculty {
		if req.Program == "" || req.Branch == "" {
			return nil, apperrors.NewBadRequestError("program and branch are required for students and faculty")
		}
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to check email existence")
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     role,
		Program:  req.Program,
		Branch:   req.Branch,
		Semester: req.Semester,
	}

	if role == models.RoleStudent {
		enrollment, err := s.nextEnrollmentNumber(ctx, req.Program, req.Branch)
		if err != nil {
			return nil, err
		}
		user.EnrollmentNumber = &enrollment
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		return nil, err
	}

	s.logger.Info().
		Int64("userID", user.ID).
		Str("role", string(user.Role)).
		Msg("User registered")

	return s.buildAuthResponse(user)
}

// nextEnrollmentNumber derives the next sequence number for the current
// year/program/branch cohort. The count-then-insert window is accepted; the
// unique constraint on enrollment_number catches collisions.
func (s *authServiceImpl) nextEnrollmentNumber(ctx context.Context, program, branch string) (string, error) {
	year := time.Now().Year()
	prefix := models.EnrollmentPrefix(year, program, branch)

	count, err := s.userRepo.CountEnrollmentPrefix(ctx, prefix)
	if err != nil {
		s.logger.Error().Err(err).Str("prefix", prefix).Msg("Failed to count enrollment cohort")
		return "", err
	}

	return models.FormatEnrollmentNumber(year, program, branch, count+1), nil
}

// Login authenticates a local account and issues a token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to load user for login")
		return nil, err
	}

	if user.Password == "" {
		// Federated account without a local password
		return nil, apperrors.ErrFederatedAccount
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	return s.buildAuthResponse(user)
}

// GoogleAuthURL returns the Google consent page URL for the given state
func (s *authServiceImpl) GoogleAuthURL(state string) string {
	return s.googleService.AuthURL(state)
}

// GoogleCallback exchanges the authorization code, then finds or creates the
// matching account. An existing local account with the same email is linked
// to the Google identity on first federated login.
func (s *authServiceImpl) GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error) {
	profile, err := s.googleService.Exchange(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Msg("Google code exchange failed")
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByGoogleID(ctx, profile.ID)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	if user == nil || errors.Is(err, apperrors.ErrUserNotFound) {
		user, err = s.linkOrCreateGoogleUser(ctx, profile)
		if err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	return s.buildAuthResponse(user)
}

func (s *authServiceImpl) linkOrCreateGoogleUser(ctx context.Context, profile *auth.GoogleProfile) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, profile.Email)
	if err == nil {
		existing.GoogleID = &profile.ID
		if existing.ProfilePicture == "" {
			existing.ProfilePicture = profile.Picture
		}
		if err := s.userRepo.Update(ctx, existing); err != nil {
			s.logger.Error().Err(err).Int64("userID", existing.ID).Msg("Failed to link Google identity")
			return nil, err
		}
		s.logger.Info().Int64("userID", existing.ID).Msg("Linked Google identity to existing account")
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	user := &models.User{
		Name:           profile.Name,
		Email:          profile.Email,
		Role:           models.RoleStudent,
		GoogleID:       &profile.ID,
		ProfilePicture: profile.Picture,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", profile.Email).Msg("Failed to create federated user")
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Created federated user from Google profile")
	return user, nil
}

func (s *authServiceImpl) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token")
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.NewUserResponse(user),
	}, nil
}

// GetProfile returns the calling user's own profile
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// GetUserByID returns another user's public profile
func (s *authServiceImpl) GetUserByID(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	return s.GetProfile(ctx, userID)
}

// UpdateProfile applies a partial profile update. Role, email and enrollment
// number are not editable through this path.
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Program != "" {
		user.Program = req.Program
	}
	if req.Branch != "" {
		user.Branch = req.Branch
	}
	if req.Semester != nil {
		user.Semester = req.Semester
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Achievements != nil {
		user.Achievements = req.Achievements
	}
	if req.Skills != nil {
		user.Skills = req.Skills
	}
	if req.SocialLinks != nil {
		user.SocialLinks = *req.SocialLinks
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to update profile")
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdatePassword changes a local account's password after verifying the
// current one. Federated accounts without a local password are rejected.
func (s *authServiceImpl) UpdatePassword(ctx context.Context, userID int64, req *dto.UpdatePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Password == "" {
		return apperrors.ErrFederatedAccount
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash new password")
		return err
	}

	user.Password = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to update password")
		return err
	}

	s.logger.Info().Int64("userID", userID).Msg("Password updated")
	return nil
}

// UpdateProfilePicture stores the uploaded image and points the profile at it
func (s *authServiceImpl) UpdateProfilePicture(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.fileStorage.SaveFile(file)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to store profile picture")
		return nil, err
	}

	old := user.ProfilePicture
	user.ProfilePicture = url
	if err := s.userRepo.Update(ctx, user); err != nil {
		// The row was not updated, drop the freshly stored file
		if delErr := s.fileStorage.DeleteFile(url); delErr != nil {
			s.logger.Warn().Err(delErr).Str("url", url).Msg("Failed to clean up stored file")
		}
		return nil, err
	}

	if old != "" {
		if err := s.fileStorage.DeleteFile(old); err != nil {
			s.logger.Warn().Err(err).Str("url", old).Msg("Failed to delete previous profile picture")
		}
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

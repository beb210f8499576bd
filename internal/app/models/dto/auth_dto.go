package dto

import "github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"

// RegisterRequest represents a local registration request.
// Program and branch are required for students and faculty; the service
// enforces that rule because it depends on the chosen role.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=student faculty admin"`
	Program  string `json:"program"`
	Branch   string `json:"branch"`
	Semester *int   `json:"semester" binding:"omitempty,min=1,max=8"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// UpdateProfileRequest represents profile update data; all fields optional
type UpdateProfileRequest struct {
	Name         string               `json:"name"`
	Program      string               `json:"program"`
	Branch       string               `json:"branch"`
	Semester     *int                 `json:"semester" binding:"omitempty,min=1,max=8"`
	Bio          *string              `json:"bio"`
	Achievements []models.Achievement `json:"achievements"`
	Skills       []models.Skill       `json:"skills"`
	SocialLinks  *models.SocialLinks  `json:"socialLinks"`
}

// UpdatePasswordRequest represents a password change request
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// UserResponse represents user information returned to clients
type UserResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	EnrollmentNumber *string `json:"enrollmentNumber,omitempty"`
	Program          string  `json:"program,omitempty"`
	Branch           string  `json:"branch,omitempty"`
	Semester         *int    `json:"semester,omitempty"`
	Bio              string  `json:"bio,omitempty"`
	ProfilePicture   string  `json:"profilePicture,omitempty"`
}

// NewUserResponse maps a user model to its response representation
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Role:             string(user.Role),
		EnrollmentNumber: user.EnrollmentNumber,
		Program:          user.Program,
		Branch:           user.Branch,
		Semester:         user.Semester,
		Bio:              user.Bio,
		ProfilePicture:   user.ProfilePicture,
	}
}

// UserBasicResponse is the shortened user reference embedded in other
// resources (authors, organizers, senders).
type UserBasicResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// NewUserBasicResponse maps a user model to its reference representation
func NewUserBasicResponse(user *models.User) *UserBasicResponse {
	if user == nil {
		return nil
	}
	return &UserBasicResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}

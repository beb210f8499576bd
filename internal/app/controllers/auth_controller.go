package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models/dto"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/services"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/middleware"
)

// AuthController handles authentication and profile endpoints
type AuthController struct {
	authService services.AuthService
	clientURL   string
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, clientURL string, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		clientURL:   clientURL,
		logger:      logger,
	}
}

// Register creates a new local account
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// Login authenticates a local account
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GoogleLogin redirects the browser to the Google consent page
func (c *AuthController) GoogleLogin(ctx *gin.Context) {
	state := uuid.New().String()
	// The state round-trips through a short-lived cookie for CSRF protection
	ctx.SetCookie("oauth_state", state, 300, "/", "", false, true)
	ctx.Redirect(http.StatusTemporaryRedirect, c.authService.GoogleAuthURL(state))
}

// GoogleCallback completes the OAuth exchange and redirects to the client
// with the issued token.
func (c *AuthController) GoogleCallback(ctx *gin.Context) {
	state, err := ctx.Cookie("oauth_state")
	if err != nil || state == "" || state != ctx.Query("state") {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid OAuth state"),
		})
		return
	}

	code := ctx.Query("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing authorization code"),
		})
		return
	}

	resp, err := c.authService.GoogleCallback(ctx, code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetCookie("oauth_state", "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusTemporaryRedirect,
		c.clientURL+"/auth/callback?token="+resp.Token.AccessToken)
}

// GetProfile returns the caller's own profile
func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.authService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetUserByID returns another user's public profile
func (c *AuthController) GetUserByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.authService.GetUserByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateProfile applies a partial profile update to the caller's account
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdatePassword changes the caller's password
func (c *AuthController) UpdatePassword(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.UpdatePassword(ctx, userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password updated"))
}

// UpdateProfilePicture stores an uploaded image as the caller's picture
func (c *AuthController) UpdateProfilePicture(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image file is required").WithField("file"),
		})
		return
	}

	resp, err := c.authService.UpdateProfilePicture(ctx, userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

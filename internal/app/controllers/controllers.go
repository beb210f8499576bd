package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models/dto"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/middleware"
)

// parseIDParam parses a positive integer ID from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+paramName+" parameter"),
		})
		return 0, false
	}
	return id, true
}

// currentUserID reads the authenticated user's ID set by the auth middleware
func currentUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return 0, false
	}
	return userID, true
}

// bindJSON binds the request body and renders a field-level validation error
// on failure
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// optionalQuery returns a pointer to the query value, or nil when absent
func optionalQuery(ctx *gin.Context, name string) *string {
	value := ctx.Query(name)
	if value == "" {
		return nil
	}
	return &value
}

// optionalQueryInt64 parses an optional integer query parameter
func optionalQueryInt64(ctx *gin.Context, name string) *int64 {
	value := ctx.Query(name)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
)

func TestHandleAPIError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound},
		{"chat not found", apperrors.ErrChatNotFound, http.StatusNotFound},
		{"wrapped not found", apperrors.NewResourceNotFoundError("gone"), http.StatusNotFound},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"not a member", apperrors.ErrNotMember, http.StatusForbidden},
		{"email taken", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"already applied", apperrors.ErrAlreadyApplied, http.StatusConflict},
		{"opportunity closed", apperrors.ErrOpportunityClosed, http.StatusConflict},
		{"capacity reached", apperrors.ErrCapacityReached, http.StatusConflict},
		{"last admin", apperrors.ErrLastAdmin, http.StatusConflict},
		{"federated account", apperrors.ErrFederatedAccount, http.StatusBadRequest},
		{"bad request", apperrors.NewBadRequestError("nope"), http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
)

func TestChatReadAccess(t *testing.T) {
	chat := &models.Chat{
		Name:     "Campus Commons",
		Type:     models.ChatGeneral,
		Category: models.ChatCategoryAll,
		IsActive: true,
	}
	chat.AddMember(1, models.MemberAdmin, time.Now())

	member := &models.User{ID: 1, Role: models.RoleStudent}
	outsider := &models.User{ID: 2, Role: models.RoleStudent}

	require.NoError(t, chatReadAccess(chat, member))

	// A visible room still rejects users who have not joined it
	assert.ErrorIs(t, chatReadAccess(chat, outsider), apperrors.ErrNotMember)

	// Platform admins are not exempt from the membership requirement
	admin := &models.User{ID: 3, Role: models.RoleAdmin}
	assert.ErrorIs(t, chatReadAccess(chat, admin), apperrors.ErrNotMember)

	chat.IsActive = false
	assert.ErrorIs(t, chatReadAccess(chat, member), apperrors.ErrChatNotFound)
}

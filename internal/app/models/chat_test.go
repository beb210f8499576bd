package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
)

func newTestChat() *Chat {
	chat := &Chat{
		Name:     "Algorithms Study Group",
		Type:     ChatAcademic,
		Category: ChatCategoryAll,
		IsActive: true,
	}
	chat.AddMember(1, MemberAdmin, time.Now())
	return chat
}

func TestChat_AddMember_Idempotent(t *testing.T) {
	chat := newTestChat()
	now := time.Now()

	chat.AddMember(2, MemberMember, now)
	chat.AddMember(2, MemberModerator, now)

	assert.Len(t, chat.Members, 2)
	assert.Equal(t, MemberMember, chat.FindMember(2).Role)
	assert.Equal(t, 2, chat.Stats.ActiveMembers)
}

func TestChat_RemoveMember_LastAdmin(t *testing.T) {
	chat := newTestChat()
	chat.AddMember(2, MemberMember, time.Now())

	err := chat.RemoveMember(1)
	assert.ErrorIs(t, err, apperrors.ErrLastAdmin)
	assert.Len(t, chat.Members, 2)
}

func TestChat_RemoveMember_AdminWithSuccessor(t *testing.T) {
	chat := newTestChat()
	chat.AddMember(2, MemberAdmin, time.Now())

	err := chat.RemoveMember(1)
	require.NoError(t, err)
	assert.Nil(t, chat.FindMember(1))
	assert.Equal(t, 1, chat.Stats.ActiveMembers)
}

func TestChat_RemoveMember_NotMember(t *testing.T) {
	chat := newTestChat()

	err := chat.RemoveMember(42)
	assert.ErrorIs(t, err, apperrors.ErrNotMember)
}

func TestChat_SetReaction_ReplacesPrevious(t *testing.T) {
	chat := newTestChat()
	now := time.Now()
	msg := chat.AddMessage(1, "hello", MessageText, "", nil, false, now)

	_, err := chat.SetReaction(msg.ID, 2, ReactionLike, now)
	require.NoError(t, err)
	_, err = chat.SetReaction(msg.ID, 2, ReactionInsightful, now)
	require.NoError(t, err)

	message := chat.FindMessage(msg.ID)
	require.Len(t, message.Reactions, 1)
	assert.Equal(t, ReactionInsightful, message.Reactions[0].Type)
	assert.Equal(t, 1, chat.Stats.TotalReactions)
}

func TestChat_SetReaction_UnknownMessage(t *testing.T) {
	chat := newTestChat()

	_, err := chat.SetReaction("missing", 2, ReactionLike, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrMessageNotFound)
}

func TestChat_TogglePin_RoundTrip(t *testing.T) {
	chat := newTestChat()
	msg := chat.AddMessage(1, "pinned announcement", MessageText, "", nil, true, time.Now())

	pinned, err := chat.TogglePin(msg.ID)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)
	assert.Contains(t, chat.PinnedMessages, msg.ID)

	unpinned, err := chat.TogglePin(msg.ID)
	require.NoError(t, err)
	assert.False(t, unpinned.IsPinned)
	assert.NotContains(t, chat.PinnedMessages, msg.ID)
}

func TestChat_RecomputeStats(t *testing.T) {
	chat := newTestChat()
	now := time.Now()
	first := chat.AddMessage(1, "one", MessageText, "", nil, false, now)
	chat.AddMessage(1, "two", MessageText, "", nil, false, now)
	_, err := chat.SetReaction(first.ID, 2, ReactionHelpful, now)
	require.NoError(t, err)

	assert.Equal(t, 2, chat.Stats.TotalMessages)
	assert.Equal(t, 1, chat.Stats.TotalReactions)
	assert.Equal(t, 1, chat.Stats.ActiveMembers)
}

func TestChat_VisibleTo(t *testing.T) {
	semester := 3
	student := &User{Role: RoleStudent, Program: "B.Tech", Branch: "Computer Science", Semester: &semester}
	faculty := &User{Role: RoleFaculty, Program: "B.Tech"}
	admin := &User{Role: RoleAdmin}

	tests := []struct {
		name    string
		chat    Chat
		user    *User
		visible bool
	}{
		{
			name:    "inactive room hidden from everyone",
			chat:    Chat{Category: ChatCategoryAll, IsActive: false},
			user:    student,
			visible: false,
		},
		{
			name:    "open category visible to all",
			chat:    Chat{Category: ChatCategoryAll, IsActive: true},
			user:    student,
			visible: true,
		},
		{
			name:    "faculty room hidden from students",
			chat:    Chat{Category: ChatCategoryFaculty, IsActive: true},
			user:    student,
			visible: false,
		},
		{
			name:    "faculty room visible to faculty",
			chat:    Chat{Category: ChatCategoryFaculty, IsActive: true},
			user:    faculty,
			visible: true,
		},
		{
			name:    "program room requires program match",
			chat:    Chat{Category: ChatCategoryProgram, Program: "M.Tech", IsActive: true},
			user:    student,
			visible: false,
		},
		{
			name:    "branch room requires program and branch",
			chat:    Chat{Category: ChatCategoryBranch, Program: "B.Tech", Branch: "Computer Science", IsActive: true},
			user:    student,
			visible: true,
		},
		{
			name:    "semester room requires full match",
			chat:    Chat{Category: ChatCategorySemester, Program: "B.Tech", Branch: "Computer Science", Semester: "3", IsActive: true},
			user:    student,
			visible: true,
		},
		{
			name:    "semester room hidden when semester differs",
			chat:    Chat{Category: ChatCategorySemester, Program: "B.Tech", Branch: "Computer Science", Semester: "5", IsActive: true},
			user:    student,
			visible: false,
		},
		{
			name:    "admin sees every active room",
			chat:    Chat{Category: ChatCategorySemester, Program: "M.Tech", Branch: "VLSI", Semester: "2", IsActive: true},
			user:    admin,
			visible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, tt.chat.VisibleTo(tt.user))
		})
	}
}

func TestChat_PromoteMember(t *testing.T) {
	chat := newTestChat()
	chat.AddMember(2, MemberMember, time.Now())

	err := chat.PromoteMember(2, MemberModerator)
	require.NoError(t, err)
	assert.Equal(t, MemberModerator, chat.FindMember(2).Role)

	err = chat.PromoteMember(99, MemberAdmin)
	assert.ErrorIs(t, err, apperrors.ErrNotMember)
}

func TestChat_PromoteMember_LastAdminKeepsRole(t *testing.T) {
	chat := newTestChat()
	chat.AddMember(2, MemberMember, time.Now())

	err := chat.PromoteMember(1, MemberMember)
	assert.ErrorIs(t, err, apperrors.ErrLastAdmin)
	assert.Equal(t, MemberAdmin, chat.FindMember(1).Role)
	assert.Equal(t, 1, chat.AdminCount())

	// Re-asserting the admin role on the sole admin is not a demotion
	err = chat.PromoteMember(1, MemberAdmin)
	require.NoError(t, err)

	// With a second admin in place the original admin may step down
	require.NoError(t, chat.PromoteMember(2, MemberAdmin))
	err = chat.PromoteMember(1, MemberModerator)
	require.NoError(t, err)
	assert.Equal(t, MemberModerator, chat.FindMember(1).Role)
	assert.Equal(t, 1, chat.AdminCount())
}

package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
)

// ChatType describes the purpose of a chat room
type ChatType string

const (
	ChatGeneral     ChatType = "general"
	ChatAcademic    ChatType = "academic"
	ChatProject     ChatType = "project"
	ChatAchievement ChatType = "achievement"
	ChatResource    ChatType = "resource"
	ChatMentorship  ChatType = "mentorship"
)

// ChatCategory drives who may discover and join a room
type ChatCategory string

const (
	ChatCategoryAll      ChatCategory = "all"
	ChatCategoryProgram  ChatCategory = "program"
	ChatCategoryBranch   ChatCategory = "branch"
	ChatCategorySemester ChatCategory = "semester"
	ChatCategoryFaculty  ChatCategory = "faculty"
)

// MemberRole is a member's role inside a room
type MemberRole string

const (
	MemberAdmin     MemberRole = "admin"
	MemberModerator MemberRole = "moderator"
	MemberMember    MemberRole = "member"
)

// MessageType classifies a chat message
type MessageType string

const (
	MessageText        MessageType = "text"
	MessageImage       MessageType = "image"
	MessageFile        MessageType = "file"
	MessageAchievement MessageType = "achievement"
	MessageResource    MessageType = "resource"
)

// ReactionType classifies a message reaction
type ReactionType string

const (
	ReactionLike       ReactionType = "like"
	ReactionInsightful ReactionType = "insightful"
	ReactionHelpful    ReactionType = "helpful"
	ReactionMotivating ReactionType = "motivating"
)

// ChatRule is an embedded room rule
type ChatRule struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Member is embedded in its chat room and shares its lifecycle
type Member struct {
	UserID     int64      `json:"userId"`
	Role       MemberRole `json:"role"`
	JoinedAt   time.Time  `json:"joinedAt"`
	LastActive time.Time  `json:"lastActive"`
}

// Reaction is embedded in a message; at most one per user per message
type Reaction struct {
	UserID    int64        `json:"userId"`
	Type      ReactionType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
}

// MessageStats are per-message counters
type MessageStats struct {
	Views  int `json:"views"`
	Shares int `json:"shares"`
	Saves  int `json:"saves"`
}

// Message is embedded in its chat room and shares its lifecycle
type Message struct {
	ID             string       `json:"id"`
	SenderID       int64        `json:"senderId"`
	Content        string       `json:"content"`
	Type           MessageType  `json:"type"`
	FileURL        string       `json:"fileUrl,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	Reactions      []Reaction   `json:"reactions"`
	IsPinned       bool         `json:"isPinned"`
	IsAnnouncement bool         `json:"isAnnouncement"`
	Stats          MessageStats `json:"stats"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// ChatStats is the derived stats block recomputed whenever the message or
// member lists change.
type ChatStats struct {
	TotalMessages  int `json:"totalMessages"`
	ActiveMembers  int `json:"activeMembers"`
	TotalReactions int `json:"totalReactions"`
	TotalShares    int `json:"totalShares"`
}

// Chat is the room aggregate: members, messages, reactions and pinned-message
// references are embedded sub-documents, persisted and loaded as one unit.
// All mutation goes through the aggregate's methods.
type Chat struct {
	ID             int64        `json:"id" db:"id"`
	Name           string       `json:"name" db:"name"`
	Type           ChatType     `json:"type" db:"type"`
	Category       ChatCategory `json:"category" db:"category"`
	Description    string       `json:"description,omitempty" db:"description"`
	Rules          []ChatRule   `json:"rules" db:"rules"`
	Program        string       `json:"program,omitempty" db:"program"`
	Branch         string       `json:"branch,omitempty" db:"branch"`
	Semester       string       `json:"semester,omitempty" db:"semester"`
	Members        []Member     `json:"members" db:"members"`
	Messages       []Message    `json:"messages" db:"messages"`
	PinnedMessages []string     `json:"pinnedMessages" db:"pinned_messages"`
	IsActive       bool         `json:"isActive" db:"is_active"`
	Stats          ChatStats    `json:"stats" db:"stats"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time    `json:"updatedAt" db:"updated_at"`
}

// FindMember returns the membership entry for userID, or nil.
func (c *Chat) FindMember(userID int64) *Member {
	for i := range c.Members {
		if c.Members[i].UserID == userID {
			return &c.Members[i]
		}
	}
	return nil
}

// AdminCount returns the number of members holding the admin role.
func (c *Chat) AdminCount() int {
	n := 0
	for _, m := range c.Members {
		if m.Role == MemberAdmin {
			n++
		}
	}
	return n
}

// AddMember adds userID with the given role. Adding an existing member is a
// no-op. Recomputes the active-member count.
func (c *Chat) AddMember(userID int64, role MemberRole, now time.Time) {
	if c.FindMember(userID) != nil {
		return
	}
	c.Members = append(c.Members, Member{
		UserID:     userID,
		Role:       role,
		JoinedAt:   now,
		LastActive: now,
	})
	c.Stats.ActiveMembers = len(c.Members)
}

// RemoveMember removes userID from the room. Removing the last remaining
// admin is rejected: the admin role must be transferred first.
func (c *Chat) RemoveMember(userID int64) error {
	member := c.FindMember(userID)
	if member == nil {
		return apperrors.ErrNotMember
	}
	if member.Role == MemberAdmin && c.AdminCount() == 1 {
		return apperrors.ErrLastAdmin
	}

	for i := range c.Members {
		if c.Members[i].UserID == userID {
			c.Members = append(c.Members[:i], c.Members[i+1:]...)
			break
		}
	}
	c.Stats.ActiveMembers = len(c.Members)
	return nil
}

// PromoteMember sets the role of an existing member. Demoting the last
// remaining admin is rejected: the admin role must be transferred first.
func (c *Chat) PromoteMember(userID int64, role MemberRole) error {
	member := c.FindMember(userID)
	if member == nil {
		return apperrors.ErrNotMember
	}
	if member.Role == MemberAdmin && role != MemberAdmin && c.AdminCount() == 1 {
		return apperrors.ErrLastAdmin
	}
	member.Role = role
	return nil
}

// AddMessage appends a message from senderID and returns it.
// Stats are recomputed from the full message list before the aggregate is
// persisted, not incrementally.
func (c *Chat) AddMessage(senderID int64, content string, msgType MessageType, fileURL string, tags []string, isAnnouncement bool, now time.Time) *Message {
	c.Messages = append(c.Messages, Message{
		ID:             uuid.New().String(),
		SenderID:       senderID,
		Content:        content,
		Type:           msgType,
		FileURL:        fileURL,
		Tags:           tags,
		IsAnnouncement: isAnnouncement,
		CreatedAt:      now,
	})
	if member := c.FindMember(senderID); member != nil {
		member.LastActive = now
	}
	c.RecomputeStats()
	return &c.Messages[len(c.Messages)-1]
}

// FindMessage returns the embedded message with the given id, or nil.
func (c *Chat) FindMessage(messageID string) *Message {
	for i := range c.Messages {
		if c.Messages[i].ID == messageID {
			return &c.Messages[i]
		}
	}
	return nil
}

// SetReaction records userID's reaction on a message, replacing any previous
// reaction by the same user. Switching type is a remove+add, not an update.
func (c *Chat) SetReaction(messageID string, userID int64, reaction ReactionType, now time.Time) (*Message, error) {
	message := c.FindMessage(messageID)
	if message == nil {
		return nil, apperrors.ErrMessageNotFound
	}

	kept := message.Reactions[:0]
	for _, r := range message.Reactions {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	message.Reactions = append(kept, Reaction{
		UserID:    userID,
		Type:      reaction,
		CreatedAt: now,
	})
	c.RecomputeStats()
	return message, nil
}

// TogglePin flips a message's pinned flag and keeps the room-level pinned-id
// list in sync.
func (c *Chat) TogglePin(messageID string) (*Message, error) {
	message := c.FindMessage(messageID)
	if message == nil {
		return nil, apperrors.ErrMessageNotFound
	}

	message.IsPinned = !message.IsPinned
	if message.IsPinned {
		c.PinnedMessages = append(c.PinnedMessages, message.ID)
	} else {
		kept := c.PinnedMessages[:0]
		for _, id := range c.PinnedMessages {
			if id != message.ID {
				kept = append(kept, id)
			}
		}
		c.PinnedMessages = kept
	}
	return message, nil
}

// RecomputeStats rebuilds the derived stats block from the full embedded
// lists.
func (c *Chat) RecomputeStats() {
	c.Stats.TotalMessages = len(c.Messages)
	c.Stats.ActiveMembers = len(c.Members)

	reactions := 0
	shares := 0
	for _, m := range c.Messages {
		reactions += len(m.Reactions)
		shares += m.Stats.Shares
	}
	c.Stats.TotalReactions = reactions
	c.Stats.TotalShares = shares
}

// VisibleTo reports whether user may discover and join this room. Category
// narrows visibility as a widening match on the user's academic attributes:
// program requires program equality, branch requires program+branch,
// semester requires program+branch+semester. Faculty rooms are visible to
// faculty and admin users only. Admins see everything.
func (c *Chat) VisibleTo(user *User) bool {
	if !c.IsActive {
		return false
	}
	if user.Role == RoleAdmin {
		return true
	}

	switch c.Category {
	case ChatCategoryAll:
		return true
	case ChatCategoryFaculty:
		return user.Role == RoleFaculty
	case ChatCategoryProgram:
		return c.Program == user.Program
	case ChatCategoryBranch:
		return c.Program == user.Program && c.Branch == user.Branch
	case ChatCategorySemester:
		if user.Semester == nil {
			return false
		}
		return c.Program == user.Program && c.Branch == user.Branch &&
			c.Semester == strconv.Itoa(*user.Semester)
	}
	return false
}

package dto

import (
	"time"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
)

// CreateChatRequest creates a new chat room. Program, branch and semester are
// required by the service depending on the chosen category.
type CreateChatRequest struct {
	Name        string            `json:"name" binding:"required"`
	Type        string            `json:"type" binding:"required,oneof=general academic project achievement resource mentorship"`
	Category    string            `json:"category" binding:"required,oneof=all program branch semester faculty"`
	Description string            `json:"description"`
	Rules       []models.ChatRule `json:"rules"`
	Program     string            `json:"program"`
	Branch      string            `json:"branch"`
	Semester    string            `json:"semester"`
}

// SendMessageRequest appends a message to a chat room
type SendMessageRequest struct {
	Content        string   `json:"content" binding:"required"`
	Type           string   `json:"type" binding:"required,oneof=text image file achievement resource"`
	FileURL        string   `json:"fileUrl"`
	Tags           []string `json:"tags"`
	IsAnnouncement bool     `json:"isAnnouncement"`
}

// ReactionRequest sets the caller's reaction on a message
type ReactionRequest struct {
	Type string `json:"type" binding:"required,oneof=like insightful helpful motivating"`
}

// PromoteMemberRequest changes a member's role in a chat room
type PromoteMemberRequest struct {
	UserID int64  `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=admin moderator member"`
}

// MemberResponse represents an embedded chat member
type MemberResponse struct {
	User       *UserBasicResponse `json:"user,omitempty"`
	UserID     int64              `json:"userId"`
	Role       string             `json:"role"`
	JoinedAt   time.Time          `json:"joinedAt"`
	LastActive time.Time          `json:"lastActive"`
}

// ReactionResponse represents an embedded reaction
type ReactionResponse struct {
	UserID    int64     `json:"userId"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageResponse represents an embedded chat message
type MessageResponse struct {
	ID             string              `json:"id"`
	Sender         *UserBasicResponse  `json:"sender,omitempty"`
	SenderID       int64               `json:"senderId"`
	Content        string              `json:"content"`
	Type           string              `json:"type"`
	FileURL        string              `json:"fileUrl,omitempty"`
	Tags           []string            `json:"tags,omitempty"`
	Reactions      []ReactionResponse  `json:"reactions"`
	IsPinned       bool                `json:"isPinned"`
	IsAnnouncement bool                `json:"isAnnouncement"`
	Stats          models.MessageStats `json:"stats"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// ChatResponse represents a chat room returned to clients
type ChatResponse struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Type           string            `json:"type"`
	Category       string            `json:"category"`
	Description    string            `json:"description,omitempty"`
	Rules          []models.ChatRule `json:"rules"`
	Program        string            `json:"program,omitempty"`
	Branch         string            `json:"branch,omitempty"`
	Semester       string            `json:"semester,omitempty"`
	Members        []MemberResponse  `json:"members"`
	Messages       []MessageResponse `json:"messages,omitempty"`
	PinnedMessages []string          `json:"pinnedMessages"`
	IsActive       bool              `json:"isActive"`
	Stats          models.ChatStats  `json:"stats"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// NewMessageResponseFromModel maps an embedded message to its response form,
// resolving the sender through the supplied lookup.
func NewMessageResponseFromModel(message *models.Message, users map[int64]*models.User) MessageResponse {
	reactions := make([]ReactionResponse, 0, len(message.Reactions))
	for _, r := range message.Reactions {
		reactions = append(reactions, ReactionResponse{
			UserID:    r.UserID,
			Type:      string(r.Type),
			CreatedAt: r.CreatedAt,
		})
	}

	return MessageResponse{
		ID:             message.ID,
		Sender:         NewUserBasicResponse(users[message.SenderID]),
		SenderID:       message.SenderID,
		Content:        message.Content,
		Type:           string(message.Type),
		FileURL:        message.FileURL,
		Tags:           message.Tags,
		Reactions:      reactions,
		IsPinned:       message.IsPinned,
		IsAnnouncement: message.IsAnnouncement,
		Stats:          message.Stats,
		CreatedAt:      message.CreatedAt,
	}
}

// NewChatResponse maps a chat aggregate to its response representation.
// Messages are included only when includeMessages is set; the room list view
// omits them.
func NewChatResponse(chat *models.Chat, users map[int64]*models.User, includeMessages bool) ChatResponse {
	members := make([]MemberResponse, 0, len(chat.Members))
	for _, m := range chat.Members {
		members = append(members, MemberResponse{
			User:       NewUserBasicResponse(users[m.UserID]),
			UserID:     m.UserID,
			Role:       string(m.Role),
			JoinedAt:   m.JoinedAt,
			LastActive: m.LastActive,
		})
	}

	resp := ChatResponse{
		ID:             chat.ID,
		Name:           chat.Name,
		Type:           string(chat.Type),
		Category:       string(chat.Category),
		Description:    chat.Description,
		Rules:          chat.Rules,
		Program:        chat.Program,
		Branch:         chat.Branch,
		Semester:       chat.Semester,
		Members:        members,
		PinnedMessages: chat.PinnedMessages,
		IsActive:       chat.IsActive,
		Stats:          chat.Stats,
		CreatedAt:      chat.CreatedAt,
		UpdatedAt:      chat.UpdatedAt,
	}

	if includeMessages {
		resp.Messages = make([]MessageResponse, 0, len(chat.Messages))
		for i := range chat.Messages {
			resp.Messages = append(resp.Messages, NewMessageResponseFromModel(&chat.Messages[i], users))
		}
	}

	return resp
}

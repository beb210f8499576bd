package dto

import (
	"time"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
)

// CreateDiscussionRequest starts a new discussion thread
type CreateDiscussionRequest struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	Category    string   `json:"category" binding:"required,oneof=general academic technical other"`
	IsAnonymous bool     `json:"isAnonymous"`
	Tags        []string `json:"tags"`
}

// UpdateDiscussionRequest represents a partial discussion update
type UpdateDiscussionRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category" binding:"omitempty,oneof=general academic technical other"`
	Tags     []string `json:"tags"`
}

// CreateCommentRequest adds a comment to a discussion
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateCommentRequest replaces a comment's content
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse represents an embedded comment
type CommentResponse struct {
	ID        string             `json:"id"`
	Content   string             `json:"content"`
	Author    *UserBasicResponse `json:"author,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// DiscussionResponse represents a discussion thread returned to clients.
// The author reference is withheld for anonymous threads.
type DiscussionResponse struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	Category    string             `json:"category"`
	Author      *UserBasicResponse `json:"author,omitempty"`
	IsAnonymous bool               `json:"isAnonymous"`
	Tags        []string           `json:"tags"`
	Views       int                `json:"views"`
	Upvotes     []int64            `json:"upvotes"`
	Comments    []CommentResponse  `json:"comments"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// DiscussionListResponse is the paginated discussion listing
type DiscussionListResponse struct {
	Discussions []DiscussionResponse `json:"discussions"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// NewDiscussionResponse maps a discussion model to its response
// representation, resolving comment authors through the supplied lookup.
func NewDiscussionResponse(discussion *models.Discussion, users map[int64]*models.User) DiscussionResponse {
	resp := DiscussionResponse{
		ID:          discussion.ID,
		Title:       discussion.Title,
		Content:     discussion.Content,
		Category:    string(discussion.Category),
		IsAnonymous: discussion.IsAnonymous,
		Tags:        discussion.Tags,
		Views:       discussion.Views,
		Upvotes:     discussion.Upvotes,
		Comments:    make([]CommentResponse, 0, len(discussion.Comments)),
		CreatedAt:   discussion.CreatedAt,
		UpdatedAt:   discussion.UpdatedAt,
	}

	if !discussion.IsAnonymous {
		if discussion.Author != nil {
			resp.Author = NewUserBasicResponse(discussion.Author)
		} else if user, ok := users[discussion.AuthorID]; ok {
			resp.Author = NewUserBasicResponse(user)
		}
	}

	for _, comment := range discussion.Comments {
		resp.Comments = append(resp.Comments, CommentResponse{
			ID:        comment.ID,
			Content:   comment.Content,
			Author:    NewUserBasicResponse(users[comment.AuthorID]),
			CreatedAt: comment.CreatedAt,
			UpdatedAt: comment.UpdatedAt,
		})
	}

	return resp
}

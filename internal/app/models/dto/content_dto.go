package dto

import (
	"time"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
)

// CreateContentRequest is the multipart form carried by a content upload.
// The file part, if any, travels separately in the multipart body.
type CreateContentRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
	Type        string `form:"type" binding:"required,oneof=document video image link"`
	Category    string `form:"category" binding:"required,oneof=academic research project other"`
	Tags        string `form:"tags"` // JSON-encoded string array, matching the client form
}

// UpdateContentRequest represents a partial content update
type UpdateContentRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type" binding:"omitempty,oneof=document video image link"`
	Category    string   `json:"category" binding:"omitempty,oneof=academic research project other"`
	Tags        []string `json:"tags"`
}

// ContentResponse represents a content item returned to clients
type ContentResponse struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Type        string             `json:"type"`
	Category    string             `json:"category"`
	FileURL     *string            `json:"fileUrl,omitempty"`
	Tags        []string           `json:"tags"`
	Author      *UserBasicResponse `json:"author,omitempty"`
	Views       int                `json:"views"`
	Downloads   int                `json:"downloads"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ContentListResponse is the paginated content listing
type ContentListResponse struct {
	Contents   []ContentResponse `json:"contents"`
	Pagination PaginationInfo    `json:"pagination"`
}

// NewContentResponse maps a content model to its response representation
func NewContentResponse(content *models.Content) ContentResponse {
	return ContentResponse{
		ID:          content.ID,
		Title:       content.Title,
		Description: content.Description,
		Type:        string(content.Type),
		Category:    string(content.Category),
		FileURL:     content.FileURL,
		Tags:        content.Tags,
		Author:      NewUserBasicResponse(content.Author),
		Views:       content.Views,
		Downloads:   content.Downloads,
		CreatedAt:   content.CreatedAt,
		UpdatedAt:   content.UpdatedAt,
	}
}

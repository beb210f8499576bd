package models

import "time"

// ContentType represents the kind of shared content
type ContentType string

const (
	ContentDocument ContentType = "document"
	ContentVideo    ContentType = "video"
	ContentImage    ContentType = "image"
	ContentLink     ContentType = "link"
)

// ContentCategory classifies shared content
type ContentCategory string

const (
	ContentCategoryAcademic ContentCategory = "academic"
	ContentCategoryResearch ContentCategory = "research"
	ContentCategoryProject  ContentCategory = "project"
	ContentCategoryOther    ContentCategory = "other"
)

// Content defines a shared content item based on the 'contents' table
type Content struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Type        ContentType     `json:"type" db:"type"`
	Category    ContentCategory `json:"category" db:"category"`
	FileURL     *string         `json:"fileUrl,omitempty" db:"file_url"`
	Tags        []string        `json:"tags" db:"tags"`
	AuthorID    int64           `json:"authorId" db:"author_id"`
	Views       int             `json:"views" db:"views"`
	Downloads   int             `json:"downloads" db:"downloads"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
}

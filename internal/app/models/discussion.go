package models

import (
	"time"

	"github.com/google/uuid"
)

// DiscussionCategory classifies a discussion thread
type DiscussionCategory string

const (
	DiscussionGeneral   DiscussionCategory = "general"
	DiscussionAcademic  DiscussionCategory = "academic"
	DiscussionTechnical DiscussionCategory = "technical"
	DiscussionOther     DiscussionCategory = "other"
)

// Comment is embedded in its discussion and shares its lifecycle
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  int64     `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Discussion defines a discussion thread based on the 'discussions' table.
// Comments and the upvoter set are embedded sub-documents owned by the thread.
type Discussion struct {
	ID          int64              `json:"id" db:"id"`
	Title       string             `json:"title" db:"title"`
	Content     string             `json:"content" db:"content"`
	Category    DiscussionCategory `json:"category" db:"category"`
	AuthorID    int64              `json:"authorId" db:"author_id"`
	IsAnonymous bool               `json:"isAnonymous" db:"is_anonymous"`
	Tags        []string           `json:"tags" db:"tags"`
	Views       int                `json:"views" db:"views"`
	Upvotes     []int64            `json:"upvotes" db:"upvotes"`
	Comments    []Comment          `json:"comments" db:"comments"`
	CreatedAt   time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
}

// AddComment appends a new comment and returns it.
func (d *Discussion) AddComment(authorID int64, content string, now time.Time) *Comment {
	d.Comments = append(d.Comments, Comment{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return &d.Comments[len(d.Comments)-1]
}

// FindComment returns the embedded comment with the given id, or nil.
func (d *Discussion) FindComment(commentID string) *Comment {
	for i := range d.Comments {
		if d.Comments[i].ID == commentID {
			return &d.Comments[i]
		}
	}
	return nil
}

// RemoveComment deletes the embedded comment with the given id.
// Returns false if no such comment exists.
func (d *Discussion) RemoveComment(commentID string) bool {
	for i := range d.Comments {
		if d.Comments[i].ID == commentID {
			d.Comments = append(d.Comments[:i], d.Comments[i+1:]...)
			return true
		}
	}
	return false
}

// Upvote records an upvote by userID. Upvoting is additive only; a repeated
// upvote by the same user is a no-op. Returns whether the set changed.
func (d *Discussion) Upvote(userID int64) bool {
	for _, id := range d.Upvotes {
		if id == userID {
			return false
		}
	}
	d.Upvotes = append(d.Upvotes, userID)
	return true
}

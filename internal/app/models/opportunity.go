package models

import (
	"time"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
)

// OpportunityType describes what kind of opening is posted
type OpportunityType string

const (
	OpportunityInternship  OpportunityType = "internship"
	OpportunityJob         OpportunityType = "job"
	OpportunityWorkshop    OpportunityType = "workshop"
	OpportunityCompetition OpportunityType = "competition"
	OpportunityOther       OpportunityType = "other"
)

// OpportunityStatus is the lifecycle state of an opportunity
type OpportunityStatus string

const (
	OpportunityOpen      OpportunityStatus = "open"
	OpportunityClosed    OpportunityStatus = "closed"
	OpportunityCompleted OpportunityStatus = "completed"
)

// ParticipantStatus is the per-applicant state
type ParticipantStatus string

const (
	ParticipantApplied  ParticipantStatus = "applied"
	ParticipantSelected ParticipantStatus = "selected"
	ParticipantRejected ParticipantStatus = "rejected"
)

// ValidParticipantStatus reports whether s is a known participant status.
func ValidParticipantStatus(s string) bool {
	switch ParticipantStatus(s) {
	case ParticipantApplied, ParticipantSelected, ParticipantRejected:
		return true
	}
	return false
}

// Participant is embedded in its opportunity and shares its lifecycle
type Participant struct {
	UserID    int64             `json:"userId"`
	Status    ParticipantStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
}

// Opportunity defines an opportunity posting based on the 'opportunities' table.
// The participant list is an embedded sub-document owned by the posting.
type Opportunity struct {
	ID              int64             `json:"id" db:"id"`
	Title           string            `json:"title" db:"title"`
	Description     string            `json:"description" db:"description"`
	Type            OpportunityType   `json:"type" db:"type"`
	Program         string            `json:"program" db:"program"`
	Branch          string            `json:"branch" db:"branch"`
	Deadline        time.Time         `json:"deadline" db:"deadline"`
	Requirements    []string          `json:"requirements" db:"requirements"`
	Location        string            `json:"location,omitempty" db:"location"`
	Stipend         string            `json:"stipend,omitempty" db:"stipend"`
	Duration        string            `json:"duration,omitempty" db:"duration"`
	MaxParticipants *int              `json:"maxParticipants,omitempty" db:"max_participants"`
	Status          OpportunityStatus `json:"status" db:"status"`
	OrganizerID     int64             `json:"organizerId" db:"organizer_id"`
	Participants    []Participant     `json:"participants" db:"participants"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time         `json:"updatedAt" db:"updated_at"`

	// Related entities
	Organizer *User `json:"organizer,omitempty"`
}

// HasApplied reports whether userID already appears in the participant list.
func (o *Opportunity) HasApplied(userID int64) bool {
	for _, p := range o.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// Apply validates and appends an application by userID.
// Checks run in order: open status, duplicate application, capacity.
func (o *Opportunity) Apply(userID int64, now time.Time) error {
	if o.Status != OpportunityOpen {
		return apperrors.ErrOpportunityClosed
	}
	if o.HasApplied(userID) {
		return apperrors.ErrAlreadyApplied
	}
	if o.MaxParticipants != nil && len(o.Participants) >= *o.MaxParticipants {
		return apperrors.ErrCapacityReached
	}

	o.Participants = append(o.Participants, Participant{
		UserID:    userID,
		Status:    ParticipantApplied,
		AppliedAt: now,
	})
	return nil
}

// FindParticipant returns the embedded participant entry for userID, or nil.
func (o *Opportunity) FindParticipant(userID int64) *Participant {
	for i := range o.Participants {
		if o.Participants[i].UserID == userID {
			return &o.Participants[i]
		}
	}
	return nil
}

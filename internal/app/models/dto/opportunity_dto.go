package dto

import (
	"time"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
)

// CreateOpportunityRequest posts a new opportunity
type CreateOpportunityRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description" binding:"required"`
	Type            string    `json:"type" binding:"required,oneof=internship job workshop competition other"`
	Program         string    `json:"program" binding:"required"`
	Branch          string    `json:"branch" binding:"required"`
	Deadline        time.Time `json:"deadline" binding:"required"`
	Requirements    []string  `json:"requirements" binding:"required"`
	Location        string    `json:"location"`
	Stipend         string    `json:"stipend"`
	Duration        string    `json:"duration"`
	MaxParticipants *int      `json:"maxParticipants" binding:"omitempty,min=1"`
}

// UpdateOpportunityRequest represents a partial opportunity update
type UpdateOpportunityRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Type            string     `json:"type" binding:"omitempty,oneof=internship job workshop competition other"`
	Program         string     `json:"program"`
	Branch          string     `json:"branch"`
	Deadline        *time.Time `json:"deadline"`
	Requirements    []string   `json:"requirements"`
	Location        string     `json:"location"`
	Stipend         string     `json:"stipend"`
	Duration        string     `json:"duration"`
	MaxParticipants *int       `json:"maxParticipants" binding:"omitempty,min=1"`
	Status          string     `json:"status" binding:"omitempty,oneof=open closed completed"`
}

// UpdateParticipantRequest sets a participant's status
type UpdateParticipantRequest struct {
	Status string `json:"status" binding:"required,oneof=applied selected rejected"`
}

// ParticipantResponse represents an embedded participant entry
type ParticipantResponse struct {
	User      *UserBasicResponse `json:"user,omitempty"`
	UserID    int64              `json:"userId"`
	Status    string             `json:"status"`
	AppliedAt time.Time          `json:"appliedAt"`
}

// OpportunityResponse represents an opportunity returned to clients
type OpportunityResponse struct {
	ID              int64                 `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Type            string                `json:"type"`
	Program         string                `json:"program"`
	Branch          string                `json:"branch"`
	Deadline        time.Time             `json:"deadline"`
	Requirements    []string              `json:"requirements"`
	Location        string                `json:"location,omitempty"`
	Stipend         string                `json:"stipend,omitempty"`
	Duration        string                `json:"duration,omitempty"`
	MaxParticipants *int                  `json:"maxParticipants,omitempty"`
	Status          string                `json:"status"`
	Organizer       *UserBasicResponse    `json:"organizer,omitempty"`
	Participants    []ParticipantResponse `json:"participants"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// OpportunityListResponse is the paginated opportunity listing
type OpportunityListResponse struct {
	Opportunities []OpportunityResponse `json:"opportunities"`
	Pagination    PaginationInfo        `json:"pagination"`
}

// NewOpportunityResponse maps an opportunity model to its response
// representation, resolving participant users through the supplied lookup.
func NewOpportunityResponse(opportunity *models.Opportunity, users map[int64]*models.User) OpportunityResponse {
	resp := OpportunityResponse{
		ID:              opportunity.ID,
		Title:           opportunity.Title,
		Description:     opportunity.Description,
		Type:            string(opportunity.Type),
		Program:         opportunity.Program,
		Branch:          opportunity.Branch,
		Deadline:        opportunity.Deadline,
		Requirements:    opportunity.Requirements,
		Location:        opportunity.Location,
		Stipend:         opportunity.Stipend,
		Duration:        opportunity.Duration,
		MaxParticipants: opportunity.MaxParticipants,
		Status:          string(opportunity.Status),
		Participants:    make([]ParticipantResponse, 0, len(opportunity.Participants)),
		CreatedAt:       opportunity.CreatedAt,
		UpdatedAt:       opportunity.UpdatedAt,
	}

	if opportunity.Organizer != nil {
		resp.Organizer = NewUserBasicResponse(opportunity.Organizer)
	} else if user, ok := users[opportunity.OrganizerID]; ok {
		resp.Organizer = NewUserBasicResponse(user)
	}

	for _, p := range opportunity.Participants {
		resp.Participants = append(resp.Participants, ParticipantResponse{
			User:      NewUserBasicResponse(users[p.UserID]),
			UserID:    p.UserID,
			Status:    string(p.Status),
			AppliedAt: p.AppliedAt,
		})
	}

	return resp
}

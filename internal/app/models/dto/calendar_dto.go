package dto

import (
	"time"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
)

// CreateEventRequest schedules a new calendar event
type CreateEventRequest struct {
	Title             string     `json:"title" binding:"required"`
	Description       string     `json:"description" binding:"required"`
	StartDate         time.Time  `json:"startDate" binding:"required"`
	EndDate           time.Time  `json:"endDate" binding:"required"`
	Type              string     `json:"type" binding:"required,oneof=academic fest holiday exam other"`
	Category          string     `json:"category" binding:"required,oneof=all student faculty admin"`
	Program           string     `json:"program"`
	Branch            string     `json:"branch"`
	Semester          *int       `json:"semester" binding:"omitempty,min=1,max=8"`
	Location          string     `json:"location"`
	IsRecurring       bool       `json:"isRecurring"`
	RecurrencePattern string     `json:"recurrencePattern" binding:"omitempty,oneof=daily weekly monthly yearly"`
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate"`
}

// UpdateEventRequest represents a partial event update
type UpdateEventRequest struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	Type              string     `json:"type" binding:"omitempty,oneof=academic fest holiday exam other"`
	Category          string     `json:"category" binding:"omitempty,oneof=all student faculty admin"`
	Program           string     `json:"program"`
	Branch            string     `json:"branch"`
	Semester          *int       `json:"semester" binding:"omitempty,min=1,max=8"`
	Location          string     `json:"location"`
	IsRecurring       *bool      `json:"isRecurring"`
	RecurrencePattern string     `json:"recurrencePattern" binding:"omitempty,oneof=daily weekly monthly yearly"`
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate"`
}

// EventResponse represents a calendar event returned to clients
type EventResponse struct {
	ID                int64              `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	StartDate         time.Time          `json:"startDate"`
	EndDate           time.Time          `json:"endDate"`
	Type              string             `json:"type"`
	Category          string             `json:"category"`
	Program           string             `json:"program,omitempty"`
	Branch            string             `json:"branch,omitempty"`
	Semester          *int               `json:"semester,omitempty"`
	Location          string             `json:"location,omitempty"`
	IsRecurring       bool               `json:"isRecurring"`
	RecurrencePattern string             `json:"recurrencePattern,omitempty"`
	RecurrenceEndDate *time.Time         `json:"recurrenceEndDate,omitempty"`
	Organizer         *UserBasicResponse `json:"organizer,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// EventListResponse is the paginated event listing
type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Pagination PaginationInfo  `json:"pagination"`
}

// NewEventResponse maps a calendar event model to its response representation
func NewEventResponse(event *models.CalendarEvent) EventResponse {
	resp := EventResponse{
		ID:                event.ID,
		Title:             event.Title,
		Description:       event.Description,
		StartDate:         event.StartDate,
		EndDate:           event.EndDate,
		Type:              string(event.Type),
		Category:          string(event.Category),
		Program:           event.Program,
		Branch:            event.Branch,
		Semester:          event.Semester,
		Location:          event.Location,
		IsRecurring:       event.IsRecurring,
		RecurrenceEndDate: event.RecurrenceEndDate,
		Organizer:         NewUserBasicResponse(event.Organizer),
		CreatedAt:         event.CreatedAt,
		UpdatedAt:         event.UpdatedAt,
	}
	if event.RecurrencePattern != nil {
		resp.RecurrencePattern = string(*event.RecurrencePattern)
	}
	return resp
}

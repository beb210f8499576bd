package models

import "time"

// EventType classifies a calendar event
type EventType string

const (
	EventAcademic EventType = "academic"
	EventFest     EventType = "fest"
	EventHoliday  EventType = "holiday"
	EventExam     EventType = "exam"
	EventOther    EventType = "other"
)

// EventCategory is the audience an event addresses
type EventCategory string

const (
	EventCategoryAll     EventCategory = "all"
	EventCategoryStudent EventCategory = "student"
	EventCategoryFaculty EventCategory = "faculty"
	EventCategoryAdmin   EventCategory = "admin"
)

// RecurrencePattern describes how a recurring event repeats
type RecurrencePattern string

const (
	RecurDaily   RecurrencePattern = "daily"
	RecurWeekly  RecurrencePattern = "weekly"
	RecurMonthly RecurrencePattern = "monthly"
	RecurYearly  RecurrencePattern = "yearly"
)

// CalendarEvent defines an event based on the 'calendar_events' table
type CalendarEvent struct {
	ID                int64              `json:"id" db:"id"`
	Title             string             `json:"title" db:"title"`
	Description       string             `json:"description" db:"description"`
	StartDate         time.Time          `json:"startDate" db:"start_date"`
	EndDate           time.Time          `json:"endDate" db:"end_date"`
	Type              EventType          `json:"type" db:"type"`
	Category          EventCategory      `json:"category" db:"category"`
	Program           string             `json:"program,omitempty" db:"program"`
	Branch            string             `json:"branch,omitempty" db:"branch"`
	Semester          *int               `json:"semester,omitempty" db:"semester"`
	Location          string             `json:"location,omitempty" db:"location"`
	IsRecurring       bool               `json:"isRecurring" db:"is_recurring"`
	RecurrencePattern *RecurrencePattern `json:"recurrencePattern,omitempty" db:"recurrence_pattern"`
	RecurrenceEndDate *time.Time         `json:"recurrenceEndDate,omitempty" db:"recurrence_end_date"`
	OrganizerID       int64              `json:"organizerId" db:"organizer_id"`
	CreatedAt         time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time          `json:"updatedAt" db:"updated_at"`

	// Related entities
	Organizer *User `json:"organizer,omitempty"`
}

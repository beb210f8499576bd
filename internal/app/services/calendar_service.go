package services

import (
	"context"

	"github.com/rs/zerolog"

	appAuth "github.com/Shyam-123pandey/NITM-content-hub/internal/app/auth"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models/dto"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/repositories"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/helpers"
)

// CalendarService defines the interface for calendar event operations
type CalendarService interface {
	GetAllEvents(ctx context.Context, filter repositories.EventFilter, page, pageSize int) (*dto.EventListResponse, error)
	GetEventByID(ctx context.Context, id int64) (*dto.EventResponse, error)
	CreateEvent(ctx context.Context, userID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, userID, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, userID, id int64) error
}

// calendarServiceImpl implements CalendarService
type calendarServiceImpl struct {
	calendarRepo *repositories.CalendarRepository
	userRepo     *repositories.UserRepository
	authzService *appAuth.AuthorizationService
	logger       zerolog.Logger
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(
	calendarRepo *repositories.CalendarRepository,
	userRepo *repositories.UserRepository,
	authzService *appAuth.AuthorizationService,
	logger zerolog.Logger,
) CalendarService {
	return &calendarServiceImpl{
		calendarRepo: calendarRepo,
		userRepo:     userRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// GetAllEvents retrieves calendar events with filtering and pagination
func (s *calendarServiceImpl) GetAllEvents(ctx context.Context, filter repositories.EventFilter, page, pageSize int) (*dto.EventListResponse, error) {
	events, total, err := s.calendarRepo.GetAll(ctx, filter, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list events")
		return nil, err
	}

	ids := make([]int64, 0, len(events))
	for i := range events {
		ids = append(ids, events[i].OrganizerID)
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		events[i].Organizer = users[events[i].OrganizerID]
		responses = append(responses, dto.NewEventResponse(&events[i]))
	}

	return &dto.EventListResponse{
		Events:     responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetEventByID retrieves a single calendar event
func (s *calendarServiceImpl) GetEventByID(ctx context.Context, id int64) (*dto.EventResponse, error) {
	event, err := s.calendarRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.attachOrganizer(ctx, event)
	resp := dto.NewEventResponse(event)
	return &resp, nil
}

// CreateEvent schedules a new event; faculty and admins only. Recurring
// events must carry a recurrence pattern.
func (s *calendarServiceImpl) CreateEvent(ctx context.Context, userID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if err := s.authzService.ValidateRole(ctx, userID, models.RoleFaculty, models.RoleAdmin); err != nil {
		return nil, err
	}

	if req.EndDate.Before(req.StartDate) {
		return nil, apperrors.NewBadRequestError("end date must not precede start date")
	}
	if req.IsRecurring && req.RecurrencePattern == "" {
		return nil, apperrors.NewBadRequestError("recurring events require a recurrence pattern")
	}

	event := &models.CalendarEvent{
		Title:             req.Title,
		Description:       req.Description,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Type:              models.EventType(req.Type),
		Category:          models.EventCategory(req.Category),
		Program:           req.Program,
		Branch:            req.Branch,
		Semester:          req.Semester,
		Location:          req.Location,
		IsRecurring:       req.IsRecurring,
		RecurrenceEndDate: req.RecurrenceEndDate,
		OrganizerID:       userID,
	}
	if req.RecurrencePattern != "" {
		pattern := models.RecurrencePattern(req.RecurrencePattern)
		event.RecurrencePattern = &pattern
	}

	if err := s.calendarRepo.Create(ctx, event); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create event")
		return nil, err
	}

	s.logger.Info().
		Int64("eventID", event.ID).
		Int64("userID", userID).
		Str("type", string(event.Type)).
		Msg("Event created")

	s.attachOrganizer(ctx, event)
	resp := dto.NewEventResponse(event)
	return &resp, nil
}

// UpdateEvent applies a partial update; only the organizer or an admin
func (s *calendarServiceImpl) UpdateEvent(ctx context.Context, userID, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.calendarRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateOwnerOrAdmin(ctx, userID, event.OrganizerID); err != nil {
		return nil, err
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.Type != "" {
		event.Type = models.EventType(req.Type)
	}
	if req.Category != "" {
		event.Category = models.EventCategory(req.Category)
	}
	if req.Program != "" {
		event.Program = req.Program
	}
	if req.Branch != "" {
		event.Branch = req.Branch
	}
	if req.Semester != nil {
		event.Semester = req.Semester
	}
	if req.Location != "" {
		event.Location = req.Location
	}
	if req.IsRecurring != nil {
		event.IsRecurring = *req.IsRecurring
	}
	if req.RecurrencePattern != "" {
		pattern := models.RecurrencePattern(req.RecurrencePattern)
		event.RecurrencePattern = &pattern
	}
	if req.RecurrenceEndDate != nil {
		event.RecurrenceEndDate = req.RecurrenceEndDate
	}

	if event.EndDate.Before(event.StartDate) {
		return nil, apperrors.NewBadRequestError("end date must not precede start date")
	}

	if err := s.calendarRepo.Update(ctx, event); err != nil {
		s.logger.Error().Err(err).Int64("eventID", id).Msg("Failed to update event")
		return nil, err
	}

	s.attachOrganizer(ctx, event)
	resp := dto.NewEventResponse(event)
	return &resp, nil
}

// DeleteEvent removes an event; only the organizer or an admin
func (s *calendarServiceImpl) DeleteEvent(ctx context.Context, userID, id int64) error {
	event, err := s.calendarRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authzService.ValidateOwnerOrAdmin(ctx, userID, event.OrganizerID); err != nil {
		return err
	}

	if err := s.calendarRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("eventID", id).Msg("Failed to delete event")
		return err
	}

	s.logger.Info().Int64("eventID", id).Int64("userID", userID).Msg("Event deleted")
	return nil
}

func (s *calendarServiceImpl) attachOrganizer(ctx context.Context, event *models.CalendarEvent) {
	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("organizerID", event.OrganizerID).Msg("Failed to load event organizer")
		return
	}
	event.Organizer = organizer
}

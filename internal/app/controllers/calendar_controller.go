package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models/dto"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/repositories"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/services"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/middleware"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/helpers"
)

// CalendarController handles academic calendar endpoints
type CalendarController struct {
	calendarService services.CalendarService
	logger          zerolog.Logger
}

// NewCalendarController creates a new CalendarController
func NewCalendarController(calendarService services.CalendarService, logger zerolog.Logger) *CalendarController {
	return &CalendarController{
		calendarService: calendarService,
		logger:          logger,
	}
}

// GetAllEvents lists calendar events with optional filters
func (c *CalendarController) GetAllEvents(ctx *gin.Context) {
	filter := repositories.EventFilter{
		Type:     optionalQuery(ctx, "type"),
		Category: optionalQuery(ctx, "category"),
		Program:  optionalQuery(ctx, "program"),
		Branch:   optionalQuery(ctx, "branch"),
		From:     optionalQueryTime(ctx, "from"),
		To:       optionalQueryTime(ctx, "to"),
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.calendarService.GetAllEvents(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetEventByID returns a single calendar event
func (c *CalendarController) GetEventByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.calendarService.GetEventByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateEvent publishes a new calendar event
func (c *CalendarController) CreateEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.calendarService.CreateEvent(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// UpdateEvent applies a partial update to a calendar event
func (c *CalendarController) UpdateEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.calendarService.UpdateEvent(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteEvent removes a calendar event
func (c *CalendarController) DeleteEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.calendarService.DeleteEvent(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Event deleted"))
}

// optionalQueryTime parses an optional RFC 3339 date or timestamp query
// parameter
func optionalQueryTime(ctx *gin.Context, name string) *time.Time {
	value := ctx.Query(name)
	if value == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return &parsed
	}
	return nil
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models/dto"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/repositories"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/services"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/middleware"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/helpers"
)

// OpportunityController handles opportunity board endpoints
type OpportunityController struct {
	opportunityService services.OpportunityService
	logger             zerolog.Logger
}

// NewOpportunityController creates a new OpportunityController
func NewOpportunityController(opportunityService services.OpportunityService, logger zerolog.Logger) *OpportunityController {
	return &OpportunityController{
		opportunityService: opportunityService,
		logger:             logger,
	}
}

// GetAllOpportunities lists opportunities with optional filters
func (c *OpportunityController) GetAllOpportunities(ctx *gin.Context) {
	filter := repositories.OpportunityFilter{
		Type:        optionalQuery(ctx, "type"),
		Status:      optionalQuery(ctx, "status"),
		Program:     optionalQuery(ctx, "program"),
		Branch:      optionalQuery(ctx, "branch"),
		OrganizerID: optionalQueryInt64(ctx, "organizerId"),
		Search:      optionalQuery(ctx, "search"),
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.opportunityService.GetAllOpportunities(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetOpportunityByID returns a single opportunity
func (c *OpportunityController) GetOpportunityByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.opportunityService.GetOpportunityByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateOpportunity publishes a new opportunity
func (c *OpportunityController) CreateOpportunity(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateOpportunityRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.opportunityService.CreateOpportunity(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// UpdateOpportunity applies a partial update to an opportunity
func (c *OpportunityController) UpdateOpportunity(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateOpportunityRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.opportunityService.UpdateOpportunity(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteOpportunity removes an opportunity
func (c *OpportunityController) DeleteOpportunity(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.opportunityService.DeleteOpportunity(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Opportunity deleted"))
}

// Apply records the caller's application to an opportunity
func (c *OpportunityController) Apply(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.opportunityService.Apply(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateParticipantStatus moves an applicant through the selection flow
func (c *OpportunityController) UpdateParticipantStatus(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	participantID, ok := parseIDParam(ctx, "participantId")
	if !ok {
		return
	}

	var req dto.UpdateParticipantRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.opportunityService.UpdateParticipantStatus(ctx, userID, id, participantID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

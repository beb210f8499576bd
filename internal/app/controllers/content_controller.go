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

// ContentController handles shared content endpoints
type ContentController struct {
	contentService services.ContentService
	logger         zerolog.Logger
}

// NewContentController creates a new ContentController
func NewContentController(contentService services.ContentService, logger zerolog.Logger) *ContentController {
	return &ContentController{
		contentService: contentService,
		logger:         logger,
	}
}

// GetAllContent lists content with optional filters
func (c *ContentController) GetAllContent(ctx *gin.Context) {
	filter := repositories.ContentFilter{
		Type:     optionalQuery(ctx, "type"),
		Category: optionalQuery(ctx, "category"),
		AuthorID: optionalQueryInt64(ctx, "authorId"),
		Tag:      optionalQuery(ctx, "tag"),
		Search:   optionalQuery(ctx, "search"),
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.contentService.GetAllContent(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetContentByID returns a single content item and records the view
func (c *ContentController) GetContentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.contentService.GetContentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateContent stores a new content item from a multipart form
func (c *ContentController) CreateContent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateContentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// The file part is optional, link-type content has no attachment
	file, err := ctx.FormFile("file")
	if err != nil {
		file = nil
	}

	resp, err := c.contentService.CreateContent(ctx, userID, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// UpdateContent applies a partial update to a content item
func (c *ContentController) UpdateContent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateContentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.contentService.UpdateContent(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteContent removes a content item and its stored file
func (c *ContentController) DeleteContent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.contentService.DeleteContent(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Content deleted"))
}

// RecordDownload increments the download counter
func (c *ContentController) RecordDownload(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.contentService.RecordDownload(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

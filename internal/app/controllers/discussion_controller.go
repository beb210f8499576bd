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

// DiscussionController handles discussion forum endpoints
type DiscussionController struct {
	discussionService services.DiscussionService
	logger            zerolog.Logger
}

// NewDiscussionController creates a new DiscussionController
func NewDiscussionController(discussionService services.DiscussionService, logger zerolog.Logger) *DiscussionController {
	return &DiscussionController{
		discussionService: discussionService,
		logger:            logger,
	}
}

// GetAllDiscussions lists discussion threads with optional filters
func (c *DiscussionController) GetAllDiscussions(ctx *gin.Context) {
	filter := repositories.DiscussionFilter{
		Category: optionalQuery(ctx, "category"),
		AuthorID: optionalQueryInt64(ctx, "authorId"),
		Tag:      optionalQuery(ctx, "tag"),
		Search:   optionalQuery(ctx, "search"),
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.discussionService.GetAllDiscussions(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetDiscussionByID returns a single thread and records the view
func (c *DiscussionController) GetDiscussionByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.discussionService.GetDiscussionByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateDiscussion starts a new thread
func (c *DiscussionController) CreateDiscussion(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateDiscussionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.discussionService.CreateDiscussion(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// UpdateDiscussion applies a partial update to a thread
func (c *DiscussionController) UpdateDiscussion(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDiscussionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.discussionService.UpdateDiscussion(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteDiscussion removes a thread
func (c *DiscussionController) DeleteDiscussion(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.discussionService.DeleteDiscussion(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Discussion deleted"))
}

// UpvoteDiscussion records the caller's upvote on a thread
func (c *DiscussionController) UpvoteDiscussion(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.discussionService.UpvoteDiscussion(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// AddComment appends a comment to a thread
func (c *DiscussionController) AddComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.discussionService.AddComment(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// UpdateComment replaces a comment's content
func (c *DiscussionController) UpdateComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	commentID := ctx.Param("commentId")
	if commentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid commentId parameter"),
		})
		return
	}

	var req dto.UpdateCommentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.discussionService.UpdateComment(ctx, userID, id, commentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteComment removes a comment from a thread
func (c *DiscussionController) DeleteComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	commentID := ctx.Param("commentId")
	if commentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid commentId parameter"),
		})
		return
	}

	resp, err := c.discussionService.DeleteComment(ctx, userID, id, commentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

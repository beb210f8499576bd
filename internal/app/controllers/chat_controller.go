package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models/dto"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/services"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/middleware"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/helpers"
)

// ChatController handles group chat endpoints
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// GetVisibleChats lists the active chats the caller can see
func (c *ChatController) GetVisibleChats(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.chatService.GetVisibleChats(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetChatByID returns a single chat room
func (c *ChatController) GetChatByID(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.chatService.GetChatByID(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateChat opens a new chat room with the caller as its admin
func (c *ChatController) CreateChat(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateChatRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.chatService.CreateChat(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// DeactivateChat retires a chat room
func (c *ChatController) DeactivateChat(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.chatService.DeactivateChat(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Chat deactivated"))
}

// JoinChat adds the caller to a chat room
func (c *ChatController) JoinChat(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.chatService.JoinChat(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// LeaveChat removes the caller from a chat room
func (c *ChatController) LeaveChat(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.chatService.LeaveChat(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Left chat"))
}

// RemoveMember evicts a member from a chat room
func (c *ChatController) RemoveMember(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	targetID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.chatService.RemoveMember(ctx, actorID, id, targetID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Member removed"))
}

// PromoteMember changes a member's role inside a chat room
func (c *ChatController) PromoteMember(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PromoteMemberRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.chatService.PromoteMember(ctx, actorID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetMessages returns a page of a chat room's message history
func (c *ChatController) GetMessages(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	messages, pagination, err := c.chatService.GetMessages(ctx, userID, id, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"messages":   messages,
		"pagination": pagination,
	}))
}

// SendMessage posts a message to a chat room
func (c *ChatController) SendMessage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.chatService.SendMessage(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ReactToMessage sets the caller's reaction on a message
func (c *ChatController) ReactToMessage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	messageID := ctx.Param("messageId")
	if messageID == "" {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid messageId parameter"),
		})
		return
	}

	var req dto.ReactionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.chatService.ReactToMessage(ctx, userID, id, messageID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// TogglePin pins or unpins a message in a chat room
func (c *ChatController) TogglePin(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	messageID := ctx.Param("messageId")
	if messageID == "" {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid messageId parameter"),
		})
		return
	}

	resp, err := c.chatService.TogglePin(ctx, userID, id, messageID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

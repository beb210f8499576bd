package ws

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/repositories"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler upgrades authenticated chat members to a WebSocket subscription.
type Handler struct {
	hub      *Hub
	chatRepo *repositories.ChatRepository
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, chatRepo *repositories.ChatRepository, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		chatRepo: chatRepo,
		logger:   logger,
	}
}

// HandleConnection upgrades the HTTP connection to a WebSocket stream for a
// chat the requesting user is a member of.
func (h *Handler) HandleConnection(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid chat ID",
		})
		return
	}

	// Set by the auth middleware
	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in context",
		})
		return
	}

	userID, ok := userIDValue.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	chat, err := h.chatRepo.GetByID(c, chatID)
	if err != nil {
		if errors.Is(err, apperrors.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Chat not found",
			})
			return
		}
		h.logger.Error().
			Err(err).
			Int64("chatID", chatID).
			Int64("userID", userID).
			Msg("Failed to load chat for stream subscription")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check membership",
		})
		return
	}

	if chat.FindMember(userID) == nil {
		c.JSON(http.StatusForbidden, gin.H{
			"error": apperrors.NewForbiddenError("User is not a member of this chat").Error(),
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("chatID", chatID).
			Int64("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
		chatID: chatID,
		logger: h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("chatID", chatID).
		Int64("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}

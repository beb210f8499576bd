package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models/dto"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/repositories"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/helpers"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/ws"
)

// ChatService defines the interface for chat room operations
type ChatService interface {
	GetVisibleChats(ctx context.Context, userID int64) ([]dto.ChatResponse, error)
	GetChatByID(ctx context.Context, userID, id int64) (*dto.ChatResponse, error)
	CreateChat(ctx context.Context, userID int64, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	DeactivateChat(ctx context.Context, userID, id int64) error
	JoinChat(ctx context.Context, userID, id int64) (*dto.ChatResponse, error)
	LeaveChat(ctx context.Context, userID, id int64) error
	RemoveMember(ctx context.Context, actorID, id, targetID int64) error
	PromoteMember(ctx context.Context, actorID, id int64, req *dto.PromoteMemberRequest) (*dto.ChatResponse, error)
	GetMessages(ctx context.Context, userID, id int64, page, pageSize int) ([]dto.MessageResponse, *dto.PaginationInfo, error)
	SendMessage(ctx context.Context, userID, id int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	ReactToMessage(ctx context.Context, userID, id int64, messageID string, req *dto.ReactionRequest) (*dto.MessageResponse, error)
	TogglePin(ctx context.Context, userID, id int64, messageID string) (*dto.MessageResponse, error)
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	chatRepo *repositories.ChatRepository
	userRepo *repositories.UserRepository
	hub      *ws.Hub
	logger   zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	chatRepo *repositories.ChatRepository,
	userRepo *repositories.UserRepository,
	hub *ws.Hub,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		chatRepo: chatRepo,
		userRepo: userRepo,
		hub:      hub,
		logger:   logger,
	}
}

// GetVisibleChats lists the active rooms the user may see, without messages
func (s *chatServiceImpl) GetVisibleChats(ctx context.Context, userID int64) ([]dto.ChatResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	chats, err := s.chatRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list chats")
		return nil, err
	}

	var visible []*models.Chat
	var memberIDs []int64
	for _, chat := range chats {
		if chat.VisibleTo(user) {
			visible = append(visible, chat)
			for _, m := range chat.Members {
				memberIDs = append(memberIDs, m.UserID)
			}
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatResponse, 0, len(visible))
	for _, chat := range visible {
		responses = append(responses, dto.NewChatResponse(chat, users, false))
	}
	return responses, nil
}

// chatReadAccess decides whether user may fetch the room. Rooms outside the
// user's scope read as not found; visible rooms the user has not joined are
// forbidden.
func chatReadAccess(chat *models.Chat, user *models.User) error {
	if !chat.VisibleTo(user) {
		return apperrors.ErrChatNotFound
	}
	if chat.FindMember(user.ID) == nil {
		return apperrors.ErrNotMember
	}
	return nil
}

// GetChatByID retrieves a room for one of its members.
func (s *chatServiceImpl) GetChatByID(ctx context.Context, userID, id int64) (*dto.ChatResponse, error) {
	user, chat, err := s.loadUserAndChat(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := chatReadAccess(chat, user); err != nil {
		return nil, err
	}

	users, err := s.loadChatUsers(ctx, chat, true)
	if err != nil {
		return nil, err
	}

	resp := dto.NewChatResponse(chat, users, true)
	return &resp, nil
}

// CreateChat creates a room with the caller as its first admin. Scoped
// categories must carry the academic attributes they scope on.
func (s *chatServiceImpl) CreateChat(ctx context.Context, userID int64, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	category := models.ChatCategory(req.Category)
	switch category {
	case models.ChatCategoryProgram:
		if req.Program == "" {
			return nil, apperrors.NewBadRequestError("program rooms require a program")
		}
	case models.ChatCategoryBranch:
		if req.Program == "" || req.Branch == "" {
			return nil, apperrors.NewBadRequestError("branch rooms require a program and branch")
		}
	case models.ChatCategorySemester:
		if req.Program == "" || req.Branch == "" || req.Semester == "" {
			return nil, apperrors.NewBadRequestError("semester rooms require a program, branch and semester")
		}
	}

	chat := &models.Chat{
		Name:        req.Name,
		Type:        models.ChatType(req.Type),
		Category:    category,
		Description: req.Description,
		Rules:       req.Rules,
		Program:     req.Program,
		Branch:      req.Branch,
		Semester:    req.Semester,
		IsActive:    true,
	}
	chat.AddMember(userID, models.MemberAdmin, time.Now())
	chat.RecomputeStats()

	if err := s.chatRepo.Create(ctx, chat); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create chat")
		return nil, err
	}

	s.logger.Info().
		Int64("chatID", chat.ID).
		Int64("userID", userID).
		Str("category", string(chat.Category)).
		Msg("Chat created")

	users, err := s.loadChatUsers(ctx, chat, false)
	if err != nil {
		return nil, err
	}
	resp := dto.NewChatResponse(chat, users, false)
	return &resp, nil
}

// DeactivateChat takes a room out of circulation. Room admins and platform
// admins only. The row is kept so history remains reachable if reactivated.
func (s *chatServiceImpl) DeactivateChat(ctx context.Context, userID, id int64) error {
	user, chat, err := s.loadUserAndChat(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.requireRoomAdmin(user, chat); err != nil {
		return err
	}

	chat.IsActive = false
	if err := s.chatRepo.Update(ctx, chat); err != nil {
		s.logger.Error().Err(err).Int64("chatID", id).Msg("Failed to deactivate chat")
		return err
	}

	s.logger.Info().Int64("chatID", id).Int64("userID", userID).Msg("Chat deactivated")
	return nil
}

// JoinChat adds the caller to a room they may see. Joining twice is a no-op.
func (s *chatServiceImpl) JoinChat(ctx context.Context, userID, id int64) (*dto.ChatResponse, error) {
	user, chat, err := s.loadUserAndChat(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !chat.VisibleTo(user) {
		return nil, apperrors.ErrChatNotFound
	}

	chat.AddMember(userID, models.MemberMember, time.Now())

	if err := s.chatRepo.Update(ctx, chat); err != nil {
		s.logger.Error().Err(err).Int64("chatID", id).Msg("Failed to save membership")
		return nil, err
	}

	s.broadcast(chat.ID, userID, "membership", map[string]interface{}{
		"action": "joined",
		"userId": userID,
	})

	users, err := s.loadChatUsers(ctx, chat, false)
	if err != nil {
		return nil, err
	}
	resp := dto.NewChatResponse(chat, users, false)
	return &resp, nil
}

// LeaveChat removes the caller from the room. The last admin cannot leave
// without transferring the role first.
func (s *chatServiceImpl) LeaveChat(ctx context.Context, userID, id int64) error {
	chat, err := s.chatRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := chat.RemoveMember(userID); err != nil {
		return err
	}

	if err := s.chatRepo.Update(ctx, chat); err != nil {
		s.logger.Error().Err(err).Int64("chatID", id).Msg("Failed to save membership removal")
		return err
	}

	s.broadcast(chat.ID, userID, "membership", map[string]interface{}{
		"action": "left",
		"userId": userID,
	})
	return nil
}

// RemoveMember ejects another member; room admins and platform admins only.
// The last-admin guard applies to the target as well.
func (s *chatServiceImpl) RemoveMember(ctx context.Context, actorID, id, targetID int64) error {
	if actorID == targetID {
		return s.LeaveChat(ctx, actorID, id)
	}

	actor, chat, err := s.loadUserAndChat(ctx, actorID, id)
	if err != nil {
		return err
	}

	if err := s.requireRoomAdmin(actor, chat); err != nil {
		return err
	}

	if err := chat.RemoveMember(targetID); err != nil {
		return err
	}

	if err := s.chatRepo.Update(ctx, chat); err != nil {
		s.logger.Error().Err(err).Int64("chatID", id).Msg("Failed to save membership removal")
		return err
	}

	s.broadcast(chat.ID, actorID, "membership", map[string]interface{}{
		"action": "removed",
		"userId": targetID,
	})
	return nil
}

// PromoteMember changes a member's role; room admins and platform admins only
func (s *chatServiceImpl) PromoteMember(ctx context.Context, actorID, id int64, req *dto.PromoteMemberRequest) (*dto.ChatResponse, error) {
	actor, chat, err := s.loadUserAndChat(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireRoomAdmin(actor, chat); err != nil {
		return nil, err
	}

	if err := chat.PromoteMember(req.UserID, models.MemberRole(req.Role)); err != nil {
		return nil, err
	}

	if err := s.chatRepo.Update(ctx, chat); err != nil {
		s.logger.Error().Err(err).Int64("chatID", id).Msg("Failed to save role change")
		return nil, err
	}

	s.logger.Info().
		Int64("chatID", id).
		Int64("actorID", actorID).
		Int64("targetID", req.UserID).
		Str("role", req.Role).
		Msg("Member role changed")

	users, err := s.loadChatUsers(ctx, chat, false)
	if err != nil {
		return nil, err
	}
	resp := dto.NewChatResponse(chat, users, false)
	return &resp, nil
}

// GetMessages returns a page of the room's messages, newest page last.
// Members only.
func (s *chatServiceImpl) GetMessages(ctx context.Context, userID, id int64, page, pageSize int) ([]dto.MessageResponse, *dto.PaginationInfo, error) {
	chat, err := s.chatRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if chat.FindMember(userID) == nil {
		return nil, nil, apperrors.ErrNotMember
	}

	total := int64(len(chat.Messages))
	start := (page - 1) * pageSize
	if start > len(chat.Messages) {
		start = len(chat.Messages)
	}
	end := start + pageSize
	if end > len(chat.Messages) {
		end = len(chat.Messages)
	}
	window := chat.Messages[start:end]

	var senderIDs []int64
	for _, m := range window {
		senderIDs = append(senderIDs, m.SenderID)
	}
	users, err := s.userRepo.GetByIDs(ctx, senderIDs)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]dto.MessageResponse, 0, len(window))
	for i := range window {
		responses = append(responses, dto.NewMessageResponseFromModel(&window[i], users))
	}

	pagination := helpers.NewPaginationInfo(total, page, pageSize)
	return responses, &pagination, nil
}

// SendMessage appends a message; members only. Subscribers are notified over
// the room's stream.
func (s *chatServiceImpl) SendMessage(ctx context.Context, userID, id int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	chat, err := s.chatRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member := chat.FindMember(userID)
	if member == nil {
		return nil, apperrors.ErrNotMember
	}
	// Announcements are reserved for room admins and moderators
	if req.IsAnnouncement && member.Role == models.MemberMember {
		return nil, apperrors.ErrPermissionDenied
	}

	message := chat.AddMessage(userID, req.Content, models.MessageType(req.Type),
		req.FileURL, req.Tags, req.IsAnnouncement, time.Now())

	if err := s.chatRepo.Update(ctx, chat); err != nil {
		s.logger.Error().Err(err).Int64("chatID", id).Msg("Failed to save message")
		return nil, err
	}

	users, err := s.userRepo.GetByIDs(ctx, []int64{userID})
	if err != nil {
		return nil, err
	}
	resp := dto.NewMessageResponseFromModel(message, users)

	s.broadcast(chat.ID, userID, "message", resp)
	return &resp, nil
}

// ReactToMessage sets the caller's reaction, replacing any previous one.
// Members only.
func (s *chatServiceImpl) ReactToMessage(ctx context.Context, userID, id int64, messageID string, req *dto.ReactionRequest) (*dto.MessageResponse, error) {
	chat, err := s.chatRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if chat.FindMember(userID) == nil {
		return nil, apperrors.ErrNotMember
	}

	message, err := chat.SetReaction(messageID, userID, models.ReactionType(req.Type), time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.chatRepo.Update(ctx, chat); err != nil {
		s.logger.Error().Err(err).Int64("chatID", id).Msg("Failed to save reaction")
		return nil, err
	}

	users, err := s.userRepo.GetByIDs(ctx, []int64{message.SenderID, userID})
	if err != nil {
		return nil, err
	}
	resp := dto.NewMessageResponseFromModel(message, users)

	s.broadcast(chat.ID, userID, "reaction", resp)
	return &resp, nil
}

// TogglePin flips a message's pinned state; room admins and moderators only
func (s *chatServiceImpl) TogglePin(ctx context.Context, userID, id int64, messageID string) (*dto.MessageResponse, error) {
	user, chat, err := s.loadUserAndChat(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	member := chat.FindMember(userID)
	if member == nil {
		return nil, apperrors.ErrNotMember
	}
	if member.Role == models.MemberMember && user.Role != models.RoleAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	message, err := chat.TogglePin(messageID)
	if err != nil {
		return nil, err
	}

	if err := s.chatRepo.Update(ctx, chat); err != nil {
		s.logger.Error().Err(err).Int64("chatID", id).Msg("Failed to save pin change")
		return nil, err
	}

	users, err := s.userRepo.GetByIDs(ctx, []int64{message.SenderID})
	if err != nil {
		return nil, err
	}
	resp := dto.NewMessageResponseFromModel(message, users)

	s.broadcast(chat.ID, userID, "pin", resp)
	return &resp, nil
}

func (s *chatServiceImpl) loadUserAndChat(ctx context.Context, userID, chatID int64) (*models.User, *models.Chat, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, nil, err
	}
	return user, chat, nil
}

// requireRoomAdmin allows room admins and platform admins
func (s *chatServiceImpl) requireRoomAdmin(user *models.User, chat *models.Chat) error {
	if user.Role == models.RoleAdmin {
		return nil
	}
	member := chat.FindMember(user.ID)
	if member == nil {
		return apperrors.ErrNotMember
	}
	if member.Role != models.MemberAdmin {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// loadChatUsers loads the member set, plus message senders when messages will
// be rendered.
func (s *chatServiceImpl) loadChatUsers(ctx context.Context, chat *models.Chat, includeSenders bool) (map[int64]*models.User, error) {
	var ids []int64
	for _, m := range chat.Members {
		ids = append(ids, m.UserID)
	}
	if includeSenders {
		for _, m := range chat.Messages {
			ids = append(ids, m.SenderID)
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int64("chatID", chat.ID).Msg("Failed to load chat users")
		return nil, err
	}
	return users, nil
}

func (s *chatServiceImpl) broadcast(chatID, senderID int64, eventType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToChat(&ws.Event{
		Type:     eventType,
		ChatID:   chatID,
		SenderID: senderID,
		Payload:  payload,
	})
	s.logger.Debug().
		Int64("chatID", chatID).
		Str("type", eventType).
		Int("subscribers", s.hub.GetClientsCount(chatID)).
		Msg("Room event queued")
}

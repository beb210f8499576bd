package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	appAuth "github.com/Shyam-123pandey/NITM-content-hub/internal/app/auth"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models/dto"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/repositories"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/helpers"
)

// DiscussionService defines the interface for discussion thread operations
type DiscussionService interface {
	GetAllDiscussions(ctx context.Context, filter repositories.DiscussionFilter, page, pageSize int) (*dto.DiscussionListResponse, error)
	GetDiscussionByID(ctx context.Context, id int64) (*dto.DiscussionResponse, error)
	CreateDiscussion(ctx context.Context, userID int64, req *dto.CreateDiscussionRequest) (*dto.DiscussionResponse, error)
	UpdateDiscussion(ctx context.Context, userID, id int64, req *dto.UpdateDiscussionRequest) (*dto.DiscussionResponse, error)
	DeleteDiscussion(ctx context.Context, userID, id int64) error
	UpvoteDiscussion(ctx context.Context, userID, id int64) (*dto.DiscussionResponse, error)
	AddComment(ctx context.Context, userID, id int64, req *dto.CreateCommentRequest) (*dto.DiscussionResponse, error)
	UpdateComment(ctx context.Context, userID, id int64, commentID string, req *dto.UpdateCommentRequest) (*dto.DiscussionResponse, error)
	DeleteComment(ctx context.Context, userID, id int64, commentID string) (*dto.DiscussionResponse, error)
}

// discussionServiceImpl implements DiscussionService
type discussionServiceImpl struct {
	discussionRepo *repositories.DiscussionRepository
	userRepo       *repositories.UserRepository
	authzService   *appAuth.AuthorizationService
	logger         zerolog.Logger
}

// NewDiscussionService creates a new DiscussionService
func NewDiscussionService(
	discussionRepo *repositories.DiscussionRepository,
	userRepo *repositories.UserRepository,
	authzService *appAuth.AuthorizationService,
	logger zerolog.Logger,
) DiscussionService {
	return &discussionServiceImpl{
		discussionRepo: discussionRepo,
		userRepo:       userRepo,
		authzService:   authzService,
		logger:         logger,
	}
}

// GetAllDiscussions retrieves discussions with filtering and pagination
func (s *discussionServiceImpl) GetAllDiscussions(ctx context.Context, filter repositories.DiscussionFilter, page, pageSize int) (*dto.DiscussionListResponse, error) {
	discussions, total, err := s.discussionRepo.GetAll(ctx, filter, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list discussions")
		return nil, err
	}

	users, err := s.loadDiscussionUsers(ctx, discussions)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.DiscussionResponse, 0, len(discussions))
	for i := range discussions {
		responses = append(responses, dto.NewDiscussionResponse(&discussions[i], users))
	}

	return &dto.DiscussionListResponse{
		Discussions: responses,
		Pagination:  helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetDiscussionByID retrieves a single discussion and counts the view
func (s *discussionServiceImpl) GetDiscussionByID(ctx context.Context, id int64) (*dto.DiscussionResponse, error) {
	discussion, err := s.discussionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.discussionRepo.IncrementViews(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("discussionID", id).Msg("Failed to count view")
	} else {
		discussion.Views = views
	}

	return s.buildResponse(ctx, discussion)
}

// CreateDiscussion starts a new thread
func (s *discussionServiceImpl) CreateDiscussion(ctx context.Context, userID int64, req *dto.CreateDiscussionRequest) (*dto.DiscussionResponse, error) {
	discussion := &models.Discussion{
		Title:       req.Title,
		Content:     req.Content,
		Category:    models.DiscussionCategory(req.Category),
		AuthorID:    userID,
		IsAnonymous: req.IsAnonymous,
		Tags:        req.Tags,
	}

	if err := s.discussionRepo.Create(ctx, discussion); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create discussion")
		return nil, err
	}

	s.logger.Info().
		Int64("discussionID", discussion.ID).
		Int64("userID", userID).
		Bool("anonymous", discussion.IsAnonymous).
		Msg("Discussion created")

	return s.buildResponse(ctx, discussion)
}

// UpdateDiscussion applies a partial update; only the author or an admin may edit
func (s *discussionServiceImpl) UpdateDiscussion(ctx context.Context, userID, id int64, req *dto.UpdateDiscussionRequest) (*dto.DiscussionResponse, error) {
	discussion, err := s.discussionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateOwnerOrAdmin(ctx, userID, discussion.AuthorID); err != nil {
		return nil, err
	}

	if req.Title != "" {
		discussion.Title = req.Title
	}
	if req.Content != "" {
		discussion.Content = req.Content
	}
	if req.Category != "" {
		discussion.Category = models.DiscussionCategory(req.Category)
	}
	if req.Tags != nil {
		discussion.Tags = req.Tags
	}

	if err := s.discussionRepo.Update(ctx, discussion); err != nil {
		s.logger.Error().Err(err).Int64("discussionID", id).Msg("Failed to update discussion")
		return nil, err
	}

	return s.buildResponse(ctx, discussion)
}

// DeleteDiscussion removes a thread; only the author or an admin may delete
func (s *discussionServiceImpl) DeleteDiscussion(ctx context.Context, userID, id int64) error {
	discussion, err := s.discussionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authzService.ValidateOwnerOrAdmin(ctx, userID, discussion.AuthorID); err != nil {
		return err
	}

	if err := s.discussionRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("discussionID", id).Msg("Failed to delete discussion")
		return err
	}

	s.logger.Info().Int64("discussionID", id).Int64("userID", userID).Msg("Discussion deleted")
	return nil
}

// UpvoteDiscussion records the caller's upvote. Upvotes are additive; a
// repeated upvote leaves the thread unchanged.
func (s *discussionServiceImpl) UpvoteDiscussion(ctx context.Context, userID, id int64) (*dto.DiscussionResponse, error) {
	discussion, err := s.discussionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if discussion.Upvote(userID) {
		if err := s.discussionRepo.Update(ctx, discussion); err != nil {
			s.logger.Error().Err(err).Int64("discussionID", id).Msg("Failed to save upvote")
			return nil, err
		}
	}

	return s.buildResponse(ctx, discussion)
}

// AddComment appends a comment to the thread
func (s *discussionServiceImpl) AddComment(ctx context.Context, userID, id int64, req *dto.CreateCommentRequest) (*dto.DiscussionResponse, error) {
	discussion, err := s.discussionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	discussion.AddComment(userID, req.Content, time.Now())

	if err := s.discussionRepo.Update(ctx, discussion); err != nil {
		s.logger.Error().Err(err).Int64("discussionID", id).Msg("Failed to save comment")
		return nil, err
	}

	return s.buildResponse(ctx, discussion)
}

// UpdateComment replaces a comment's content; the comment author and admins
// only.
func (s *discussionServiceImpl) UpdateComment(ctx context.Context, userID, id int64, commentID string, req *dto.UpdateCommentRequest) (*dto.DiscussionResponse, error) {
	discussion, err := s.discussionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment := discussion.FindComment(commentID)
	if comment == nil {
		return nil, apperrors.ErrCommentNotFound
	}

	if err := s.authzService.ValidateOwnerOrAdmin(ctx, userID, comment.AuthorID); err != nil {
		return nil, err
	}

	comment.Content = req.Content
	comment.UpdatedAt = time.Now()

	if err := s.discussionRepo.Update(ctx, discussion); err != nil {
		s.logger.Error().Err(err).Int64("discussionID", id).Msg("Failed to update comment")
		return nil, err
	}

	return s.buildResponse(ctx, discussion)
}

// DeleteComment removes an embedded comment; the comment author, the thread
// author and admins may delete.
func (s *discussionServiceImpl) DeleteComment(ctx context.Context, userID, id int64, commentID string) (*dto.DiscussionResponse, error) {
	discussion, err := s.discussionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment := discussion.FindComment(commentID)
	if comment == nil {
		return nil, apperrors.ErrCommentNotFound
	}

	if userID != comment.AuthorID {
		if err := s.authzService.ValidateOwnerOrAdmin(ctx, userID, discussion.AuthorID); err != nil {
			return nil, err
		}
	}

	discussion.RemoveComment(commentID)

	if err := s.discussionRepo.Update(ctx, discussion); err != nil {
		s.logger.Error().Err(err).Int64("discussionID", id).Msg("Failed to remove comment")
		return nil, err
	}

	return s.buildResponse(ctx, discussion)
}

func (s *discussionServiceImpl) buildResponse(ctx context.Context, discussion *models.Discussion) (*dto.DiscussionResponse, error) {
	users, err := s.loadDiscussionUsers(ctx, []models.Discussion{*discussion})
	if err != nil {
		return nil, err
	}
	resp := dto.NewDiscussionResponse(discussion, users)
	return &resp, nil
}

func (s *discussionServiceImpl) loadDiscussionUsers(ctx context.Context, discussions []models.Discussion) (map[int64]*models.User, error) {
	var ids []int64
	for i := range discussions {
		ids = append(ids, discussions[i].AuthorID)
		for _, c := range discussions[i].Comments {
			ids = append(ids, c.AuthorID)
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load discussion users")
		return nil, err
	}
	return users, nil
}

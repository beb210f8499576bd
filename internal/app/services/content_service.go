package services

import (
	"context"
	"encoding/json"
	"mime/multipart"

	"github.com/rs/zerolog"

	appAuth "github.com/Shyam-123pandey/NITM-content-hub/internal/app/auth"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models/dto"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/repositories"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/filestorage"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/helpers"
)

// ContentService defines the interface for shared content operations
type ContentService interface {
	GetAllContent(ctx context.Context, filter repositories.ContentFilter, page, pageSize int) (*dto.ContentListResponse, error)
	GetContentByID(ctx context.Context, id int64) (*dto.ContentResponse, error)
	CreateContent(ctx context.Context, userID int64, req *dto.CreateContentRequest, file *multipart.FileHeader) (*dto.ContentResponse, error)
	UpdateContent(ctx context.Context, userID, id int64, req *dto.UpdateContentRequest) (*dto.ContentResponse, error)
	DeleteContent(ctx context.Context, userID, id int64) error
	RecordDownload(ctx context.Context, id int64) (*dto.ContentResponse, error)
}

// contentServiceImpl implements ContentService
type contentServiceImpl struct {
	contentRepo  *repositories.ContentRepository
	userRepo     *repositories.UserRepository
	fileStorage  *filestorage.LocalStorage
	authzService *appAuth.AuthorizationService
	logger       zerolog.Logger
}

// NewContentService creates a new ContentService
func NewContentService(
	contentRepo *repositories.ContentRepository,
	userRepo *repositories.UserRepository,
	fileStorage *filestorage.LocalStorage,
	authzService *appAuth.AuthorizationService,
	logger zerolog.Logger,
) ContentService {
	return &contentServiceImpl{
		contentRepo:  contentRepo,
		userRepo:     userRepo,
		fileStorage:  fileStorage,
		authzService: authzService,
		logger:       logger,
	}
}

// GetAllContent retrieves content with filtering and pagination
func (s *contentServiceImpl) GetAllContent(ctx context.Context, filter repositories.ContentFilter, page, pageSize int) (*dto.ContentListResponse, error) {
	contents, total, err := s.contentRepo.GetAll(ctx, filter, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list content")
		return nil, err
	}

	authorIDs := make([]int64, 0, len(contents))
	for _, c := range contents {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	users, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ContentResponse, 0, len(contents))
	for i := range contents {
		contents[i].Author = users[contents[i].AuthorID]
		responses = append(responses, dto.NewContentResponse(&contents[i]))
	}

	return &dto.ContentListResponse{
		Contents:   responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetContentByID retrieves a single content item and counts the view
func (s *contentServiceImpl) GetContentByID(ctx context.Context, id int64) (*dto.ContentResponse, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.contentRepo.IncrementViews(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("contentID", id).Msg("Failed to count view")
	} else {
		content.Views = views
	}

	s.attachAuthor(ctx, content)
	resp := dto.NewContentResponse(content)
	return &resp, nil
}

// CreateContent stores the uploaded file, if any, and creates the content row
func (s *contentServiceImpl) CreateContent(ctx context.Context, userID int64, req *dto.CreateContentRequest, file *multipart.FileHeader) (*dto.ContentResponse, error) {
	tags, err := parseTags(req.Tags)
	if err != nil {
		return nil, apperrors.NewBadRequestError("tags must be a JSON string array")
	}

	content := &models.Content{
		Title:       req.Title,
		Description: req.Description,
		Type:        models.ContentType(req.Type),
		Category:    models.ContentCategory(req.Category),
		Tags:        tags,
		AuthorID:    userID,
	}

	if file != nil {
		url, err := s.fileStorage.SaveFile(file)
		if err != nil {
			s.logger.Error().Err(err).Str("filename", file.Filename).Msg("Failed to store content file")
			return nil, err
		}
		content.FileURL = &url
	}

	if err := s.contentRepo.Create(ctx, content); err != nil {
		if content.FileURL != nil {
			if delErr := s.fileStorage.DeleteFile(*content.FileURL); delErr != nil {
				s.logger.Warn().Err(delErr).Str("url", *content.FileURL).Msg("Failed to clean up stored file")
			}
		}
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create content")
		return nil, err
	}

	s.logger.Info().
		Int64("contentID", content.ID).
		Int64("userID", userID).
		Str("type", string(content.Type)).
		Msg("Content created")

	s.attachAuthor(ctx, content)
	resp := dto.NewContentResponse(content)
	return &resp, nil
}

// UpdateContent applies a partial update; only the author or an admin may edit
func (s *contentServiceImpl) UpdateContent(ctx context.Context, userID, id int64, req *dto.UpdateContentRequest) (*dto.ContentResponse, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateOwnerOrAdmin(ctx, userID, content.AuthorID); err != nil {
		return nil, err
	}

	if req.Title != "" {
		content.Title = req.Title
	}
	if req.Description != "" {
		content.Description = req.Description
	}
	if req.Type != "" {
		content.Type = models.ContentType(req.Type)
	}
	if req.Category != "" {
		content.Category = models.ContentCategory(req.Category)
	}
	if req.Tags != nil {
		content.Tags = req.Tags
	}

	if err := s.contentRepo.Update(ctx, content); err != nil {
		s.logger.Error().Err(err).Int64("contentID", id).Msg("Failed to update content")
		return nil, err
	}

	s.attachAuthor(ctx, content)
	resp := dto.NewContentResponse(content)
	return &resp, nil
}

// DeleteContent removes the content row and its stored file
func (s *contentServiceImpl) DeleteContent(ctx context.Context, userID, id int64) error {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authzService.ValidateOwnerOrAdmin(ctx, userID, content.AuthorID); err != nil {
		return err
	}

	if err := s.contentRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("contentID", id).Msg("Failed to delete content")
		return err
	}

	if content.FileURL != nil {
		if err := s.fileStorage.DeleteFile(*content.FileURL); err != nil {
			s.logger.Warn().Err(err).Str("url", *content.FileURL).Msg("Failed to delete content file")
		}
	}

	s.logger.Info().Int64("contentID", id).Int64("userID", userID).Msg("Content deleted")
	return nil
}

// RecordDownload counts a download and returns the updated item
func (s *contentServiceImpl) RecordDownload(ctx context.Context, id int64) (*dto.ContentResponse, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	downloads, err := s.contentRepo.IncrementDownloads(ctx, id)
	if err != nil {
		return nil, err
	}
	content.Downloads = downloads

	s.attachAuthor(ctx, content)
	resp := dto.NewContentResponse(content)
	return &resp, nil
}

func (s *contentServiceImpl) attachAuthor(ctx context.Context, content *models.Content) {
	author, err := s.userRepo.GetByID(ctx, content.AuthorID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("authorID", content.AuthorID).Msg("Failed to load content author")
		return
	}
	content.Author = author
}

// parseTags decodes the JSON-encoded tag list carried in the multipart form.
// An empty value means no tags.
func parseTags(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

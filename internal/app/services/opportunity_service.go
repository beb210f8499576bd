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

// OpportunityService defines the interface for opportunity operations
type OpportunityService interface {
	GetAllOpportunities(ctx context.Context, filter repositories.OpportunityFilter, page, pageSize int) (*dto.OpportunityListResponse, error)
	GetOpportunityByID(ctx context.Context, id int64) (*dto.OpportunityResponse, error)
	CreateOpportunity(ctx context.Context, userID int64, req *dto.CreateOpportunityRequest) (*dto.OpportunityResponse, error)
	UpdateOpportunity(ctx context.Context, userID, id int64, req *dto.UpdateOpportunityRequest) (*dto.OpportunityResponse, error)
	DeleteOpportunity(ctx context.Context, userID, id int64) error
	Apply(ctx context.Context, userID, id int64) (*dto.OpportunityResponse, error)
	UpdateParticipantStatus(ctx context.Context, userID, id, participantID int64, req *dto.UpdateParticipantRequest) (*dto.OpportunityResponse, error)
}

// opportunityServiceImpl implements OpportunityService
type opportunityServiceImpl struct {
	opportunityRepo *repositories.OpportunityRepository
	userRepo        *repositories.UserRepository
	authzService    *appAuth.AuthorizationService
	logger          zerolog.Logger
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(
	opportunityRepo *repositories.OpportunityRepository,
	userRepo *repositories.UserRepository,
	authzService *appAuth.AuthorizationService,
	logger zerolog.Logger,
) OpportunityService {
	return &opportunityServiceImpl{
		opportunityRepo: opportunityRepo,
		userRepo:        userRepo,
		authzService:    authzService,
		logger:          logger,
	}
}

// GetAllOpportunities retrieves opportunities with filtering and pagination
func (s *opportunityServiceImpl) GetAllOpportunities(ctx context.Context, filter repositories.OpportunityFilter, page, pageSize int) (*dto.OpportunityListResponse, error) {
	opportunities, total, err := s.opportunityRepo.GetAll(ctx, filter, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list opportunities")
		return nil, err
	}

	var ids []int64
	for i := range opportunities {
		ids = append(ids, opportunities[i].OrganizerID)
		for _, p := range opportunities[i].Participants {
			ids = append(ids, p.UserID)
		}
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.OpportunityResponse, 0, len(opportunities))
	for i := range opportunities {
		responses = append(responses, dto.NewOpportunityResponse(&opportunities[i], users))
	}

	return &dto.OpportunityListResponse{
		Opportunities: responses,
		Pagination:    helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetOpportunityByID retrieves a single opportunity with its participants
func (s *opportunityServiceImpl) GetOpportunityByID(ctx context.Context, id int64) (*dto.OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, opportunity)
}

// CreateOpportunity posts a new opportunity; faculty and admins only
func (s *opportunityServiceImpl) CreateOpportunity(ctx context.Context, userID int64, req *dto.CreateOpportunityRequest) (*dto.OpportunityResponse, error) {
	if err := s.authzService.ValidateRole(ctx, userID, models.RoleFaculty, models.RoleAdmin); err != nil {
		return nil, err
	}

	opportunity := &models.Opportunity{
		Title:           req.Title,
		Description:     req.Description,
		Type:            models.OpportunityType(req.Type),
		Program:         req.Program,
		Branch:          req.Branch,
		Deadline:        req.Deadline,
		Requirements:    req.Requirements,
		Location:        req.Location,
		Stipend:         req.Stipend,
		Duration:        req.Duration,
		MaxParticipants: req.MaxParticipants,
		Status:          models.OpportunityOpen,
		OrganizerID:     userID,
	}

	if err := s.opportunityRepo.Create(ctx, opportunity); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create opportunity")
		return nil, err
	}

	s.logger.Info().
		Int64("opportunityID", opportunity.ID).
		Int64("userID", userID).
		Str("type", string(opportunity.Type)).
		Msg("Opportunity created")

	return s.buildResponse(ctx, opportunity)
}

// UpdateOpportunity applies a partial update; only the organizer or an admin
func (s *opportunityServiceImpl) UpdateOpportunity(ctx context.Context, userID, id int64, req *dto.UpdateOpportunityRequest) (*dto.OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateOwnerOrAdmin(ctx, userID, opportunity.OrganizerID); err != nil {
		return nil, err
	}

	if req.Title != "" {
		opportunity.Title = req.Title
	}
	if req.Description != "" {
		opportunity.Description = req.Description
	}
	if req.Type != "" {
		opportunity.Type = models.OpportunityType(req.Type)
	}
	if req.Program != "" {
		opportunity.Program = req.Program
	}
	if req.Branch != "" {
		opportunity.Branch = req.Branch
	}
	if req.Deadline != nil {
		opportunity.Deadline = *req.Deadline
	}
	if req.Requirements != nil {
		opportunity.Requirements = req.Requirements
	}
	if req.Location != "" {
		opportunity.Location = req.Location
	}
	if req.Stipend != "" {
		opportunity.Stipend = req.Stipend
	}
	if req.Duration != "" {
		opportunity.Duration = req.Duration
	}
	if req.MaxParticipants != nil {
		opportunity.MaxParticipants = req.MaxParticipants
	}
	if req.Status != "" {
		opportunity.Status = models.OpportunityStatus(req.Status)
	}

	if err := s.opportunityRepo.Update(ctx, opportunity); err != nil {
		s.logger.Error().Err(err).Int64("opportunityID", id).Msg("Failed to update opportunity")
		return nil, err
	}

	return s.buildResponse(ctx, opportunity)
}

// DeleteOpportunity removes a posting; only the organizer or an admin
func (s *opportunityServiceImpl) DeleteOpportunity(ctx context.Context, userID, id int64) error {
	opportunity, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authzService.ValidateOwnerOrAdmin(ctx, userID, opportunity.OrganizerID); err != nil {
		return err
	}

	if err := s.opportunityRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("opportunityID", id).Msg("Failed to delete opportunity")
		return err
	}

	s.logger.Info().Int64("opportunityID", id).Int64("userID", userID).Msg("Opportunity deleted")
	return nil
}

// Apply registers the caller as a participant. The aggregate enforces the
// open-status, duplicate and capacity rules.
func (s *opportunityServiceImpl) Apply(ctx context.Context, userID, id int64) (*dto.OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := opportunity.Apply(userID, time.Now()); err != nil {
		return nil, err
	}

	if err := s.opportunityRepo.Update(ctx, opportunity); err != nil {
		s.logger.Error().Err(err).Int64("opportunityID", id).Msg("Failed to save application")
		return nil, err
	}

	s.logger.Info().
		Int64("opportunityID", id).
		Int64("userID", userID).
		Msg("Application recorded")

	return s.buildResponse(ctx, opportunity)
}

// UpdateParticipantStatus sets an applicant's status; organizer or admin only
func (s *opportunityServiceImpl) UpdateParticipantStatus(ctx context.Context, userID, id, participantID int64, req *dto.UpdateParticipantRequest) (*dto.OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateOwnerOrAdmin(ctx, userID, opportunity.OrganizerID); err != nil {
		return nil, err
	}

	if !models.ValidParticipantStatus(req.Status) {
		return nil, apperrors.NewBadRequestError("unknown participant status")
	}

	participant := opportunity.FindParticipant(participantID)
	if participant == nil {
		return nil, apperrors.ErrParticipantNotFound
	}
	participant.Status = models.ParticipantStatus(req.Status)

	if err := s.opportunityRepo.Update(ctx, opportunity); err != nil {
		s.logger.Error().Err(err).Int64("opportunityID", id).Msg("Failed to update participant status")
		return nil, err
	}

	return s.buildResponse(ctx, opportunity)
}

func (s *opportunityServiceImpl) buildResponse(ctx context.Context, opportunity *models.Opportunity) (*dto.OpportunityResponse, error) {
	ids := []int64{opportunity.OrganizerID}
	for _, p := range opportunity.Participants {
		ids = append(ids, p.UserID)
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load opportunity users")
		return nil, err
	}

	resp := dto.NewOpportunityResponse(opportunity, users)
	return &resp, nil
}

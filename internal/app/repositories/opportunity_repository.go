package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
)

// OpportunityFilter narrows opportunity listings. Nil fields are ignored.
type OpportunityFilter struct {
	Type        *string
	Status      *string
	Program     *string
	Branch      *string
	OrganizerID *int64
	Search      *string
}

// OpportunityRepository handles database operations for opportunity postings.
// The participant list is an embedded document saved with the row.
type OpportunityRepository struct {
	db *pgxpool.Pool
}

// NewOpportunityRepository creates a new OpportunityRepository
func NewOpportunityRepository(db *pgxpool.Pool) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

func scanOpportunity(row pgx.Row) (*models.Opportunity, error) {
	var opportunity models.Opportunity
	var participants []byte

	err := row.Scan(
		&opportunity.ID,
		&opportunity.Title,
		&opportunity.Description,
		&opportunity.Type,
		&opportunity.Program,
		&opportunity.Branch,
		&opportunity.Deadline,
		&opportunity.Requirements,
		&opportunity.Location,
		&opportunity.Stipend,
		&opportunity.Duration,
		&opportunity.MaxParticipants,
		&opportunity.Status,
		&opportunity.OrganizerID,
		&participants,
		&opportunity.CreatedAt,
		&opportunity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(participants, &opportunity.Participants); err != nil {
		return nil, fmt.Errorf("error decoding participants: %w", err)
	}
	return &opportunity, nil
}

// GetAll retrieves opportunities with filtering and pagination, newest first.
func (r *OpportunityRepository) GetAll(ctx context.Context, filter OpportunityFilter, page, pageSize int) ([]models.Opportunity, int64, error) {
	query := squirrel.Select("id", "title", "description", "type", "program", "branch",
		"deadline", "requirements", "location", "stipend", "duration", "max_participants",
		"status", "organizer_id", "participants", "created_at", "updated_at").
		From("opportunities").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Program != nil {
		query = query.Where("program = ?", *filter.Program)
	}
	if filter.Branch != nil {
		query = query.Where("branch = ?", *filter.Branch)
	}
	if filter.OrganizerID != nil {
		query = query.Where("organizer_id = ?", *filter.OrganizerID)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		Column("COUNT(*) OVER()")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var opportunities []models.Opportunity
	var total int64

	for rows.Next() {
		var opportunity models.Opportunity
		var participants []byte
		err := rows.Scan(
			&opportunity.ID,
			&opportunity.Title,
			&opportunity.Description,
			&opportunity.Type,
			&opportunity.Program,
			&opportunity.Branch,
			&opportunity.Deadline,
			&opportunity.Requirements,
			&opportunity.Location,
			&opportunity.Stipend,
			&opportunity.Duration,
			&opportunity.MaxParticipants,
			&opportunity.Status,
			&opportunity.OrganizerID,
			&participants,
			&opportunity.CreatedAt,
			&opportunity.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		if err := json.Unmarshal(participants, &opportunity.Participants); err != nil {
			return nil, 0, fmt.Errorf("error decoding participants: %w", err)
		}
		opportunities = append(opportunities, opportunity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return opportunities, total, nil
}

// GetByID retrieves an opportunity with its embedded participant list
func (r *OpportunityRepository) GetByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	query := `
		SELECT id, title, description, type, program, branch, deadline, requirements,
			location, stipend, duration, max_participants, status, organizer_id,
			participants, created_at, updated_at
		FROM opportunities
		WHERE id = $1
	`

	opportunity, err := scanOpportunity(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("error getting opportunity: %w", err)
	}
	return opportunity, nil
}

// Create inserts a new opportunity and sets its generated ID.
func (r *OpportunityRepository) Create(ctx context.Context, opportunity *models.Opportunity) error {
	if opportunity.Requirements == nil {
		opportunity.Requirements = []string{}
	}
	if opportunity.Participants == nil {
		opportunity.Participants = []models.Participant{}
	}

	participants, err := json.Marshal(opportunity.Participants)
	if err != nil {
		return fmt.Errorf("error encoding participants: %w", err)
	}

	query := `
		INSERT INTO opportunities (title, description, type, program, branch, deadline,
			requirements, location, stipend, duration, max_participants, status, organizer_id, participants)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		opportunity.Title,
		opportunity.Description,
		opportunity.Type,
		opportunity.Program,
		opportunity.Branch,
		opportunity.Deadline,
		opportunity.Requirements,
		opportunity.Location,
		opportunity.Stipend,
		opportunity.Duration,
		opportunity.MaxParticipants,
		opportunity.Status,
		opportunity.OrganizerID,
		participants,
	).Scan(&opportunity.ID, &opportunity.CreatedAt, &opportunity.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating opportunity: %w", err)
	}

	return nil
}

// Update persists the full opportunity row, including the embedded
// participant list.
func (r *OpportunityRepository) Update(ctx context.Context, opportunity *models.Opportunity) error {
	if opportunity.Requirements == nil {
		opportunity.Requirements = []string{}
	}
	if opportunity.Participants == nil {
		opportunity.Participants = []models.Participant{}
	}

	participants, err := json.Marshal(opportunity.Participants)
	if err != nil {
		return fmt.Errorf("error encoding participants: %w", err)
	}

	query := `
		UPDATE opportunities
		SET title = $1, description = $2, type = $3, program = $4, branch = $5,
			deadline = $6, requirements = $7, location = $8, stipend = $9, duration = $10,
			max_participants = $11, status = $12, participants = $13, updated_at = NOW()
		WHERE id = $14
	`

	tag, err := r.db.Exec(ctx, query,
		opportunity.Title,
		opportunity.Description,
		opportunity.Type,
		opportunity.Program,
		opportunity.Branch,
		opportunity.Deadline,
		opportunity.Requirements,
		opportunity.Location,
		opportunity.Stipend,
		opportunity.Duration,
		opportunity.MaxParticipants,
		opportunity.Status,
		participants,
		opportunity.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrOpportunityNotFound
	}
	return nil
}

// Delete removes an opportunity by ID
func (r *OpportunityRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrOpportunityNotFound
	}
	return nil
}

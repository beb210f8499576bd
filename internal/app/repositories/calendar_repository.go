package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
)

// EventFilter narrows calendar listings. Nil fields are ignored. From and To
// bound the event start date.
type EventFilter struct {
	Type     *string
	Category *string
	Program  *string
	Branch   *string
	From     *time.Time
	To       *time.Time
}

// CalendarRepository handles database operations for calendar events
type CalendarRepository struct {
	db *pgxpool.Pool
}

// NewCalendarRepository creates a new CalendarRepository
func NewCalendarRepository(db *pgxpool.Pool) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func scanEvent(row pgx.Row, event *models.CalendarEvent, extra ...interface{}) error {
	dest := []interface{}{
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.Type,
		&event.Category,
		&event.Program,
		&event.Branch,
		&event.Semester,
		&event.Location,
		&event.IsRecurring,
		&event.RecurrencePattern,
		&event.RecurrenceEndDate,
		&event.OrganizerID,
		&event.CreatedAt,
		&event.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// GetAll retrieves calendar events with filtering and pagination, ordered by
// start date.
func (r *CalendarRepository) GetAll(ctx context.Context, filter EventFilter, page, pageSize int) ([]models.CalendarEvent, int64, error) {
	query := squirrel.Select("id", "title", "description", "start_date", "end_date", "type",
		"category", "program", "branch", "semester", "location", "is_recurring",
		"recurrence_pattern", "recurrence_end_date", "organizer_id", "created_at", "updated_at").
		From("calendar_events").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Program != nil {
		query = query.Where("program = ?", *filter.Program)
	}
	if filter.Branch != nil {
		query = query.Where("branch = ?", *filter.Branch)
	}
	if filter.From != nil {
		query = query.Where("start_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("start_date <= ?", *filter.To)
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("start_date ASC").
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

	var events []models.CalendarEvent
	var total int64

	for rows.Next() {
		var event models.CalendarEvent
		if err := scanEvent(rows, &event, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, total, nil
}

// GetByID retrieves a calendar event by ID
func (r *CalendarRepository) GetByID(ctx context.Context, id int64) (*models.CalendarEvent, error) {
	query := `
		SELECT id, title, description, start_date, end_date, type, category, program,
			branch, semester, location, is_recurring, recurrence_pattern,
			recurrence_end_date, organizer_id, created_at, updated_at
		FROM calendar_events
		WHERE id = $1
	`

	var event models.CalendarEvent
	if err := scanEvent(r.db.QueryRow(ctx, query, id), &event); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error getting event: %w", err)
	}
	return &event, nil
}

// Create inserts a new calendar event and sets its generated ID.
func (r *CalendarRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (title, description, start_date, end_date, type, category,
			program, branch, semester, location, is_recurring, recurrence_pattern,
			recurrence_end_date, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.Type,
		event.Category,
		event.Program,
		event.Branch,
		event.Semester,
		event.Location,
		event.IsRecurring,
		event.RecurrencePattern,
		event.RecurrenceEndDate,
		event.OrganizerID,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}

	return nil
}

// Update persists a calendar event's editable fields.
func (r *CalendarRepository) Update(ctx context.Context, event *models.CalendarEvent) error {
	query := `
		UPDATE calendar_events
		SET title = $1, description = $2, start_date = $3, end_date = $4, type = $5,
			category = $6, program = $7, branch = $8, semester = $9, location = $10,
			is_recurring = $11, recurrence_pattern = $12, recurrence_end_date = $13,
			updated_at = NOW()
		WHERE id = $14
	`

	tag, err := r.db.Exec(ctx, query,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.Type,
		event.Category,
		event.Program,
		event.Branch,
		event.Semester,
		event.Location,
		event.IsRecurring,
		event.RecurrencePattern,
		event.RecurrenceEndDate,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes a calendar event by ID
func (r *CalendarRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

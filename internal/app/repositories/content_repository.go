package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
)

// ContentFilter narrows content listings. Nil fields are ignored.
type ContentFilter struct {
	Type     *string
	Category *string
	AuthorID *int64
	Tag      *string
	Search   *string
}

// ContentRepository handles database operations for shared content
type ContentRepository struct {
	db *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

// GetAll retrieves content items with filtering and pagination, newest first.
func (r *ContentRepository) GetAll(ctx context.Context, filter ContentFilter, page, pageSize int) ([]models.Content, int64, error) {
	query := squirrel.Select("id", "title", "description", "type", "category", "file_url",
		"tags", "author_id", "views", "downloads", "created_at", "updated_at").
		From("contents").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Tag != nil {
		query = query.Where("? = ANY(tags)", *filter.Tag)
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

	var contents []models.Content
	var total int64

	for rows.Next() {
		var content models.Content
		err := rows.Scan(
			&content.ID,
			&content.Title,
			&content.Description,
			&content.Type,
			&content.Category,
			&content.FileURL,
			&content.Tags,
			&content.AuthorID,
			&content.Views,
			&content.Downloads,
			&content.CreatedAt,
			&content.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return contents, total, nil
}

// GetByID retrieves a content item by ID
func (r *ContentRepository) GetByID(ctx context.Context, id int64) (*models.Content, error) {
	query := `
		SELECT id, title, description, type, category, file_url, tags, author_id,
			views, downloads, created_at, updated_at
		FROM contents
		WHERE id = $1
	`

	var content models.Content
	err := r.db.QueryRow(ctx, query, id).Scan(
		&content.ID,
		&content.Title,
		&content.Description,
		&content.Type,
		&content.Category,
		&content.FileURL,
		&content.Tags,
		&content.AuthorID,
		&content.Views,
		&content.Downloads,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, fmt.Errorf("error getting content: %w", err)
	}

	return &content, nil
}

// Create inserts a new content item and sets its generated ID.
func (r *ContentRepository) Create(ctx context.Context, content *models.Content) error {
	if content.Tags == nil {
		content.Tags = []string{}
	}

	query := `
		INSERT INTO contents (title, description, type, category, file_url, tags, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, views, downloads, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		content.Title,
		content.Description,
		content.Type,
		content.Category,
		content.FileURL,
		content.Tags,
		content.AuthorID,
	).Scan(&content.ID, &content.Views, &content.Downloads, &content.CreatedAt, &content.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating content: %w", err)
	}

	return nil
}

// Update persists a content item's editable fields.
func (r *ContentRepository) Update(ctx context.Context, content *models.Content) error {
	if content.Tags == nil {
		content.Tags = []string{}
	}

	query := `
		UPDATE contents
		SET title = $1, description = $2, type = $3, category = $4, file_url = $5,
			tags = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := r.db.Exec(ctx, query,
		content.Title,
		content.Description,
		content.Type,
		content.Category,
		content.FileURL,
		content.Tags,
		content.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrContentNotFound
	}
	return nil
}

// Delete removes a content item by ID
func (r *ContentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrContentNotFound
	}
	return nil
}

// IncrementViews bumps the view counter and returns the new value.
func (r *ContentRepository) IncrementViews(ctx context.Context, id int64) (int, error) {
	var views int
	err := r.db.QueryRow(ctx, `UPDATE contents SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrContentNotFound
		}
		return 0, fmt.Errorf("error incrementing views: %w", err)
	}
	return views, nil
}

// IncrementDownloads bumps the download counter and returns the new value.
func (r *ContentRepository) IncrementDownloads(ctx context.Context, id int64) (int, error) {
	var downloads int
	err := r.db.QueryRow(ctx, `UPDATE contents SET downloads = downloads + 1 WHERE id = $1 RETURNING downloads`, id).Scan(&downloads)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrContentNotFound
		}
		return 0, fmt.Errorf("error incrementing downloads: %w", err)
	}
	return downloads, nil
}

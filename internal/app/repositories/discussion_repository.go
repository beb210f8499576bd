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

// DiscussionFilter narrows discussion listings. Nil fields are ignored.
type DiscussionFilter struct {
	Category *string
	AuthorID *int64
	Tag      *string
	Search   *string
}

// DiscussionRepository handles database operations for discussion threads.
// Comments and the upvoter set are embedded documents saved with the row.
type DiscussionRepository struct {
	db *pgxpool.Pool
}

// NewDiscussionRepository creates a new DiscussionRepository
func NewDiscussionRepository(db *pgxpool.Pool) *DiscussionRepository {
	return &DiscussionRepository{db: db}
}

func scanDiscussion(row pgx.Row) (*models.Discussion, error) {
	var discussion models.Discussion
	var comments []byte

	err := row.Scan(
		&discussion.ID,
		&discussion.Title,
		&discussion.Content,
		&discussion.Category,
		&discussion.AuthorID,
		&discussion.IsAnonymous,
		&discussion.Tags,
		&discussion.Views,
		&discussion.Upvotes,
		&comments,
		&discussion.CreatedAt,
		&discussion.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(comments, &discussion.Comments); err != nil {
		return nil, fmt.Errorf("error decoding comments: %w", err)
	}
	return &discussion, nil
}

// GetAll retrieves discussions with filtering and pagination, newest first.
func (r *DiscussionRepository) GetAll(ctx context.Context, filter DiscussionFilter, page, pageSize int) ([]models.Discussion, int64, error) {
	query := squirrel.Select("id", "title", "content", "category", "author_id", "is_anonymous",
		"tags", "views", "upvotes", "comments", "created_at", "updated_at").
		From("discussions").
		PlaceholderFormat(squirrel.Dollar)

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
		query = query.Where("(title ILIKE ? OR content ILIKE ?)", pattern, pattern)
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

	var discussions []models.Discussion
	var total int64

	for rows.Next() {
		var discussion models.Discussion
		var comments []byte
		err := rows.Scan(
			&discussion.ID,
			&discussion.Title,
			&discussion.Content,
			&discussion.Category,
			&discussion.AuthorID,
			&discussion.IsAnonymous,
			&discussion.Tags,
			&discussion.Views,
			&discussion.Upvotes,
			&comments,
			&discussion.CreatedAt,
			&discussion.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		if err := json.Unmarshal(comments, &discussion.Comments); err != nil {
			return nil, 0, fmt.Errorf("error decoding comments: %w", err)
		}
		discussions = append(discussions, discussion)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return discussions, total, nil
}

// GetByID retrieves a discussion with its embedded comments
func (r *DiscussionRepository) GetByID(ctx context.Context, id int64) (*models.Discussion, error) {
	query := `
		SELECT id, title, content, category, author_id, is_anonymous, tags, views,
			upvotes, comments, created_at, updated_at
		FROM discussions
		WHERE id = $1
	`

	discussion, err := scanDiscussion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("error getting discussion: %w", err)
	}
	return discussion, nil
}

// Create inserts a new discussion and sets its generated ID.
func (r *DiscussionRepository) Create(ctx context.Context, discussion *models.Discussion) error {
	if discussion.Tags == nil {
		discussion.Tags = []string{}
	}
	if discussion.Upvotes == nil {
		discussion.Upvotes = []int64{}
	}
	if discussion.Comments == nil {
		discussion.Comments = []models.Comment{}
	}

	comments, err := json.Marshal(discussion.Comments)
	if err != nil {
		return fmt.Errorf("error encoding comments: %w", err)
	}

	query := `
		INSERT INTO discussions (title, content, category, author_id, is_anonymous, tags, upvotes, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, views, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		discussion.Title,
		discussion.Content,
		discussion.Category,
		discussion.AuthorID,
		discussion.IsAnonymous,
		discussion.Tags,
		discussion.Upvotes,
		comments,
	).Scan(&discussion.ID, &discussion.Views, &discussion.CreatedAt, &discussion.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating discussion: %w", err)
	}

	return nil
}

// Update persists the full discussion row, including embedded comments and
// the upvoter set.
func (r *DiscussionRepository) Update(ctx context.Context, discussion *models.Discussion) error {
	if discussion.Tags == nil {
		discussion.Tags = []string{}
	}
	if discussion.Upvotes == nil {
		discussion.Upvotes = []int64{}
	}
	if discussion.Comments == nil {
		discussion.Comments = []models.Comment{}
	}

	comments, err := json.Marshal(discussion.Comments)
	if err != nil {
		return fmt.Errorf("error encoding comments: %w", err)
	}

	query := `
		UPDATE discussions
		SET title = $1, content = $2, category = $3, is_anonymous = $4, tags = $5,
			upvotes = $6, comments = $7, updated_at = NOW()
		WHERE id = $8
	`

	tag, err := r.db.Exec(ctx, query,
		discussion.Title,
		discussion.Content,
		discussion.Category,
		discussion.IsAnonymous,
		discussion.Tags,
		discussion.Upvotes,
		comments,
		discussion.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating discussion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDiscussionNotFound
	}
	return nil
}

// Delete removes a discussion by ID
func (r *DiscussionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM discussions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting discussion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDiscussionNotFound
	}
	return nil
}

// IncrementViews bumps the view counter and returns the new value.
func (r *DiscussionRepository) IncrementViews(ctx context.Context, id int64) (int, error) {
	var views int
	err := r.db.QueryRow(ctx, `UPDATE discussions SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrDiscussionNotFound
		}
		return 0, fmt.Errorf("error incrementing views: %w", err)
	}
	return views, nil
}

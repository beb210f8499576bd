package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/dberrors"
)

const userColumns = `id, name, email, enrollment_number, password, role, program, branch, semester,
	bio, google_id, profile_picture, last_login, achievements, skills, social_links, created_at, updated_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var achievements, skills, socialLinks []byte

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.EnrollmentNumber,
		&user.Password,
		&user.Role,
		&user.Program,
		&user.Branch,
		&user.Semester,
		&user.Bio,
		&user.GoogleID,
		&user.ProfilePicture,
		&user.LastLogin,
		&achievements,
		&skills,
		&socialLinks,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(achievements, &user.Achievements); err != nil {
		return nil, fmt.Errorf("error decoding achievements: %w", err)
	}
	if err := json.Unmarshal(skills, &user.Skills); err != nil {
		return nil, fmt.Errorf("error decoding skills: %w", err)
	}
	if err := json.Unmarshal(socialLinks, &user.SocialLinks); err != nil {
		return nil, fmt.Errorf("error decoding social links: %w", err)
	}

	return &user, nil
}

func marshalUserDocs(user *models.User) (achievements, skills, socialLinks []byte, err error) {
	if user.Achievements == nil {
		user.Achievements = []models.Achievement{}
	}
	if user.Skills == nil {
		user.Skills = []models.Skill{}
	}

	achievements, err = json.Marshal(user.Achievements)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error encoding achievements: %w", err)
	}
	skills, err = json.Marshal(user.Skills)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error encoding skills: %w", err)
	}
	socialLinks, err = json.Marshal(user.SocialLinks)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error encoding social links: %w", err)
	}
	return achievements, skills, socialLinks, nil
}

// Create inserts a new user and sets its generated ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	achievements, skills, socialLinks, err := marshalUserDocs(user)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (name, email, enrollment_number, password, role, program, branch, semester,
			bio, google_id, profile_picture, achievements, skills, social_links)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.EnrollmentNumber,
		user.Password,
		user.Role,
		user.Program,
		user.Branch,
		user.Semester,
		user.Bio,
		user.GoogleID,
		user.ProfilePicture,
		achievements,
		skills,
		socialLinks,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by id: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	return user, nil
}

// GetByGoogleID retrieves a user by Google account ID
func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, googleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by google id: %w", err)
	}
	return user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// CountEnrollmentPrefix counts students whose enrollment number starts with
// the given prefix. Used to derive the next sequence number for a cohort.
func (r *UserRepository) CountEnrollmentPrefix(ctx context.Context, prefix string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE role = 'student' AND enrollment_number LIKE $1 || '%'`
	if err := r.db.QueryRow(ctx, query, prefix).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting enrollment prefix: %w", err)
	}
	return count, nil
}

// Update persists the full user row, including the embedded profile documents.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	achievements, skills, socialLinks, err := marshalUserDocs(user)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET name = $1, email = $2, password = $3, program = $4, branch = $5, semester = $6,
			bio = $7, google_id = $8, profile_picture = $9,
			achievements = $10, skills = $11, social_links = $12, updated_at = NOW()
		WHERE id = $13
	`

	tag, err := r.db.Exec(ctx, query,
		user.Name,
		user.Email,
		user.Password,
		user.Program,
		user.Branch,
		user.Semester,
		user.Bio,
		user.GoogleID,
		user.ProfilePicture,
		achievements,
		skills,
		socialLinks,
		user.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin sets the last login timestamp to now
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// GetByIDs loads the users with the given IDs into a map keyed by ID.
// Missing IDs are silently absent from the result.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	users := make(map[int64]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error getting users by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// Delete removes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

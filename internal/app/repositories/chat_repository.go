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
)

// ChatRepository handles database operations for chat rooms. A room row
// carries its members, messages, rules and pinned-message references as
// embedded documents; the aggregate is loaded and saved as one unit.
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

type chatDocs struct {
	rules    []byte
	members  []byte
	messages []byte
	stats    []byte
}

func marshalChatDocs(chat *models.Chat) (*chatDocs, error) {
	if chat.Rules == nil {
		chat.Rules = []models.ChatRule{}
	}
	if chat.Members == nil {
		chat.Members = []models.Member{}
	}
	if chat.Messages == nil {
		chat.Messages = []models.Message{}
	}
	if chat.PinnedMessages == nil {
		chat.PinnedMessages = []string{}
	}

	docs := &chatDocs{}
	var err error
	if docs.rules, err = json.Marshal(chat.Rules); err != nil {
		return nil, fmt.Errorf("error encoding rules: %w", err)
	}
	if docs.members, err = json.Marshal(chat.Members); err != nil {
		return nil, fmt.Errorf("error encoding members: %w", err)
	}
	if docs.messages, err = json.Marshal(chat.Messages); err != nil {
		return nil, fmt.Errorf("error encoding messages: %w", err)
	}
	if docs.stats, err = json.Marshal(chat.Stats); err != nil {
		return nil, fmt.Errorf("error encoding stats: %w", err)
	}
	return docs, nil
}

func scanChat(row pgx.Row) (*models.Chat, error) {
	var chat models.Chat
	var rules, members, messages, stats []byte

	err := row.Scan(
		&chat.ID,
		&chat.Name,
		&chat.Type,
		&chat.Category,
		&chat.Description,
		&rules,
		&chat.Program,
		&chat.Branch,
		&chat.Semester,
		&members,
		&messages,
		&chat.PinnedMessages,
		&chat.IsActive,
		&stats,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(rules, &chat.Rules); err != nil {
		return nil, fmt.Errorf("error decoding rules: %w", err)
	}
	if err := json.Unmarshal(members, &chat.Members); err != nil {
		return nil, fmt.Errorf("error decoding members: %w", err)
	}
	if err := json.Unmarshal(messages, &chat.Messages); err != nil {
		return nil, fmt.Errorf("error decoding messages: %w", err)
	}
	if err := json.Unmarshal(stats, &chat.Stats); err != nil {
		return nil, fmt.Errorf("error decoding stats: %w", err)
	}

	return &chat, nil
}

const chatColumns = `id, name, type, category, description, rules, program, branch, semester,
	members, messages, pinned_messages, is_active, stats, created_at, updated_at`

// GetAll retrieves all active chat rooms. Visibility filtering happens in the
// service layer since it depends on the requesting user's attributes.
func (r *ChatRepository) GetAll(ctx context.Context) ([]*models.Chat, error) {
	query := `SELECT ` + chatColumns + ` FROM chats WHERE is_active = TRUE ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var chats []*models.Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning chat row: %w", err)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return chats, nil
}

// GetByID retrieves the full chat aggregate by ID
func (r *ChatRepository) GetByID(ctx context.Context, id int64) (*models.Chat, error) {
	query := `SELECT ` + chatColumns + ` FROM chats WHERE id = $1`

	chat, err := scanChat(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, fmt.Errorf("error getting chat: %w", err)
	}
	return chat, nil
}

// Create inserts a new chat room and sets its generated ID.
func (r *ChatRepository) Create(ctx context.Context, chat *models.Chat) error {
	docs, err := marshalChatDocs(chat)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO chats (name, type, category, description, rules, program, branch, semester,
			members, messages, pinned_messages, is_active, stats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		chat.Name,
		chat.Type,
		chat.Category,
		chat.Description,
		docs.rules,
		chat.Program,
		chat.Branch,
		chat.Semester,
		docs.members,
		docs.messages,
		chat.PinnedMessages,
		chat.IsActive,
		docs.stats,
	).Scan(&chat.ID, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating chat: %w", err)
	}

	return nil
}

// Update persists the full chat aggregate.
func (r *ChatRepository) Update(ctx context.Context, chat *models.Chat) error {
	docs, err := marshalChatDocs(chat)
	if err != nil {
		return err
	}

	query := `
		UPDATE chats
		SET name = $1, type = $2, category = $3, description = $4, rules = $5,
			program = $6, branch = $7, semester = $8, members = $9, messages = $10,
			pinned_messages = $11, is_active = $12, stats = $13, updated_at = NOW()
		WHERE id = $14
	`

	tag, err := r.db.Exec(ctx, query,
		chat.Name,
		chat.Type,
		chat.Category,
		chat.Description,
		docs.rules,
		chat.Program,
		chat.Branch,
		chat.Semester,
		docs.members,
		docs.messages,
		chat.PinnedMessages,
		chat.IsActive,
		docs.stats,
		chat.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating chat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrChatNotFound
	}
	return nil
}

// Delete removes a chat room by ID
func (r *ChatRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM chats WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting chat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrChatNotFound
	}
	return nil
}

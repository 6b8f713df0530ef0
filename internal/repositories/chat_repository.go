package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"taskassistant/internal/models"
)

type ChatRepository interface {
	Append(ctx context.Context, msgs ...models.ChatMessage) error
	// ListByUser returns messages oldest first; limit <= 0 returns all,
	// otherwise only the most recent limit messages.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error)
}

type chatRepository struct {
	DB *sql.DB
}

func NewChatRepository(db *sql.DB) ChatRepository {
	return &chatRepository{DB: db}
}

func (r *chatRepository) Append(ctx context.Context, msgs ...models.ChatMessage) error {
	const q = `
                INSERT INTO chat_messages (id, user_id, role, content, created_at)
                VALUES ($1, $2, $3, $4, $5)
        `
	for _, m := range msgs {
		if _, err := r.DB.ExecContext(ctx, q, m.ID, m.UserID, m.Role, m.Content, m.CreatedAt); err != nil {
			return fmt.Errorf("append chat message: %w", err)
		}
	}
	return nil
}

func (r *chatRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		const q = `
                SELECT id, user_id, role, content, created_at FROM (
                        SELECT id, user_id, role, content, created_at, seq
                        FROM chat_messages
                        WHERE user_id = $1
                        ORDER BY seq DESC
                        LIMIT $2
                ) recent
                ORDER BY seq ASC
        `
		rows, err = r.DB.QueryContext(ctx, q, userID, limit)
	} else {
		const q = `
                SELECT id, user_id, role, content, created_at
                FROM chat_messages
                WHERE user_id = $1
                ORDER BY seq ASC
        `
		rows, err = r.DB.QueryContext(ctx, q, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// ChatRepository handles assistant conversation history
type ChatRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *sql.DB, logger *zap.Logger) *ChatRepository {
	return &ChatRepository{
		db:     db,
		logger: logger,
	}
}

// Append stores one exchange and fills its generated id and timestamp
func (r *ChatRepository) Append(msg *models.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO chat_history (id, user_id, message, response, context_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.Exec(query,
		msg.ID,
		msg.UserID,
		msg.Message,
		msg.Response,
		msg.ContextUsed,
		msg.Timestamp,
	); err != nil {
		r.logger.Error("Failed to append chat message", zap.Error(err), zap.String("user_id", msg.UserID))
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// Recent returns the latest exchanges for a user, oldest first
func (r *ChatRepository) Recent(userID string, limit int) ([]*models.ChatMessage, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, message, response, context_used, created_at
		FROM chat_history
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		r.logger.Error("Failed to list chat history", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list chat history: %w", err)
	}
	defer rows.Close()

	messages := []*models.ChatMessage{}
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.UserID,
			&msg.Message,
			&msg.Response,
			&msg.ContextUsed,
			&msg.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order for prompt context.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

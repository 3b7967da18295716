package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// DeadlineRepository handles user-defined calendar deadlines
type DeadlineRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDeadlineRepository creates a new deadline repository
func NewDeadlineRepository(db *sql.DB, logger *zap.Logger) *DeadlineRepository {
	return &DeadlineRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a custom deadline and fills its generated id
func (r *DeadlineRepository) Create(deadline *models.UserDeadline) error {
	if deadline.ID == "" {
		deadline.ID = uuid.New().String()
	}
	if deadline.CreatedAt.IsZero() {
		deadline.CreatedAt = time.Now().UTC()
	}
	if deadline.Category == "" {
		deadline.Category = "custom"
	}

	query := `
		INSERT INTO user_deadlines (id, user_id, title, date, description, category, is_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.Exec(query,
		deadline.ID,
		deadline.UserID,
		deadline.Title,
		deadline.Date,
		deadline.Description,
		deadline.Category,
		deadline.IsCompleted,
		deadline.CreatedAt,
	); err != nil {
		r.logger.Error("Failed to create deadline", zap.Error(err), zap.String("user_id", deadline.UserID))
		return fmt.Errorf("failed to create deadline: %w", err)
	}
	return nil
}

// ListByUser returns a user's deadlines ordered by date
func (r *DeadlineRepository) ListByUser(userID string) ([]*models.UserDeadline, error) {
	query := `
		SELECT id, user_id, title, date, description, category, is_completed, created_at
		FROM user_deadlines
		WHERE user_id = ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		r.logger.Error("Failed to list deadlines", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list deadlines: %w", err)
	}
	defer rows.Close()

	deadlines := []*models.UserDeadline{}
	for rows.Next() {
		var d models.UserDeadline
		if err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.Title,
			&d.Date,
			&d.Description,
			&d.Category,
			&d.IsCompleted,
			&d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deadline: %w", err)
		}
		deadlines = append(deadlines, &d)
	}
	return deadlines, rows.Err()
}

// MarkCompleted flags a deadline done
func (r *DeadlineRepository) MarkCompleted(id string) error {
	result, err := r.db.Exec("UPDATE user_deadlines SET is_completed = 1 WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to complete deadline", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to complete deadline: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

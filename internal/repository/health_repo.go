package repository

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// HealthScoreRepository stores monthly health score snapshots so the
// API can report month-over-month deltas
type HealthScoreRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHealthScoreRepository creates a new health score repository
func NewHealthScoreRepository(db *sql.DB, logger *zap.Logger) *HealthScoreRepository {
	return &HealthScoreRepository{
		db:     db,
		logger: logger,
	}
}

// HealthSnapshot is one stored score
type HealthSnapshot struct {
	Score     int
	Month     string
	CreatedAt time.Time
}

// Record stores a snapshot
func (r *HealthScoreRepository) Record(userID string, score int, month string) error {
	query := `
		INSERT INTO health_score_history (user_id, score, month, created_at)
		VALUES (?, ?, ?, ?)
	`
	if _, err := r.db.Exec(query, userID, score, month, time.Now().UTC()); err != nil {
		r.logger.Error("Failed to record health score", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("failed to record health score: %w", err)
	}
	return nil
}

// Latest returns the most recent snapshot, or nil when none exists
func (r *HealthScoreRepository) Latest(userID string) (*HealthSnapshot, error) {
	query := `
		SELECT score, month, created_at
		FROM health_score_history
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var snap HealthSnapshot
	err := r.db.QueryRow(query, userID).Scan(&snap.Score, &snap.Month, &snap.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get latest health score", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get latest health score: %w", err)
	}
	return &snap, nil
}

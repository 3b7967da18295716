package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// ProfileRepository handles taxpayer profile database operations
type ProfileRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts or replaces the profile for a user
func (r *ProfileRepository) Upsert(profile *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, name, pan, aadhaar, dob, email, mobile, address, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			pan = excluded.pan,
			aadhaar = excluded.aadhaar,
			dob = excluded.dob,
			email = excluded.email,
			mobile = excluded.mobile,
			address = excluded.address,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query,
		profile.UserID,
		profile.Name,
		profile.PAN,
		profile.Aadhaar,
		profile.DOB,
		profile.Email,
		profile.Mobile,
		profile.Address,
	); err != nil {
		r.logger.Error("Failed to upsert profile", zap.Error(err), zap.String("user_id", profile.UserID))
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetByUserID fetches a profile, or nil when the user has none
func (r *ProfileRepository) GetByUserID(userID string) (*models.UserProfile, error) {
	query := `
		SELECT user_id, name, pan, aadhaar, dob, email, mobile, address
		FROM user_profiles
		WHERE user_id = ?
	`

	var profile models.UserProfile
	err := r.db.QueryRow(query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.PAN,
		&profile.Aadhaar,
		&profile.DOB,
		&profile.Email,
		&profile.Mobile,
		&profile.Address,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get profile", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// DocumentRepository handles tax document database operations
type DocumentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *sql.DB, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new document record. Metadata is stored as JSON.
func (r *DocumentRepository) Create(doc *models.DocumentRecord) error {
	metadata, err := json.Marshal(doc.Meta())
	if err != nil {
		return fmt.Errorf("failed to marshal document metadata: %w", err)
	}

	query := `
		INSERT INTO documents (id, user_id, document_type, file_url, metadata, status, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}

	if _, err := r.db.Exec(query,
		doc.ID,
		doc.UserID,
		doc.DocumentType,
		doc.FileURL,
		string(metadata),
		doc.Status,
		doc.UploadedAt,
	); err != nil {
		r.logger.Error("Failed to create document", zap.Error(err), zap.String("user_id", doc.UserID))
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// GetByID fetches one document, or nil when absent
func (r *DocumentRepository) GetByID(id string) (*models.DocumentRecord, error) {
	query := `
		SELECT id, user_id, document_type, file_url, metadata, status, uploaded_at
		FROM documents
		WHERE id = ?
	`

	doc, err := r.scanDocument(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get document", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

// ListByUser returns all documents for a user, newest first
func (r *DocumentRepository) ListByUser(userID string) ([]*models.DocumentRecord, error) {
	query := `
		SELECT id, user_id, document_type, file_url, metadata, status, uploaded_at
		FROM documents
		WHERE user_id = ?
		ORDER BY uploaded_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		r.logger.Error("Failed to list documents", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	documents := []*models.DocumentRecord{}
	for rows.Next() {
		doc, err := r.scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, doc)
	}
	return documents, rows.Err()
}

// Delete removes a document by id
func (r *DocumentRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete document", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to delete document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *DocumentRepository) scanDocument(row scanner) (*models.DocumentRecord, error) {
	var doc models.DocumentRecord
	var metadata string

	if err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.DocumentType,
		&doc.FileURL,
		&metadata,
		&doc.Status,
		&doc.UploadedAt,
	); err != nil {
		return nil, err
	}

	// Corrupt metadata degrades to an empty map instead of failing
	// the whole listing.
	if err := json.Unmarshal([]byte(metadata), &doc.Metadata); err != nil {
		r.logger.Warn("Failed to unmarshal document metadata",
			zap.String("id", doc.ID),
			zap.Error(err))
		doc.Metadata = map[string]interface{}{}
	}

	return &doc, nil
}

package models

import "time"

// DocumentRecord is one captured tax document plus the loosely-typed
// metadata the extraction pipeline produced for it. Metadata values may
// be missing, null, or of the wrong type; readers must go through the
// tax package normalizers.
type DocumentRecord struct {
	ID           string                 `json:"id"`
	UserID       string                 `json:"user_id"`
	DocumentType string                 `json:"document_type"`
	FileURL      string                 `json:"file_url,omitempty"`
	Metadata     map[string]interface{} `json:"metadata"`
	Status       string                 `json:"status"`
	UploadedAt   time.Time              `json:"uploaded_at"`
}

// Meta returns the metadata map, never nil.
func (d *DocumentRecord) Meta() map[string]interface{} {
	if d.Metadata == nil {
		return map[string]interface{}{}
	}
	return d.Metadata
}

// DocumentTypeSpec describes the metadata fields expected for one
// document type.
type DocumentTypeSpec struct {
	RequiredFields []string `json:"required_fields"`
	OptionalFields []string `json:"optional_fields"`
}

// UserProfile carries taxpayer identity fields used by the ITR draft.
type UserProfile struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	PAN     string `json:"pan"`
	Aadhaar string `json:"aadhaar"`
	DOB     string `json:"dob"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

// ChatMessage is one stored assistant exchange.
type ChatMessage struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Message     string    `json:"message"`
	Response    string    `json:"response"`
	ContextUsed bool      `json:"context_used"`
	Timestamp   time.Time `json:"timestamp"`
}

// UserDeadline is a custom deadline created by the user, merged with
// the system calendar when listing.
type UserDeadline struct {
	ID          string    `json:"deadline_id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExtractionResult is what the AI extractor returns for an uploaded
// document: sanitized metadata plus confidence and validation notes.
type ExtractionResult struct {
	ExtractedMetadata map[string]interface{} `json:"extracted_metadata"`
	ConfidenceScore   float64                `json:"confidence_score"`
	ValidationErrors  []string               `json:"validation_errors"`
	Suggestions       []string               `json:"suggestions"`
}

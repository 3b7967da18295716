package models

import "time"

// ConsistencyIssue is one cross-document finding, either an
// inconsistency or a softer warning.
type ConsistencyIssue struct {
	Type        string  `json:"type"`
	Severity    string  `json:"severity"`
	Description string  `json:"description"`
	Difference  float64 `json:"difference,omitempty"`
	Action      string  `json:"action"`
}

// ConsistencyReport is the result of cross-validating redundant
// figures across document types.
type ConsistencyReport struct {
	Inconsistencies []ConsistencyIssue `json:"inconsistencies"`
	Warnings        []ConsistencyIssue `json:"warnings"`
	Status          string             `json:"status"`
	TotalIssues     int                `json:"total_issues"`
}

// MissingDocument flags a required document type absent from the
// upload set.
type MissingDocument struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// IncompleteDocument flags an uploaded document missing expected parts.
type IncompleteDocument struct {
	Type   string `json:"type"`
	Issue  string `json:"issue"`
	Action string `json:"action"`
}

// DocumentRecommendation is a soft nudge towards uploading a document.
type DocumentRecommendation struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// GapAnalysis compares the upload set against the document catalog.
type GapAnalysis struct {
	MissingDocuments     []MissingDocument        `json:"missing_documents"`
	IncompleteDocuments  []IncompleteDocument     `json:"incomplete_documents"`
	Recommendations      []DocumentRecommendation `json:"recommendations"`
	CompletionPercentage float64                  `json:"completion_percentage"`
	Status               string                   `json:"status"`
}

// Insight is one item of the prioritized insights feed.
type Insight struct {
	Type             string    `json:"type"`
	Category         string    `json:"category"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	Priority         string    `json:"priority"`
	Action           string    `json:"action"`
	PotentialSavings float64   `json:"potential_savings,omitempty"`
	Impact           string    `json:"impact,omitempty"`
	DeadlineDate     string    `json:"deadline_date,omitempty"`
	DaysRemaining    int       `json:"days_remaining,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// HealthFactor is one weighted component of the health score.
type HealthFactor struct {
	Factor   string  `json:"factor"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Status   string  `json:"status"`
}

// HealthScore is the composite 0-100 tax health score for a month.
type HealthScore struct {
	Score         int            `json:"score"`
	MaxScore      int            `json:"max_score"`
	HealthLevel   string         `json:"health_level"`
	HealthMessage string         `json:"health_message"`
	Factors       []HealthFactor `json:"factors"`
	Month         string         `json:"month"`
	PreviousScore *int           `json:"previous_score,omitempty"`
	ScoreChange   *int           `json:"score_change,omitempty"`
}

// Deadline is one entry of the tax calendar, system or custom.
type Deadline struct {
	Title       string `json:"title"`
	Date        string `json:"date"` // YYYY-MM-DD
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DaysUntil   int    `json:"days_until"`
	IsOverdue   bool   `json:"is_overdue"`
	IsUpcoming  bool   `json:"is_upcoming"`
	DeadlineID  string `json:"deadline_id,omitempty"`
	IsCompleted bool   `json:"is_completed,omitempty"`
}

// ChecklistItem is one task in the filing checklist.
type ChecklistItem struct {
	Task        string `json:"task"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

// ChecklistPhase groups checklist items with a phase status.
type ChecklistPhase struct {
	Status string          `json:"status"`
	Items  []ChecklistItem `json:"items"`
}

// FilingChecklist is the four-phase filing checklist.
type FilingChecklist struct {
	DocumentCollection ChecklistPhase `json:"document_collection"`
	DataVerification   ChecklistPhase `json:"data_verification"`
	ITRPreparation     ChecklistPhase `json:"itr_preparation"`
	Filing             ChecklistPhase `json:"filing"`
}

// CompletionStatus summarises auto-file readiness.
type CompletionStatus struct {
	Documents    float64 `json:"documents"`
	Verification float64 `json:"verification"`
	Overall      float64 `json:"overall"`
}

package tax

import (
	"fmt"
	"strings"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// ChecklistBuilder derives the four-phase filing checklist from the
// gap analysis and consistency findings.
type ChecklistBuilder struct{}

// NewChecklistBuilder creates a builder.
func NewChecklistBuilder() *ChecklistBuilder {
	return &ChecklistBuilder{}
}

// Build assembles the checklist. Missing documents and open issues
// become pending tasks; uploaded documents become completed ones.
func (cb *ChecklistBuilder) Build(documents []*models.DocumentRecord, gaps *models.GapAnalysis, report *models.ConsistencyReport) *models.FilingChecklist {
	checklist := &models.FilingChecklist{
		DocumentCollection: models.ChecklistPhase{Status: "incomplete", Items: []models.ChecklistItem{}},
		DataVerification:   models.ChecklistPhase{Status: "review_needed", Items: []models.ChecklistItem{}},
		ITRPreparation:     models.ChecklistPhase{Status: "pending", Items: []models.ChecklistItem{}},
		Filing:             models.ChecklistPhase{Status: "not_started", Items: []models.ChecklistItem{}},
	}
	if gaps.Status == models.GapStatusReady {
		checklist.DocumentCollection.Status = "complete"
		checklist.ITRPreparation.Status = "ready"
	}
	if report.Status == models.ConsistencyStatusClean {
		checklist.DataVerification.Status = "clean"
	}

	for _, missing := range gaps.MissingDocuments {
		checklist.DocumentCollection.Items = append(checklist.DocumentCollection.Items, models.ChecklistItem{
			Task:        "Upload " + titleize(missing.Type),
			Status:      "pending",
			Priority:    missing.Priority,
			Description: missing.Description,
		})
	}
	for _, doc := range documents {
		if doc == nil {
			continue
		}
		checklist.DocumentCollection.Items = append(checklist.DocumentCollection.Items, models.ChecklistItem{
			Task:        "Verify " + titleize(doc.DocumentType),
			Status:      "completed",
			Priority:    models.PriorityLow,
			Description: fmt.Sprintf("Document uploaded on %s", doc.UploadedAt.Format("2006-01-02")),
		})
	}

	for _, issue := range report.Inconsistencies {
		checklist.DataVerification.Items = append(checklist.DataVerification.Items, models.ChecklistItem{
			Task:        "Resolve: " + titleize(issue.Type),
			Status:      "pending",
			Priority:    issue.Severity,
			Description: issue.Description,
		})
	}
	for _, warning := range report.Warnings {
		checklist.DataVerification.Items = append(checklist.DataVerification.Items, models.ChecklistItem{
			Task:        "Review: " + titleize(warning.Type),
			Status:      "pending",
			Priority:    warning.Severity,
			Description: warning.Description,
		})
	}

	autoFillStatus := "pending"
	if gaps.Status == models.GapStatusReady {
		autoFillStatus = "completed"
	}
	checklist.ITRPreparation.Items = []models.ChecklistItem{
		{
			Task:        "Auto-fill ITR form",
			Status:      autoFillStatus,
			Priority:    models.PriorityHigh,
			Description: "ITR form will be auto-filled from uploaded documents",
		},
		{
			Task:        "Review tax computation",
			Status:      "pending",
			Priority:    models.PriorityHigh,
			Description: "Verify all calculations are correct",
		},
		{
			Task:        "Verify deductions",
			Status:      "pending",
			Priority:    models.PriorityMedium,
			Description: "Ensure all deduction claims are supported by documents",
		},
	}

	checklist.Filing.Items = []models.ChecklistItem{
		{
			Task:        "Generate ITR JSON",
			Status:      "pending",
			Priority:    models.PriorityHigh,
			Description: "Generate JSON file for e-filing",
		},
		{
			Task:        "Download ITR report",
			Status:      "pending",
			Priority:    models.PriorityHigh,
			Description: "Download ITR summary for review",
		},
		{
			Task:        "E-verify ITR",
			Status:      "pending",
			Priority:    models.PriorityHigh,
			Description: "E-verify using Aadhaar OTP or Net Banking",
		},
	}

	return checklist
}

// CompletionStatus summarizes overall filing readiness as percentages.
func (cb *ChecklistBuilder) CompletionStatus(gaps *models.GapAnalysis, report *models.ConsistencyReport) models.CompletionStatus {
	verification := 50.0
	if report.Status == models.ConsistencyStatusClean {
		verification = 100.0
	}
	return models.CompletionStatus{
		Documents:    gaps.CompletionPercentage,
		Verification: verification,
		Overall:      (gaps.CompletionPercentage + verification) / 2,
	}
}

// titleize turns a snake_case identifier into a display title, like
// "form_26as" into "Form 26as".
func titleize(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

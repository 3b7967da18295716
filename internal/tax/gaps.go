package tax

import (
	"fmt"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// GapAnalyzer compares an upload set against the document catalog and
// reports what is missing, incomplete, or merely recommended.
type GapAnalyzer struct {
	catalog DocumentCatalog
}

// NewGapAnalyzer creates an analyzer over the given catalog.
func NewGapAnalyzer(catalog DocumentCatalog) *GapAnalyzer {
	return &GapAnalyzer{catalog: catalog}
}

// Analyze inspects the upload set. Status is ready iff no required
// document type is missing; recommendations never block readiness.
func (ga *GapAnalyzer) Analyze(documents []*models.DocumentRecord) *models.GapAnalysis {
	analysis := &models.GapAnalysis{
		MissingDocuments:    []models.MissingDocument{},
		IncompleteDocuments: []models.IncompleteDocument{},
		Recommendations:     []models.DocumentRecommendation{},
	}

	uploadedTypes := map[string]bool{}
	byType := map[string][]*models.DocumentRecord{}
	for _, doc := range documents {
		if doc == nil {
			continue
		}
		uploadedTypes[doc.DocumentType] = true
		byType[doc.DocumentType] = append(byType[doc.DocumentType], doc)
	}

	for _, entry := range ga.catalog {
		if entry.Required && !uploadedTypes[entry.Type] {
			analysis.MissingDocuments = append(analysis.MissingDocuments, models.MissingDocument{
				Type:        entry.Type,
				Priority:    models.PriorityHigh,
				Description: entry.Description,
				Action:      fmt.Sprintf("Upload %s", entry.Description),
			})
		}
	}

	// A Form 16 without either part marker is incomplete even though
	// the type itself is present.
	for _, doc := range byType[models.DocTypeForm16] {
		meta := doc.Meta()
		if ToText(meta["part_a"]) == "" && ToText(meta["part_b"]) == "" {
			analysis.IncompleteDocuments = append(analysis.IncompleteDocuments, models.IncompleteDocument{
				Type:   models.DocTypeForm16,
				Issue:  "Missing Part A or Part B",
				Action: "Ensure both Part A and Part B are uploaded",
			})
		}
	}

	if !uploadedTypes[models.DocTypeInvestmentProof] {
		analysis.Recommendations = append(analysis.Recommendations, models.DocumentRecommendation{
			Type:        models.DocTypeInvestmentProof,
			Priority:    models.PriorityMedium,
			Description: "Upload investment proofs to maximize deductions",
			Action:      "Upload LIC receipts, PPF statements, ELSS certificates, etc.",
		})
	}
	if uploadedTypes[models.DocTypeSalarySlip] && !uploadedTypes[models.DocTypeRentReceipt] {
		analysis.Recommendations = append(analysis.Recommendations, models.DocumentRecommendation{
			Type:        models.DocTypeRentReceipt,
			Priority:    models.PriorityLow,
			Description: "Rent receipts can help claim HRA deduction",
			Action:      "Upload rent receipts if you're paying rent",
		})
	}
	if !uploadedTypes[models.DocTypeBankInterestCert] {
		analysis.Recommendations = append(analysis.Recommendations, models.DocumentRecommendation{
			Type:        models.DocTypeBankInterestCert,
			Priority:    models.PriorityMedium,
			Description: "Bank interest income needs to be declared",
			Action:      "Upload bank interest certificates if interest > ₹40,000",
		})
	}

	analysis.CompletionPercentage = ga.completionPercentage(documents, uploadedTypes)
	analysis.Status = models.GapStatusReady
	if len(analysis.MissingDocuments) > 0 {
		analysis.Status = models.GapStatusIncomplete
	}

	return analysis
}

// completionPercentage weights required coverage at 80% and grants up
// to 20% bonus for optional documents, 5 points apiece.
func (ga *GapAnalyzer) completionPercentage(documents []*models.DocumentRecord, uploadedTypes map[string]bool) float64 {
	requiredCount := ga.catalog.RequiredCount()
	if requiredCount == 0 {
		return 100
	}

	uploadedRequired := 0
	for _, entry := range ga.catalog {
		if entry.Required && uploadedTypes[entry.Type] {
			uploadedRequired++
		}
	}

	optionalUploaded := 0
	for _, doc := range documents {
		if doc == nil {
			continue
		}
		if entry, ok := ga.catalog.Lookup(doc.DocumentType); !ok || !entry.Required {
			optionalUploaded++
		}
	}

	base := float64(uploadedRequired) / float64(requiredCount) * 80
	bonus := minf(float64(optionalUploaded)*5, 20)

	return minf(base+bonus, 100)
}

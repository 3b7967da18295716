package tax

import (
	"math"
	"time"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// HealthScorer combines the summary, consistency report, and gap
// analysis into a monthly 0-100 score across five weighted factors.
type HealthScorer struct {
	caps DeductionCaps
	now  func() time.Time
}

// NewHealthScorer creates a scorer. A nil clock defaults to time.Now.
func NewHealthScorer(caps DeductionCaps, now func() time.Time) *HealthScorer {
	if now == nil {
		now = time.Now
	}
	return &HealthScorer{caps: caps, now: now}
}

// Score computes the health score for the current month.
func (hs *HealthScorer) Score(summary *models.TaxSummary, report *models.ConsistencyReport, gaps *models.GapAnalysis) *models.HealthScore {
	total := 0.0
	factors := make([]models.HealthFactor, 0, 5)

	docScore := gaps.CompletionPercentage / 100 * 30
	total += docScore
	factors = append(factors, models.HealthFactor{
		Factor:   "Document Completeness",
		Score:    docScore,
		MaxScore: 30,
		Status:   factorStatus(gaps.CompletionPercentage, 90, 70),
	})

	consistencyScore := 25.0
	if report.Status != models.ConsistencyStatusClean {
		consistencyScore = max0(25 - float64(report.TotalIssues)*5)
	}
	total += consistencyScore
	factors = append(factors, models.HealthFactor{
		Factor:   "Data Consistency",
		Score:    consistencyScore,
		MaxScore: 25,
		Status:   factorStatus(consistencyScore, 20, 15),
	})

	combined := minf(summary.Deductions.Section80C.Total, hs.caps.Section80C) +
		minf(summary.Deductions.Section80D.Total, hs.caps.Section80D) +
		summary.Deductions.HRA.Total
	var deductionScore float64
	switch {
	case combined >= 200000:
		deductionScore = 20
	case combined >= 150000:
		deductionScore = 15
	case combined >= 100000:
		deductionScore = 10
	default:
		deductionScore = 5
	}
	total += deductionScore
	factors = append(factors, models.HealthFactor{
		Factor:   "Deduction Optimization",
		Score:    deductionScore,
		MaxScore: 20,
		Status:   factorStatus(deductionScore, 15, 10),
	})

	var planningScore float64
	switch {
	case summary.TaxEstimate.NetPayable <= 0:
		planningScore = 15
	case summary.TDS.AdvanceTax > 0:
		planningScore = 12
	case summary.TaxEstimate.NetPayable < 10000:
		planningScore = 10
	default:
		planningScore = 5
	}
	total += planningScore
	factors = append(factors, models.HealthFactor{
		Factor:   "Tax Planning",
		Score:    planningScore,
		MaxScore: 15,
		Status:   factorStatus(planningScore, 12, 8),
	})

	var complianceScore float64
	switch len(gaps.MissingDocuments) {
	case 0:
		complianceScore = 10
	case 1:
		complianceScore = 7
	case 2:
		complianceScore = 4
	default:
		complianceScore = 0
	}
	total += complianceScore
	factors = append(factors, models.HealthFactor{
		Factor:   "Compliance",
		Score:    complianceScore,
		MaxScore: 10,
		Status:   factorStatus(complianceScore, 8, 5),
	})

	score := int(math.Round(total))
	level, message := healthLevel(score)

	return &models.HealthScore{
		Score:         score,
		MaxScore:      100,
		HealthLevel:   level,
		HealthMessage: message,
		Factors:       factors,
		Month:         hs.now().UTC().Format("2006-01"),
	}
}

func factorStatus(value, excellentAt, goodAt float64) string {
	switch {
	case value >= excellentAt:
		return "excellent"
	case value >= goodAt:
		return "good"
	default:
		return "needs_improvement"
	}
}

func healthLevel(score int) (string, string) {
	switch {
	case score >= 85:
		return models.HealthExcellent, "Your tax health is excellent! Keep up the good work."
	case score >= 70:
		return models.HealthGood, "Your tax health is good. A few improvements can make it excellent."
	case score >= 55:
		return models.HealthFair, "Your tax health is fair. Focus on document completeness and deductions."
	default:
		return models.HealthNeedsImprovement, "Your tax health needs improvement. Upload missing documents and optimize deductions."
	}
}

package tax

import (
	"fmt"
	"sort"
	"time"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// InsightsEngine derives the prioritized insights feed from the
// aggregate summary and the consistency findings. The clock is
// injected so deadline windows can be pinned in tests.
type InsightsEngine struct {
	slabs SlabTable
	caps  DeductionCaps
	now   func() time.Time
}

// NewInsightsEngine creates an engine with the given constants. A nil
// clock defaults to time.Now.
func NewInsightsEngine(slabs SlabTable, caps DeductionCaps, now func() time.Time) *InsightsEngine {
	if now == nil {
		now = time.Now
	}
	return &InsightsEngine{slabs: slabs, caps: caps, now: now}
}

// Generate produces the flat insights feed, sorted by priority rank
// with ties broken by timestamp ascending.
func (ie *InsightsEngine) Generate(documents []*models.DocumentRecord, summary *models.TaxSummary, report *models.ConsistencyReport) []*models.Insight {
	insights := []*models.Insight{}
	insights = append(insights, ie.detectOpportunities(documents, summary)...)
	insights = append(insights, ie.detectRisks(documents, summary, report)...)
	insights = append(insights, ie.upcomingDeadlines()...)
	insights = append(insights, ie.suggestOptimizations(summary)...)

	sort.SliceStable(insights, func(i, j int) bool {
		ri, rj := models.PriorityRank(insights[i].Priority), models.PriorityRank(insights[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return insights[i].Timestamp.Before(insights[j].Timestamp)
	})

	return insights
}

func (ie *InsightsEngine) detectOpportunities(documents []*models.DocumentRecord, summary *models.TaxSummary) []*models.Insight {
	var opportunities []*models.Insight
	now := ie.now().UTC()

	hasRent := hasDocType(documents, models.DocTypeRentReceipt)
	hasSalary := hasDocType(documents, models.DocTypeSalarySlip)

	// HRA headroom exists only when rent receipts and salary documents
	// together leave claimable room beyond what the summary counted.
	if hasRent && hasSalary {
		totalRent := 0.0
		for _, doc := range documents {
			if doc != nil && doc.DocumentType == models.DocTypeRentReceipt {
				totalRent += ToNumber(doc.Meta()["monthly_rent"]) * 12
			}
		}
		claimable := minf(totalRent, summary.Income.TotalSalary*ie.caps.HRASalaryFraction)
		if headroom := claimable - summary.Deductions.HRA.Total; headroom > 0 {
			opportunities = append(opportunities, &models.Insight{
				Type:     models.InsightTypeOpportunity,
				Category: "hra_claim",
				Title:    "HRA Claim Opportunity",
				Message: fmt.Sprintf("Your rent receipts total ₹%.0f → You can claim up to ₹%.0f as HRA deduction.",
					totalRent, claimable),
				Priority:         models.PriorityHigh,
				Action:           "Upload rent receipts to maximize HRA deduction",
				PotentialSavings: ie.taxSavings(headroom, summary),
				Timestamp:        now,
			})
		}
	}

	if current := summary.Deductions.Section80C.Total; current < ie.caps.Section80C {
		if remaining := ie.caps.Section80C - current; remaining > 10000 {
			opportunities = append(opportunities, &models.Insight{
				Type:     models.InsightTypeOpportunity,
				Category: "section_80c",
				Title:    "Maximize Section 80C",
				Message: fmt.Sprintf("You've claimed ₹%.0f under Section 80C. You can invest ₹%.0f more to maximize deduction.",
					current, remaining),
				Priority:         models.PriorityMedium,
				Action:           "Consider investing in ELSS, PPF, or LIC to maximize Section 80C",
				PotentialSavings: ie.taxSavings(remaining, summary),
				Timestamp:        now,
			})
		}
	}

	if current := summary.Deductions.Section80D.Total; current < ie.caps.Section80D {
		if remaining := ie.caps.Section80D - current; remaining > 5000 {
			opportunities = append(opportunities, &models.Insight{
				Type:             models.InsightTypeOpportunity,
				Category:         "section_80d",
				Title:            "Health Insurance Deduction",
				Message:          fmt.Sprintf("You can claim ₹%.0f more under Section 80D for health insurance premiums.", remaining),
				Priority:         models.PriorityMedium,
				Action:           "Review your health insurance premiums to maximize Section 80D",
				PotentialSavings: ie.taxSavings(remaining, summary),
				Timestamp:        now,
			})
		}
	}

	if current := summary.Deductions.NPS.Total; current < ie.caps.NPS {
		if remaining := ie.caps.NPS - current; remaining > 10000 {
			opportunities = append(opportunities, &models.Insight{
				Type:             models.InsightTypeOpportunity,
				Category:         "nps",
				Title:            "NPS Contribution Opportunity",
				Message:          fmt.Sprintf("Consider contributing ₹%.0f more to NPS for additional tax benefit under Section 80CCD(1B).", remaining),
				Priority:         models.PriorityLow,
				Action:           "Increase NPS contribution to maximize tax savings",
				PotentialSavings: ie.taxSavings(remaining, summary),
				Timestamp:        now,
			})
		}
	}

	return opportunities
}

func (ie *InsightsEngine) detectRisks(documents []*models.DocumentRecord, summary *models.TaxSummary, report *models.ConsistencyReport) []*models.Insight {
	var risks []*models.Insight
	now := ie.now().UTC()

	if report != nil {
		for _, issue := range report.Inconsistencies {
			risks = append(risks, &models.Insight{
				Type:      models.InsightTypeRisk,
				Category:  issue.Type,
				Title:     "TDS Mismatch Detected",
				Message:   issue.Description,
				Priority:  models.PriorityCritical,
				Action:    issue.Action,
				Impact:    "May result in tax notice or refund delay",
				Timestamp: now,
			})
		}
	}

	if !hasDocType(documents, models.DocTypeForm26AS) {
		risks = append(risks, &models.Insight{
			Type:      models.InsightTypeRisk,
			Category:  "missing_26as",
			Title:     "Form 26AS Not Uploaded",
			Message:   "TDS credited in 26AS but not verified → You may get a mismatch during ITR processing.",
			Priority:  models.PriorityHigh,
			Action:    "Download and upload Form 26AS from income tax portal",
			Impact:    "ITR may be rejected or delayed",
			Timestamp: now,
		})
	}

	if bankInterest := summary.Income.BankInterest; bankInterest > 40000 && !hasDocType(documents, models.DocTypeBankInterestCert) {
		risks = append(risks, &models.Insight{
			Type:      models.InsightTypeRisk,
			Category:  "undeclared_income",
			Title:     "Bank Interest Declaration",
			Message:   fmt.Sprintf("Your bank interest (₹%.0f) exceeds ₹40,000 threshold. Ensure proper declaration.", bankInterest),
			Priority:  models.PriorityMedium,
			Action:    "Upload bank interest certificates and declare in ITR",
			Impact:    "May attract penalty for non-declaration",
			Timestamp: now,
		})
	}

	if netPayable := summary.TaxEstimate.NetPayable; netPayable > 10000 {
		risks = append(risks, &models.Insight{
			Type:      models.InsightTypeRisk,
			Category:  "high_tax_payable",
			Title:     "High Tax Payable",
			Message:   fmt.Sprintf("You have ₹%.0f tax payable. Consider advance tax to avoid interest charges.", netPayable),
			Priority:  models.PriorityHigh,
			Action:    "Pay advance tax before March 15 to avoid interest under Section 234B/234C",
			Impact:    "Interest charges if not paid on time",
			Timestamp: now,
		})
	}

	return risks
}

// upcomingDeadlines surfaces advance-tax installments within 7 days
// and the annual filing deadline within 30 days.
func (ie *InsightsEngine) upcomingDeadlines() []*models.Insight {
	var deadlines []*models.Insight
	now := ie.now().UTC()

	quarterly := []struct {
		date  time.Time
		label string
	}{
		{nextOccurrence(now, time.June, 15), "Q1 Advance Tax"},
		{nextOccurrence(now, time.September, 15), "Q2 Advance Tax"},
		{nextOccurrence(now, time.December, 15), "Q3 Advance Tax"},
		{nextOccurrence(now, time.March, 15), "Q4 Advance Tax"},
	}

	for _, q := range quarterly {
		days := daysUntil(now, q.date)
		if days < 0 || days > 7 {
			continue
		}
		priority := models.PriorityHigh
		if days <= 3 {
			priority = models.PriorityCritical
		}
		deadlines = append(deadlines, &models.Insight{
			Type:          models.InsightTypeDeadline,
			Category:      "advance_tax",
			Title:         fmt.Sprintf("%s Due", q.label),
			Message:       fmt.Sprintf("Quarterly Advance Tax due in %s.", pluralDays(days)),
			Priority:      priority,
			Action:        fmt.Sprintf("Pay advance tax before %s", q.date.Format("January 02, 2006")),
			DeadlineDate:  q.date.Format("2006-01-02"),
			DaysRemaining: days,
			Timestamp:     now,
		})
	}

	itrDeadline := nextOccurrence(now, time.July, 31)
	if days := daysUntil(now, itrDeadline); days >= 0 && days <= 30 {
		priority := models.PriorityHigh
		if days <= 7 {
			priority = models.PriorityCritical
		}
		deadlines = append(deadlines, &models.Insight{
			Type:          models.InsightTypeDeadline,
			Category:      "itr_filing",
			Title:         "ITR Filing Deadline",
			Message:       fmt.Sprintf("ITR filing deadline in %s.", pluralDays(days)),
			Priority:      priority,
			Action:        "File your ITR before July 31 to avoid penalty",
			DeadlineDate:  itrDeadline.Format("2006-01-02"),
			DaysRemaining: days,
			Timestamp:     now,
		})
	}

	return deadlines
}

func (ie *InsightsEngine) suggestOptimizations(summary *models.TaxSummary) []*models.Insight {
	var optimizations []*models.Insight
	now := ie.now().UTC()

	combined := minf(summary.Deductions.Section80C.Total, ie.caps.Section80C) +
		minf(summary.Deductions.Section80D.Total, ie.caps.Section80D) +
		summary.Deductions.HRA.Total

	if combined > 200000 {
		optimizations = append(optimizations, &models.Insight{
			Type:      models.InsightTypeOptimization,
			Category:  "regime_selection",
			Title:     "Consider Old Tax Regime",
			Message:   fmt.Sprintf("With deductions of ₹%.0f, the old regime may be more beneficial.", combined),
			Priority:  models.PriorityMedium,
			Action:    "Compare old vs new regime in Tax Summary",
			Timestamp: now,
		})
	}

	if summary.Income.TotalSalary > 0 {
		optimizations = append(optimizations, &models.Insight{
			Type:      models.InsightTypeOptimization,
			Category:  "standard_deduction",
			Title:     "Standard Deduction Applied",
			Message:   fmt.Sprintf("₹%.0f standard deduction has been automatically applied to your salary income.", ie.caps.StandardDeduction),
			Priority:  models.PriorityLow,
			Action:    "No action needed",
			Timestamp: now,
		})
	}

	return optimizations
}

// taxSavings is the tax delta from claiming an additional deduction,
// floored at zero.
func (ie *InsightsEngine) taxSavings(additionalDeduction float64, summary *models.TaxSummary) float64 {
	taxable := summary.TaxEstimate.TaxableIncome
	newTax := ie.slabs.Tax(max0(taxable - additionalDeduction))
	return max0(summary.TaxEstimate.TotalTax - newTax)
}

func hasDocType(documents []*models.DocumentRecord, docType string) bool {
	for _, doc := range documents {
		if doc != nil && doc.DocumentType == docType {
			return true
		}
	}
	return false
}

// nextOccurrence returns the next calendar occurrence of month/day at
// or after now.
func nextOccurrence(now time.Time, month time.Month, day int) time.Time {
	candidate := time.Date(now.Year(), month, day, 0, 0, 0, 0, time.UTC)
	if candidate.Before(now.Truncate(24 * time.Hour)) {
		candidate = time.Date(now.Year()+1, month, day, 0, 0, 0, 0, time.UTC)
	}
	return candidate
}

func daysUntil(now, deadline time.Time) int {
	return int(deadline.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
}

func pluralDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

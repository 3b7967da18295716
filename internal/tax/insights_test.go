package tax

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// fixedClock pins the engine outside every deadline window so only
// document-driven insights fire.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var quietDay = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func newTestInsightsEngine(now time.Time) *InsightsEngine {
	return NewInsightsEngine(DefaultSlabTable(), DefaultDeductionCaps(), fixedClock(now))
}

func TestGenerateSection80COpportunity(t *testing.T) {
	agg := newTestAggregator()
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 1200000.0}),
		doc(models.DocTypeInvestmentProof, map[string]interface{}{"section": "80C", "amount": 50000.0}),
		doc(models.DocTypeBankInterestCert, map[string]interface{}{"interest_amount": 0.0}),
	}
	summary := agg.Aggregate(documents)
	report := newTestChecker().Check(documents)

	insights := newTestInsightsEngine(quietDay).Generate(documents, summary, report)

	var opp *models.Insight
	for _, in := range insights {
		if in.Category == "section_80c" {
			opp = in
			break
		}
	}
	require.NotNil(t, opp)
	assert.Equal(t, models.InsightTypeOpportunity, opp.Type)
	assert.Equal(t, models.PriorityMedium, opp.Priority)
	// Taxable drops from 1,100,000 to 1,000,000 when the remaining
	// 100,000 of the 80C limit is invested.
	assert.InDelta(t, 15000, opp.PotentialSavings, 0.001)
}

func TestGenerateNoOpportunityWhenCapsReached(t *testing.T) {
	agg := newTestAggregator()
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 1200000.0}),
		doc(models.DocTypeInvestmentProof, map[string]interface{}{"section": "80C", "amount": 150000.0}),
	}
	summary := agg.Aggregate(documents)
	report := newTestChecker().Check(documents)

	insights := newTestInsightsEngine(quietDay).Generate(documents, summary, report)

	for _, in := range insights {
		assert.NotEqual(t, "section_80c", in.Category)
	}
}

func TestGenerateHRAOpportunity(t *testing.T) {
	agg := newTestAggregator()
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 1200000.0}),
		doc(models.DocTypeRentReceipt, map[string]interface{}{"monthly_rent": 20000.0}),
	}
	summary := agg.Aggregate(documents)
	// The summary already counts the full annual rent, so the claim
	// has no remaining headroom.
	report := newTestChecker().Check(documents)
	insights := newTestInsightsEngine(quietDay).Generate(documents, summary, report)
	for _, in := range insights {
		assert.NotEqual(t, "hra_claim", in.Category)
	}

	// With the counted HRA zeroed out, the headroom reappears.
	summary.Deductions.HRA.Total = 0
	insights = newTestInsightsEngine(quietDay).Generate(documents, summary, report)
	var opp *models.Insight
	for _, in := range insights {
		if in.Category == "hra_claim" {
			opp = in
			break
		}
	}
	require.NotNil(t, opp)
	assert.Equal(t, models.PriorityHigh, opp.Priority)
	assert.Contains(t, opp.Message, "₹240000")
}

func TestGenerateMissing26ASRisk(t *testing.T) {
	agg := newTestAggregator()
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 500000.0}),
	}
	summary := agg.Aggregate(documents)
	report := newTestChecker().Check(documents)

	insights := newTestInsightsEngine(quietDay).Generate(documents, summary, report)

	var risk *models.Insight
	for _, in := range insights {
		if in.Category == "missing_26as" {
			risk = in
			break
		}
	}
	require.NotNil(t, risk)
	assert.Equal(t, models.InsightTypeRisk, risk.Type)
	assert.Equal(t, models.PriorityHigh, risk.Priority)
}

func TestGenerateInconsistencyBecomesCriticalRisk(t *testing.T) {
	agg := newTestAggregator()
	documents := []*models.DocumentRecord{
		doc(models.DocTypeForm16, map[string]interface{}{"tds": 50000.0, "total_income": 500000.0}),
		doc(models.DocTypeForm26AS, map[string]interface{}{"total_tds": 40000.0}),
	}
	summary := agg.Aggregate(documents)
	report := newTestChecker().Check(documents)
	require.Len(t, report.Inconsistencies, 1)

	insights := newTestInsightsEngine(quietDay).Generate(documents, summary, report)

	require.NotEmpty(t, insights)
	// Critical entries sort ahead of everything else.
	assert.Equal(t, models.PriorityCritical, insights[0].Priority)
	assert.Equal(t, models.InsightTypeRisk, insights[0].Type)
	assert.Equal(t, "tds_mismatch", insights[0].Category)
}

func TestGenerateBankInterestRisk(t *testing.T) {
	agg := newTestAggregator()
	summaryDocs := []*models.DocumentRecord{
		doc(models.DocTypeBankInterestCert, map[string]interface{}{"interest_amount": 45000.0}),
	}
	summary := agg.Aggregate(summaryDocs)

	// Same interest reported, but no certificate among the uploads.
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 500000.0}),
	}
	report := newTestChecker().Check(documents)

	insights := newTestInsightsEngine(quietDay).Generate(documents, summary, report)

	var risk *models.Insight
	for _, in := range insights {
		if in.Category == "undeclared_income" {
			risk = in
			break
		}
	}
	require.NotNil(t, risk)
	assert.Equal(t, models.PriorityMedium, risk.Priority)
}

func TestGenerateHighTaxPayableRisk(t *testing.T) {
	agg := newTestAggregator()
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 1500000.0}),
	}
	summary := agg.Aggregate(documents)
	require.Greater(t, summary.TaxEstimate.NetPayable, 10000.0)
	report := newTestChecker().Check(documents)

	insights := newTestInsightsEngine(quietDay).Generate(documents, summary, report)

	var risk *models.Insight
	for _, in := range insights {
		if in.Category == "high_tax_payable" {
			risk = in
			break
		}
	}
	require.NotNil(t, risk)
	assert.Equal(t, models.PriorityHigh, risk.Priority)
}

func TestGenerateDeadlineWindows(t *testing.T) {
	tests := []struct {
		name         string
		now          time.Time
		category     string
		wantPriority string
		wantDays     int
	}{
		{
			name:         "itr filing within a week is critical",
			now:          time.Date(2024, time.July, 25, 12, 0, 0, 0, time.UTC),
			category:     "itr_filing",
			wantPriority: models.PriorityCritical,
			wantDays:     6,
		},
		{
			name:         "itr filing within a month is high",
			now:          time.Date(2024, time.July, 5, 12, 0, 0, 0, time.UTC),
			category:     "itr_filing",
			wantPriority: models.PriorityHigh,
			wantDays:     26,
		},
		{
			name:         "advance tax within three days is critical",
			now:          time.Date(2024, time.June, 13, 12, 0, 0, 0, time.UTC),
			category:     "advance_tax",
			wantPriority: models.PriorityCritical,
			wantDays:     2,
		},
		{
			name:         "advance tax within a week is high",
			now:          time.Date(2024, time.September, 9, 12, 0, 0, 0, time.UTC),
			category:     "advance_tax",
			wantPriority: models.PriorityHigh,
			wantDays:     6,
		},
	}

	agg := newTestAggregator()
	summary := agg.Aggregate(nil)
	report := newTestChecker().Check(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := newTestInsightsEngine(tt.now).Generate(nil, summary, report)

			var deadline *models.Insight
			for _, in := range insights {
				if in.Category == tt.category {
					deadline = in
					break
				}
			}
			require.NotNil(t, deadline)
			assert.Equal(t, models.InsightTypeDeadline, deadline.Type)
			assert.Equal(t, tt.wantPriority, deadline.Priority)
			assert.Equal(t, tt.wantDays, deadline.DaysRemaining)
		})
	}
}

func TestGenerateNoDeadlinesOutsideWindows(t *testing.T) {
	summary := newTestAggregator().Aggregate(nil)
	report := newTestChecker().Check(nil)

	insights := newTestInsightsEngine(quietDay).Generate(nil, summary, report)

	for _, in := range insights {
		assert.NotEqual(t, models.InsightTypeDeadline, in.Type)
	}
}

func TestGenerateOptimizations(t *testing.T) {
	agg := newTestAggregator()
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 1200000.0}),
		doc(models.DocTypeInvestmentProof, map[string]interface{}{"section": "80C", "amount": 150000.0}),
		doc(models.DocTypeInvestmentProof, map[string]interface{}{"section": "80D", "amount": 25000.0}),
		doc(models.DocTypeRentReceipt, map[string]interface{}{"monthly_rent": 10000.0}),
	}
	summary := agg.Aggregate(documents)
	report := newTestChecker().Check(documents)

	insights := newTestInsightsEngine(quietDay).Generate(documents, summary, report)

	var regime, standard *models.Insight
	for _, in := range insights {
		switch in.Category {
		case "regime_selection":
			regime = in
		case "standard_deduction":
			standard = in
		}
	}
	require.NotNil(t, regime)
	assert.Equal(t, models.PriorityMedium, regime.Priority)
	require.NotNil(t, standard)
	assert.Equal(t, models.PriorityLow, standard.Priority)
}

func TestGenerateSortedByPriority(t *testing.T) {
	agg := newTestAggregator()
	documents := []*models.DocumentRecord{
		doc(models.DocTypeForm16, map[string]interface{}{"tds": 50000.0, "total_income": 1500000.0}),
		doc(models.DocTypeForm26AS, map[string]interface{}{"total_tds": 40000.0}),
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 100000.0}),
	}
	summary := agg.Aggregate(documents)
	report := newTestChecker().Check(documents)

	insights := newTestInsightsEngine(quietDay).Generate(documents, summary, report)

	require.NotEmpty(t, insights)
	for i := 1; i < len(insights); i++ {
		assert.LessOrEqual(t,
			models.PriorityRank(insights[i-1].Priority),
			models.PriorityRank(insights[i].Priority),
			"insights must be ordered by priority rank")
	}
}

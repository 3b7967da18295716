package tax

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxpilot/tax-assistant/internal/models"
)

func newTestHealthScorer() *HealthScorer {
	return NewHealthScorer(DefaultDeductionCaps(), fixedClock(time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)))
}

func scoreFixture(documents []*models.DocumentRecord) *models.HealthScore {
	summary := newTestAggregator().Aggregate(documents)
	report := newTestChecker().Check(documents)
	gaps := newTestGapAnalyzer().Analyze(documents)
	return newTestHealthScorer().Score(summary, report, gaps)
}

func TestScoreZeroDocuments(t *testing.T) {
	score := scoreFixture(nil)

	assert.Equal(t, 49, score.Score)
	assert.Equal(t, 100, score.MaxScore)
	assert.Equal(t, models.HealthNeedsImprovement, score.HealthLevel)
	assert.NotEmpty(t, score.HealthMessage)
	assert.Equal(t, "2024-05", score.Month)

	require.Len(t, score.Factors, 5)
	assert.Equal(t, "Document Completeness", score.Factors[0].Factor)
	assert.Zero(t, score.Factors[0].Score)
	assert.Equal(t, "Data Consistency", score.Factors[1].Factor)
	assert.InDelta(t, 25, score.Factors[1].Score, 0.001)
	assert.Equal(t, "Deduction Optimization", score.Factors[2].Factor)
	assert.InDelta(t, 5, score.Factors[2].Score, 0.001)
	assert.Equal(t, "Tax Planning", score.Factors[3].Factor)
	assert.InDelta(t, 15, score.Factors[3].Score, 0.001)
	assert.Equal(t, "Compliance", score.Factors[4].Factor)
	assert.InDelta(t, 4, score.Factors[4].Score, 0.001)
}

func TestScoreFullyPreparedTaxpayer(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeForm16, map[string]interface{}{
			"part_a": "yes", "part_b": "yes",
			"total_income": 1200000.0, "tds": 90000.0,
		}),
		doc(models.DocTypeForm26AS, map[string]interface{}{"total_tds": 90000.0}),
		doc(models.DocTypeInvestmentProof, map[string]interface{}{"section": "80C", "amount": 150000.0}),
		doc(models.DocTypeInvestmentProof, map[string]interface{}{"section": "80D", "amount": 25000.0}),
		doc(models.DocTypeRentReceipt, map[string]interface{}{"monthly_rent": 10000.0}),
		doc(models.DocTypeBankInterestCert, map[string]interface{}{"interest_amount": 5000.0}),
	}

	score := scoreFixture(documents)

	// Completeness 100 (both required plus four optional documents),
	// clean consistency, 295k combined deductions, refund position,
	// no missing documents.
	assert.Equal(t, 100, score.Score)
	assert.Equal(t, models.HealthExcellent, score.HealthLevel)
}

func TestScoreConsistencyPenalty(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeForm16, map[string]interface{}{"part_a": "yes", "part_b": "yes", "tds": 50000.0}),
		doc(models.DocTypeForm26AS, map[string]interface{}{"total_tds": 40000.0}),
	}

	score := scoreFixture(documents)

	// One inconsistency knocks 5 points off the consistency factor.
	assert.InDelta(t, 20, score.Factors[1].Score, 0.001)
	assert.Equal(t, "excellent", score.Factors[1].Status)
}

func TestScoreLevels(t *testing.T) {
	tests := []struct {
		score int
		level string
	}{
		{100, models.HealthExcellent},
		{85, models.HealthExcellent},
		{84, models.HealthGood},
		{70, models.HealthGood},
		{69, models.HealthFair},
		{55, models.HealthFair},
		{54, models.HealthNeedsImprovement},
		{0, models.HealthNeedsImprovement},
	}

	for _, tt := range tests {
		level, message := healthLevel(tt.score)
		assert.Equal(t, tt.level, level, "score %d", tt.score)
		assert.NotEmpty(t, message)
	}
}

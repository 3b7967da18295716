package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxpilot/tax-assistant/internal/models"
)

func newTestChecker() *ConsistencyChecker {
	return NewConsistencyChecker(DefaultCheckerConfig())
}

func TestCheckTDSMismatch(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeForm16, map[string]interface{}{"tds": 50000.0}),
		doc(models.DocTypeForm26AS, map[string]interface{}{"total_tds": 40000.0}),
	}

	report := newTestChecker().Check(documents)

	require.Len(t, report.Inconsistencies, 1)
	issue := report.Inconsistencies[0]
	assert.Equal(t, "tds_mismatch", issue.Type)
	assert.Equal(t, models.SeverityHigh, issue.Severity)
	assert.InDelta(t, 10000, issue.Difference, 0.001)
	assert.Contains(t, issue.Description, "₹50000.00")
	assert.Contains(t, issue.Description, "₹40000.00")
	assert.Equal(t, models.ConsistencyStatusIssues, report.Status)
}

func TestCheckTDSWithinTolerance(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeForm16, map[string]interface{}{"tds": 50000.0}),
		doc(models.DocTypeForm26AS, map[string]interface{}{"total_tds": 49900.0}),
	}

	report := newTestChecker().Check(documents)

	assert.Empty(t, report.Inconsistencies)
	assert.Equal(t, models.ConsistencyStatusClean, report.Status)
}

func TestCheckTDSRuleNeedsBothSources(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeForm16, map[string]interface{}{"tds": 50000.0}),
	}

	report := newTestChecker().Check(documents)

	assert.Empty(t, report.Inconsistencies)
}

func TestCheckIncomeVariance(t *testing.T) {
	tests := []struct {
		name        string
		form16      float64
		slips       float64
		wantWarning bool
	}{
		{"variance above threshold", 1200000, 1000000, true},
		{"variance within threshold", 1200000, 1180000, false},
		{"exact match", 1200000, 1200000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			documents := []*models.DocumentRecord{
				doc(models.DocTypeForm16, map[string]interface{}{"total_income": tt.form16}),
				doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": tt.slips}),
			}

			report := newTestChecker().Check(documents)

			if tt.wantWarning {
				require.Len(t, report.Warnings, 1)
				assert.Equal(t, "income_variance", report.Warnings[0].Type)
				assert.Equal(t, models.SeverityMedium, report.Warnings[0].Severity)
				// Warnings alone never flip the status.
				assert.Equal(t, models.ConsistencyStatusClean, report.Status)
			} else {
				assert.Empty(t, report.Warnings)
			}
		})
	}
}

func TestCheckPANMismatch(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"pan": "abcde1234f"}),
		doc(models.DocTypeForm16, map[string]interface{}{"pan": "XYZAB5678C"}),
	}

	report := newTestChecker().Check(documents)

	require.Len(t, report.Warnings, 1)
	warning := report.Warnings[0]
	assert.Equal(t, "pan_mismatch", warning.Type)
	assert.Equal(t, "Multiple PAN numbers found: ABCDE1234F, XYZAB5678C", warning.Description)
}

func TestCheckPANCaseInsensitive(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"pan": "abcde1234f"}),
		doc(models.DocTypeForm16, map[string]interface{}{"pan": "ABCDE1234F"}),
	}

	report := newTestChecker().Check(documents)

	assert.Empty(t, report.Warnings)
}

func TestCheckIncomplete26AS(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeForm26AS, map[string]interface{}{}),
	}

	report := newTestChecker().Check(documents)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "missing_26as_data", report.Warnings[0].Type)
	assert.Equal(t, models.SeverityLow, report.Warnings[0].Severity)
	assert.Equal(t, models.ConsistencyStatusClean, report.Status)
	assert.Equal(t, 1, report.TotalIssues)
}

func TestCheckEmptyCollection(t *testing.T) {
	report := newTestChecker().Check(nil)

	assert.Empty(t, report.Inconsistencies)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, models.ConsistencyStatusClean, report.Status)
	assert.Zero(t, report.TotalIssues)
}

func TestCheckTotalIssuesCountsBoth(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeForm16, map[string]interface{}{"tds": 50000.0, "total_income": 1200000.0, "pan": "AAAAA1111A"}),
		doc(models.DocTypeForm26AS, map[string]interface{}{"total_tds": 40000.0}),
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 1000000.0, "pan": "BBBBB2222B"}),
	}

	report := newTestChecker().Check(documents)

	assert.Len(t, report.Inconsistencies, 1)
	assert.Len(t, report.Warnings, 2)
	assert.Equal(t, 3, report.TotalIssues)
	assert.Equal(t, models.ConsistencyStatusIssues, report.Status)
}

package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taxpilot/tax-assistant/internal/models"
)

func TestSlabTableTax(t *testing.T) {
	table := DefaultSlabTable()

	tests := []struct {
		name     string
		income   float64
		expected float64
	}{
		{"zero income", 0, 0},
		{"below exemption limit", 200000, 0},
		{"first bracket boundary", 250000, 0},
		{"inside first bracket", 400000, 7500},
		{"second bracket boundary", 500000, 12500},
		{"third bracket boundary", 700000, 37500},
		{"inside third bracket", 800000, 47500},
		{"fourth bracket boundary", 900000, 67500},
		{"fifth bracket boundary", 1200000, 112500},
		{"top bracket boundary", 1500000, 187500},
		{"inside top bracket", 2000000, 337500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, table.Tax(tt.income), 0.001)
		})
	}
}

func TestSlabTableTaxNonDecreasing(t *testing.T) {
	table := DefaultSlabTable()

	prev := 0.0
	for income := 0.0; income <= 2500000; income += 10000 {
		tax := table.Tax(income)
		assert.GreaterOrEqual(t, tax, prev, "tax must not decrease at income %.0f", income)
		prev = tax
	}
}

func TestSlabTableTaxNegativeIncome(t *testing.T) {
	assert.Zero(t, DefaultSlabTable().Tax(-1000))
}

func TestDeductionCapsCappedTotal(t *testing.T) {
	caps := DefaultDeductionCaps()

	tests := []struct {
		name       string
		deductions models.DeductionSummary
		salary     float64
		expected   float64
	}{
		{
			name:       "empty deductions",
			deductions: models.DeductionSummary{},
			salary:     1200000,
			expected:   0,
		},
		{
			name: "80c capped at limit",
			deductions: models.DeductionSummary{
				Section80C: models.SectionDeduction{Total: 250000},
			},
			salary:   1200000,
			expected: 150000,
		},
		{
			name: "hra capped at half of salary",
			deductions: models.DeductionSummary{
				HRA: models.SectionDeduction{Total: 700000},
			},
			salary:   1000000,
			expected: 500000,
		},
		{
			name: "donations uncapped",
			deductions: models.DeductionSummary{
				Donations: 300000,
			},
			salary:   1200000,
			expected: 300000,
		},
		{
			name: "all categories capped",
			deductions: models.DeductionSummary{
				Section80C:            models.SectionDeduction{Total: 200000},
				Section80D:            models.SectionDeduction{Total: 50000},
				HRA:                   models.SectionDeduction{Total: 100000},
				NPS:                   models.SectionDeduction{Total: 80000},
				HomeLoanInterest:      250000,
				EducationLoanInterest: 60000,
				Donations:             10000,
			},
			salary:   1200000,
			expected: 150000 + 25000 + 100000 + 50000 + 200000 + 40000 + 10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.deductions
			assert.InDelta(t, tt.expected, caps.CappedTotal(&d, tt.salary), 0.001)
		})
	}
}

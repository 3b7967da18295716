package tax

import "github.com/taxpilot/tax-assistant/internal/models"

// RegimeComparator computes the tax outcome under the old regime (all
// deduction caps applied) and the new regime (no deductions beyond the
// standard deduction), and recommends the cheaper one.
//
// The new-regime computation intentionally reuses the injected slab
// table; it does not carry a separate new-regime table.
type RegimeComparator struct {
	slabs SlabTable
	caps  DeductionCaps
}

// NewRegimeComparator creates a comparator with the given constants.
func NewRegimeComparator(slabs SlabTable, caps DeductionCaps) *RegimeComparator {
	return &RegimeComparator{slabs: slabs, caps: caps}
}

// Compare evaluates both regimes against an aggregated summary. It
// never fails: a zero summary yields zero tax under both regimes and a
// "new" recommendation with zero savings.
func (rc *RegimeComparator) Compare(summary *models.TaxSummary) *models.RegimeComparison {
	oldTaxable := summary.TaxEstimate.TaxableIncome
	oldTax := summary.TaxEstimate.TotalTax

	newTaxable := max0(summary.Income.TotalSalary + summary.Income.OtherIncome - rc.caps.StandardDeduction)
	newTax := rc.slabs.Tax(newTaxable)

	recommended := models.RegimeNew
	explanation := "The new regime yields a lower tax with your current deductions."
	if oldTax < newTax {
		recommended = models.RegimeOld
		explanation = "Based on your deductions, the old regime appears more beneficial."
	}

	savings := oldTax - newTax
	if savings < 0 {
		savings = -savings
	}

	return &models.RegimeComparison{
		OldRegime: models.RegimeResult{
			TaxableIncome: oldTaxable,
			TotalTax:      oldTax,
			EffectiveRate: effectiveRate(oldTax, oldTaxable),
		},
		NewRegime: models.RegimeResult{
			TaxableIncome: newTaxable,
			TotalTax:      newTax,
			EffectiveRate: effectiveRate(newTax, newTaxable),
		},
		RecommendedRegime: recommended,
		Savings:           savings,
		Explanation:       explanation,
		Recommendations: []string{
			"Consider maximizing Section 80C investments",
			"Review HRA claims if applicable",
		},
	}
}

// effectiveRate guards against a zero taxable income.
func effectiveRate(tax, taxableIncome float64) float64 {
	if taxableIncome < 1 {
		taxableIncome = 1
	}
	return tax / taxableIncome * 100
}

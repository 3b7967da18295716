package tax

// Slab is one bracket of a progressive tax table: income at or above
// Threshold is taxed at Base plus Rate on the amount over Threshold.
type Slab struct {
	Threshold float64
	Base      float64
	Rate      float64
}

// SlabTable is a progressive tax table ordered from the highest
// threshold down. Tables are immutable configuration; construct one
// per financial year and share it freely.
type SlabTable []Slab

// DefaultSlabTable returns the FY 2023-24 old-regime table. The base
// amounts of adjacent brackets do not interpolate continuously at the
// 700,000 and 900,000 boundaries; that reproduces the published table
// and must not be smoothed out.
func DefaultSlabTable() SlabTable {
	return SlabTable{
		{Threshold: 1500000, Base: 187500, Rate: 0.30},
		{Threshold: 1200000, Base: 112500, Rate: 0.20},
		{Threshold: 900000, Base: 67500, Rate: 0.15},
		{Threshold: 700000, Base: 37500, Rate: 0.10},
		{Threshold: 500000, Base: 12500, Rate: 0.05},
		{Threshold: 250000, Base: 0, Rate: 0.05},
	}
}

// Tax computes the tax owed on the given taxable income. A boundary
// income belongs to the bracket it opens, so Tax(700000) pays the
// 37,500 base rather than extending the bracket below.
func (t SlabTable) Tax(taxableIncome float64) float64 {
	for _, slab := range t {
		if taxableIncome >= slab.Threshold {
			return slab.Base + (taxableIncome-slab.Threshold)*slab.Rate
		}
	}
	return 0
}

// DeductionCaps holds the statutory deduction ceilings applied when
// computing taxable income under the old regime.
type DeductionCaps struct {
	Section80C            float64
	Section80D            float64
	NPS                   float64
	HomeLoanInterest      float64
	EducationLoanInterest float64
	HRASalaryFraction     float64
	StandardDeduction     float64
}

// DefaultDeductionCaps returns the FY 2023-24 limits.
func DefaultDeductionCaps() DeductionCaps {
	return DeductionCaps{
		Section80C:            150000,
		Section80D:            25000,
		NPS:                   50000,
		HomeLoanInterest:      200000,
		EducationLoanInterest: 40000,
		HRASalaryFraction:     0.5,
		StandardDeduction:     50000,
	}
}

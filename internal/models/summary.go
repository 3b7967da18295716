package models

// TaxSummary is the canonical aggregate derived from a user's document
// collection. All monetary fields are non-negative rupee amounts.
type TaxSummary struct {
	Income      IncomeSummary    `json:"income"`
	TDS         TDSSummary       `json:"tds"`
	Deductions  DeductionSummary `json:"deductions"`
	TaxEstimate TaxEstimate      `json:"tax_estimate"`
}

// IncomeSummary aggregates income figures across documents.
type IncomeSummary struct {
	TotalSalary  float64 `json:"total_salary"`
	EmployerName string  `json:"employer_name"`
	PAN          string  `json:"pan"`
	OtherIncome  float64 `json:"other_income"`
	BankInterest float64 `json:"bank_interest"`
	CapitalGains float64 `json:"capital_gains"`
}

// TDSSummary aggregates taxes already paid.
type TDSSummary struct {
	TDSDeducted       float64 `json:"tds_deducted"`
	AdvanceTax        float64 `json:"advance_tax"`
	SelfAssessmentTax float64 `json:"self_assessment_tax"`
}

// SectionDeduction is a deduction bucket with per-document details.
type SectionDeduction struct {
	Total   float64           `json:"total"`
	Details []DeductionDetail `json:"details"`
}

// DeductionDetail is one contribution to a deduction bucket.
type DeductionDetail struct {
	Type        string  `json:"type,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	MonthlyRent float64 `json:"monthly_rent,omitempty"`
	AnnualRent  float64 `json:"annual_rent,omitempty"`
}

// DeductionSummary aggregates claimed deductions before caps.
type DeductionSummary struct {
	Section80C            SectionDeduction `json:"section_80c"`
	Section80D            SectionDeduction `json:"section_80d"`
	HRA                   SectionDeduction `json:"hra"`
	NPS                   SectionDeduction `json:"nps"`
	HomeLoanInterest      float64          `json:"home_loan_interest"`
	EducationLoanInterest float64          `json:"education_loan_interest"`
	Donations             float64          `json:"donations"`
}

// TaxEstimate is the bottom line of the summary.
type TaxEstimate struct {
	TaxableIncome  float64 `json:"taxable_income"`
	TotalTax       float64 `json:"total_tax"`
	NetPayable     float64 `json:"net_payable"`
	NetRefundable  float64 `json:"net_refundable"`
}

// RegimeResult is the tax outcome under one regime.
type RegimeResult struct {
	TaxableIncome float64 `json:"taxable_income"`
	TotalTax      float64 `json:"total_tax"`
	EffectiveRate float64 `json:"effective_rate"`
}

// RegimeComparison compares the old and new tax regimes.
type RegimeComparison struct {
	OldRegime         RegimeResult `json:"old_regime"`
	NewRegime         RegimeResult `json:"new_regime"`
	RecommendedRegime string       `json:"recommended_regime"`
	Savings           float64      `json:"savings"`
	Explanation       string       `json:"explanation"`
	Recommendations   []string     `json:"recommendations"`
}

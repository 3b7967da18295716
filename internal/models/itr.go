package models

// ITRPersonalInfo carries taxpayer identity fields on the draft.
type ITRPersonalInfo struct {
	Name    string `json:"name"`
	PAN     string `json:"pan"`
	Aadhaar string `json:"aadhaar"`
	DOB     string `json:"dob"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

// ITRSalaryIncome mirrors the salary block of the filing form.
type ITRSalaryIncome struct {
	GrossSalary  float64 `json:"gross_salary"`
	TDS          float64 `json:"tds"`
	EmployerName string  `json:"employer_name"`
	EmployerTAN  string  `json:"employer_tan"`
}

// ITROtherIncome mirrors the other-income block of the filing form.
type ITROtherIncome struct {
	InterestIncome float64 `json:"interest_income"`
	CapitalGains   float64 `json:"capital_gains"`
	OtherSources   float64 `json:"other_sources"`
}

// ITRIncomeDetails groups income blocks.
type ITRIncomeDetails struct {
	SalaryIncome ITRSalaryIncome `json:"salary_income"`
	OtherIncome  ITROtherIncome  `json:"other_income"`
}

// ITRDeductions carries capped deduction claims by statutory section.
type ITRDeductions struct {
	Section80C        float64 `json:"section_80c"`
	Section80D        float64 `json:"section_80d"`
	Section80G        float64 `json:"section_80g"`
	Section24B        float64 `json:"section_24b"`
	Section80E        float64 `json:"section_80e"`
	HRA               float64 `json:"hra"`
	StandardDeduction float64 `json:"standard_deduction"`
}

// ITRTaxComputation mirrors the tax computation block.
type ITRTaxComputation struct {
	GrossTotalIncome  float64 `json:"gross_total_income"`
	TotalDeductions   float64 `json:"total_deductions"`
	TaxableIncome     float64 `json:"taxable_income"`
	TaxOnTotalIncome  float64 `json:"tax_on_total_income"`
	TDS               float64 `json:"tds"`
	AdvanceTax        float64 `json:"advance_tax"`
	SelfAssessmentTax float64 `json:"self_assessment_tax"`
	NetTaxPayable     float64 `json:"net_tax_payable"`
	Refund            float64 `json:"refund"`
}

// ITRVerification carries the signature block placeholders.
type ITRVerification struct {
	Place             string `json:"place"`
	Date              string `json:"date"`
	SignatureRequired bool   `json:"signature_required"`
}

// ITRCompleteness holds fixed illustrative completeness estimates, not
// computed from real field presence.
type ITRCompleteness struct {
	PersonalInfo  float64 `json:"personal_info"`
	IncomeDetails float64 `json:"income_details"`
	Deductions    float64 `json:"deductions"`
	Overall       float64 `json:"overall"`
}

// ITRDraft is the filing-form-shaped projection of a TaxSummary.
type ITRDraft struct {
	FinancialYear  string            `json:"financial_year"`
	AssessmentYear string            `json:"assessment_year"`
	ITRForm        string            `json:"itr_form"`
	PersonalInfo   ITRPersonalInfo   `json:"personal_info"`
	IncomeDetails  ITRIncomeDetails  `json:"income_details"`
	Deductions     ITRDeductions     `json:"deductions"`
	TaxComputation ITRTaxComputation `json:"tax_computation"`
	Verification   ITRVerification   `json:"verification"`
	Status         string            `json:"status"`
	LastUpdated    string            `json:"last_updated"`
	Completeness   ITRCompleteness   `json:"completeness"`
}

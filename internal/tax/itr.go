package tax

import (
	"fmt"
	"time"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// ITRDraftBuilder projects an aggregated summary into a filing-shaped
// draft. The draft is a plain snapshot and carries fixed completeness
// estimates rather than computed field coverage.
type ITRDraftBuilder struct {
	caps DeductionCaps
	now  func() time.Time
}

// NewITRDraftBuilder creates a builder. A nil clock defaults to time.Now.
func NewITRDraftBuilder(caps DeductionCaps, now func() time.Time) *ITRDraftBuilder {
	if now == nil {
		now = time.Now
	}
	return &ITRDraftBuilder{caps: caps, now: now}
}

// Build assembles the draft from the summary and an optional profile.
// A nil profile leaves the personal fields blank for the user to fill.
func (b *ITRDraftBuilder) Build(summary *models.TaxSummary, profile *models.UserProfile) *models.ITRDraft {
	if profile == nil {
		profile = &models.UserProfile{}
	}
	now := b.now().UTC()

	hraCapped := minf(summary.Deductions.HRA.Total, summary.Income.TotalSalary*b.caps.HRASalaryFraction)
	section80C := minf(summary.Deductions.Section80C.Total, b.caps.Section80C)
	section80D := minf(summary.Deductions.Section80D.Total, b.caps.Section80D)

	return &models.ITRDraft{
		FinancialYear:  financialYear(now),
		AssessmentYear: assessmentYear(now),
		ITRForm:        "ITR-1",
		PersonalInfo: models.ITRPersonalInfo{
			Name:    profile.Name,
			PAN:     summary.Income.PAN,
			Aadhaar: profile.Aadhaar,
			DOB:     profile.DOB,
			Email:   profile.Email,
			Mobile:  profile.Mobile,
			Address: profile.Address,
		},
		IncomeDetails: models.ITRIncomeDetails{
			SalaryIncome: models.ITRSalaryIncome{
				GrossSalary:  summary.Income.TotalSalary,
				TDS:          summary.TDS.TDSDeducted,
				EmployerName: summary.Income.EmployerName,
				EmployerTAN:  "",
			},
			OtherIncome: models.ITROtherIncome{
				InterestIncome: summary.Income.BankInterest,
				CapitalGains:   summary.Income.CapitalGains,
				OtherSources:   0,
			},
		},
		Deductions: models.ITRDeductions{
			Section80C:        section80C,
			Section80D:        section80D,
			Section80G:        summary.Deductions.Donations,
			Section24B:        minf(summary.Deductions.HomeLoanInterest, b.caps.HomeLoanInterest),
			Section80E:        minf(summary.Deductions.EducationLoanInterest, b.caps.EducationLoanInterest),
			HRA:               hraCapped,
			StandardDeduction: b.caps.StandardDeduction,
		},
		TaxComputation: models.ITRTaxComputation{
			GrossTotalIncome:  summary.Income.TotalSalary + summary.Income.OtherIncome,
			TotalDeductions:   section80C + section80D + hraCapped + b.caps.StandardDeduction,
			TaxableIncome:     summary.TaxEstimate.TaxableIncome,
			TaxOnTotalIncome:  summary.TaxEstimate.TotalTax,
			TDS:               summary.TDS.TDSDeducted,
			AdvanceTax:        summary.TDS.AdvanceTax,
			SelfAssessmentTax: summary.TDS.SelfAssessmentTax,
			NetTaxPayable:     summary.TaxEstimate.NetPayable,
			Refund:            summary.TaxEstimate.NetRefundable,
		},
		Verification: models.ITRVerification{
			Place:             "",
			Date:              now.Format("2006-01-02"),
			SignatureRequired: true,
		},
		Status:      "draft",
		LastUpdated: now.Format(time.RFC3339),
		Completeness: models.ITRCompleteness{
			PersonalInfo:  0.8,
			IncomeDetails: 0.9,
			Deductions:    0.85,
			Overall:       0.85,
		},
	}
}

// financialYear reports the Indian financial year (April to March)
// containing t, formatted like "2023-24".
func financialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return formatYearSpan(start)
}

// assessmentYear is the year following the financial year.
func assessmentYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return formatYearSpan(start + 1)
}

func formatYearSpan(start int) string {
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

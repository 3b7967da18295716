package tax

import (
	"strings"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// Aggregator folds a document collection into a canonical TaxSummary.
// The slab table and deduction caps are injected so a different
// financial year's constants can be substituted.
type Aggregator struct {
	slabs SlabTable
	caps  DeductionCaps
	rules map[string]accumulateFunc
}

// accumulateFunc applies one document's metadata to the summary being
// built.
type accumulateFunc func(summary *models.TaxSummary, meta map[string]interface{})

// NewAggregator creates an Aggregator with the given constants.
func NewAggregator(slabs SlabTable, caps DeductionCaps) *Aggregator {
	a := &Aggregator{slabs: slabs, caps: caps}
	a.rules = map[string]accumulateFunc{
		models.DocTypeSalarySlip:        a.accumulateSalarySlip,
		models.DocTypeForm16:            a.accumulateForm16,
		models.DocTypeBankInterestCert:  a.accumulateBankInterest,
		models.DocTypeInvestmentProof:   a.accumulateInvestmentProof,
		models.DocTypeHomeLoanStatement: a.accumulateHomeLoan,
		models.DocTypeRentReceipt:       a.accumulateRentReceipt,
		models.DocTypeEducationLoan:     a.accumulateEducationLoan,
		models.DocTypeDonationReceipt:   a.accumulateDonation,
		models.DocTypeCapitalGains:      a.accumulateCapitalGains,
		// form_26as and medical_bill feed the consistency and gap
		// checks only; they contribute nothing to the summary.
	}
	return a
}

// Aggregate derives the TaxSummary for a document collection. Unknown
// document types contribute nothing; the result for an empty
// collection is all zeros. Totals are independent of document order;
// only the first-non-empty employer and PAN fields depend on it.
func (a *Aggregator) Aggregate(documents []*models.DocumentRecord) *models.TaxSummary {
	summary := &models.TaxSummary{
		Deductions: models.DeductionSummary{
			Section80C: models.SectionDeduction{Details: []models.DeductionDetail{}},
			Section80D: models.SectionDeduction{Details: []models.DeductionDetail{}},
			HRA:        models.SectionDeduction{Details: []models.DeductionDetail{}},
			NPS:        models.SectionDeduction{Details: []models.DeductionDetail{}},
		},
	}

	for _, doc := range documents {
		if doc == nil {
			continue
		}
		if rule, ok := a.rules[doc.DocumentType]; ok {
			rule(summary, doc.Meta())
		}
	}

	summary.Income.OtherIncome = summary.Income.BankInterest + summary.Income.CapitalGains
	totalIncome := summary.Income.TotalSalary + summary.Income.OtherIncome

	capped := a.caps.CappedTotal(&summary.Deductions, summary.Income.TotalSalary)
	taxable := totalIncome - capped - a.caps.StandardDeduction
	if taxable < 0 {
		taxable = 0
	}

	summary.TaxEstimate.TaxableIncome = taxable
	summary.TaxEstimate.TotalTax = a.slabs.Tax(taxable)
	summary.TaxEstimate.NetPayable = max0(summary.TaxEstimate.TotalTax - summary.TDS.TDSDeducted)
	summary.TaxEstimate.NetRefundable = max0(summary.TDS.TDSDeducted - summary.TaxEstimate.TotalTax)

	return summary
}

func (a *Aggregator) accumulateSalarySlip(s *models.TaxSummary, meta map[string]interface{}) {
	s.Income.TotalSalary += ToNumber(meta["gross_salary"])
	s.TDS.TDSDeducted += ToNumber(meta["tds"])

	if s.Income.EmployerName == "" {
		s.Income.EmployerName = ToText(meta["employer"])
	}
	if s.Income.PAN == "" {
		s.Income.PAN = ToText(meta["pan"])
	}
}

func (a *Aggregator) accumulateForm16(s *models.TaxSummary, meta map[string]interface{}) {
	if total := ToNumber(meta["total_income"]); total > s.Income.TotalSalary {
		s.Income.TotalSalary = total
	}
	s.TDS.TDSDeducted += ToNumber(meta["tds"])

	if s.Income.EmployerName == "" {
		s.Income.EmployerName = ToText(meta["employer_name"])
	}
}

func (a *Aggregator) accumulateBankInterest(s *models.TaxSummary, meta map[string]interface{}) {
	s.Income.BankInterest += ToNumber(meta["interest_amount"])
}

func (a *Aggregator) accumulateInvestmentProof(s *models.TaxSummary, meta map[string]interface{}) {
	section := strings.ToUpper(ToText(meta["section"]))
	amount := ToNumber(meta["amount"])
	detail := models.DeductionDetail{
		Type:   ToText(meta["investment_type"]),
		Amount: amount,
	}

	switch {
	case strings.Contains(section, "80C"):
		s.Deductions.Section80C.Total += amount
		s.Deductions.Section80C.Details = append(s.Deductions.Section80C.Details, detail)
	case strings.Contains(section, "80D"):
		s.Deductions.Section80D.Total += amount
		s.Deductions.Section80D.Details = append(s.Deductions.Section80D.Details, detail)
	}
}

func (a *Aggregator) accumulateHomeLoan(s *models.TaxSummary, meta map[string]interface{}) {
	if strings.EqualFold(ToText(meta["component"]), "interest") {
		s.Deductions.HomeLoanInterest += ToNumber(meta["amount"])
	}
}

func (a *Aggregator) accumulateRentReceipt(s *models.TaxSummary, meta map[string]interface{}) {
	monthly := ToNumber(meta["monthly_rent"])
	annual := monthly * 12
	s.Deductions.HRA.Total += annual
	s.Deductions.HRA.Details = append(s.Deductions.HRA.Details, models.DeductionDetail{
		MonthlyRent: monthly,
		AnnualRent:  annual,
	})
}

func (a *Aggregator) accumulateEducationLoan(s *models.TaxSummary, meta map[string]interface{}) {
	s.Deductions.EducationLoanInterest += ToNumber(meta["interest_amount"])
}

func (a *Aggregator) accumulateDonation(s *models.TaxSummary, meta map[string]interface{}) {
	s.Deductions.Donations += ToNumber(meta["amount"])
}

func (a *Aggregator) accumulateCapitalGains(s *models.TaxSummary, meta map[string]interface{}) {
	s.Income.CapitalGains += ToNumber(meta["gains_amount"])
}

// CappedTotal applies the statutory ceilings to each deduction bucket
// and sums them. Donations carry no ceiling; HRA is capped at the
// salary fraction.
func (c DeductionCaps) CappedTotal(d *models.DeductionSummary, totalSalary float64) float64 {
	return minf(d.Section80C.Total, c.Section80C) +
		minf(d.Section80D.Total, c.Section80D) +
		minf(d.HRA.Total, totalSalary*c.HRASalaryFraction) +
		minf(d.NPS.Total, c.NPS) +
		minf(d.HomeLoanInterest, c.HomeLoanInterest) +
		minf(d.EducationLoanInterest, c.EducationLoanInterest) +
		d.Donations
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

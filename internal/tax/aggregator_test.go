package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxpilot/tax-assistant/internal/models"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(DefaultSlabTable(), DefaultDeductionCaps())
}

func doc(docType string, meta map[string]interface{}) *models.DocumentRecord {
	return &models.DocumentRecord{
		ID:           "doc-1",
		UserID:       "user-1",
		DocumentType: docType,
		Metadata:     meta,
		Status:       models.DocumentStatusProcessed,
	}
}

func TestAggregateEmptyCollection(t *testing.T) {
	summary := newTestAggregator().Aggregate(nil)

	require.NotNil(t, summary)
	assert.Zero(t, summary.Income.TotalSalary)
	assert.Zero(t, summary.TaxEstimate.TaxableIncome)
	assert.Zero(t, summary.TaxEstimate.TotalTax)
	assert.Zero(t, summary.TaxEstimate.NetPayable)
	assert.Zero(t, summary.TaxEstimate.NetRefundable)
	assert.NotNil(t, summary.Deductions.Section80C.Details)
	assert.Empty(t, summary.Deductions.Section80C.Details)
}

func TestAggregateSalaryAndInvestment(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{
			"gross_salary": 1200000.0,
			"tds":          90000.0,
			"employer":     "Acme",
		}),
		doc(models.DocTypeInvestmentProof, map[string]interface{}{
			"section":         "80C",
			"amount":          150000.0,
			"investment_type": "ELSS",
		}),
	}

	summary := newTestAggregator().Aggregate(documents)

	assert.InDelta(t, 1200000, summary.Income.TotalSalary, 0.001)
	assert.Equal(t, "Acme", summary.Income.EmployerName)
	assert.InDelta(t, 150000, summary.Deductions.Section80C.Total, 0.001)
	require.Len(t, summary.Deductions.Section80C.Details, 1)
	assert.Equal(t, "ELSS", summary.Deductions.Section80C.Details[0].Type)
	assert.InDelta(t, 1000000, summary.TaxEstimate.TaxableIncome, 0.001)
	assert.InDelta(t, 82500, summary.TaxEstimate.TotalTax, 0.001)
	assert.Zero(t, summary.TaxEstimate.NetPayable)
	assert.InDelta(t, 7500, summary.TaxEstimate.NetRefundable, 0.001)
}

func TestAggregateIdempotent(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 800000.0, "tds": 40000.0}),
		doc(models.DocTypeBankInterestCert, map[string]interface{}{"interest_amount": 25000.0}),
		doc(models.DocTypeRentReceipt, map[string]interface{}{"monthly_rent": 20000.0}),
	}

	agg := newTestAggregator()
	first := agg.Aggregate(documents)
	second := agg.Aggregate(documents)

	assert.Equal(t, first, second)
}

func TestAggregateForm16TakesMaxSalary(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 100000.0, "tds": 5000.0}),
		doc(models.DocTypeForm16, map[string]interface{}{"total_income": 1200000.0, "tds": 85000.0, "employer_name": "Acme"}),
	}

	summary := newTestAggregator().Aggregate(documents)

	assert.InDelta(t, 1200000, summary.Income.TotalSalary, 0.001)
	assert.InDelta(t, 90000, summary.TDS.TDSDeducted, 0.001)
}

func TestAggregateForm16LowerThanSlips(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 1500000.0}),
		doc(models.DocTypeForm16, map[string]interface{}{"total_income": 1200000.0}),
	}

	summary := newTestAggregator().Aggregate(documents)

	assert.InDelta(t, 1500000, summary.Income.TotalSalary, 0.001)
}

func TestAggregateRentReceiptsAnnualized(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeRentReceipt, map[string]interface{}{"monthly_rent": 15000.0}),
		doc(models.DocTypeRentReceipt, map[string]interface{}{"monthly_rent": 18000.0}),
	}

	summary := newTestAggregator().Aggregate(documents)

	assert.InDelta(t, 15000*12+18000*12, summary.Deductions.HRA.Total, 0.001)
	require.Len(t, summary.Deductions.HRA.Details, 2)
	assert.InDelta(t, 180000, summary.Deductions.HRA.Details[0].AnnualRent, 0.001)
}

func TestAggregateHomeLoanInterestOnly(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeHomeLoanStatement, map[string]interface{}{"component": "interest", "amount": 180000.0}),
		doc(models.DocTypeHomeLoanStatement, map[string]interface{}{"component": "principal", "amount": 90000.0}),
	}

	summary := newTestAggregator().Aggregate(documents)

	assert.InDelta(t, 180000, summary.Deductions.HomeLoanInterest, 0.001)
}

func TestAggregateOtherIncome(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeBankInterestCert, map[string]interface{}{"interest_amount": 30000.0}),
		doc(models.DocTypeCapitalGains, map[string]interface{}{"gains_amount": 50000.0}),
	}

	summary := newTestAggregator().Aggregate(documents)

	assert.InDelta(t, 80000, summary.Income.OtherIncome, 0.001)
}

func TestAggregateMalformedMetadata(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{
			"gross_salary": "1,2oo,ooo",
			"tds":          nil,
			"employer":     42,
		}),
		doc(models.DocTypeSalarySlip, nil),
		doc(models.DocTypeMedicalBill, map[string]interface{}{"amount": 5000.0}),
		nil,
		doc("unknown_type", map[string]interface{}{"gross_salary": 999999.0}),
	}

	var summary *models.TaxSummary
	assert.NotPanics(t, func() {
		summary = newTestAggregator().Aggregate(documents)
	})

	assert.Zero(t, summary.Income.TotalSalary)
	assert.Empty(t, summary.Income.EmployerName)
	assert.Zero(t, summary.TaxEstimate.TotalTax)
}

func TestAggregateStringNumbers(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{
			"gross_salary": "800000",
			"tds":          " 40000 ",
		}),
	}

	summary := newTestAggregator().Aggregate(documents)

	assert.InDelta(t, 800000, summary.Income.TotalSalary, 0.001)
	assert.InDelta(t, 40000, summary.TDS.TDSDeducted, 0.001)
}

func TestAggregateAllFieldsNonNegative(t *testing.T) {
	documents := []*models.DocumentRecord{
		doc(models.DocTypeSalarySlip, map[string]interface{}{"gross_salary": 100000.0}),
		doc(models.DocTypeInvestmentProof, map[string]interface{}{"section": "80C", "amount": 500000.0}),
		doc(models.DocTypeRentReceipt, map[string]interface{}{"monthly_rent": 50000.0}),
	}

	summary := newTestAggregator().Aggregate(documents)

	assert.GreaterOrEqual(t, summary.TaxEstimate.TaxableIncome, 0.0)
	assert.GreaterOrEqual(t, summary.TaxEstimate.TotalTax, 0.0)
	assert.GreaterOrEqual(t, summary.TaxEstimate.NetPayable, 0.0)
	assert.GreaterOrEqual(t, summary.TaxEstimate.NetRefundable, 0.0)
}

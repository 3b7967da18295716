// Package report renders derived tax data into downloadable
// spreadsheet reports.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// Exporter writes tax summary workbooks
type Exporter struct {
	outputDir string
	logger    *zap.Logger
}

// NewExporter creates an exporter writing into outputDir
func NewExporter(outputDir string, logger *zap.Logger) *Exporter {
	return &Exporter{
		outputDir: outputDir,
		logger:    logger,
	}
}

// ExportSummary renders the summary and regime comparison into an
// .xlsx workbook and returns its path.
func (e *Exporter) ExportSummary(userID string, summary *models.TaxSummary, comparison *models.RegimeComparison) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.fillSummarySheet(f, summary); err != nil {
		return "", err
	}
	if comparison != nil {
		if err := e.fillRegimeSheet(f, comparison); err != nil {
			return "", err
		}
	}

	path := filepath.Join(e.outputDir, fmt.Sprintf("tax_summary_%s_%s.xlsx", userID, time.Now().UTC().Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	e.logger.Info("Exported tax summary report",
		zap.String("user_id", userID),
		zap.String("path", path))
	return path, nil
}

func (e *Exporter) fillSummarySheet(f *excelize.File, summary *models.TaxSummary) error {
	const sheet = "Tax Summary"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Income", ""},
		{"Total Salary", summary.Income.TotalSalary},
		{"Employer", summary.Income.EmployerName},
		{"Bank Interest", summary.Income.BankInterest},
		{"Capital Gains", summary.Income.CapitalGains},
		{"Other Income", summary.Income.OtherIncome},
		{"", ""},
		{"Deductions", ""},
		{"Section 80C", summary.Deductions.Section80C.Total},
		{"Section 80D", summary.Deductions.Section80D.Total},
		{"HRA", summary.Deductions.HRA.Total},
		{"NPS", summary.Deductions.NPS.Total},
		{"Home Loan Interest", summary.Deductions.HomeLoanInterest},
		{"Education Loan Interest", summary.Deductions.EducationLoanInterest},
		{"Donations", summary.Deductions.Donations},
		{"", ""},
		{"Tax Estimate", ""},
		{"Taxable Income", summary.TaxEstimate.TaxableIncome},
		{"Total Tax", summary.TaxEstimate.TotalTax},
		{"TDS Deducted", summary.TDS.TDSDeducted},
		{"Net Payable", summary.TaxEstimate.NetPayable},
		{"Net Refundable", summary.TaxEstimate.NetRefundable},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return f.SetColWidth(sheet, "B", "B", 18)
}

func (e *Exporter) fillRegimeSheet(f *excelize.File, comparison *models.RegimeComparison) error {
	const sheet = "Regime Comparison"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := [][]interface{}{
		{"", "Old Regime", "New Regime"},
		{"Taxable Income", comparison.OldRegime.TaxableIncome, comparison.NewRegime.TaxableIncome},
		{"Total Tax", comparison.OldRegime.TotalTax, comparison.NewRegime.TotalTax},
		{"Effective Rate (%)", comparison.OldRegime.EffectiveRate, comparison.NewRegime.EffectiveRate},
		{"", "", ""},
		{"Recommended", comparison.RecommendedRegime, ""},
		{"Savings", comparison.Savings, ""},
		{"Explanation", comparison.Explanation, ""},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return f.SetColWidth(sheet, "A", "C", 24)
}

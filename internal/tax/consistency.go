package tax

import (
	"fmt"
	"sort"
	"strings"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// CheckerConfig holds the tolerances for cross-document validation.
type CheckerConfig struct {
	// TDSTolerance is the absolute rupee difference allowed between
	// Form 16 and Form 26AS TDS totals before flagging a mismatch.
	TDSTolerance float64
	// IncomeVarianceFraction is the allowed relative difference
	// between Form 16 income and summed salary-slip income.
	IncomeVarianceFraction float64
}

// DefaultCheckerConfig returns the production tolerances.
func DefaultCheckerConfig() CheckerConfig {
	return CheckerConfig{
		TDSTolerance:           100,
		IncomeVarianceFraction: 0.05,
	}
}

// ConsistencyChecker cross-validates redundant figures across
// document types.
type ConsistencyChecker struct {
	cfg CheckerConfig
}

// NewConsistencyChecker creates a checker with the given tolerances.
func NewConsistencyChecker(cfg CheckerConfig) *ConsistencyChecker {
	return &ConsistencyChecker{cfg: cfg}
}

// Check evaluates every rule independently and aggregates the findings.
// Warnings alone leave the status clean; only inconsistencies flip it
// to issues_found.
func (cc *ConsistencyChecker) Check(documents []*models.DocumentRecord) *models.ConsistencyReport {
	report := &models.ConsistencyReport{
		Inconsistencies: []models.ConsistencyIssue{},
		Warnings:        []models.ConsistencyIssue{},
	}

	var (
		tdsFromForm16    float64
		tdsFrom26AS      float64
		incomeFromForm16 float64
		incomeFromSlips  float64
		form26ASDocs     []*models.DocumentRecord
	)
	pans := map[string]struct{}{}

	for _, doc := range documents {
		if doc == nil {
			continue
		}
		meta := doc.Meta()

		switch doc.DocumentType {
		case models.DocTypeForm16:
			tdsFromForm16 += ToNumber(meta["tds"])
			incomeFromForm16 += ToNumber(meta["total_income"])
		case models.DocTypeForm26AS:
			tdsFrom26AS += ToNumber(meta["total_tds"])
			form26ASDocs = append(form26ASDocs, doc)
		case models.DocTypeSalarySlip:
			incomeFromSlips += ToNumber(meta["gross_salary"])
		}

		if pan := ToText(meta["pan"]); pan != "" {
			pans[strings.ToUpper(pan)] = struct{}{}
		}
	}

	if tdsFromForm16 > 0 && tdsFrom26AS > 0 {
		diff := absf(tdsFromForm16 - tdsFrom26AS)
		if diff > cc.cfg.TDSTolerance {
			report.Inconsistencies = append(report.Inconsistencies, models.ConsistencyIssue{
				Type:     "tds_mismatch",
				Severity: models.SeverityHigh,
				Description: fmt.Sprintf("TDS mismatch detected: Form 16 shows ₹%.2f but Form 26AS shows ₹%.2f",
					tdsFromForm16, tdsFrom26AS),
				Difference: diff,
				Action:     "Verify TDS amounts in Form 16 and Form 26AS. Contact employer if discrepancy exists.",
			})
		}
	}

	if incomeFromForm16 > 0 && incomeFromSlips > 0 {
		diff := absf(incomeFromForm16 - incomeFromSlips)
		if diff > incomeFromForm16*cc.cfg.IncomeVarianceFraction {
			report.Warnings = append(report.Warnings, models.ConsistencyIssue{
				Type:     "income_variance",
				Severity: models.SeverityMedium,
				Description: fmt.Sprintf("Income variance: Form 16 shows ₹%.2f but salary slips total ₹%.2f",
					incomeFromForm16, incomeFromSlips),
				Difference: diff,
				Action:     "Review if all salary slips are included or if there are other income sources",
			})
		}
	}

	if len(pans) > 1 {
		list := make([]string, 0, len(pans))
		for pan := range pans {
			list = append(list, pan)
		}
		sort.Strings(list)
		report.Warnings = append(report.Warnings, models.ConsistencyIssue{
			Type:        "pan_mismatch",
			Severity:    models.SeverityMedium,
			Description: fmt.Sprintf("Multiple PAN numbers found: %s", strings.Join(list, ", ")),
			Action:      "Ensure all documents belong to the same PAN",
		})
	}

	for _, doc := range form26ASDocs {
		if ToNumber(doc.Meta()["total_tds"]) == 0 {
			report.Warnings = append(report.Warnings, models.ConsistencyIssue{
				Type:        "missing_26as_data",
				Severity:    models.SeverityLow,
				Description: "Form 26AS appears incomplete or missing TDS entries",
				Action:      "Verify Form 26AS is complete and matches your income sources",
			})
		}
	}

	report.Status = models.ConsistencyStatusClean
	if len(report.Inconsistencies) > 0 {
		report.Status = models.ConsistencyStatusIssues
	}
	report.TotalIssues = len(report.Inconsistencies) + len(report.Warnings)

	return report
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

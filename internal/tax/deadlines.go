package tax

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// DeadlineCalendar produces the statutory deadline list for a
// financial year, with days-until annotations relative to the
// injected clock.
type DeadlineCalendar struct {
	now func() time.Time
}

// NewDeadlineCalendar creates a calendar. A nil clock defaults to time.Now.
func NewDeadlineCalendar(now func() time.Time) *DeadlineCalendar {
	if now == nil {
		now = time.Now
	}
	return &DeadlineCalendar{now: now}
}

// CurrentFinancialYear formats the financial year containing today,
// like "2024-25".
func (dc *DeadlineCalendar) CurrentFinancialYear() string {
	return financialYear(dc.now().UTC())
}

// Deadlines lists statutory deadlines for the given financial year,
// sorted by date. An empty financialYear defaults to the current one.
// A malformed financialYear is an error; the expected format is
// "2024-25".
func (dc *DeadlineCalendar) Deadlines(financialYear string) ([]*models.Deadline, string, error) {
	if financialYear == "" {
		financialYear = dc.CurrentFinancialYear()
	}
	startYear, err := parseFinancialYear(financialYear)
	if err != nil {
		return nil, "", err
	}
	endYear := startYear + 1

	deadlines := []*models.Deadline{
		{
			Title:       "ITR Filing Deadline (Individual)",
			Date:        fmt.Sprintf("%d-07-31", endYear),
			Type:        "deadline",
			Priority:    models.PriorityHigh,
			Description: "Last date to file Income Tax Return for individuals",
			Category:    "filing",
		},
		{
			Title:       "ITR Filing Deadline (Business)",
			Date:        fmt.Sprintf("%d-10-31", endYear),
			Type:        "deadline",
			Priority:    models.PriorityHigh,
			Description: "Last date to file Income Tax Return for businesses",
			Category:    "filing",
		},
		{
			Title:       "Advance Tax - Q1",
			Date:        fmt.Sprintf("%d-06-15", startYear),
			Type:        "deadline",
			Priority:    models.PriorityMedium,
			Description: "First installment of advance tax (15% of estimated tax)",
			Category:    "advance_tax",
		},
		{
			Title:       "Advance Tax - Q2",
			Date:        fmt.Sprintf("%d-09-15", startYear),
			Type:        "deadline",
			Priority:    models.PriorityMedium,
			Description: "Second installment of advance tax (45% of estimated tax)",
			Category:    "advance_tax",
		},
		{
			Title:       "Advance Tax - Q3",
			Date:        fmt.Sprintf("%d-12-15", startYear),
			Type:        "deadline",
			Priority:    models.PriorityMedium,
			Description: "Third installment of advance tax (75% of estimated tax)",
			Category:    "advance_tax",
		},
		{
			Title:       "Advance Tax - Q4",
			Date:        fmt.Sprintf("%d-03-15", endYear),
			Type:        "deadline",
			Priority:    models.PriorityMedium,
			Description: "Final installment of advance tax (100% of estimated tax)",
			Category:    "advance_tax",
		},
		{
			Title:       "TDS Certificate (Form 16) Due Date",
			Date:        fmt.Sprintf("%d-06-15", endYear),
			Type:        "deadline",
			Priority:    models.PriorityMedium,
			Description: "Employers must issue Form 16 to employees",
			Category:    "tds",
		},
	}

	today := dc.now().UTC().Truncate(24 * time.Hour)
	for _, d := range deadlines {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		d.DaysUntil = int(date.Sub(today).Hours() / 24)
		d.IsOverdue = d.DaysUntil < 0
		d.IsUpcoming = d.DaysUntil >= 0 && d.DaysUntil <= 30
	}

	sort.Slice(deadlines, func(i, j int) bool { return deadlines[i].Date < deadlines[j].Date })

	return deadlines, financialYear, nil
}

// Annotate fills the days-until fields of a user-created deadline.
func (dc *DeadlineCalendar) Annotate(d *models.Deadline) {
	date, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return
	}
	today := dc.now().UTC().Truncate(24 * time.Hour)
	d.DaysUntil = int(date.Sub(today).Hours() / 24)
	d.IsOverdue = d.DaysUntil < 0
	d.IsUpcoming = d.DaysUntil >= 0 && d.DaysUntil <= 30
}

func parseFinancialYear(fy string) (int, error) {
	parts := strings.SplitN(fy, "-", 2)
	start, err := strconv.Atoi(parts[0])
	if err != nil || start < 1900 || start > 9999 {
		return 0, fmt.Errorf("invalid financial year %q, expected format 2024-25", fy)
	}
	return start, nil
}

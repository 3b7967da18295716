package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	panRegex     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	fyRegex      = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidatePAN validates an Indian PAN (10 characters, AAAAA9999A)
func ValidatePAN(pan string) error {
	if !panRegex.MatchString(strings.ToUpper(pan)) {
		return fmt.Errorf("invalid PAN format: %s", pan)
	}
	return nil
}

// ValidateFinancialYear validates a financial year label like "2024-25";
// the two-digit end year must follow the start year
func ValidateFinancialYear(fy string) error {
	m := fyRegex.FindStringSubmatch(fy)
	if m == nil {
		return fmt.Errorf("invalid financial year format: %s", fy)
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if (start+1)%100 != end {
		return fmt.Errorf("financial year end must follow start: %s", fy)
	}
	return nil
}

// SanitizeString removes control characters
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}

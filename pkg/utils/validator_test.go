package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePAN(t *testing.T) {
	tests := []struct {
		pan     string
		wantErr bool
	}{
		{"ABCDE1234F", false},
		{"abcde1234f", false},
		{"ABCDE1234", true},
		{"1234EABCDF", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidatePAN(tt.pan)
		if tt.wantErr {
			assert.Error(t, err, tt.pan)
		} else {
			assert.NoError(t, err, tt.pan)
		}
	}
}

func TestValidateFinancialYear(t *testing.T) {
	assert.NoError(t, ValidateFinancialYear("2024-25"))
	assert.NoError(t, ValidateFinancialYear("1999-00"))
	assert.Error(t, ValidateFinancialYear("2024-26"))
	assert.Error(t, ValidateFinancialYear("2024"))
	assert.Error(t, ValidateFinancialYear("24-25"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("asha@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "clean text", SanitizeString("clean\x00 text\x1f"))
}

package tax

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected float64
	}{
		{"nil", nil, 0},
		{"float64", 1234.5, 1234.5},
		{"int", 42, 42},
		{"int64", int64(99), 99},
		{"numeric string", "120000", 120000},
		{"padded string", "  99.5 ", 99.5},
		{"garbage string", "1,20,000", 0},
		{"empty string", "", 0},
		{"json number", json.Number("2500.75"), 2500.75},
		{"bool", true, 0},
		{"map", map[string]interface{}{"a": 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ToNumber(tt.value), 0.0001)
		})
	}
}

func TestToText(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"nil", nil, ""},
		{"string", "Acme Corp", "Acme Corp"},
		{"number", 42, ""},
		{"json number", json.Number("42"), "42"},
		{"slice", []string{"a"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToText(tt.value))
		})
	}
}

package errors

import (
	"math"
	"testing"
)

func TestValidateViewport(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"typical", 800, 600, false},
		{"tiny", 1, 1, false},

		{"zero width", 0, 600, true},
		{"zero height", 800, 0, true},
		{"negative", -10, 600, true},
		{"nan", math.NaN(), 600, true},
		{"inf", 800, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateViewport(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateViewport(%v, %v) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidViewport) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidViewport)
			}
		})
	}
}

func TestValidateFontSize(t *testing.T) {
	tests := []struct {
		size    float64
		wantErr bool
	}{
		{0, false},
		{12, false},
		{200, false},
		{-1, true},
		{201, true},
		{math.NaN(), true},
	}
	for _, tt := range tests {
		err := ValidateFontSize("legendFontSize", tt.size)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFontSize(%v) error = %v, wantErr %v", tt.size, err, tt.wantErr)
		}
	}
}

func TestValidateColumnName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty means positional", "", false},
		{"simple", "month", false},
		{"with spaces", "Sales Region", false},

		{"too long", string(make([]byte, 300)), true},
		{"newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumnName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColumnName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTablePath(t *testing.T) {
	tests := []struct {
		input    string
		wantCode Code
	}{
		{"sales.csv", ""},
		{"data/sales.JSON", ""},
		{"/tmp/rows.parquet", ""},

		{"", ErrCodeInvalidInput},
		{"a\x00.csv", ErrCodeInvalidInput},
		{"sales.xlsx", ErrCodeUnsupported},
		{"noext", ErrCodeUnsupported},
	}

	for _, tt := range tests {
		err := ValidateTablePath(tt.input)
		if got := GetCode(err); got != tt.wantCode {
			t.Errorf("ValidateTablePath(%q) code = %q, want %q", tt.input, got, tt.wantCode)
		}
	}
}

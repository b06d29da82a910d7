package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Alice", false},
		{"with spaces", "Software Engineer", false},
		{"with ordinal", "Lab (2)", false},
		{"unicode", "Zoë Ångström", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", MaxLabelLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"tab", "foo\tbar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel("role title", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLabel) {
				t.Errorf("ValidateLabel(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidLabel)
			}
		})
	}
}

func TestValidateDefaultCost(t *testing.T) {
	tests := []struct {
		cost    int
		wantErr bool
	}{
		{3, false},
		{5, false},
		{100, false},
		{0, true},
		{1, true},
		{2, true},
		{-1, true},
	}

	for _, tt := range tests {
		err := ValidateDefaultCost(tt.cost)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDefaultCost(%d) error = %v, wantErr %v", tt.cost, err, tt.wantErr)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "grad_assignments.csv", false},
		{"nested", "out/results.csv", false},
		{"absolute", "/tmp/results.csv", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "out\x00.csv", true},
		{"newline", "out\n.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

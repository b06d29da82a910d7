package errors

import (
	"strings"
	"unicode"
)

// MaxLabelLength is the longest candidate name or role title accepted.
const MaxLabelLength = 256

// ValidateLabel validates a candidate name or role title read from user input.
// kind names the field in error messages (e.g. "candidate name").
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only labels
//   - No control characters (tabs and newlines break the CSV sink)
//   - Maximum length of MaxLabelLength bytes
func ValidateLabel(kind, label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidLabel, "%s cannot be empty", kind)
	}

	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidLabel, "%s too long (max %d characters)", kind, MaxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "%s %q contains control characters", kind, label)
		}
	}

	return nil
}

// ValidateDefaultCost checks that the cost given to unranked slots cannot be
// confused with a rank. Ranks occupy 0, 1 and 2.
func ValidateDefaultCost(cost int) error {
	if cost >= 0 && cost <= 2 {
		return New(ErrCodeInvalidInput, "default cost %d collides with a preference rank (0-2)", cost)
	}
	if cost < 0 {
		return New(ErrCodeInvalidInput, "default cost must be non-negative, got %d", cost)
	}
	return nil
}

// ValidatePath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}

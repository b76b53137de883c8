package errors

import (
	"slices"
	"strings"
	"unicode"
)

// MaxNameLength bounds element and criterion names.
const MaxNameLength = 256

// ValidateName validates an element or criterion name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters (names end up in DOT labels and terminal output)
//   - Maximum length of MaxNameLength characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidName, "name too long (max %d characters)", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters")
		}
	}

	return nil
}

// ValidateFormat checks that format is one of allowed (case-insensitive).
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, strings.ToLower(format)) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

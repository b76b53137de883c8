package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "A7 North", false},
		{"umlaut", "Kreuz Köln-Süd", false},
		{"max length", strings.Repeat("a", MaxNameLength), false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxNameLength+1), true},
		{"newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"json", "json", false},
		{"upper", "YAML", false},
		{"empty", "", true},
		{"unknown", "rose", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.input, "json", "yaml")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

package errors

import (
	"strings"
	"testing"
)

func TestValidateBlueprintName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"simple", "Outpost Alpha", false},
		{"unicode", "Станция", false},
		{"max length", strings.Repeat("a", MaxBlueprintNameLength), false},

		{"too long", strings.Repeat("a", MaxBlueprintNameLength+1), true},
		{"newline", "outpost\nalpha", true},
		{"null byte", "outpost\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBlueprintName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBlueprintName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateBlueprintName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "blueprints/outpost.json", false},
		{"valid filename only", "station.json", false},
		{"valid with dots", "v1.2.3/station.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://github.com/CheeseJedi/HELLION.Explorer", false},
		{"http", "http://example.com/blueprint", false},
		{"ftp", "ftp://files.example.com/station.json", false},
		{"file", "file:///home/pilot/blueprints/outpost.json", false},
		{"relative", "blueprints/outpost.json", false},
		{"urn", "urn:hellion:blueprint:outpost", false},

		{"empty", "", true},
		{"space", "http://example.com/my station", true},
		{"bad escape", "http://example.com/%zz", true},
		{"unclosed host", "http://[::1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateURL(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeUnknownStructureType,
		ErrCodeDuplicateStructureID,
		ErrCodeMissingRootStructure,
		ErrCodeCorruptDocking,
		ErrCodeOperationRejected,
		ErrCodeInvalidCatalog,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}

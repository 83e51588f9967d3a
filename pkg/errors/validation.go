package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// MaxBlueprintNameLength bounds the optional blueprint Name field.
const MaxBlueprintNameLength = 256

// ValidateBlueprintName validates the optional display name of a blueprint.
// An empty name is accepted because the document format allows null.
//
// Rejected:
//   - Names longer than MaxBlueprintNameLength characters
//   - Control characters (including newlines and null bytes)
func ValidateBlueprintName(name string) error {
	if len(name) > MaxBlueprintNameLength {
		return New(ErrCodeInvalidInput, "blueprint name too long (max %d characters)", MaxBlueprintNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "blueprint name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a relative document path for safety.
// It prevents path traversal when documents are addressed by name.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URI reference such as a blueprint's LinkURI.
// Any scheme is accepted, and so are relative references; the value only has
// to parse as a URI and must not contain whitespace.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if strings.ContainsFunc(rawURL, unicode.IsSpace) {
		return New(ErrCodeInvalidInput, "URL cannot contain whitespace")
	}

	if _, err := url.Parse(rawURL); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}

	return nil
}

package errors

import (
	"slices"
	"strings"
	"unicode"
)

// ValidatePath checks a manifest path before it is opened.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// Absolute paths and parent references are allowed; the CLI reads whatever
// the user names.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateSpecName checks that name is one of the known specification names.
func ValidateSpecName(name string, known ...string) error {
	if name == "" {
		return New(ErrCodeInvalidSpec, "spec cannot be empty")
	}
	if !slices.Contains(known, name) {
		return New(ErrCodeInvalidSpec, "unknown spec %q (want one of: %s)", name, strings.Join(known, ", "))
	}
	return nil
}

// ValidateOutputFormat checks that format is one of the supported report
// formats. Matching is case-sensitive.
func ValidateOutputFormat(format string, known ...string) error {
	if !slices.Contains(known, format) {
		return New(ErrCodeInvalidFormat, "unknown output format %q (want one of: %s)", format, strings.Join(known, ", "))
	}
	return nil
}

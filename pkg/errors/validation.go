package errors

import (
	"strings"
	"unicode"
)

// maxPathLength bounds file paths accepted from the command line.
const maxPathLength = 4096

// ValidatePath validates an image file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// The special path "-" (stdin/stdout) passes validation.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidInput, "path has leading or trailing whitespace: %q", path)
	}

	return nil
}

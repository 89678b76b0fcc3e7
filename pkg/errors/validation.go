package errors

import (
	"strings"
	"unicode"
)

const maxLabelLength = 256

// ValidateLabel validates a cluster or node label.
// Labels may contain spaces and line breaks (titles and labels are multi-line
// in rendered diagrams) but not other control characters.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidInput, "label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if r != '\n' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}

	return nil
}

// ValidateFilename validates an output base filename for safety.
// It must be a simple basename: the output is always written into the
// target directory, never beside or above it.
//
// Validation rules:
//   - Filename cannot be empty
//   - Maximum length of 200 characters
//   - No null bytes or control characters
//   - No path separators
//   - Not "." or ".."
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFilename, "filename cannot be empty")
	}

	const maxFilenameLength = 200
	if len(name) > maxFilenameLength {
		return New(ErrCodeInvalidFilename, "filename too long (max %d characters)", maxFilenameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFilename, "filename contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidFilename, "filename cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidFilename, "filename cannot be %q", name)
	}

	return nil
}

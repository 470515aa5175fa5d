package errors

import (
	"strings"
	"unicode"
)

// ValidateLabel validates a schedule label received from an untrusted
// source (CLI argument, HTTP path).
//
// The validation rules are intentionally conservative:
//   - No empty labels
//   - No control characters
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "schedule label cannot be empty")
	}

	if len(label) > 256 {
		return New(ErrCodeInvalidInput, "schedule label too long (max 256 characters)")
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "schedule label contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputName validates a file name generated from a schedule label
// before it is joined with an output directory.
// It ensures the name is a simple basename without path components.
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}

	const maxNameLength = 255
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPath, "output name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output name contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "output name cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "output name cannot be a directory reference")
	}

	return nil
}

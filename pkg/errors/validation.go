package errors

import (
	"strings"
	"unicode"
)

// ValidateElementName validates a link or joint name from a robot description.
// It rejects names that would break registry lookups or file exports.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateElementName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "element name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "element name too long (max 256 characters)")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "element name contains invalid control characters")
		}
	}

	return nil
}

// ValidateResourceURI validates a resource URI used for mesh retrieval.
// Accepted schemes are file://, package:// and http(s)://; a bare path is
// treated as a file reference and accepted as well.
//
// Validation rules:
//   - URI cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..) in package:// URIs
func ValidateResourceURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidURI, "resource URI cannot be empty")
	}

	const maxURILength = 500
	if len(uri) > maxURILength {
		return New(ErrCodeInvalidURI, "resource URI too long (max %d characters)", maxURILength)
	}

	for _, r := range uri {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidURI, "resource URI contains invalid characters")
		}
	}

	if scheme, rest, ok := strings.Cut(uri, "://"); ok {
		switch scheme {
		case "file", "http", "https":
		case "package":
			if strings.Contains(rest, "..") {
				return New(ErrCodeInvalidURI, "package URI cannot contain path traversal sequences (..)")
			}
			if rest == "" || strings.HasPrefix(rest, "/") {
				return New(ErrCodeInvalidURI, "package URI must start with a package name")
			}
		default:
			return New(ErrCodeInvalidURI, "unsupported URI scheme %q", scheme)
		}
	}

	return nil
}

package util

import (
	"errors"
	"strings"
)

// ErrInvalidFileName is returned when a file name cannot be made safe.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName produces a name safe to use as a single path element.
// Path separators and traversal patterns are rejected or rewritten, and
// characters outside [A-Za-z0-9._-] become underscores.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s = strings.Trim(b.String(), "._")
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}

// HasPDFExtension reports whether the file name ends in .pdf, case-insensitively.
func HasPDFExtension(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}

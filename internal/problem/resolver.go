package problem

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mini-maxit/lchelper/pkg/constants"
	customErr "github.com/mini-maxit/lchelper/pkg/errors"
)

var digitRunRegex = regexp.MustCompile(`[0-9]+`)

// ID is a canonical problem number without leading zeros.
type ID string

func (id ID) String() string {
	return string(id)
}

// Resolver extracts problem numbers from user input and source file names.
type Resolver struct {
	allowedExtensions []string
}

// NewResolver expects extensions in normalized form (lower case, leading dot).
func NewResolver(allowedExtensions []string) *Resolver {
	return &Resolver{allowedExtensions: allowedExtensions}
}

// FromText accepts only decimal digits, surrounding whitespace aside.
func FromText(raw string) (ID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !isDigits(trimmed) {
		return "", fmt.Errorf("%w: %q is not a valid number", customErr.ErrInvalidInput, raw)
	}
	return canonical(trimmed), nil
}

// FromPath takes the first run of digits in the base name of path.
func (r *Resolver) FromPath(path string) (ID, error) {
	if strings.TrimSpace(path) == "" {
		return "", customErr.ErrNoActiveFile
	}

	base := filepath.Base(path)
	match := digitRunRegex.FindString(base)
	if match == "" {
		return "", fmt.Errorf("%w: cannot detect problem number in %q", customErr.ErrInvalidInput, base)
	}

	if !r.IsSupported(base) {
		return "", fmt.Errorf("%w: %q, expected one of %s",
			customErr.ErrUnsupportedFileType, base, r.SupportedExtensions())
	}

	return canonical(match), nil
}

// IsSupported reports whether name ends with one of the allowed extensions, ignoring case.
func (r *Resolver) IsSupported(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range r.allowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func (r *Resolver) SupportedExtensions() string {
	if len(r.allowedExtensions) == 0 {
		return constants.DefaultAllowedExtensions
	}
	return strings.Join(r.allowedExtensions, ", ")
}

func canonical(digits string) ID {
	stripped := strings.TrimLeft(digits, "0")
	if stripped == "" {
		return "0"
	}
	return ID(stripped)
}

// isDigits is stricter than unicode.IsDigit, which accepts non-ASCII digits.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

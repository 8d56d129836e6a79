package errors

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Validator accumulates field-level validation failures so a configuration
// can be checked in full before any error is reported. All issues share one
// error code and are joined into a single message.
//
// Usage:
//
//	v := errors.NewValidator(errors.ErrCodeInvalidPattern)
//	v.Positive("spacing_um", spacing)
//	v.Positive("diameter_um", diameter)
//	if err := v.Err(); err != nil {
//	    return err
//	}
type Validator struct {
	code   Code
	issues []string
}

// NewValidator creates a validator that reports issues under the given code.
func NewValidator(code Code) *Validator {
	return &Validator{code: code}
}

// Positive records an issue unless value is strictly greater than zero.
func (v *Validator) Positive(field string, value float64) {
	if value <= 0 {
		v.issues = append(v.issues, fmt.Sprintf("%s must be positive, got %v", field, value))
	}
}

// Check records a formatted issue when ok is false.
func (v *Validator) Check(ok bool, format string, args ...any) {
	if !ok {
		v.issues = append(v.issues, fmt.Sprintf(format, args...))
	}
}

// OK reports whether no issues have been recorded.
func (v *Validator) OK() bool { return len(v.issues) == 0 }

// Err returns nil when no issues were recorded, otherwise a single *Error
// whose message joins every recorded issue.
func (v *Validator) Err() error {
	if len(v.issues) == 0 {
		return nil
	}
	return New(v.code, "%s", strings.Join(v.issues, "; "))
}

// designNameRegex matches names usable both as file basenames and as
// database keys: letters, digits, then letters, digits, dot, dash,
// underscore or space.
var designNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._ -]*$`)

// ValidateDesignName validates a stored design name for safety.
// Names become file basenames in the file-backed library, so path
// separators and traversal sequences are rejected outright.
func ValidateDesignName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "design name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "design name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "design name contains control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "design name cannot contain path separators or traversal sequences")
	}

	if !designNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid design name: %q", name)
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
// It rejects empty paths and null bytes; everything else is the
// filesystem's problem.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains invalid characters")
	}
	return nil
}

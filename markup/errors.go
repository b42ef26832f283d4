package markup

import "errors"

var (
	// ErrFormatMismatch is returned when the placeholders of
	// a template do not match the substitution arguments.
	ErrFormatMismatch = errors.New("format mismatch")

	// ErrConversion is returned when a value cannot be
	// converted to text before escaping.
	ErrConversion = errors.New("conversion to text failed")
)

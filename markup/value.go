package markup

import (
	"encoding"
	"fmt"
	"html/template"
	"reflect"

	"github.com/byte4ever/markup/escape"
)

// EscapeValue converts v to text and escapes it. Markup
// values are returned unchanged, as is html/template.HTML
// which is trusted the same way. A nil value gives empty
// markup.
//
// Other values are converted with, in order, their Error,
// String or MarshalText method, falling back to the
// default fmt formatting. Conversion failures, including a
// panicking String method, are reported as ErrConversion.
func EscapeValue(v any, quotes bool) (Markup, error) {
	if m, ok := trusted(v); ok {
		return m, nil
	}

	text, err := toText(v)
	if err != nil {
		return Markup{}, err
	}

	return Markup{s: escape.String(text, quotes)}, nil
}

// trusted returns v as markup when it needs no escaping:
// markup, html/template.HTML and nil.
func trusted(v any) (Markup, bool) {
	switch tv := v.(type) {
	case nil:
		return Markup{}, true
	case Markup:
		return tv, true
	case *Markup:
		if tv == nil {
			return Markup{}, true
		}

		return *tv, true
	case template.HTML:
		return Markup{s: string(tv)}, true
	}

	return Markup{}, false
}

// MustEscapeValue is like EscapeValue but panics if v
// cannot be converted to text.
func MustEscapeValue(v any, quotes bool) Markup {
	m, err := EscapeValue(v, quotes)
	if err != nil {
		panic(err)
	}

	return m
}

// toText returns the string form of v.
func toText(v any) (text string, retErr error) {
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf(
				"%w: %T: %v", ErrConversion, v, r,
			)
		}
	}()

	switch tv := v.(type) {
	case nil:
		return "", nil
	case string:
		return tv, nil
	case []byte:
		return string(tv), nil
	case []rune:
		return string(tv), nil
	case error:
		return tv.Error(), nil
	case fmt.Stringer:
		return tv.String(), nil
	case encoding.TextMarshaler:
		raw, err := tv.MarshalText()
		if err != nil {
			return "", fmt.Errorf(
				"%w: %T: %w", ErrConversion, v, err,
			)
		}

		return string(raw), nil
	}

	return fmt.Sprint(v), nil
}

// isNumeric reports whether v is of boolean or numeric
// kind, named types included.
func isNumeric(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	}

	return false
}

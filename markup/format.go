package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/markup/escape"
)

// Default delimiters of named placeholders.
const (
	StartTag = "{{"
	EndTag   = "}}"
)

// Newf formats args according to the trusted format and
// returns the result as markup. Every argument that is
// not already markup is formatted with its verb and the
// output escaped (quotes included). Numbers and booleans
// keep their value for numeric verbs such as %d or %.2f,
// and %s renders them like %v.
//
// ErrFormatMismatch is returned when verbs and arguments
// do not agree, e.g. a missing or extra argument.
func Newf(format string, args ...any) (Markup, error) {
	const errCtx = "formatting markup"

	out, err := sprintf(format, args)
	if err != nil {
		return Markup{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return Markup{s: out}, nil
}

// Mod uses m as a format and substitutes args into it,
// like the % operator on strings. A []any or []string
// supplies one value per verb, a map[string]any fills named
// placeholders ({{name}}), and any other value is the
// sole argument.
func (m Markup) Mod(args any) (Markup, error) {
	const errCtx = "formatting markup"

	switch ta := args.(type) {
	case map[string]any:
		res, err := m.Substitute(StartTag, EndTag, ta, true)
		if err != nil {
			return Markup{}, fmt.Errorf("%s: %w", errCtx, err)
		}

		return res, nil
	case []string:
		seq := make([]any, len(ta))
		for i, v := range ta {
			seq[i] = v
		}

		return m.Mod(seq)
	case []any:
		out, err := sprintf(m.s, ta)
		if err != nil {
			return Markup{}, fmt.Errorf("%s: %w", errCtx, err)
		}

		return Markup{s: out}, nil
	}

	out, err := sprintf(m.s, []any{args})
	if err != nil {
		return Markup{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return Markup{s: out}, nil
}

// Substitute replaces every startTag+name+endTag
// placeholder in m with the escaped value of name. Markup
// values are inserted as is. When strict is true an
// unknown name fails with ErrFormatMismatch, otherwise the
// placeholder is kept verbatim.
func (m Markup) Substitute(
	startTag string,
	endTag string,
	values map[string]any,
	strict bool,
) (Markup, error) {
	const errCtx = "substituting markup"

	if startTag == "" || endTag == "" {
		return Markup{}, fmt.Errorf(
			"%s: empty placeholder delimiter", errCtx,
		)
	}

	if !strings.Contains(m.s, startTag) {
		return m, nil
	}

	out, err := fasttemplate.ExecuteFuncStringWithErr(
		m.s, startTag, endTag,
		func(w io.Writer, tag string) (int, error) {
			val, ok := values[tag]
			if !ok {
				if strict {
					return 0, fmt.Errorf(
						"%w: unknown placeholder %q",
						ErrFormatMismatch, tag,
					)
				}

				return io.WriteString(
					w, startTag+tag+endTag,
				)
			}

			return writeEscaped(w, val)
		},
	)
	if err != nil {
		return Markup{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return Markup{s: out}, nil
}

// writeEscaped streams the escaped form of val to w.
func writeEscaped(w io.Writer, val any) (int, error) {
	if s, ok := val.(string); ok {
		return escape.Write(w, s, true)
	}

	vm, err := EscapeValue(val, true)
	if err != nil {
		return 0, err
	}

	return io.WriteString(w, vm.s)
}

// sprintf formats args with format. Every argument is
// wrapped in a fmtArg so its formatted output is escaped
// whatever the verb. fmt reports bad verbs and argument
// count errors inline as "%!"; when the output contains
// that marker the format is run again with empty text
// arguments, which cannot produce the marker themselves.
func sprintf(format string, args []any) (string, error) {
	safe := make([]any, len(args))
	retry := make([]any, len(args))

	for i, arg := range args {
		if m, ok := trusted(arg); ok {
			safe[i] = fmtArg{v: m.s, trusted: true}
			retry[i] = fmtArg{v: "", trusted: true}

			continue
		}

		if isNumeric(arg) {
			safe[i] = fmtArg{v: arg}
			retry[i] = safe[i]

			continue
		}

		text, err := toText(arg)
		if err != nil {
			return "", fmt.Errorf("argument %d: %w", i, err)
		}

		safe[i] = fmtArg{v: text}
		retry[i] = fmtArg{v: ""}
	}

	out := fmt.Sprintf(format, safe...)
	if !strings.Contains(out, "%!") {
		return out, nil
	}

	if bad := fmt.Sprintf(format, retry...); strings.Contains(bad, "%!") {
		return "", fmt.Errorf(
			"%w: %q with %d argument(s) gives %q",
			ErrFormatMismatch, format, len(args), bad,
		)
	}

	return out, nil
}

// fmtArg is a format argument whose output is escaped.
// v is either the text of a value or a value of numeric
// or boolean kind. Trusted text is written as is for %s
// and %v.
type fmtArg struct {
	v       any
	trusted bool
}

// Format implements fmt.Formatter. %s on a number is
// formatted as %v, the way text conversion would render
// it.
func (fa fmtArg) Format(f fmt.State, verb rune) {
	if _, isText := fa.v.(string); verb == 's' && !isText {
		verb = 'v'
	}

	out := fmt.Sprintf(fmt.FormatString(f, verb), fa.v)
	if !fa.trusted || (verb != 's' && verb != 'v') {
		out = escape.String(out, true)
	}

	_, _ = io.WriteString(f, out) //nolint:errcheck // fmt buffer
}

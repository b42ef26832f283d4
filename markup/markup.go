package markup

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/markup/escape"
	"github.com/byte4ever/markup/textutil"
)

// Markup is text that is safe to emit into HTML or XML
// without further escaping. The zero value is the empty
// markup.
type Markup struct {
	s string
}

// New wraps text as markup without escaping it. Use it
// only for text that is known to be safe, such as
// developer-written templates; call Escape for anything
// else.
func New(text string) Markup {
	return Markup{s: text}
}

// Escape escapes &, <, > and, if quotes is true, " in
// text and returns the result as markup.
func Escape(text string, quotes bool) Markup {
	return Markup{s: escape.String(text, quotes)}
}

// String returns the markup text.
func (m Markup) String() string {
	return m.s
}

// GoString renders the value for debugging, e.g. with
// the %#v verb.
func (m Markup) GoString() string {
	return fmt.Sprintf("<Markup %q>", m.s)
}

// Len returns the length of the markup text in bytes.
func (m Markup) Len() int {
	return len(m.s)
}

// IsEmpty reports whether the markup text is empty.
func (m Markup) IsEmpty() bool {
	return m.s == ""
}

// Concat returns m followed by other. other is escaped
// unless it is already markup.
func (m Markup) Concat(other any) (Markup, error) {
	const errCtx = "concatenating markup"

	om, err := EscapeValue(other, true)
	if err != nil {
		return Markup{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return Markup{s: m.s + om.s}, nil
}

// Prepend returns other followed by m. other is escaped
// unless it is already markup.
func (m Markup) Prepend(other any) (Markup, error) {
	const errCtx = "prepending to markup"

	om, err := EscapeValue(other, true)
	if err != nil {
		return Markup{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return Markup{s: om.s + m.s}, nil
}

// Join escapes every element of seq that is not already
// markup and joins them with m as the separator. The
// separator itself is not escaped.
func (m Markup) Join(seq []any, quotes bool) (Markup, error) {
	const errCtx = "joining markup"

	parts := make([]string, len(seq))

	for i, item := range seq {
		im, err := EscapeValue(item, quotes)
		if err != nil {
			return Markup{}, fmt.Errorf(
				"%s: element %d: %w", errCtx, i, err,
			)
		}

		parts[i] = im.s
	}

	return Markup{s: strings.Join(parts, m.s)}, nil
}

// JoinStrings escapes every element of seq and joins
// them with m as the separator.
func (m Markup) JoinStrings(seq []string, quotes bool) Markup {
	parts := make([]string, len(seq))
	for i, item := range seq {
		parts[i] = escape.String(item, quotes)
	}

	return Markup{s: strings.Join(parts, m.s)}
}

// Repeat returns m repeated n times. A count of zero or
// less gives empty markup.
func (m Markup) Repeat(n int) Markup {
	if n <= 0 {
		return Markup{}
	}

	return Markup{s: strings.Repeat(m.s, n)}
}

// Unescape returns the plain text of m with &#34;, &gt;,
// &lt; and &amp; turned back into characters.
func (m Markup) Unescape() string {
	return escape.Unescape(m.s)
}

// StripEntities returns a copy of m with character and
// numeric entities replaced by the characters they stand
// for. If keepXML is true the core XML entities (&amp;,
// &apos;, &gt;, &lt; and &quot;) are kept.
func (m Markup) StripEntities(keepXML bool) Markup {
	return Markup{s: textutil.StripEntities(m.s, keepXML)}
}

// StripTags returns a copy of m with all tags removed.
func (m Markup) StripTags() Markup {
	return Markup{s: textutil.StripTags(m.s)}
}

// PlainText returns the text of m with all tags and
// entities removed.
func (m Markup) PlainText(keepLinebreaks bool) string {
	return textutil.PlainText(m.s, keepLinebreaks)
}

// MarshalText implements encoding.TextMarshaler.
func (m Markup) MarshalText() ([]byte, error) {
	return []byte(m.s), nil
}

// MarshalJSON encodes the markup text as a JSON string.
// There is no UnmarshalJSON: decoded input is not
// trusted.
func (m Markup) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.s)
}

// Unescape reverses the escaping of a markup value. Any
// other value is converted to text and returned as is.
func Unescape(v any) (string, error) {
	const errCtx = "unescaping"

	switch tv := v.(type) {
	case Markup:
		return tv.Unescape(), nil
	case *Markup:
		if tv == nil {
			return "", nil
		}

		return tv.Unescape(), nil
	}

	text, err := toText(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return text, nil
}

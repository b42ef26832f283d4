package escape

import (
	"io"
	"strings"
)

// Entities written for the reserved characters.
const (
	Amp  = "&amp;"
	Lt   = "&lt;"
	Gt   = "&gt;"
	Quot = "&#34;"
)

// entityFor returns the replacement for c, or "" when c
// is written as is.
func entityFor(c byte, quotes bool) string {
	switch c {
	case '&':
		return Amp
	case '<':
		return Lt
	case '>':
		return Gt
	case '"':
		if quotes {
			return Quot
		}
	}

	return ""
}

// escapedLen returns the length of s once escaped. It
// equals len(s) when nothing has to be replaced.
func escapedLen(s string, quotes bool) int {
	n := len(s)

	for i := 0; i < len(s); i++ {
		if ent := entityFor(s[i], quotes); ent != "" {
			n += len(ent) - 1
		}
	}

	return n
}

// Needed reports whether s contains a character that
// String would replace.
func Needed(s string, quotes bool) bool {
	for i := 0; i < len(s); i++ {
		if entityFor(s[i], quotes) != "" {
			return true
		}
	}

	return false
}

// String returns s with &, < and > replaced by their
// entities. If quotes is true " is replaced by &#34; as
// well, which is required inside attribute values.
//
// The output length is computed first and the result is
// written once into a buffer of exactly that size. When
// nothing needs escaping s itself is returned.
func String(s string, quotes bool) string {
	n := escapedLen(s, quotes)
	if n == len(s) {
		return s
	}

	var sb strings.Builder

	sb.Grow(n)

	last := 0

	for i := 0; i < len(s); i++ {
		ent := entityFor(s[i], quotes)
		if ent == "" {
			continue
		}

		sb.WriteString(s[last:i])
		sb.WriteString(ent)
		last = i + 1
	}

	sb.WriteString(s[last:])

	return sb.String()
}

// Write writes the escaped form of s to w without
// building the escaped string in memory. It returns the
// number of bytes written.
func Write(w io.Writer, s string, quotes bool) (int, error) {
	var written int

	last := 0

	for i := 0; i < len(s); i++ {
		ent := entityFor(s[i], quotes)
		if ent == "" {
			continue
		}

		n, err := io.WriteString(w, s[last:i])
		written += n

		if err != nil {
			return written, err
		}

		n, err = io.WriteString(w, ent)
		written += n

		if err != nil {
			return written, err
		}

		last = i + 1
	}

	n, err := io.WriteString(w, s[last:])
	written += n

	return written, err
}

// unescaper undoes the four substitutions. A Replacer
// scans its input once from left to right and never
// re-reads its own output, so "&amp;lt;" becomes "&lt;".
var unescaper = strings.NewReplacer(
	Quot, `"`,
	Gt, ">",
	Lt, "<",
	Amp, "&",
)

// Unescape reverses String: &#34;, &gt;, &lt; and &amp;
// are turned back into the characters they stand for.
// Only one pass is made, so doubly escaped text comes
// back singly escaped.
func Unescape(s string) string {
	if strings.IndexByte(s, '&') < 0 {
		return s
	}

	return unescaper.Replace(s)
}

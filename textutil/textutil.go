package textutil

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var (
	// entityRe matches "&#NN", "&#xHH" (";" optional) and
	// "&name;".
	entityRe = regexp.MustCompile(
		`&(?:#(\d+|[xX][0-9a-fA-F]+);?|(\w+);)`,
	)

	tagRe = regexp.MustCompile(`<[^>]*?>`)
)

// xmlEntities are kept by StripEntities when keepXML is
// set.
var xmlEntities = map[string]bool{
	"amp":  true,
	"apos": true,
	"gt":   true,
	"lt":   true,
	"quot": true,
}

// StripEntities returns text with character and numeric
// entities replaced by the characters they stand for.
//
// If keepXML is true the core XML entities (&amp;,
// &apos;, &gt;, &lt; and &quot;) are not decoded, and
// unknown named entities get their ampersand escaped so
// the result stays well-formed. Otherwise an unknown
// named entity is replaced by its bare name.
func StripEntities(text string, keepXML bool) string {
	if strings.IndexByte(text, '&') < 0 {
		return text
	}

	return entityRe.ReplaceAllStringFunc(
		text,
		func(match string) string {
			sub := entityRe.FindStringSubmatch(match)

			if ref := sub[1]; ref != "" {
				return decodeNumeric(match, ref)
			}

			name := sub[2]
			if keepXML && xmlEntities[name] {
				return "&" + name + ";"
			}

			if decoded, ok := lookupNamed(name); ok {
				return decoded
			}

			if keepXML {
				return "&amp;" + name + ";"
			}

			return name
		},
	)
}

// decodeNumeric turns a decimal or hexadecimal character
// reference into its character. Out-of-range references
// are left untouched.
func decodeNumeric(match string, ref string) string {
	var (
		cp  uint64
		err error
	)

	if ref[0] == 'x' || ref[0] == 'X' {
		cp, err = strconv.ParseUint(ref[1:], 16, 32)
	} else {
		cp, err = strconv.ParseUint(ref, 10, 32)
	}

	if err != nil || cp > 0x10FFFF {
		return match
	}

	return string(rune(cp))
}

// lookupNamed resolves a named entity with the HTML5
// entity table. UnescapeString leaves unknown names as
// they are, but also decodes a legacy prefix ("&notin;"
// vs "&notit;" -> "¬it;"), so only replacements of at
// most two code points count as a match.
func lookupNamed(name string) (string, bool) {
	ref := "&" + name + ";"

	decoded := html.UnescapeString(ref)
	if decoded == ref || utf8.RuneCountInString(decoded) > 2 {
		return "", false
	}

	return decoded, true
}

// StripTags returns text with all XML/HTML tags removed.
func StripTags(text string) string {
	if strings.IndexByte(text, '<') < 0 {
		return text
	}

	return tagRe.ReplaceAllString(text, "")
}

// PlainText returns text with all tags and entities
// removed. Line breaks are replaced by spaces unless
// keepLinebreaks is set.
func PlainText(text string, keepLinebreaks bool) string {
	text = StripEntities(StripTags(text), false)
	if !keepLinebreaks {
		text = strings.ReplaceAll(text, "\n", " ")
	}

	return text
}

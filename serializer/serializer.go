package serializer

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/byte4ever/markup/markup"
	"github.com/byte4ever/markup/pushback"
)

// Serializer converts an event stream into markup
// fragments.
type Serializer interface {
	Serialize(events iter.Seq[Event]) iter.Seq[markup.Markup]
}

// Render serializes events with se and writes the output
// to w.
func Render(
	w io.Writer,
	se Serializer,
	events iter.Seq[Event],
) error {
	const errCtx = "rendering events"

	for frag := range se.Serialize(events) {
		if _, err := io.WriteString(w, frag.String()); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return nil
}

// RenderString serializes events with se into a single
// markup value.
func RenderString(
	se Serializer,
	events iter.Seq[Event],
) markup.Markup {
	var sb strings.Builder

	for frag := range se.Serialize(events) {
		sb.WriteString(frag.String())
	}

	return markup.New(sb.String())
}

// doctype formats a document type declaration.
func doctype(dt DocType) markup.Markup {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE ")
	sb.WriteString(dt.Name)

	switch {
	case dt.PublicID != "":
		sb.WriteString(` PUBLIC "`)
		sb.WriteString(dt.PublicID)
		sb.WriteString(`"`)

		if dt.SystemID != "" {
			sb.WriteString(` "`)
			sb.WriteString(dt.SystemID)
			sb.WriteString(`"`)
		}
	case dt.SystemID != "":
		sb.WriteString(` SYSTEM "`)
		sb.WriteString(dt.SystemID)
		sb.WriteString(`"`)
	}

	sb.WriteString(">\n")

	return markup.New(sb.String())
}

// comment formats a comment. The text is emitted as is;
// "--" inside it is the producer's concern.
func comment(text string) markup.Markup {
	return markup.New("<!--" + text + "-->")
}

// writeAttr appends ` name="value"` with value escaped.
func writeAttr(sb *strings.Builder, name string, value string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(markup.Escape(value, true).String())
	sb.WriteByte('"')
}

// XML serializes events as XML. Elements without content
// are written as empty-element tags (<br/>). Attributes in
// a namespace that has no prefix in scope get a generated
// nsN prefix declared on their element.
type XML struct{}

// Serialize implements Serializer.
func (XML) Serialize(events iter.Seq[Event]) iter.Seq[markup.Markup] {
	return func(yield func(markup.Markup) bool) {
		it := pushback.New(events)
		defer it.Stop()

		var nsAttrs []Attr

		prefixes := make(map[string]string)

		for ev := range it.All() {
			var frag markup.Markup

			switch ev.Kind {
			case Doctype:
				frag = doctype(ev.DocType)

			case StartNS:
				if _, seen := prefixes[ev.NS.URI]; seen {
					continue
				}

				prefixes[ev.NS.URI] = ev.NS.Prefix
				nsAttrs = append(nsAttrs, Attr{
					Name:  QName{Local: xmlnsName(ev.NS.Prefix)},
					Value: ev.NS.URI,
				})

				continue

			case Start:
				tagName := ev.Tag.Local
				if ev.Tag.Space != "" {
					prefix, ok := prefixes[ev.Tag.Space]
					if !ok {
						nsAttrs = append(nsAttrs, Attr{
							Name:  QName{Local: "xmlns"},
							Value: ev.Tag.Space,
						})
					} else if prefix != "" {
						tagName = prefix + ":" + tagName
					}
				}

				var sb strings.Builder

				sb.WriteByte('<')
				sb.WriteString(tagName)

				var generated []Attr

				for _, attr := range slices.Concat(ev.Attrs, nsAttrs) {
					attrName := attr.Name.Local

					if space := attr.Name.Space; space != "" {
						prefix := prefixes[space]
						if prefix == "" {
							var decl *Attr

							prefix, decl = localPrefix(space, prefixes, generated)
							if decl != nil {
								generated = append(generated, *decl)
							}
						}

						attrName = prefix + ":" + attrName
					}

					writeAttr(&sb, attrName, attr.Value)
				}

				for _, decl := range generated {
					writeAttr(&sb, decl.Name.Local, decl.Value)
				}

				nsAttrs = nil

				next, ok := it.Next()

				switch {
				case ok && next.Kind == End:
					sb.WriteString("/>")
				case ok:
					sb.WriteByte('>')
					it.Pushback(next)
				default:
					sb.WriteByte('>')
				}

				frag = markup.New(sb.String())

			case End:
				tagName := ev.Tag.Local
				if prefix := prefixes[ev.Tag.Space]; ev.Tag.Space != "" && prefix != "" {
					tagName = prefix + ":" + tagName
				}

				frag = markup.New("</" + tagName + ">")

			case Text:
				frag = markup.Escape(ev.Text, false)

			case Comment:
				frag = comment(ev.Text)

			default:
				continue
			}

			if !yield(frag) {
				return
			}
		}
	}
}

// localPrefix returns the prefix of an attribute namespace
// that has no prefix in scope. Earlier attributes of the
// same element share it; a new namespace gets the first nsN
// not bound anywhere and the declaration to write for it.
func localPrefix(
	space string,
	prefixes map[string]string,
	generated []Attr,
) (string, *Attr) {
	for _, decl := range generated {
		if decl.Value == space {
			_, prefix, _ := strings.Cut(decl.Name.Local, ":")

			return prefix, nil
		}
	}

	taken := func(prefix string) bool {
		for _, p := range prefixes {
			if p == prefix {
				return true
			}
		}

		return slices.ContainsFunc(generated, func(a Attr) bool {
			return a.Name.Local == xmlnsName(prefix)
		})
	}

	for n := 1; ; n++ {
		if prefix := "ns" + strconv.Itoa(n); !taken(prefix) {
			return prefix, &Attr{
				Name:  QName{Local: xmlnsName(prefix)},
				Value: space,
			}
		}
	}
}

// xmlnsName returns the attribute name declaring prefix.
func xmlnsName(prefix string) string {
	if prefix == "" {
		return "xmlns"
	}

	return "xmlns:" + prefix
}

var (
	emptyElems = map[string]bool{
		"area": true, "base": true, "basefont": true,
		"br": true, "col": true, "frame": true,
		"hr": true, "img": true, "input": true,
		"isindex": true, "link": true, "meta": true,
		"param": true,
	}

	booleanAttrs = map[string]bool{
		"selected": true, "checked": true, "compact": true,
		"declare": true, "defer": true, "disabled": true,
		"ismap": true, "multiple": true, "nohref": true,
		"noresize": true, "noshade": true, "nowrap": true,
	}
)

// HTML serializes events as HTML. Elements and
// attributes outside the XHTML namespace are dropped,
// boolean attributes are minimized and empty elements
// such as <br> get no end tag.
type HTML struct{}

// inHTML reports whether name belongs to HTML output.
func inHTML(name QName) bool {
	return name.Space == "" || name.Space == XHTMLNamespace
}

// Serialize implements Serializer.
func (HTML) Serialize(events iter.Seq[Event]) iter.Seq[markup.Markup] {
	return func(yield func(markup.Markup) bool) {
		it := pushback.New(events)
		defer it.Stop()

		for ev := range it.All() {
			var frag markup.Markup

			switch ev.Kind {
			case Doctype:
				frag = doctype(ev.DocType)

			case Start:
				if !inHTML(ev.Tag) {
					continue
				}

				var sb strings.Builder

				sb.WriteByte('<')
				sb.WriteString(ev.Tag.Local)

				for _, attr := range ev.Attrs {
					if !inHTML(attr.Name) {
						continue
					}

					if booleanAttrs[attr.Name.Local] {
						if attr.Value != "" {
							sb.WriteByte(' ')
							sb.WriteString(attr.Name.Local)
						}

						continue
					}

					writeAttr(&sb, attr.Name.Local, attr.Value)
				}

				sb.WriteByte('>')

				if emptyElems[ev.Tag.Local] {
					if next, ok := it.Next(); ok && next.Kind != End {
						it.Pushback(next)
					}
				}

				frag = markup.New(sb.String())

			case End:
				if !inHTML(ev.Tag) {
					continue
				}

				frag = markup.New("</" + ev.Tag.Local + ">")

			case Text:
				frag = markup.Escape(ev.Text, false)

			case Comment:
				frag = comment(ev.Text)

			default:
				continue
			}

			if !yield(frag) {
				return
			}
		}
	}
}

package serializer

import (
	"iter"
	"slices"
)

// XHTMLNamespace is the namespace URI of XHTML elements.
const XHTMLNamespace = "http://www.w3.org/1999/xhtml"

// Kind identifies the type of an Event.
type Kind int

// Event kinds.
const (
	Start Kind = iota + 1
	End
	Text
	Comment
	Doctype
	StartNS
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Start:
		return "START"
	case End:
		return "END"
	case Text:
		return "TEXT"
	case Comment:
		return "COMMENT"
	case Doctype:
		return "DOCTYPE"
	case StartNS:
		return "START_NS"
	}

	return "UNKNOWN"
}

// QName is a name qualified by a namespace URI. Space is
// empty for names without namespace.
type QName struct {
	Space string
	Local string
}

// Attr is an attribute of a start tag. Value is plain
// text and gets escaped on output.
type Attr struct {
	Name  QName
	Value string
}

// DocType is the payload of a Doctype event.
type DocType struct {
	Name     string
	PublicID string
	SystemID string
}

// NS is the payload of a StartNS event.
type NS struct {
	Prefix string
	URI    string
}

// Event is one item of a markup stream. Which fields are
// set depends on Kind: Tag for Start and End, Attrs for
// Start, Text for Text and Comment, DocType for Doctype
// and NS for StartNS.
type Event struct {
	Kind    Kind
	Tag     QName
	Attrs   []Attr
	Text    string
	DocType DocType
	NS      NS
}

// Events returns a sequence over the given events.
func Events(events ...Event) iter.Seq[Event] {
	return slices.Values(events)
}

// StartEvent returns a Start event for a tag without
// namespace.
func StartEvent(local string, attrs ...Attr) Event {
	return Event{Kind: Start, Tag: QName{Local: local}, Attrs: attrs}
}

// EndEvent returns an End event for a tag without
// namespace.
func EndEvent(local string) Event {
	return Event{Kind: End, Tag: QName{Local: local}}
}

// TextEvent returns a Text event.
func TextEvent(text string) Event {
	return Event{Kind: Text, Text: text}
}

// A returns an attribute without namespace.
func A(name string, value string) Attr {
	return Attr{Name: QName{Local: name}, Value: value}
}

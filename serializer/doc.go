// Package serializer turns a stream of markup events (start tag, end tag,
// text, ...) into markup text. XML writes well-formed XML with namespace
// declarations and self-closing empty elements; HTML writes HTML 4 style
// output, dropping foreign namespaces and minimizing boolean attributes.
//
// Both serializers escape every text and attribute value they emit and look
// one event ahead, through a pushback.Iterator, to decide how a start tag is
// closed.
package serializer

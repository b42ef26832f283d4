// Package templating expands trusted markup templates with untrusted values.
// Placeholders use configurable delimiters (default "{{" and "}}") and are
// substituted through valyala/fasttemplate; every plain value is HTML-escaped
// on the way in, while markup values (raw variables, expanded imports) are
// inserted untouched.
//
// The Engine type holds configuration (tags, stamp info files, values files)
// and expands templates via the Expand method, which reads a template file,
// applies variable substitution and import expansion, and writes the result.
package templating

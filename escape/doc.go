// Package escape converts arbitrary text into HTML/XML-safe text and back.
// It replaces the four reserved characters &, <, > and (optionally) " with
// their entities in a single left-to-right pass, so entities produced by the
// substitution are never escaped again. Unescape reverses the substitution in
// one non-recursive pass.
//
// The package has no notion of trusted text; package markup builds the safe
// string type on top of it.
package escape

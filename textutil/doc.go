// Package textutil strips character references and tags from markup text.
// StripEntities decodes numeric and named references into UTF-8, StripTags
// removes anything that looks like a tag, and PlainText combines both.
//
// The functions work on plain strings and know nothing about trust; package
// markup re-wraps their results as safe values.
package textutil

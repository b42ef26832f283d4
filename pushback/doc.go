// Package pushback wraps a sequence so that consumed items can be handed back
// and read again, which lets a consumer peek one item ahead.
package pushback

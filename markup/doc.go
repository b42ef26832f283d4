// Package markup provides Markup, a string type whose content is known to be
// safe for inclusion in HTML or XML output.
//
// A Markup value can only be obtained from this package: New wraps text the
// caller vouches for, Escape and EscapeValue escape arbitrary input, and the
// composition methods (Concat, Join, Mod, Newf, Substitute) escape every
// argument that is not already a Markup before combining it with the trusted
// receiver. Values are immutable; every operation returns a new one.
//
//	greeting, err := markup.Newf("<b>%s</b>", userName)
//	row := markup.New("<td>").JoinStrings(cells, false)
//
// Passing a Markup where plain text is expected never escapes it twice.
package markup

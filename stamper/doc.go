// Package stamper reads Bazel-style workspace status files and stamps their
// values into trusted markup. LoadStamps parses one or more status files into
// a variable map; Stamp substitutes single-brace {VAR} placeholders in a
// trusted format, escaping every stamped value.
package stamper

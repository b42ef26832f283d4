// Binary markup_tool escapes, unescapes or strips markup
// read from a file or stdin and writes the result to
// stdout, optionally as a JSON document.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/markup/escape"
	"github.com/byte4ever/markup/markup"
)

// result is the JSON document written with -json.
type result struct {
	Mode   string `json:"mode"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	const errCtx = "running markup_tool"

	fs := flag.NewFlagSet("markup_tool", flag.ContinueOnError)

	mode := fs.String(
		"mode", "escape",
		"One of escape, unescape, striptags, stripentities, plaintext",
	)
	input := fs.String(
		"input", "",
		"Input file path (stdin if empty)",
	)
	quotes := fs.Bool(
		"quotes", true,
		"Escape double quotes (escape mode)",
	)
	keepXML := fs.Bool(
		"keep_xml_entities", false,
		"Keep the core XML entities (stripentities mode)",
	)
	keepLinebreaks := fs.Bool(
		"keep_linebreaks", true,
		"Keep line breaks (plaintext mode)",
	)
	asJSON := fs.Bool(
		"json", false,
		"Write a JSON document instead of raw text",
	)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	text, err := readInput(*input, stdin)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	// Escaping plain output streams straight to stdout.
	if *mode == "escape" && !*asJSON {
		if _, err := escape.Write(stdout, text, *quotes); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	var out string

	switch *mode {
	case "escape":
		out = markup.Escape(text, *quotes).String()
	case "unescape":
		out = markup.New(text).Unescape()
	case "striptags":
		out = markup.New(text).StripTags().String()
	case "stripentities":
		out = markup.New(text).StripEntities(*keepXML).String()
	case "plaintext":
		out = markup.New(text).PlainText(*keepLinebreaks)
	default:
		return fmt.Errorf("%s: unknown mode %q", errCtx, *mode)
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetEscapeHTML(false)

		if err := enc.Encode(result{
			Mode:   *mode,
			Input:  text,
			Output: out,
		}); err != nil {
			return fmt.Errorf("%s: encoding json: %w", errCtx, err)
		}

		return nil
	}

	if _, err := io.WriteString(stdout, out); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// readInput reads the whole input from path, or from
// stdin when path is empty.
func readInput(path string, stdin io.Reader) (string, error) {
	const errCtx = "reading input"

	if path != "" {
		content, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
		if err != nil {
			return "", fmt.Errorf("%s: %w", errCtx, err)
		}

		return string(content), nil
	}

	content, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return string(content), nil
}

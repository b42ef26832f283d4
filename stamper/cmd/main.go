// Package main provides markup_stamp, which reads Bazel
// workspace status files and stamps their values, escaped,
// into {VAR} placeholders of a trusted markup format.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/byte4ever/markup/stamper"
)

var errFormatConflict = errors.New(
	"only one of -format or -format-file may be specified",
)

// fileList collects a repeatable path flag.
type fileList []string

func (fl *fileList) String() string {
	return strings.Join(*fl, ",")
}

func (fl *fileList) Set(value string) error {
	*fl = append(*fl, value)
	return nil
}

func run(args []string, stdout io.Writer) error {
	const errCtx = "running markup_stamp"

	fs := flag.NewFlagSet("markup_stamp", flag.ContinueOnError)

	var infoFiles fileList

	fs.Var(
		&infoFiles, "stamp-info-file",
		"Workspace status file (repeatable, later files win)",
	)
	format := fs.String(
		"format", "",
		"Markup containing {VAR} placeholders",
	)
	formatFile := fs.String(
		"format-file", "",
		"File holding the markup format",
	)
	output := fs.String(
		"output", "",
		"Output file path (stdout if empty)",
	)
	plain := fs.Bool(
		"plain", false,
		"Write plain text, with tags and entities stripped",
	)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tpl := *format

	switch {
	case *formatFile != "" && tpl != "":
		return fmt.Errorf("%s: %w", errCtx, errFormatConflict)
	case *formatFile != "":
		content, err := os.ReadFile(*formatFile) //nolint:gosec // path from CLI flag
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		tpl = string(content)
	}

	stamped, err := stamper.Stamp(infoFiles, tpl)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	text := stamped.String()
	if *plain {
		text = stamped.PlainText(true)
	}

	if *output == "" {
		if _, err := io.WriteString(stdout, text); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	//nolint:gosec // path from CLI flag
	if err := os.WriteFile(*output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

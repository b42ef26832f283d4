// Binary markup_template expands trusted markup templates
// using stamp info files, values files and explicit
// variable substitutions. Substituted values are
// HTML-escaped unless passed as raw variables.
package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/byte4ever/markup/templating"
)

// arrayFlags implements flag.Value for repeatable string
// flags.
type arrayFlags []string

func (af *arrayFlags) String() string {
	if af == nil {
		return ""
	}

	return strings.Join(*af, ",")
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		stampInfoFile arrayFlags
		valuesFile    arrayFlags
		variable      arrayFlags
		rawVariable   arrayFlags
		imports       arrayFlags
		output        string
		tpl           string
		executable    bool
		startTag      string
		endTag        string
	)

	flag.Var(
		&stampInfoFile,
		"stamp_info_file",
		"Stamp info file path (repeatable)",
	)

	flag.Var(
		&valuesFile,
		"values",
		"YAML or JSON values file path (repeatable)",
	)

	flag.Var(
		&variable,
		"variable",
		"Variable in NAME=VALUE format, escaped (repeatable)",
	)

	flag.Var(
		&rawVariable,
		"raw_variable",
		"Trusted markup variable in NAME=VALUE format (repeatable)",
	)

	flag.Var(
		&imports,
		"imports",
		"Import in NAME=filename format (repeatable)",
	)

	flag.StringVar(
		&output, "output", "",
		"Output file path (stdout if empty)",
	)

	flag.StringVar(
		&tpl, "template", "",
		"Input template file path (stdin if empty)",
	)

	flag.BoolVar(
		&executable, "executable", false,
		"Set executable bit on output file",
	)

	flag.StringVar(
		&startTag, "start_tag", "{{",
		"Start tag for template placeholders",
	)

	flag.StringVar(
		&endTag, "end_tag", "}}",
		"End tag for template placeholders",
	)

	flag.Parse()

	en := templating.Engine{
		StartTag:       startTag,
		EndTag:         endTag,
		StampInfoFiles: stampInfoFile,
		ValuesFiles:    valuesFile,
	}

	return en.Expand(templating.Request{
		TemplatePath: tpl,
		OutputPath:   output,
		Variables:    variable,
		RawVariables: rawVariable,
		Imports:      imports,
		Executable:   executable,
	})
}

package templating

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/markup/markup"
	"github.com/byte4ever/markup/stamper"
)

// Engine expands markup templates using stamp info files,
// values files and explicit variables.
type Engine struct {
	StartTag       string
	EndTag         string
	StampInfoFiles []string
	ValuesFiles    []string
}

// Request describes one template expansion.
type Request struct {
	// TemplatePath is the template file; stdin when empty.
	TemplatePath string
	// OutputPath is the output file; stdout when empty.
	OutputPath string
	// Variables are NAME=VALUE pairs whose values are
	// escaped on substitution.
	Variables []string
	// RawVariables are NAME=VALUE pairs whose values are
	// trusted markup.
	RawVariables []string
	// Imports are NAME=filename pairs of trusted partial
	// templates.
	Imports []string
	// Executable gives the output file mode 0777.
	Executable bool
}

// Expand reads a template, substitutes variables, and
// writes the result.
//
// Processing order:
//  1. Load stamp files and values files into the context;
//     values files override stamps.
//  2. For each variable NAME=VALUE, expand VALUE against
//     stamps using single-brace tags, then store it as
//     both "NAME" and "variables.NAME". Raw variables are
//     stored the same way but as markup.
//  3. For each import NAME=filename, read the file as
//     markup, expand it against the context with the
//     configured tags, then against stamps with
//     single-brace tags, and store it as "imports.NAME".
//  4. Expand the template against the context.
func (en *Engine) Expand(req Request) error {
	const errCtx = "expanding template"

	stamps, err := stamper.LoadStamps(en.StampInfoFiles)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	// Stamps form the base context; values, variables
	// and imports override them.
	ctx := make(map[string]any)
	for key, val := range stamps {
		ctx[key] = val
	}

	values, err := LoadValues(en.ValuesFiles)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	for key, val := range values {
		ctx[key] = val
	}

	if err := en.resolveVars(req.Variables, stamps, ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.resolveRawVars(req.RawVariables, stamps, ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.resolveImports(req.Imports, stamps, ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tplContent, err := en.readTemplate(req.TemplatePath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	res, err := en.Render(markup.New(string(tplContent)), ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	out, closer, err := en.openOutput(req.OutputPath, req.Executable)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if closer != nil {
		defer closer()
	}

	if _, err := io.WriteString(out, res.String()); err != nil {
		return fmt.Errorf("%s: writing output: %w", errCtx, err)
	}

	return nil
}

// Render substitutes the placeholders of tpl with the
// values of ctx. Plain values are escaped, markup values
// are inserted as is and unknown placeholders are kept.
func (en *Engine) Render(
	tpl markup.Markup,
	ctx map[string]any,
) (markup.Markup, error) {
	const errCtx = "rendering template"

	startTag, endTag := en.tags()

	res, err := tpl.Substitute(startTag, endTag, ctx, false)
	if err != nil {
		return markup.Markup{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return res, nil
}

// tags returns the configured start/end tags, falling
// back to double-brace defaults.
func (en *Engine) tags() (string, string) {
	startTag := en.StartTag
	if startTag == "" {
		startTag = markup.StartTag
	}

	endTag := en.EndTag
	if endTag == "" {
		endTag = markup.EndTag
	}

	return startTag, endTag
}

// splitAssignment splits "NAME=VALUE".
func splitAssignment(
	errCtx string,
	what string,
	assignment string,
) (string, string, error) {
	name, val, ok := strings.Cut(assignment, "=")
	if !ok {
		return "", "", fmt.Errorf(
			"%s: %s, got %s", errCtx, what, assignment,
		)
	}

	return name, val, nil
}

// resolveVars processes --variable flags. Each variable
// value is expanded against stamps using single-brace
// tags, then stored as plain text under both "NAME" and
// "variables.NAME".
func (en *Engine) resolveVars(
	vars []string,
	stamps map[string]any,
	ctx map[string]any,
) error {
	const errCtx = "resolving variables"

	for _, vr := range vars {
		name, raw, err := splitAssignment(
			errCtx, "variable must be VAR=value", vr,
		)
		if err != nil {
			return err
		}

		val := fasttemplate.ExecuteStringStd(
			raw, stamper.StartTag, stamper.EndTag, stamps,
		)

		ctx[name] = val
		ctx["variables."+name] = val
	}

	return nil
}

// resolveRawVars processes --raw_variable flags. The
// value is trusted markup; stamps substituted into it are
// escaped.
func (en *Engine) resolveRawVars(
	vars []string,
	stamps map[string]any,
	ctx map[string]any,
) error {
	const errCtx = "resolving raw variables"

	for _, vr := range vars {
		name, raw, err := splitAssignment(
			errCtx, "raw variable must be VAR=value", vr,
		)
		if err != nil {
			return err
		}

		val, err := stamper.Apply(markup.New(raw), stamps)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		ctx[name] = val
		ctx["variables."+name] = val
	}

	return nil
}

// resolveImports processes --imports flags. Each import
// file is read as trusted markup, expanded against ctx
// with the configured tags, then expanded against stamps
// with single-brace tags, and stored as "imports.NAME".
func (en *Engine) resolveImports(
	imports []string,
	stamps map[string]any,
	ctx map[string]any,
) error {
	const errCtx = "resolving imports"

	for _, im := range imports {
		name, path, err := splitAssignment(
			errCtx, "import must be NAME=filename", im,
		)
		if err != nil {
			return err
		}

		content, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
		if err != nil {
			return fmt.Errorf(
				"%s: reading %s: %w",
				errCtx, path, err,
			)
		}

		// First pass: expand against context with
		// configured tags.
		val, err := en.Render(markup.New(string(content)), ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		// Second pass: expand against stamps with
		// single-brace tags.
		val, err = stamper.Apply(val, stamps)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		ctx["imports."+name] = val
	}

	return nil
}

// readTemplate reads the template from a file path. If
// tplPath is empty it reads from stdin.
func (en *Engine) readTemplate(
	tplPath string,
) ([]byte, error) {
	const errCtx = "reading template"

	if tplPath != "" {
		content, err := os.ReadFile(tplPath) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return content, nil
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: reading stdin: %w", errCtx, err,
		)
	}

	return content, nil
}

// openOutput returns a writer for the result. When
// outPath is empty it returns stdout. The returned
// closer function must be called to finalize the file
// (may be nil for stdout).
func (en *Engine) openOutput(
	outPath string,
	executable bool,
) (io.Writer, func(), error) {
	const errCtx = "opening output"

	if outPath == "" {
		return os.Stdout, nil, nil
	}

	var perm os.FileMode = 0o666
	if executable {
		perm = 0o777
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		outPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		perm,
	)
	if err != nil {
		return nil, nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return fi, func() {
		_ = fi.Close() //nolint:errcheck // best-effort close
	}, nil
}

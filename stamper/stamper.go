package stamper

import (
	"fmt"
	"os"
	"strings"

	"github.com/byte4ever/markup/markup"
)

// Delimiters of stamp placeholders.
const (
	StartTag = "{"
	EndTag   = "}"
)

// LoadStamps reads workspace status files and merges them
// into a single map. Each line is "KEY VALUE" with the
// first space as delimiter. Lines without a space are
// silently skipped. Later files override earlier ones.
func LoadStamps(
	infoFiles []string,
) (map[string]any, error) {
	const errCtx = "loading stamps"

	stamps := make(map[string]any)

	for _, sf := range infoFiles {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			key, val, ok := strings.Cut(line, " ")
			if ok {
				stamps[key] = val
			}
		}
	}

	return stamps, nil
}

// Apply substitutes {VAR} placeholders in format with the
// escaped values of stamps. Unknown variables are
// preserved as-is.
func Apply(
	format markup.Markup,
	stamps map[string]any,
) (markup.Markup, error) {
	const errCtx = "applying stamps"

	res, err := format.Substitute(
		StartTag, EndTag, stamps, false,
	)
	if err != nil {
		return markup.Markup{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return res, nil
}

// Stamp loads workspace status variables from infoFiles
// and substitutes {VAR} placeholders in the trusted
// format. Stamped values are escaped; unknown variables
// are preserved as-is.
func Stamp(
	infoFiles []string,
	format string,
) (markup.Markup, error) {
	const errCtx = "stamping"

	stamps, err := LoadStamps(infoFiles)
	if err != nil {
		return markup.Markup{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	res, err := Apply(markup.New(format), stamps)
	if err != nil {
		return markup.Markup{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return res, nil
}

package templating

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// LoadValues reads YAML or JSON values files and merges
// them into a single flat map. Files ending in ".json" are
// decoded as JSON, anything else as YAML. Nested mappings
// and sequences are flattened into dotted keys
// ("server.hosts.0"). Later files override earlier ones.
//
// Values are plain data and are escaped when substituted.
func LoadValues(paths []string) (map[string]any, error) {
	const errCtx = "loading values"

	values := make(map[string]any)

	for _, pa := range paths {
		raw, err := os.ReadFile(pa) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		var doc map[string]any

		if strings.EqualFold(filepath.Ext(pa), ".json") {
			err = json.Unmarshal(raw, &doc)
		} else {
			err = yaml.Unmarshal(raw, &doc)
		}

		if err != nil {
			return nil, fmt.Errorf(
				"%s: decoding %s: %w", errCtx, pa, err,
			)
		}

		flatten("", doc, values)
	}

	return values, nil
}

// flatten stores val under key in out, descending into
// maps and slices.
func flatten(key string, val any, out map[string]any) {
	switch tv := val.(type) {
	case map[string]any:
		for k, v := range tv {
			flatten(joinKey(key, k), v, out)
		}
	case map[any]any:
		for k, v := range tv {
			flatten(joinKey(key, fmt.Sprint(k)), v, out)
		}
	case []any:
		for i, v := range tv {
			flatten(joinKey(key, strconv.Itoa(i)), v, out)
		}
	case nil:
		if key != "" {
			out[key] = ""
		}
	default:
		if key != "" {
			out[key] = tv
		}
	}
}

// joinKey appends name to the dotted prefix.
func joinKey(prefix string, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}

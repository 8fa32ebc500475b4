package parser

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"
)

// DumpFormat selects the encoding of a parsed header dump.
type DumpFormat string

const (
	DumpJSON DumpFormat = "json"
	DumpYAML DumpFormat = "yaml"
)

// DumpFormatFor picks the dump format from a file extension. Anything that
// is not .yaml or .yml is dumped as JSON.
func DumpFormatFor(path string) DumpFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DumpYAML
	default:
		return DumpJSON
	}
}

// Dump writes the parsed header for debugging.
func Dump(w io.Writer, h *Header, format DumpFormat) error {
	switch format {
	case DumpYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(h); err != nil {
			return errors.Wrap(err, "failed to encode yaml dump")
		}
		return enc.Close()
	case DumpJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return errors.Wrap(enc.Encode(h), "failed to encode json dump")
	default:
		return errors.Errorf("unknown dump format %q", format)
	}
}

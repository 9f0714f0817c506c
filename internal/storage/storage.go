package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/contacts/pkg/types"
)

type codec interface {
	write(path string, snap Snapshot) error
	read(path string) (Snapshot, error)
}

var codecs = map[string]codec{
	types.FormatJSONL:  jsonlCodec{},
	types.FormatYAML:   yamlCodec{},
	types.FormatSQLite: sqliteCodec{},
}

// extFormats maps file extensions to snapshot formats.
var extFormats = map[string]string{
	".jsonl":   types.FormatJSONL,
	".json":    types.FormatJSONL,
	".yaml":    types.FormatYAML,
	".yml":     types.FormatYAML,
	".db":      types.FormatSQLite,
	".sqlite":  types.FormatSQLite,
	".sqlite3": types.FormatSQLite,
}

// FormatForPath picks the format from the file extension, falling back to
// fallback (or JSONL when fallback is empty) for unknown extensions.
func FormatForPath(path, fallback string) string {
	if f, ok := extFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	if fallback == "" {
		return types.DefaultFormat
	}
	return fallback
}

// Save writes records to path in format as a single atomic replacement.
func Save(path, format string, records []*types.Record) error {
	c, ok := codecs[format]
	if !ok {
		return fmt.Errorf("%w: %q", types.ErrFormatUnknown, format)
	}
	if err := c.write(path, Encode(records)); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Load reads the records stored at path. A missing file is returned as an
// error wrapping fs.ErrNotExist.
func Load(path, format string) ([]*types.Record, error) {
	c, ok := codecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrFormatUnknown, format)
	}
	snap, err := c.read(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	records, err := Decode(snap)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return records, nil
}

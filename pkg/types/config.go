package types

import "errors"

// Config holds the settings shared by the contacts CLI, loaded from
// config.yaml and flags.
type Config struct {
	DataDir   string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	BookFile  string `json:"book_file" yaml:"book_file" mapstructure:"book_file"`
	Format    string `json:"format" yaml:"format" mapstructure:"format"`
	Color     string `json:"color" yaml:"color" mapstructure:"color"`
	LogLevel  string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" mapstructure:"log_format"`
	LogOutput string `json:"log_output" yaml:"log_output" mapstructure:"log_output"`
}

// Persisted snapshot formats.
const (
	FormatJSONL  = "jsonl"
	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"
)

// Color modes for interactive output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Defaults applied when a key is absent from config.yaml.
const (
	DefaultFormat   = FormatJSONL
	DefaultBookFile = "contacts.jsonl"
	DefaultColor    = ColorAuto
	DefaultLogLevel = "warn"
)

// Config validation errors.
var (
	ErrFormatUnknown = errors.New("unknown snapshot format")
	ErrColorUnknown  = errors.New("unknown color mode")
)

var knownFormats = map[string]bool{
	FormatJSONL:  true,
	FormatYAML:   true,
	FormatSQLite: true,
}

var knownColors = map[string]bool{
	ColorAuto:   true,
	ColorAlways: true,
	ColorNever:  true,
}

// Validate checks that the Config is well-formed. Empty Format and Color
// mean the defaults.
func (c Config) Validate() error {
	if c.Format != "" && !knownFormats[c.Format] {
		return ErrFormatUnknown
	}
	if c.Color != "" && !knownColors[c.Color] {
		return ErrColorUnknown
	}
	return nil
}

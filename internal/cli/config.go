package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/contacts/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "CONTACTS"
)

// Config keys.
const (
	cfgKeyDataDir   = "data_dir"
	cfgKeyBookFile  = "book_file"
	cfgKeyFormat    = "format"
	cfgKeyColor     = "color"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"
	cfgKeyLogOutput = "log_output"
)

// envKeys are the config keys that CONTACTS_<KEY> environment variables
// override. data_dir is resolved by the paths package instead, where the
// environment ranks below config.yaml.
var envKeys = []string{
	cfgKeyBookFile,
	cfgKeyFormat,
	cfgKeyColor,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
	cfgKeyLogOutput,
}

const defaultConfigHeader = `# contacts CLI configuration
#
# data_dir:   directory that save/load filenames are relative to
# book_file:  default address book for "save", "load" and "contacts exec"
# format:     jsonl, yaml or sqlite, used for filenames without a known extension
# color:      auto, always or never
# log_level:  debug, info, warn or error
`

// configFile holds the structure written to config.yaml on first run.
type configFile struct {
	DataDir  string `yaml:"data_dir,omitempty"`
	BookFile string `yaml:"book_file"`
	Format   string `yaml:"format"`
	Color    string `yaml:"color"`
	LogLevel string `yaml:"log_level"`
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. A missing config.yaml
// is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBookFile, types.DefaultBookFile)
	v.SetDefault(cfgKeyFormat, types.DefaultFormat)
	v.SetDefault(cfgKeyColor, types.DefaultColor)
	v.SetDefault(cfgKeyLogLevel, types.DefaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	for _, key := range envKeys {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// configFromViper copies the loaded keys into a types.Config.
func configFromViper(v *viper.Viper) types.Config {
	return types.Config{
		DataDir:   v.GetString(cfgKeyDataDir),
		BookFile:  v.GetString(cfgKeyBookFile),
		Format:    v.GetString(cfgKeyFormat),
		Color:     v.GetString(cfgKeyColor),
		LogLevel:  v.GetString(cfgKeyLogLevel),
		LogFormat: v.GetString(cfgKeyLogFormat),
		LogOutput: v.GetString(cfgKeyLogOutput),
	}
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&configFile{
		BookFile: types.DefaultBookFile,
		Format:   types.DefaultFormat,
		Color:    types.DefaultColor,
		LogLevel: types.DefaultLogLevel,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(defaultConfigHeader), data...), 0o644)
}

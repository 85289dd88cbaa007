package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".doxynav.yml"

// DefaultInclude matches the navigation data file the generator writes
// into every HTML output directory.
var DefaultInclude = []string{"**/navtreedata.js"}

// DefaultExcludes are glob patterns skipped during scans by default.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"build/**",
	"managed_components/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RootDir:   ".",
		Include:   slices.Clone(DefaultInclude),
		Exclude:   slices.Clone(DefaultExcludes),
		OutputDir: "navtree",
		DBPath:    ".doxynav/catalog.db",
		LogLevel:  LogNormal,
		Server: ServerConfig{
			Port: 8080,
		},
		Strings: StringsConfig{
			SyncOn:  "click to disable panel synchronisation",
			SyncOff: "click to enable panel synchronisation",
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOXYNAV_*). Nested keys use a double
// underscore: DOXYNAV_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("DOXYNAV_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "DOXYNAV_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogLevels = map[LogLevel]bool{
	LogNone:   true,
	LogNormal: true,
	LogDebug:  true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.RootDir == "" {
		return fmt.Errorf("root_dir is required")
	}
	if len(c.Include) == 0 {
		return fmt.Errorf("include must list at least one pattern")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be one of none, normal, debug", c.LogLevel)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}

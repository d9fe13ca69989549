// Package build drives the translation of a declaration tree into a tree of
// Rust binding modules.
package build

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml"

	"martianoff/tsbind/internal/catalog"
	"martianoff/tsbind/internal/logger"
	"martianoff/tsbind/internal/transpiler/imports"
)

// ConfigFileName is the project configuration file looked up next to the
// input tree.
const ConfigFileName = "tsbind.toml"

// Config holds configuration for the build system.
type Config struct {
	Output  OutputConfig  `toml:"output"`
	Catalog CatalogConfig `toml:"catalog"`
	Log     LogConfig     `toml:"log"`
}

// OutputConfig controls the generated module tree.
type OutputConfig struct {
	// ModuleSuffix is appended to every scope name: files, directories and
	// namespaces.
	ModuleSuffix string `toml:"module-suffix"`

	// Jobs bounds the number of units translated at once.
	Jobs int `toml:"jobs"`
}

// CatalogConfig extends the embedded known-type catalog.
type CatalogConfig struct {
	StringTypes []string     `toml:"string-types,omitempty"`
	Hosts       []HostConfig `toml:"hosts,omitempty"`
}

// HostConfig adds types to a host binding crate. Crate defaults to Name.
type HostConfig struct {
	Name  string   `toml:"name"`
	Crate string   `toml:"crate,omitempty"`
	Types []string `toml:"types"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the default build configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			ModuleSuffix: imports.DefaultSuffix,
			Jobs:         runtime.NumCPU(),
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads a tsbind.toml. A missing file yields the defaults; keys
// absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes configuration from TOML.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ConfigFileName, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Output.ModuleSuffix == "" {
		c.Output.ModuleSuffix = def.Output.ModuleSuffix
	}
	if c.Output.Jobs == 0 {
		c.Output.Jobs = def.Output.Jobs
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// Validate checks value ranges that decoding cannot.
func (c *Config) Validate() error {
	if c.Output.Jobs < 0 {
		return fmt.Errorf("output.jobs must be positive, got %d", c.Output.Jobs)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	for _, h := range c.Catalog.Hosts {
		if h.Name == "" {
			return errors.New("catalog.hosts entry without a name")
		}
	}
	return nil
}

// BuildCatalog returns the embedded catalog extended with the configured
// entries.
func (c *Config) BuildCatalog() *catalog.Catalog {
	base := catalog.Default()
	if len(c.Catalog.StringTypes) == 0 && len(c.Catalog.Hosts) == 0 {
		return base
	}
	extra := catalog.Data{StringTypes: c.Catalog.StringTypes}
	for _, h := range c.Catalog.Hosts {
		crate := h.Crate
		if crate == "" {
			crate = h.Name
		}
		extra.Hosts = append(extra.Hosts, catalog.Host{Name: h.Name, Crate: crate, Types: h.Types})
	}
	return base.Extend(extra)
}

// LoggerConfig translates the log section for logger.Init.
func (c *Config) LoggerConfig() (logger.Config, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.Config{}, err
	}
	cfg := logger.DefaultConfig()
	cfg.Level = level
	cfg.Format = c.Log.Format
	return cfg, nil
}

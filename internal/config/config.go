package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/jakoblorz/go-depextract/internal/filesystem"
	"github.com/jakoblorz/go-depextract/internal/models"
)

const (
	maxConfigFileBytes = 1 << 20

	DefaultServer   = "http://127.0.0.1:8080"
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "info"

	configDirName  = "depextract"
	configFileName = "config.yaml"
)

// Config is the depextract runtime configuration
type Config struct {
	Server         string                 `yaml:"server"`
	Framework      models.Framework       `yaml:"framework"`
	ParseIncludes  *bool                  `yaml:"parse_includes,omitempty"`
	Timeout        time.Duration          `yaml:"timeout"`
	LogFile        string                 `yaml:"log_file"`
	LogLevel       string                 `yaml:"log_level"`
	HiddenPatterns []string               `yaml:"hidden_patterns,omitempty"`
	Mappings       []models.PrefixMapping `yaml:"mappings,omitempty"`
}

// Overrides are command line values that win over the file
type Overrides struct {
	Server    string
	Framework string
	LogFile   string
	LogLevel  string
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() Config {
	parse := true
	return Config{
		Server:        DefaultServer,
		Framework:     models.DefaultFramework,
		ParseIncludes: &parse,
		Timeout:       DefaultTimeout,
		LogLevel:      DefaultLogLevel,
	}
}

// IncludesEnabled reports whether analysis should parse include statements
func (c Config) IncludesEnabled() bool {
	return c.ParseIncludes == nil || *c.ParseIncludes
}

// DefaultPath returns the per-user config file location
func DefaultPath(fsys filesystem.FileSystem) (string, error) {
	dir, err := fsys.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// Load reads the config at path. A missing file yields the defaults.
func Load(fsys filesystem.FileSystem, path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, errors.New("config path required")
	}

	raw, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if len(raw) > maxConfigFileBytes {
		return cfg, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileBytes)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := applyDefaultsAndValidate(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory
func Save(fsys filesystem.FileSystem, path string, cfg Config) error {
	if err := applyDefaultsAndValidate(&cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := fsys.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Apply layers non-empty overrides on top of cfg and validates the result
func (c Config) Apply(o Overrides) (Config, error) {
	if o.Server != "" {
		c.Server = o.Server
	}
	if o.Framework != "" {
		c.Framework = models.Framework(o.Framework)
	}
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if err := applyDefaultsAndValidate(&c); err != nil {
		return c, err
	}
	return c, nil
}

func applyDefaultsAndValidate(cfg *Config) error {
	defaults := DefaultConfig()

	cfg.Server = strings.TrimSpace(cfg.Server)
	if cfg.Server == "" {
		cfg.Server = defaults.Server
	}
	u, err := url.Parse(cfg.Server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server must be an http(s) URL, got %q", cfg.Server)
	}

	framework, err := models.ParseFramework(string(cfg.Framework))
	if err != nil {
		return err
	}
	cfg.Framework = framework

	if cfg.ParseIncludes == nil {
		cfg.ParseIncludes = defaults.ParseIncludes
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	patterns := cfg.HiddenPatterns[:0]
	for _, p := range cfg.HiddenPatterns {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	cfg.HiddenPatterns = patterns

	for i, m := range cfg.Mappings {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("mappings[%d]: %w", i, err)
		}
	}
	return nil
}

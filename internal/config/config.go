package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taxtracker/taxtracker/internal/ledger"
	"github.com/taxtracker/taxtracker/internal/logging"
)

// DefaultPath is the config file read when no --config flag is given.
const DefaultPath = "taxtracker.yaml"

// Environment variables that override file values.
const (
	EnvFile      = "TAXTRACKER_FILE"
	EnvStrict    = "TAXTRACKER_STRICT"
	EnvAddr      = "TAXTRACKER_ADDR"
	EnvLogLevel  = "TAXTRACKER_LOG_LEVEL"
	EnvLogFormat = "TAXTRACKER_LOG_FORMAT"
)

// Config represents the top-level taxtracker.yaml configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// DataConfig locates the transactions file.
type DataConfig struct {
	File   string `yaml:"file"`
	Strict bool   `yaml:"strict"` // fail the load on the first unparseable amount
}

// ServerConfig controls the web form.
type ServerConfig struct {
	Addr      string  `yaml:"addr"`
	RateLimit float64 `yaml:"rate_limit"` // POST requests per second
	Burst     int     `yaml:"burst"`
}

// LogConfig controls process logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a taxtracker.yaml file from disk. Missing keys keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			File: ledger.DefaultFile,
		},
		Server: ServerConfig{
			Addr:      "127.0.0.1:8080",
			RateLimit: 5,
			Burst:     10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFile); ok && v != "" {
		c.Data.File = v
	}
	if v, ok := lookup(EnvStrict); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvStrict, v, err)
		}
		c.Data.Strict = b
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Log.Format = v
	}
	return nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Data.File) == "" {
		problems = append(problems, "data.file cannot be empty")
	}

	if _, port, err := net.SplitHostPort(c.Server.Addr); err != nil {
		problems = append(problems, fmt.Sprintf("invalid server.addr %q: %v", c.Server.Addr, err))
	} else if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		problems = append(problems, fmt.Sprintf("invalid server.addr port %q", port))
	}

	if c.Server.RateLimit <= 0 {
		problems = append(problems, fmt.Sprintf("invalid server.rate_limit %v: must be positive", c.Server.RateLimit))
	}
	if c.Server.Burst < 1 {
		problems = append(problems, fmt.Sprintf("invalid server.burst %d: must be at least 1", c.Server.Burst))
	}

	if _, err := logging.New(io.Discard, c.Log.Level, c.Log.Format); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log settings: %v", err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

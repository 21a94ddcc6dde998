// Package config loads the controlkit CLI configuration from YAML.
//
// Every field has a default, so a missing file yields a usable Config.
// Command-line flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-controlkit/internal/logging"
	"github.com/goliatone/go-controlkit/pkg/source"
)

// Config holds all CLI configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Loader  LoaderConfig  `yaml:"loader"`
}

// LoggingConfig selects verbosity and output format.
type LoggingConfig struct {
	// Level is info, debug, trace or a numeric verbosity (default: info)
	Level string `yaml:"level"`

	// Format is text or json (default: text)
	Format string `yaml:"format"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Host string `yaml:"host"`

	// Port defaults to 8080.
	Port int `yaml:"port"`

	// BasePath prefixes every mounted route.
	BasePath string `yaml:"basePath"`

	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// LoaderConfig controls where manifests and snapshots may be read from.
type LoaderConfig struct {
	// AllowHTTP enables http(s) sources.
	AllowHTTP bool `yaml:"allowHTTP"`

	// RequestTimeout caps remote fetches (default: 10s)
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Loader: LoaderConfig{
			RequestTimeout: 10 * time.Second,
		},
	}
}

// Load reads path over the defaults and validates the result. An empty path
// or a missing file returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals YAML into cfg, leaving absent keys untouched. Unknown
// keys are rejected.
func Decode(data []byte, cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil target")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if logging.ParseLevel(c.Logging.Level) == 0 && !isInfoLevel(c.Logging.Level) {
		errs = append(errs, fmt.Sprintf("logging.level (%q) must be info, debug, trace or a positive number", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("logging.format (%q) must be one of: text, json", c.Logging.Format))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		errs = append(errs, "server timeouts must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "server.shutdownTimeout must be positive")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		errs = append(errs, fmt.Sprintf("server.basePath (%q) must start with /", c.Server.BasePath))
	}

	if c.Loader.RequestTimeout < 0 {
		errs = append(errs, "loader.requestTimeout must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LoaderOptions converts the loader section for source loaders.
func (c *LoaderConfig) LoaderOptions() []source.LoaderOption {
	if !c.AllowHTTP {
		return nil
	}
	return []source.LoaderOption{source.WithHTTPFallback(c.RequestTimeout)}
}

func isInfoLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info", "0":
		return true
	}
	return false
}

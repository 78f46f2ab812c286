// Package config loads server and dashboard settings from defaults, an
// optional YAML file and the environment (a .env file is honored).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfig         = "SYSDASH_CONFIG"
	EnvListen         = "SYSDASH_LISTEN"
	EnvDiskPath       = "SYSDASH_DISK_PATH"
	EnvLogLevel       = "SYSDASH_LOG_LEVEL"
	EnvLogFormat      = "SYSDASH_LOG_FORMAT"
	EnvStreamInterval = "SYSDASH_STREAM_INTERVAL"
)

type Config struct {
	Listen         string        `yaml:"listen" validate:"required,hostname_port"`
	DiskPath       string        `yaml:"disk_path" validate:"required"`
	LogLevel       string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat      string        `yaml:"log_format" validate:"oneof=console json"`
	StreamInterval time.Duration `yaml:"stream_interval" validate:"min=100ms"`
}

func Default() *Config {
	return &Config{
		Listen:         "0.0.0.0:5001",
		DiskPath:       "/",
		LogLevel:       "info",
		LogFormat:      "console",
		StreamInterval: time.Second,
	}
}

// Load builds the configuration. A file named by path must exist. When path
// is empty SYSDASH_CONFIG is consulted, and a missing file there is skipped.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	mustExist := path != ""
	if !mustExist {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := cfg.readFile(path, mustExist); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, mustExist bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvListen); v != "" {
		c.Listen = v
	}
	if v := os.Getenv(EnvDiskPath); v != "" {
		c.DiskPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvStreamInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvStreamInterval, err)
		}
		c.StreamInterval = d
	}
	return nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, messageFor(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

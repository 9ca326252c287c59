// Package config provides configuration management for pathway servers:
// defaults, YAML/env/.env loading through Bofry/config, and struct
// validation.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yshengliao/pathway/template"
)

// Config represents the application configuration structure.
type Config struct {
	Server ServerConfig `yaml:"server" env:"SERVER"`
	Logger LoggerConfig `yaml:"logger" env:"LOGGER"`
	Router RouterConfig `yaml:"router" env:"ROUTER"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `yaml:"address" env:"ADDRESS" default:":8080" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT" default:"120s"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level    string `yaml:"level" env:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Encoding string `yaml:"encoding" env:"ENCODING" default:"json" validate:"oneof=json console"`
}

// RouterConfig holds the routing configuration. CaseSensitive and
// TrailingSlashSensitive feed straight into template compilation; they are
// fixed for the lifetime of a route table.
type RouterConfig struct {
	CaseSensitive          bool   `yaml:"case_sensitive" env:"CASE_SENSITIVE"`
	TrailingSlashSensitive bool   `yaml:"trailing_slash_sensitive" env:"TRAILING_SLASH_SENSITIVE"`
	RoutesFile             string `yaml:"routes_file" env:"ROUTES_FILE"`
}

// TemplateOptions converts the routing configuration into compiler options.
func (c RouterConfig) TemplateOptions() template.Options {
	return template.Options{
		CaseSensitive:          c.CaseSensitive,
		TrailingSlashSensitive: c.TrailingSlashSensitive,
	}
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Logger: LoggerConfig{
			Level:    "info",
			Encoding: "json",
		},
		Router: RouterConfig{},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// BuildLogger constructs a zap logger from the logger configuration.
func (c *Config) BuildLogger() (*zap.Logger, error) {
	var zc zap.Config
	if c.Logger.Encoding == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(c.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Logger.Level, err)
	}
	zc.Level = level
	return zc.Build()
}

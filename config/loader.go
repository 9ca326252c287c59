package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	bofryconfig "github.com/Bofry/config"
)

// Loader loads configuration through Bofry/config from, in order: defaults,
// a YAML file, a .env file, environment variables, and command line
// arguments.
type Loader struct {
	yamlFile       string
	dotEnvFile     string
	envPrefix      string
	useCommandArgs bool
}

// NewLoader creates a configuration loader with the PATHWAY_ env prefix.
func NewLoader() *Loader {
	return &Loader{
		envPrefix: "PATHWAY_",
	}
}

// WithYAMLFile sets the YAML configuration file path.
func (l *Loader) WithYAMLFile(path string) *Loader {
	l.yamlFile = path
	return l
}

// WithDotEnvFile sets the .env file path.
func (l *Loader) WithDotEnvFile(path string) *Loader {
	l.dotEnvFile = path
	return l
}

// WithEnvPrefix sets the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithCommandArguments enables parsing command line arguments.
func (l *Loader) WithCommandArguments() *Loader {
	l.useCommandArgs = true
	return l
}

// Load loads configuration from the configured sources into cfg and
// validates the result.
func (l *Loader) Load(cfg *Config) error {
	*cfg = *DefaultConfig()

	if l.useCommandArgs {
		l.applyCommandArgs()
	}

	// Bofry/config panics on errors, so recover into a regular error.
	var loadErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok {
					loadErr = err
				} else {
					loadErr = fmt.Errorf("configuration loading panic: %v", r)
				}
			}
		}()

		service := bofryconfig.NewConfigurationService(cfg)

		if l.yamlFile != "" {
			if _, err := os.Stat(l.yamlFile); err == nil {
				service.LoadYamlFile(l.yamlFile)
			} else if !os.IsNotExist(err) {
				loadErr = fmt.Errorf("failed to check YAML file: %w", err)
				return
			}
			// A missing file is not an error; defaults and env still apply.
		}

		if l.dotEnvFile != "" {
			if _, err := os.Stat(l.dotEnvFile); err == nil {
				service.LoadDotEnvFile(l.dotEnvFile)
			} else if !os.IsNotExist(err) {
				loadErr = fmt.Errorf("failed to check .env file: %w", err)
				return
			}
		}

		prefix := strings.TrimSuffix(l.envPrefix, "_")
		service.LoadEnvironmentVariables(prefix)
	}()
	if loadErr != nil {
		return loadErr
	}

	return cfg.Validate()
}

// applyCommandArgs parses command line arguments in the form --name=value
// and sets them as environment variables using the configured prefix.
func (l *Loader) applyCommandArgs() {
	for _, arg := range os.Args[1:] {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		kv := strings.SplitN(arg[2:], "=", 2)
		if len(kv) != 2 {
			continue
		}
		name := strings.ToUpper(strings.ReplaceAll(kv[0], "-", "_"))
		os.Setenv(l.envPrefix+name, kv[1])
	}
}

// Load is a convenience that loads yamlFile with the default env prefix,
// picking up a .env file sitting next to the YAML file if present.
func Load(yamlFile string, cfg *Config) error {
	dotEnvFile := ""
	if yamlFile != "" {
		possible := filepath.Join(filepath.Dir(yamlFile), ".env")
		if _, err := os.Stat(possible); err == nil {
			dotEnvFile = possible
		}
	}
	return NewLoader().
		WithYAMLFile(yamlFile).
		WithDotEnvFile(dotEnvFile).
		Load(cfg)
}

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings an optional --config file may supply: the
// worker count and the log level. Command-line flags take precedence
// over a loaded file; a file takes precedence over defaultConfig.
type Config struct {
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
}

// defaultConfig returns the values used when neither a --config file nor
// an explicit flag supplies one.
func defaultConfig() Config {
	return Config{Workers: 0, LogLevel: "info"}
}

// loadConfig reads a YAML config file, merging it over def. An empty
// path returns def unchanged.
func loadConfig(path string, def Config) (Config, error) {
	cfg := def
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

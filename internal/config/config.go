// Package config provides configuration loading and structs for the Shirabe server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Charts ChartsConfig `yaml:"charts"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DataConfig holds dataset discovery settings. SearchPaths are candidate
// directories tried in order; relative entries (including ".") are resolved
// against the working directory at discovery time, so "." means "next to
// where the process was started", not next to the config file.
type DataConfig struct {
	Filename    string   `yaml:"filename"`
	SearchPaths []string `yaml:"search_paths"`
	// DefaultYear is assigned when publish_time is missing or unparseable.
	DefaultYear int `yaml:"default_year"`
	// Watch reloads the cached dataset when the discovered file changes.
	// Off by default: the dataset is cached for the process lifetime.
	Watch bool `yaml:"watch"`
}

// ChartsConfig holds presentation settings.
type ChartsConfig struct {
	TopJournals   int `yaml:"top_journals"`
	PreviewRows   int `yaml:"preview_rows"`
	MaxCloudWords int `yaml:"max_cloud_words"`
	MinWordLength int `yaml:"min_word_length"`
}

// Load reads and parses the config file at path, applies defaults, and then
// applies environment overrides (a .env file next to the process is honored,
// see applyEnv). Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no config file exists:
// defaults plus environment overrides. The tool is expected to work with
// zero configuration.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	applyEnv(cfg)
	return cfg
}

// applyEnv overrides config fields from SHIRABE_* environment variables.
// A .env file in the working directory is loaded first (missing is fine).
func applyEnv(cfg *Config) {
	_ = godotenv.Load()
	if v := os.Getenv("SHIRABE_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SHIRABE_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("SHIRABE_DATA_FILE"); v != "" {
		cfg.Data.Filename = v
	}
}

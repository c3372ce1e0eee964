package config

import (
	"os"
	"path/filepath"
)

// DefaultFilename is the cleaned dataset file produced by the upstream
// processing step.
const DefaultFilename = "cleaned_cord19_data.csv"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Data.Filename == "" {
		cfg.Data.Filename = DefaultFilename
	}
	if cfg.Data.SearchPaths == nil {
		cfg.Data.SearchPaths = defaultSearchPaths()
	}
	if cfg.Data.DefaultYear == 0 {
		cfg.Data.DefaultYear = 2020
	}
	if cfg.Charts.TopJournals == 0 {
		cfg.Charts.TopJournals = 10
	}
	if cfg.Charts.PreviewRows == 0 {
		cfg.Charts.PreviewRows = 20
	}
	if cfg.Charts.MaxCloudWords == 0 {
		cfg.Charts.MaxCloudWords = 100
	}
	if cfg.Charts.MinWordLength == 0 {
		cfg.Charts.MinWordLength = 3
	}
}

// defaultSearchPaths mirrors where the upstream cleaning step is documented
// to leave its output: the desktop, the working directory, then documents.
func defaultSearchPaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "Desktop"))
	}
	paths = append(paths, ".")
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "Documents"))
	}
	return paths
}

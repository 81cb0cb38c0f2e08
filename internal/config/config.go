package config

import (
	"path/filepath"
)

// Defaults for the released terraform binaries.
const (
	DefaultBaseURL = "https://releases.hashicorp.com/terraform"
	DefaultTool    = "terraform"
)

// Config carries the optional user overrides for endpoints and layout.
// All fields are filled with defaults when the config file is absent or
// leaves them empty.
type Config struct {
	// BaseURL is the release index root; archives live under
	// {BaseURL}/{version}/.
	BaseURL string `yaml:"base_url" json:"base_url"`
	// CacheDir holds downloaded archives. Defaults to the install dir so
	// cached zips and the binary share ~/.local/bin.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`
	// Tool is the binary name used in archive keys and PATH lookup.
	Tool string `yaml:"tool" json:"tool"`
}

// Default returns the built-in configuration for the given home dir.
func Default(home string) *Config {
	cfg := &Config{
		BaseURL: DefaultBaseURL,
		Tool:    DefaultTool,
	}
	if home != "" {
		cfg.CacheDir = filepath.Join(home, ".local", "bin")
	}
	return cfg
}

// applyDefaults fills empty fields of cfg from defaults.
func applyDefaults(cfg, defaults *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaults.CacheDir
	}
	if cfg.Tool == "" {
		cfg.Tool = defaults.Tool
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/penwyp/tfget/internal/errors"
)

// Format represents the configuration file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Manager loads a single configuration file, choosing the format by
// extension and falling back to the other format when parsing fails.
type Manager struct {
	configPath string
	format     Format
}

// NewManager creates a manager for configPath.
func NewManager(configPath string) (*Manager, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}

	var format Format
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".json":
		format = FormatJSON
	default:
		format = FormatYAML
	}
	return &Manager{configPath: configPath, format: format}, nil
}

// Load reads and parses the configuration file. A missing file returns
// the raw os.IsNotExist error so callers can treat it as "no config".
func (m *Manager) Load() (*Config, error) {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch m.format {
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg); err != nil {
			if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr == nil {
				return &cfg, nil
			}
			return nil, fmt.Errorf("failed to parse config as JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			if jsonErr := json.Unmarshal(data, &cfg); jsonErr == nil {
				return &cfg, nil
			}
			return nil, fmt.Errorf("failed to parse config as YAML: %w", err)
		}
	}
	return &cfg, nil
}

// Load resolves the effective configuration for home, reading the first
// of ~/.config/tfget/config.{yaml,yml,json} that exists and filling the
// gaps with defaults. No file at all is not an error.
func Load(home string) (*Config, error) {
	defaults := Default(home)
	if home == "" {
		return defaults, nil
	}

	for _, name := range []string{"config.yaml", "config.yml", "config.json"} {
		path := filepath.Join(home, ".config", "tfget", name)
		m, err := NewManager(path)
		if err != nil {
			return nil, err
		}

		cfg, err := m.Load()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, apperrors.Wrap(apperrors.ErrTypePrecondition,
				fmt.Sprintf("loading config %s", path), err)
		}
		applyDefaults(cfg, defaults)
		return cfg, nil
	}
	return defaults, nil
}

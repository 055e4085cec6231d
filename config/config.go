package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Backend string        `json:"backend" toml:"backend"` // "loose" or "gogit"
	Resolve ResolveConfig `json:"resolve" toml:"resolve"`
	Graph   GraphConfig   `json:"graph" toml:"graph"`
	Filters FilterConfig  `json:"filters" toml:"filters"`
}

// ResolveConfig controls how tree snapshots are searched.
type ResolveConfig struct {
	MaxDepth  int    `json:"maxDepth" toml:"maxDepth"`   // Default: 256
	MatchMode string `json:"matchMode" toml:"matchMode"` // "basename" or "path"
	CacheSize int    `json:"cacheSize" toml:"cacheSize"` // Parsed trees kept in memory; negative disables
}

// GraphConfig holds rendering options.
type GraphConfig struct {
	MaxLabelFiles int    `json:"maxLabelFiles" toml:"maxLabelFiles"` // Default: 10
	NodeShape     string `json:"nodeShape" toml:"nodeShape"`         // Default: "box"
	FontSize      int    `json:"fontSize" toml:"fontSize"`           // Default: 10
}

// FilterConfig holds file path filtering options for node labels.
type FilterConfig struct {
	Include []string `json:"include" toml:"include"`
	Exclude []string `json:"exclude" toml:"exclude"`
}

// Default file names searched when no path is given.
var defaultFileNames = []string{".gitdepgraph.json", ".gitdepgraph.toml"}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Backend: "loose",
		Resolve: ResolveConfig{
			MaxDepth:  256,
			MatchMode: "basename",
			CacheSize: 4096,
		},
		Graph: GraphConfig{
			MaxLabelFiles: 10,
			NodeShape:     "box",
			FontSize:      10,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// Validate checks values that cannot be corrected by falling back to a default.
func (c *Config) Validate() error {
	switch c.Backend {
	case "", "loose", "gogit":
	default:
		return fmt.Errorf("backend must be loose or gogit, got %q", c.Backend)
	}
	switch c.Resolve.MatchMode {
	case "", "basename", "path":
	default:
		return fmt.Errorf("resolve.matchMode must be basename or path, got %q", c.Resolve.MatchMode)
	}
	if c.Resolve.MaxDepth < 0 {
		return fmt.Errorf("resolve.maxDepth must not be negative, got %d", c.Resolve.MaxDepth)
	}
	if c.Graph.FontSize < 0 {
		return fmt.Errorf("graph.fontSize must not be negative, got %d", c.Graph.FontSize)
	}
	return nil
}

// LoadConfig loads configuration from a file, merging with defaults.
// Files ending in .toml are decoded as TOML, anything else as JSON.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findDefaultConfig()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func findDefaultConfig() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, dir := range dirs {
		for _, name := range defaultFileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

// SaveConfig saves configuration to a file in the format implied by its extension.
func SaveConfig(cfg *Config, path string) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

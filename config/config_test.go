package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend != "loose" {
		t.Errorf("Backend = %q, expected loose", cfg.Backend)
	}
	if cfg.Resolve.MaxDepth != 256 {
		t.Errorf("Resolve.MaxDepth = %d, expected 256", cfg.Resolve.MaxDepth)
	}
	if cfg.Resolve.MatchMode != "basename" {
		t.Errorf("Resolve.MatchMode = %q, expected basename", cfg.Resolve.MatchMode)
	}
	if cfg.Resolve.CacheSize != 4096 {
		t.Errorf("Resolve.CacheSize = %d, expected 4096", cfg.Resolve.CacheSize)
	}
	if cfg.Graph.MaxLabelFiles != 10 {
		t.Errorf("Graph.MaxLabelFiles = %d, expected 10", cfg.Graph.MaxLabelFiles)
	}
	if cfg.Graph.NodeShape != "box" {
		t.Errorf("Graph.NodeShape = %q, expected box", cfg.Graph.NodeShape)
	}
	if cfg.Graph.FontSize != 10 {
		t.Errorf("Graph.FontSize = %d, expected 10", cfg.Graph.FontSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadConfig_JSONMergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	content := `{"backend": "gogit", "resolve": {"matchMode": "path"}, "filters": {"exclude": ["vendor/**"]}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend != "gogit" {
		t.Errorf("Backend = %q, expected gogit", cfg.Backend)
	}
	if cfg.Resolve.MatchMode != "path" {
		t.Errorf("Resolve.MatchMode = %q, expected path", cfg.Resolve.MatchMode)
	}
	if cfg.Resolve.MaxDepth != 256 {
		t.Errorf("Resolve.MaxDepth = %d, expected default 256", cfg.Resolve.MaxDepth)
	}
	if diff := cmp.Diff([]string{"vendor/**"}, cfg.Filters.Exclude); diff != "" {
		t.Errorf("Filters.Exclude mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.toml")
	content := `
backend = "gogit"

[resolve]
maxDepth = 32

[graph]
maxLabelFiles = 3
nodeShape = "ellipse"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := DefaultConfig()
	want.Backend = "gogit"
	want.Resolve.MaxDepth = 32
	want.Graph.MaxLabelFiles = 3
	want.Graph.NodeShape = "ellipse"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("TOML config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "Bad JSON", file: "cfg.json", content: `{"backend":`},
		{name: "Bad TOML", file: "cfg.toml", content: `backend = `},
		{name: "Unknown backend", file: "cfg.json", content: `{"backend": "svn"}`},
		{name: "Unknown match mode", file: "cfg.toml", content: "[resolve]\nmatchMode = \"glob\"\n"},
		{name: "Negative depth", file: "cfg.json", content: `{"resolve": {"maxDepth": -1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatalf("LoadConfig(%s) expected error", tt.content)
			}
		})
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_DefaultLocationInHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if err := os.WriteFile(filepath.Join(home, ".gitdepgraph.toml"), []byte("backend = \"gogit\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend != "gogit" {
		t.Errorf("Backend = %q, expected gogit from home config", cfg.Backend)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	for _, name := range []string{"cfg.json", "cfg.toml"} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Backend = "gogit"
			cfg.Filters.Include = []string{"src/**"}

			path := filepath.Join(t.TempDir(), name)
			if err := SaveConfig(cfg, path); err != nil {
				t.Fatalf("SaveConfig: %v", err)
			}
			loaded, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if diff := cmp.Diff(cfg, loaded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

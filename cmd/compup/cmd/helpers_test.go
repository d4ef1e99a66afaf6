package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileYieldsEmptySet(t *testing.T) {
	orig := configPath
	defer func() { configPath = orig }()

	configPath = filepath.Join(t.TempDir(), "nope.json")
	cfg := loadConfig()
	if len(cfg.Components) != 0 {
		t.Errorf("components = %d, want empty set for missing config", len(cfg.Components))
	}
}

func TestLoadConfigValidFile(t *testing.T) {
	orig := configPath
	defer func() { configPath = orig }()

	dir := t.TempDir()
	configPath = filepath.Join(dir, "components_config.json")
	content := `{"card": {"source_url": "owner/repo", "files": [{"source": "a.js", "destination": "a.js"}]}}`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := loadConfig()
	if len(cfg.Components) != 1 {
		t.Fatalf("components = %d, want 1", len(cfg.Components))
	}
}

func TestComponentRootIsConfigDir(t *testing.T) {
	orig := configPath
	defer func() { configPath = orig }()

	dir := t.TempDir()
	configPath = filepath.Join(dir, "components_config.json")

	root, err := componentRoot()
	if err != nil {
		t.Fatalf("componentRoot: %v", err)
	}
	if root != dir {
		t.Errorf("root = %q, want %q", root, dir)
	}
}

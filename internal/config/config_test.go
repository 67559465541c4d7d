package config

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEnsureConfigExistsWritesDefaults(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	if err := EnsureConfigExists(home); err != nil {
		t.Fatalf("EnsureConfigExists returned error: %v", err)
	}

	data, err := os.ReadFile(StaticPath(home))
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("failed to unmarshal config: %v", err)
	}

	if cfg.Editor != "vim" {
		t.Fatalf("expected default editor vim, got %q", cfg.Editor)
	}
	if cfg.DefaultSort != "modified" {
		t.Fatalf("expected default sort modified, got %q", cfg.DefaultSort)
	}
	if len(cfg.Search.IgnoredFolders) == 0 {
		t.Fatalf("expected default ignored folders")
	}
}

func TestEnsureConfigExistsKeepsExistingFile(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	if err := EnsureConfigExists(home); err != nil {
		t.Fatalf("EnsureConfigExists returned error: %v", err)
	}

	custom := []byte("vaultdir: /notes\neditor: hx\n")
	if err := os.WriteFile(StaticPath(home), custom, 0o644); err != nil {
		t.Fatalf("failed to overwrite config: %v", err)
	}

	if err := EnsureConfigExists(home); err != nil {
		t.Fatalf("EnsureConfigExists returned error: %v", err)
	}

	data, err := os.ReadFile(StaticPath(home))
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if string(data) != string(custom) {
		t.Fatalf("expected existing config untouched, got %q", data)
	}
}

func TestSaveRoundTrips(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	cfg := &Config{
		VaultDir:    "/somewhere/vault",
		Editor:      "nvim",
		EditorArgs:  "+norm G",
		DefaultSort: "size",
		Search:      SearchConfig{IgnoredFolders: []string{"archive"}},
		path:        StaticPath(home),
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, err := os.ReadFile(StaticPath(home))
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}

	var got Config
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to unmarshal config: %v", err)
	}

	if got.VaultDir != cfg.VaultDir || got.Editor != cfg.Editor || got.DefaultSort != cfg.DefaultSort {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Search.IgnoredFolders) != 1 || got.Search.IgnoredFolders[0] != "archive" {
		t.Fatalf("expected ignored folders preserved, got %v", got.Search.IgnoredFolders)
	}
}

func TestSaveWithoutPathFails(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	if err := cfg.Save(); err == nil {
		t.Fatalf("expected error saving config without a path")
	}
}

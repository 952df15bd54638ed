package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "" {
		t.Fatalf("APIBaseURL = %q, want empty (client default)", cfg.APIBaseURL)
	}
	if cfg.OutputDir != defaultOutputDir {
		t.Fatalf("OutputDir = %q, want %q", cfg.OutputDir, defaultOutputDir)
	}
	if cfg.DownloadTimeout != defaultDownloadTimeout {
		t.Fatalf("DownloadTimeout = %v, want %v", cfg.DownloadTimeout, defaultDownloadTimeout)
	}
}

func TestLoad_ParsesAndExpandsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base_url = "  https://filmlab.test/api/v1  "
output_dir = "~/renders"
cache_dir = "~/.cache/darkroom-test"
download_timeout_seconds = 30
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "https://filmlab.test/api/v1" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.OutputDir != filepath.Join(home, "renders") {
		t.Fatalf("OutputDir = %q, want under HOME", cfg.OutputDir)
	}
	if cfg.CacheDir != filepath.Join(home, ".cache", "darkroom-test") {
		t.Fatalf("CacheDir = %q, want under HOME", cfg.CacheDir)
	}
	if cfg.DownloadTimeout != 30*time.Second {
		t.Fatalf("DownloadTimeout = %v, want 30s", cfg.DownloadTimeout)
	}
}

func TestLoad_MalformedConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_base_url = [broken"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load accepted a malformed config")
	}
}

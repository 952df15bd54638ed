// Package config loads the darkroom configuration file.
// Configuration lives in ~/.config/darkroom/config.toml; every field has a
// working default so the file is optional.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields darkroom reads from its config file.
type Config struct {
	APIBaseURL      string
	OutputDir       string
	CacheDir        string
	DownloadTimeout time.Duration
}

const (
	defaultConfigPath      = "~/.config/darkroom/config.toml"
	defaultOutputDir       = "darkroom-output-images"
	defaultDownloadTimeout = 120 * time.Second
)

// Load locates and parses the config, falling back to defaults when the file
// is missing. An empty APIBaseURL means the client's production default; an
// empty CacheDir means the user cache directory.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		OutputDir:       defaultOutputDir,
		DownloadTimeout: defaultDownloadTimeout,
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL             string `toml:"api_base_url"`
		OutputDir              string `toml:"output_dir"`
		CacheDir               string `toml:"cache_dir"`
		DownloadTimeoutSeconds int    `toml:"download_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimSpace(raw.APIBaseURL)

	if dir := strings.TrimSpace(raw.OutputDir); dir != "" {
		cfg.OutputDir = mustExpand(dir)
	}
	if dir := strings.TrimSpace(raw.CacheDir); dir != "" {
		cfg.CacheDir = mustExpand(dir)
	}
	if raw.DownloadTimeoutSeconds > 0 {
		cfg.DownloadTimeout = time.Duration(raw.DownloadTimeoutSeconds) * time.Second
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mvw/internal/config"
)

func TestLoadDefaultsUseEnvKeyAndExpandPaths(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "env-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "mvw")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.PosterDir != filepath.Join(tempHome, ".cache", "mvw", "posters") {
		t.Fatalf("unexpected poster dir: %q", cfg.Paths.PosterDir)
	}
	if cfg.OMDb.APIKey != "env-key" {
		t.Fatalf("expected OMDb key from env, got %q", cfg.OMDb.APIKey)
	}
	if cfg.OMDb.BaseURL != config.Default().OMDb.BaseURL {
		t.Fatalf("unexpected OMDb base url: %q", cfg.OMDb.BaseURL)
	}
	if cfg.OMDb.Plot != "short" {
		t.Fatalf("expected short plot default, got %q", cfg.OMDb.Plot)
	}
	if cfg.UI.PosterWidth != 30 {
		t.Fatalf("unexpected poster width: %d", cfg.UI.PosterWidth)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "library.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
}

func TestLoadParsesFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := strings.Join([]string{
		`[omdb]`,
		`api_key = "file-key"`,
		`plot = "FULL"`,
		`[reviewer]`,
		`name = "  Sam  "`,
		`[paths]`,
		`data_dir = "` + filepath.ToSlash(filepath.Join(dir, "data")) + `"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be used, got %q exists=%v", path, resolved, exists)
	}
	if cfg.OMDb.APIKey != "file-key" {
		t.Fatalf("unexpected api key: %q", cfg.OMDb.APIKey)
	}
	if cfg.OMDb.Plot != "full" {
		t.Fatalf("expected plot normalized to full, got %q", cfg.OMDb.Plot)
	}
	if cfg.Reviewer.Name != "Sam" {
		t.Fatalf("expected reviewer name trimmed, got %q", cfg.Reviewer.Name)
	}
	if cfg.Paths.DataDir != filepath.Join(dir, "data") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name     string
		contents string
	}{
		{"bad plot", "[omdb]\nplot = \"medium\"\n"},
		{"bad timeout", "[omdb]\nrequest_timeout = -1\n"},
		{"bad poster width", "[ui]\nposter_width = 0\n"},
		{"bad log format", "[logging]\nformat = \"xml\"\n"},
		{"bad log level", "[logging]\nlevel = \"verbose\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.contents), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRequireAPIKey(t *testing.T) {
	cfg := config.Default()
	if err := cfg.RequireAPIKey(); err == nil {
		t.Fatal("expected error when key missing")
	}
	cfg.OMDb.APIKey = "abc123"
	if err := cfg.RequireAPIKey(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample config to load, exists=%v err=%v", exists, err)
	}
}

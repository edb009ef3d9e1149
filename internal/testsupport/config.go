package testsupport

import (
	"path/filepath"
	"testing"

	"mvw/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.OMDb.APIKey = "test"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.PosterDir = filepath.Join(base, "posters")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithOMDbKey sets the OMDb API key on the test config.
func WithOMDbKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.OMDb.APIKey = key
	}
}

// WithOMDbBaseURL points the catalog client at a test server.
func WithOMDbBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.OMDb.BaseURL = url
	}
}

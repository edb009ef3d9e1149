package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Update edits the configuration file at path in place. The file is parsed
// without normalization so stored values (including ~ paths) survive the
// round trip; a missing file starts from the defaults. The mutated config
// is validated before anything is written.
func Update(path string, mutate func(*Config)) error {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Start from defaults.
	default:
		return fmt.Errorf("read config: %w", err)
	}

	mutate(&cfg)

	check := cfg
	if err := check.normalize(); err != nil {
		return err
	}
	if err := check.Validate(); err != nil {
		return err
	}

	encoded, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

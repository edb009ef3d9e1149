package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOMDb(); err != nil {
		return err
	}
	if err := c.validateUI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOMDb() error {
	if c.OMDb.Plot != "short" && c.OMDb.Plot != "full" {
		return fmt.Errorf("omdb.plot must be %q or %q", "short", "full")
	}
	if c.OMDb.RequestTimeout <= 0 {
		return errors.New("omdb.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateUI() error {
	if c.UI.PosterWidth <= 0 {
		return errors.New("ui.poster_width must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be %q or %q", "console", "json")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logging.level must be one of debug, info, warn, error")
	}
	return nil
}

// RequireAPIKey returns an error directing the user to configure an OMDb key.
// Commands that talk to the catalog call this before constructing a client.
func (c *Config) RequireAPIKey() error {
	if c.OMDb.APIKey != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/mvw/config.toml"
	}
	return fmt.Errorf("omdb.api_key is required. Set OMDB_API_KEY or edit %s (create with 'mvw config init'); free keys at https://www.omdbapi.com/apikey.aspx", defaultPath)
}

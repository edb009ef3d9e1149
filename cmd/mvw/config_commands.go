package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mvw/internal/config"
	"mvw/internal/omdb"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mvw configuration",
	}

	cmd.AddCommand(newConfigInitCommand(ctx))
	cmd.AddCommand(newConfigShowCommand(ctx))
	cmd.AddCommand(newConfigSetKeyCommand(ctx))
	cmd.AddCommand(newConfigSetNameCommand(ctx))

	return cmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, exists, err := ctx.configPath()
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample config to %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Set your OMDb API key with `mvw config set-key <key>` or the OMDB_API_KEY environment variable.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, exists, err := ctx.configPath()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "Config file: %s\n", path)
			} else {
				fmt.Fprintf(out, "Config file: %s (not found, using defaults)\n", path)
			}

			rows := [][]string{
				{"paths.data_dir", cfg.Paths.DataDir},
				{"paths.poster_dir", cfg.Paths.PosterDir},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"omdb.api_key", maskKey(cfg.OMDb.APIKey)},
				{"omdb.base_url", cfg.OMDb.BaseURL},
				{"omdb.plot", cfg.OMDb.Plot},
				{"omdb.request_timeout", strconv.Itoa(cfg.OMDb.RequestTimeout)},
				{"reviewer.name", cfg.Reviewer.Name},
				{"ui.poster_width", strconv.Itoa(cfg.UI.PosterWidth)},
				{"ui.color", strconv.FormatBool(cfg.UI.Color)},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, nil))
			return nil
		},
	}
}

func newConfigSetKeyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <api-key>",
		Short: "Validate and store an OMDb API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			key := strings.TrimSpace(args[0])
			if key == "" {
				return fmt.Errorf("api key must not be empty")
			}

			checkCtx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.OMDb.RequestTimeout)*time.Second)
			defer cancel()
			ok, err := omdb.ValidateKey(checkCtx, key, cfg.OMDb.BaseURL)
			if err != nil {
				return fmt.Errorf("check api key against OMDb: %w", err)
			}
			if !ok {
				return fmt.Errorf("OMDb rejected the api key")
			}

			path, _, err := ctx.configPath()
			if err != nil {
				return err
			}
			if err := config.Update(path, func(c *config.Config) {
				c.OMDb.APIKey = key
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key saved to %s\n", path)
			return nil
		},
	}
}

func newConfigSetNameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-name <name>",
		Short: "Set the reviewer name shown on rendered reviews",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return fmt.Errorf("name must not be empty")
			}
			path, _, err := ctx.configPath()
			if err != nil {
				return err
			}
			if err := config.Update(path, func(c *config.Config) {
				c.Reviewer.Name = name
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reviewer name saved to %s\n", path)
			return nil
		},
	}
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

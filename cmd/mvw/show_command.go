package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var imdbID string

	cmd := &cobra.Command{
		Use:   "show [title]",
		Short: "Show a stored review",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			title := strings.TrimSpace(strings.Join(args, " "))
			id := strings.TrimSpace(imdbID)
			if title == "" && id == "" {
				return fmt.Errorf("a title argument or --id is required")
			}

			store, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			defer store.Close()

			movie, err := store.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if movie == nil && title != "" {
				movie, err = store.GetByTitle(cmd.Context(), title)
				if err != nil {
					return err
				}
			}
			if movie == nil {
				what := title
				if what == "" {
					what = id
				}
				return fmt.Errorf("no stored review for %q", what)
			}

			out := cmd.OutOrStdout()
			renderMovieDetails(out, movie, cfg.Reviewer.Name, shouldColorize(out, cfg.UI.Color))
			return nil
		},
	}

	cmd.Flags().StringVar(&imdbID, "id", "", "Look up by IMDb id instead of title")
	return cmd
}

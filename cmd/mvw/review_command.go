package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mvw/internal/library"
	"mvw/internal/omdb"
	"mvw/internal/posters"
	"mvw/internal/review"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var imdbID string

	cmd := &cobra.Command{
		Use:   "review [title]",
		Short: "Review a movie (or edit an existing review)",
		Long: strings.TrimSpace(`
Review a movie. A title already in your library is edited in place; a new
title is fetched from OMDb first. When two films share a title, pass
--id with the IMDb identifier to pick the right one.`),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(cmd, ctx, args, imdbID)
		},
	}

	cmd.Flags().StringVar(&imdbID, "id", "", "Review by IMDb id instead of title")
	return cmd
}

func runReview(cmd *cobra.Command, ctx *commandContext, args []string, imdbID string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	title := review.CanonicalTitle(strings.Join(args, " "))
	imdbID = strings.TrimSpace(imdbID)
	if title == "" && imdbID == "" {
		return errors.New("a title argument or --id is required")
	}

	store, err := ctx.openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	catalog, err := omdb.New(cfg.OMDb.APIKey, cfg.OMDb.BaseURL, omdb.WithPlot(cfg.OMDb.Plot))
	if err != nil {
		return fmt.Errorf("build catalog client: %w", err)
	}
	posterCache, err := posters.New(cfg.Paths.PosterDir)
	if err != nil {
		return fmt.Errorf("build poster cache: %w", err)
	}

	prompter := newTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	session, err := review.NewSession(store, catalog, posterCache, prompter, logger)
	if err != nil {
		return err
	}

	runCtx := cmd.Context()
	var outcome review.Outcome
	if imdbID != "" {
		outcome, err = session.RunByID(runCtx, imdbID)
	} else {
		outcome, err = session.Run(runCtx, title)
	}
	if err != nil {
		if errors.Is(err, omdb.ErrNotFound) {
			return fmt.Errorf("no catalog match for %q; try `mvw review --id <imdbid>` or check the spelling", title)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if outcome == review.OutcomeAborted {
		fmt.Fprintln(out, "Review aborted, nothing saved")
		return nil
	}

	// Show what was just saved. The catalog may spell the title differently
	// than the user typed it, so fall back to the freshest row.
	movie, getErr := store.GetByID(runCtx, imdbID)
	if getErr == nil && movie == nil && title != "" {
		movie, getErr = store.GetByTitle(runCtx, title)
	}
	if getErr == nil && movie == nil {
		if all, allErr := store.GetAll(runCtx); allErr == nil {
			movie = mostRecentlyReviewed(all)
		}
	}
	if movie != nil {
		fmt.Fprintln(out)
		renderMovieDetails(out, movie, cfg.Reviewer.Name, shouldColorize(out, cfg.UI.Color))
	}
	return nil
}

func mostRecentlyReviewed(movies []*library.Movie) *library.Movie {
	var latest *library.Movie
	for _, movie := range movies {
		if latest == nil || movie.ReviewedAt.After(latest.ReviewedAt) {
			latest = movie
		}
	}
	return latest
}

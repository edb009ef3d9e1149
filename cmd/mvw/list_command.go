package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"mvw/internal/library"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every reviewed movie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			defer store.Close()

			movies, err := store.GetAll(cmd.Context())
			if err != nil {
				return err
			}

			// Storage order carries no meaning; present newest review first.
			sort.SliceStable(movies, func(i, j int) bool {
				return movies[i].ReviewedAt.After(movies[j].ReviewedAt)
			})

			if jsonOutput {
				return writeJSON(cmd, movies)
			}

			out := cmd.OutOrStdout()
			if len(movies) == 0 {
				fmt.Fprintln(out, "No reviews yet. Try `mvw review <title>`.")
				return nil
			}

			rows := make([][]string, 0, len(movies))
			for _, movie := range movies {
				rows = append(rows, []string{
					movie.Title,
					movie.Year,
					starGlyphs(movie.Star),
					movie.Director,
					reviewedOn(movie),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Title", "Year", "Stars", "Director", "Reviewed"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the library as JSON")
	return cmd
}

func reviewedOn(movie *library.Movie) string {
	if movie.ReviewedAt.IsZero() {
		return ""
	}
	return movie.ReviewedAt.Local().Format("2006-01-02")
}

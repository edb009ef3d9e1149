package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"mvw/internal/library"
)

const (
	starFull  = "★"
	starHalf  = "⯪"
	starEmpty = "☆"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
	ansiDim    = "\x1b[2m"
)

// starGlyphs renders a rating as five glyphs, rounding to the nearest half
// star for display. The stored value keeps its full precision.
func starGlyphs(star float64) string {
	clamped := math.Min(math.Max(star, library.MinStar), library.MaxStar)
	halves := int(math.Round(clamped * 2))

	var b strings.Builder
	for i := 0; i < 5; i++ {
		switch {
		case halves >= 2:
			b.WriteString(starFull)
			halves -= 2
		case halves == 1:
			b.WriteString(starHalf)
			halves = 0
		default:
			b.WriteString(starEmpty)
		}
	}
	return b.String()
}

// shouldColorize reports whether out is a terminal that can take ANSI codes.
func shouldColorize(out io.Writer, enabled bool) bool {
	if !enabled {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func colorize(text, color string, enabled bool) string {
	if !enabled || color == "" {
		return text
	}
	return color + text + ansiReset
}

// renderMovieDetails writes the full record the way `mvw show` presents it.
func renderMovieDetails(out io.Writer, movie *library.Movie, reviewerName string, color bool) {
	title := movie.Title
	if movie.Year != "" {
		title = fmt.Sprintf("%s (%s)", movie.Title, movie.Year)
	}
	fmt.Fprintln(out, colorize(title, ansiGreen, color))
	fmt.Fprintf(out, "%s  %.1f/5\n", colorize(starGlyphs(movie.Star), ansiYellow, color), movie.Star)
	fmt.Fprintln(out)

	rows := [][]string{
		{"IMDb ID", movie.ImdbID},
		{"Rated", movie.Rated},
		{"Released", movie.Released},
		{"Runtime", movie.Runtime},
		{"Genre", movie.Genre},
		{"Director", movie.Director},
		{"Writer", movie.Writer},
		{"Cast", movie.Actors},
		{"Language", movie.Language},
		{"Country", movie.Country},
		{"Awards", movie.Awards},
		{"Metascore", movie.Metascore},
		{"IMDb rating", formatRating(movie.ImdbRating, movie.ImdbVotes)},
		{"Box office", movie.BoxOffice},
	}
	filtered := make([][]string, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row[1]) != "" {
			filtered = append(filtered, row)
		}
	}
	fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, filtered, nil))

	if movie.Plot != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, movie.Plot)
	}

	if movie.Review != "" {
		fmt.Fprintln(out)
		heading := "Review"
		if reviewerName != "" {
			heading = fmt.Sprintf("Review by %s", reviewerName)
		}
		if !movie.ReviewedAt.IsZero() {
			heading += movie.ReviewedAt.Local().Format(" (2006-01-02)")
		}
		fmt.Fprintln(out, colorize(heading, ansiDim, color))
		fmt.Fprintln(out, movie.Review)
	}
}

func formatRating(rating float64, votes string) string {
	if rating == 0 {
		return ""
	}
	if votes == "" {
		return fmt.Sprintf("%.1f", rating)
	}
	return fmt.Sprintf("%.1f (%s votes)", rating, votes)
}

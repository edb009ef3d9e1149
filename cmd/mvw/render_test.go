package main

import (
	"strings"
	"testing"
	"time"

	"mvw/internal/testsupport"
)

func TestStarGlyphs(t *testing.T) {
	tests := []struct {
		star float64
		want string
	}{
		{0, "☆☆☆☆☆"},
		{0.5, "⯪☆☆☆☆"},
		{2.5, "★★⯪☆☆"},
		{3, "★★★☆☆"},
		{4.7, "★★★★⯪"},
		{5, "★★★★★"},
		{-1, "☆☆☆☆☆"},
		{9, "★★★★★"},
	}
	for _, tt := range tests {
		if got := starGlyphs(tt.star); got != tt.want {
			t.Errorf("starGlyphs(%v) = %q, want %q", tt.star, got, tt.want)
		}
	}
}

func TestRenderMovieDetails(t *testing.T) {
	movie := testsupport.SampleMovie("tt0816692", "Interstellar")
	stored := &movie
	stored.Star = 4.5
	stored.Review = "Holds up on every rewatch."
	stored.ReviewedAt = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	var b strings.Builder
	renderMovieDetails(&b, stored, "Sam", false)
	out := b.String()

	for _, want := range []string{
		"Interstellar (2014)",
		"★★★★⯪",
		"4.5/5",
		"Christopher Nolan",
		"A team of explorers travel through a wormhole in space.",
		"Review by Sam",
		"Holds up on every rewatch.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered details missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Website") {
		t.Errorf("website should not appear in the field table:\n%s", out)
	}
}

func TestRenderMovieDetailsOmitsEmptyFields(t *testing.T) {
	movie := testsupport.SampleMovie("tt0000001", "Bare")
	movie.Awards = ""
	movie.BoxOffice = ""

	var b strings.Builder
	renderMovieDetails(&b, &movie, "", false)
	out := b.String()

	if strings.Contains(out, "Awards") || strings.Contains(out, "Box office") {
		t.Errorf("empty fields should be filtered out:\n%s", out)
	}
	if strings.Contains(out, "Review by") {
		t.Errorf("no review heading expected without review text:\n%s", out)
	}
}

func TestFormatRating(t *testing.T) {
	if got := formatRating(0, "100"); got != "" {
		t.Errorf("zero rating should render empty, got %q", got)
	}
	if got := formatRating(8.7, ""); got != "8.7" {
		t.Errorf("formatRating(8.7, \"\") = %q", got)
	}
	if got := formatRating(8.7, "2,347,543"); got != "8.7 (2,347,543 votes)" {
		t.Errorf("formatRating with votes = %q", got)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, nil)
	if !strings.Contains(out, "only") {
		t.Fatalf("row value missing from table:\n%s", out)
	}
}

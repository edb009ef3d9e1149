package testsupport

import (
	"context"
	"testing"

	"mvw/internal/config"
	"mvw/internal/library"
)

// MustOpenLibrary opens a library.Store for tests and registers cleanup.
func MustOpenLibrary(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SampleMovie returns a fully populated catalog record for tests.
func SampleMovie(imdbID, title string) library.Movie {
	return library.Movie{
		ImdbID:     imdbID,
		Title:      title,
		Year:       "2014",
		Rated:      "PG-13",
		Released:   "07 Nov 2014",
		Runtime:    "169 min",
		Genre:      "Adventure, Drama, Sci-Fi",
		Director:   "Christopher Nolan",
		Writer:     "Jonathan Nolan, Christopher Nolan",
		Actors:     "Matthew McConaughey, Anne Hathaway",
		Plot:       "A team of explorers travel through a wormhole in space.",
		Language:   "English",
		Country:    "United States",
		Awards:     "Won 1 Oscar.",
		PosterLink: "https://images.example.com/" + imdbID + "@._V1_.jpg",
		Metascore:  "74",
		ImdbRating: 8.7,
		ImdbVotes:  "2,347,543",
		Type:       "movie",
		DVD:        "31 Mar 2015",
		BoxOffice:  "$188,020,017",
		Production: "Paramount Pictures",
		Website:    "https://example.com/interstellar",
	}
}

// SeedReview inserts a reviewed movie and returns the stored row.
func SeedReview(t testing.TB, store *library.Store, imdbID, title string, star float64, review string) *library.Movie {
	t.Helper()

	ctx := context.Background()
	if err := store.Upsert(ctx, SampleMovie(imdbID, title), "", star, review); err != nil {
		t.Fatalf("store.Upsert: %v", err)
	}
	movie, err := store.GetByID(ctx, imdbID)
	if err != nil {
		t.Fatalf("store.GetByID: %v", err)
	}
	if movie == nil {
		t.Fatalf("expected seeded movie %s to exist", imdbID)
	}
	return movie
}

package library_test

import (
	"context"
	"errors"
	"testing"

	"mvw/internal/library"
	"mvw/internal/testsupport"
)

func TestUpsertInsertsAndIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	rec := testsupport.SampleMovie("tt0816692", "Interstellar")

	if err := store.Upsert(ctx, rec, "/posters/tt0816692.jpg", 4.0, "Great"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, rec, "/posters/tt0816692.jpg", 4.0, "Great"); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	movies, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(movies))
	}
	got := movies[0]
	if got.ImdbID != "tt0816692" || got.Title != "Interstellar" {
		t.Fatalf("unexpected row: %#v", got)
	}
	if got.Star != 4.0 || got.Review != "Great" {
		t.Fatalf("unexpected local fields: star=%v review=%q", got.Star, got.Review)
	}
	if got.PosterLocalPath != "/posters/tt0816692.jpg" {
		t.Fatalf("unexpected poster path: %q", got.PosterLocalPath)
	}
	if got.Director != rec.Director || got.ImdbRating != rec.ImdbRating {
		t.Fatalf("catalog fields not stored: %#v", got)
	}
}

func TestUpsertReplacesCatalogFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	rec := testsupport.SampleMovie("tt001", "Alpha")
	if err := store.Upsert(ctx, rec, "", 3.0, "ok"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	rec.Year = "1999"
	if err := store.Upsert(ctx, rec, "", 3.0, "ok"); err != nil {
		t.Fatalf("replacing Upsert failed: %v", err)
	}

	movies, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("expected one row after replace, got %d", len(movies))
	}
	if movies[0].Year != "1999" {
		t.Fatalf("expected year replaced, got %q", movies[0].Year)
	}
}

func TestUpdateReviewTouchesOnlyStarAndReview(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	rec := testsupport.SampleMovie("tt001", "Alpha")
	if err := store.Upsert(ctx, rec, "/posters/alpha.jpg", 3.0, "first pass"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	affected, err := store.UpdateReview(ctx, "tt001", 4.5, "second pass")
	if err != nil {
		t.Fatalf("UpdateReview failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected one row affected, got %d", affected)
	}

	got, err := store.GetByID(ctx, "tt001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Star != 4.5 || got.Review != "second pass" {
		t.Fatalf("review not updated: star=%v review=%q", got.Star, got.Review)
	}
	if got.PosterLocalPath != "/posters/alpha.jpg" {
		t.Fatalf("poster path disturbed: %q", got.PosterLocalPath)
	}
	if got.Title != rec.Title || got.Year != rec.Year || got.Director != rec.Director {
		t.Fatalf("catalog fields disturbed: %#v", got)
	}
	if got.ReviewedAt.IsZero() {
		t.Fatal("expected reviewed_at to be set")
	}
}

func TestUpdateReviewMissingRowAffectsNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	affected, err := store.UpdateReview(context.Background(), "tt999", 3.0, "ghost")
	if err != nil {
		t.Fatalf("UpdateReview failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected zero rows affected, got %d", affected)
	}
}

func TestStarRangeEnforced(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	testsupport.SeedReview(t, store, "tt001", "Alpha", 3.0, "ok")

	for _, star := range []float64{-0.1, 5.1} {
		if _, err := store.UpdateReview(ctx, "tt001", star, "x"); !errors.Is(err, library.ErrInvalidInput) {
			t.Fatalf("star %v: expected ErrInvalidInput, got %v", star, err)
		}
		if err := store.Upsert(ctx, testsupport.SampleMovie("tt001", "Alpha"), "", star, "x"); !errors.Is(err, library.ErrInvalidInput) {
			t.Fatalf("star %v: expected ErrInvalidInput from Upsert, got %v", star, err)
		}
	}

	got, err := store.GetByID(ctx, "tt001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Star != 3.0 || got.Review != "ok" {
		t.Fatalf("rejected writes changed the row: %#v", got)
	}
}

func TestStarRangeBoundsAccepted(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	if err := store.Upsert(ctx, testsupport.SampleMovie("tt001", "Alpha"), "", 0.0, ""); err != nil {
		t.Fatalf("star 0.0 rejected: %v", err)
	}
	if _, err := store.UpdateReview(ctx, "tt001", 5.0, "max"); err != nil {
		t.Fatalf("star 5.0 rejected: %v", err)
	}
}

func TestGetByTitleExactMatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	testsupport.SeedReview(t, store, "tt001", "Alpha", 3.0, "")
	testsupport.SeedReview(t, store, "tt002", "Beta", 4.0, "")

	found, err := store.GetByTitle(ctx, "Alpha")
	if err != nil {
		t.Fatalf("GetByTitle failed: %v", err)
	}
	if found == nil || found.ImdbID != "tt001" {
		t.Fatalf("expected tt001, got %#v", found)
	}

	missing, err := store.GetByTitle(ctx, "Gamma")
	if err != nil {
		t.Fatalf("GetByTitle failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected no match for Gamma, got %#v", missing)
	}

	// Case-sensitive as stored.
	lower, err := store.GetByTitle(ctx, "alpha")
	if err != nil {
		t.Fatalf("GetByTitle failed: %v", err)
	}
	if lower != nil {
		t.Fatalf("expected case-sensitive lookup to miss, got %#v", lower)
	}
}

func TestGetByTitleReturnsFirstDuplicate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	testsupport.SeedReview(t, store, "tt001", "Heat", 3.0, "")
	testsupport.SeedReview(t, store, "tt002", "Heat", 4.0, "")

	found, err := store.GetByTitle(ctx, "Heat")
	if err != nil {
		t.Fatalf("GetByTitle failed: %v", err)
	}
	if found == nil || found.ImdbID != "tt001" {
		t.Fatalf("expected first stored row tt001, got %#v", found)
	}
}

func TestRestartDurability(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	ctx := context.Background()
	if err := store.Upsert(ctx, testsupport.SampleMovie("tt001", "Alpha"), "", 4.0, "keeper"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	movies, err := reopened.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(movies) != 1 || movies[0].Star != 4.0 || movies[0].Review != "keeper" {
		t.Fatalf("rows lost across restart: %#v", movies)
	}
}

func TestOpenRejectsSecondHolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := testsupport.MustOpenLibrary(t, cfg)
	_ = first

	if _, err := library.Open(cfg); !errors.Is(err, library.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

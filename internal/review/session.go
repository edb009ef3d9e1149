package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"mvw/internal/library"
)

// Outcome is the terminal state of a review session.
type Outcome string

const (
	// OutcomeDone means a store mutation was committed.
	OutcomeDone Outcome = "done"
	// OutcomeAborted means the session ended without persisting anything.
	OutcomeAborted Outcome = "aborted"
)

// DefaultStar is the rating offered when a movie is reviewed for the first time.
const DefaultStar = 2.5

// ErrAborted is returned by a Prompter when the user cancels the session.
// It is a clean abort, not a failure; nothing has been persisted.
var ErrAborted = errors.New("review aborted")

// Library is the store surface the session drives.
type Library interface {
	GetByTitle(ctx context.Context, title string) (*library.Movie, error)
	GetByID(ctx context.Context, imdbID string) (*library.Movie, error)
	Upsert(ctx context.Context, rec library.Movie, posterLocalPath string, star float64, review string) error
	UpdateReview(ctx context.Context, imdbID string, star float64, review string) (int64, error)
}

// Catalog fetches fresh metadata for movies not yet in the library.
type Catalog interface {
	FetchByTitle(ctx context.Context, title string) (*library.Movie, error)
	FetchByID(ctx context.Context, imdbID, plot string) (*library.Movie, error)
}

// PosterCache resolves a remote poster link to a cached local file.
type PosterCache interface {
	EnsureCached(ctx context.Context, remoteLink string) (string, error)
}

// Prompter collects the user's star rating and review text. Implementations
// return ErrAborted when the user cancels.
type Prompter interface {
	Star(defaultStar float64) (float64, error)
	Review(defaultReview string) (string, error)
}

// Session decides whether a title is a first-time review or an edit of an
// existing one, and drives the library accordingly. All collaborators are
// supplied at construction; the session holds no global state.
type Session struct {
	library  Library
	catalog  Catalog
	posters  PosterCache
	prompter Prompter
	logger   *slog.Logger
}

// NewSession wires a session from its collaborators.
func NewSession(lib Library, catalog Catalog, posters PosterCache, prompter Prompter, logger *slog.Logger) (*Session, error) {
	if lib == nil {
		return nil, errors.New("library is required")
	}
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if posters == nil {
		return nil, errors.New("poster cache is required")
	}
	if prompter == nil {
		return nil, errors.New("prompter is required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		library:  lib,
		catalog:  catalog,
		posters:  posters,
		prompter: prompter,
		logger:   logger.With("session_id", uuid.NewString()),
	}, nil
}

// Run reviews the movie with the given title. A title already in the
// library is edited in place without re-fetching catalog data; anything
// else triggers a catalog fetch followed by a first review.
//
// Two catalog entries can share a title. When the library already holds a
// row for the title, that stored row always wins: Run never fetches, so it
// can never merge two distinct IMDb ids. Reviewing the other film with the
// same name requires RunByID.
func (s *Session) Run(ctx context.Context, title string) (Outcome, error) {
	existing, err := s.library.GetByTitle(ctx, title)
	if err != nil {
		return OutcomeAborted, fmt.Errorf("look up %q: %w", title, err)
	}
	if existing != nil {
		return s.edit(ctx, existing)
	}

	s.logger.Info("fetching catalog metadata", "title", title)
	movie, err := s.catalog.FetchByTitle(ctx, title)
	if err != nil {
		return OutcomeAborted, fmt.Errorf("fetch %q: %w", title, err)
	}
	return s.firstReview(ctx, movie)
}

// RunByID reviews a movie by IMDb id, bypassing the title heuristic. An id
// already in the library is edited; otherwise the catalog record is fetched
// by id for a first review.
func (s *Session) RunByID(ctx context.Context, imdbID string) (Outcome, error) {
	existing, err := s.library.GetByID(ctx, imdbID)
	if err != nil {
		return OutcomeAborted, fmt.Errorf("look up %s: %w", imdbID, err)
	}
	if existing != nil {
		return s.edit(ctx, existing)
	}

	s.logger.Info("fetching catalog metadata", "imdb_id", imdbID)
	movie, err := s.catalog.FetchByID(ctx, imdbID, "")
	if err != nil {
		return OutcomeAborted, fmt.Errorf("fetch %s: %w", imdbID, err)
	}
	return s.firstReview(ctx, movie)
}

func (s *Session) edit(ctx context.Context, existing *library.Movie) (Outcome, error) {
	s.logger.Info("editing existing review", "imdb_id", existing.ImdbID, "title", existing.Title)

	star, err := s.prompter.Star(existing.Star)
	if err != nil {
		return abortOutcome(err)
	}
	text, err := s.prompter.Review(existing.Review)
	if err != nil {
		return abortOutcome(err)
	}

	affected, err := s.library.UpdateReview(ctx, existing.ImdbID, star, text)
	if err != nil {
		return OutcomeAborted, fmt.Errorf("update review for %s: %w", existing.ImdbID, err)
	}
	if affected == 0 {
		return OutcomeAborted, fmt.Errorf("update review for %s: no row updated", existing.ImdbID)
	}
	s.logger.Info("review updated", "imdb_id", existing.ImdbID, "star", star)
	return OutcomeDone, nil
}

func (s *Session) firstReview(ctx context.Context, movie *library.Movie) (Outcome, error) {
	if movie == nil {
		return OutcomeAborted, errors.New("catalog returned no record")
	}
	s.logger.Info("starting first review", "imdb_id", movie.ImdbID, "title", movie.Title)

	posterPath := ""
	if movie.PosterLink != "" {
		path, err := s.posters.EnsureCached(ctx, movie.PosterLink)
		if err != nil {
			// A missing poster should not block the review itself.
			s.logger.Warn("poster caching failed", "imdb_id", movie.ImdbID, "error", err)
		} else {
			posterPath = path
		}
	}

	star, err := s.prompter.Star(DefaultStar)
	if err != nil {
		return abortOutcome(err)
	}
	text, err := s.prompter.Review("")
	if err != nil {
		return abortOutcome(err)
	}

	if err := s.library.Upsert(ctx, *movie, posterPath, star, text); err != nil {
		return OutcomeAborted, fmt.Errorf("store review for %s: %w", movie.ImdbID, err)
	}
	s.logger.Info("review stored", "imdb_id", movie.ImdbID, "star", star)
	return OutcomeDone, nil
}

func abortOutcome(err error) (Outcome, error) {
	if errors.Is(err, ErrAborted) {
		return OutcomeAborted, nil
	}
	return OutcomeAborted, err
}

package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"mvw/internal/config"
)

// Store manages the review library backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock

	closeOnce sync.Once
	closeErr  error
}

// Open initializes or connects to the library database and ensures the
// schema exists. It also acquires an advisory lock file next to the
// database; a second process opening the same library fails with ErrLocked.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lock.Path())
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close releases the database connection and the lock file. Safe to call
// multiple times; only the first call does the work.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
		if s.lock != nil {
			if unlockErr := s.lock.Unlock(); unlockErr != nil && s.closeErr == nil {
				s.closeErr = unlockErr
			}
		}
	})
	return s.closeErr
}

// Path returns the location of the backing database file.
func (s *Store) Path() string {
	return s.path
}

// Upsert inserts the movie, or replaces every column when a row for the
// same IMDb id already exists. The catalog record and the three locally
// owned fields are written together; callers re-fetching catalog data must
// pass the existing star/review through or they will be overwritten.
func (s *Store) Upsert(ctx context.Context, rec Movie, posterLocalPath string, star float64, review string) error {
	if err := ValidateStar(star); err != nil {
		return err
	}
	if rec.ImdbID == "" {
		return fmt.Errorf("%w: imdb id is required", ErrInvalidInput)
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	row := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM movies WHERE imdbid = ?`, rec.ImdbID)
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("check existing row: %w", err)
	}

	if exists == 0 {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO movies (`+movieColumns+`)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			movieArgs(rec, posterLocalPath, star, review, now)...,
		)
		if err != nil {
			return fmt.Errorf("insert movie: %w", err)
		}
	} else {
		_, err = tx.ExecContext(
			ctx,
			`UPDATE movies
             SET title = ?, year = ?, rated = ?, released = ?, runtime = ?,
                 genre = ?, director = ?, writer = ?, actors = ?, plot = ?,
                 language = ?, country = ?, awards = ?, poster_link = ?,
                 metascore = ?, imdbrating = ?, imdbvotes = ?, type = ?,
                 dvd = ?, boxoffice = ?, production = ?, website = ?,
                 poster_local_path = ?, star = ?, review = ?, reviewed_at = ?
             WHERE imdbid = ?`,
			append(movieArgs(rec, posterLocalPath, star, review, now)[1:], rec.ImdbID)...,
		)
		if err != nil {
			return fmt.Errorf("replace movie: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

// UpdateReview updates only the star and review columns (plus the
// reviewed-at timestamp) for the given IMDb id. Catalog fields and the
// cached poster path are untouched. The returned count is the number of
// rows affected; zero means no row exists for the id, which the store does
// not treat as an error.
func (s *Store) UpdateReview(ctx context.Context, imdbID string, star float64, review string) (int64, error) {
	if err := ValidateStar(star); err != nil {
		return 0, err
	}
	if imdbID == "" {
		return 0, fmt.Errorf("%w: imdb id is required", ErrInvalidInput)
	}

	res, err := s.db.ExecContext(
		ctx,
		`UPDATE movies SET star = ?, review = ?, reviewed_at = ? WHERE imdbid = ?`,
		star,
		review,
		time.Now().UTC().Format(time.RFC3339Nano),
		imdbID,
	)
	if err != nil {
		return 0, fmt.Errorf("update review: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// GetAll returns every stored movie in storage order. No ordering guarantee
// is made; callers sort client-side when they need one.
func (s *Store) GetAll(ctx context.Context) ([]*Movie, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []*Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

// GetByTitle returns the first stored movie whose title matches exactly
// (case-sensitive, as stored), or nil when none matches. Titles are not
// unique; callers needing disambiguation must key on the IMDb id.
func (s *Store) GetByTitle(ctx context.Context, title string) (*Movie, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE title = ? LIMIT 1`, title)
	movie, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get by title: %w", err)
	}
	return movie, nil
}

// GetByID returns the stored movie for the IMDb id, or nil when absent.
func (s *Store) GetByID(ctx context.Context, imdbID string) (*Movie, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE imdbid = ?`, imdbID)
	movie, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return movie, nil
}

const movieColumns = "imdbid, title, year, rated, released, runtime, genre, director, writer, actors, plot, language, country, awards, poster_link, metascore, imdbrating, imdbvotes, type, dvd, boxoffice, production, website, poster_local_path, star, review, reviewed_at"

func movieArgs(rec Movie, posterLocalPath string, star float64, review string, reviewedAt time.Time) []any {
	return []any{
		rec.ImdbID,
		rec.Title,
		nullableString(rec.Year),
		nullableString(rec.Rated),
		nullableString(rec.Released),
		nullableString(rec.Runtime),
		nullableString(rec.Genre),
		nullableString(rec.Director),
		nullableString(rec.Writer),
		nullableString(rec.Actors),
		nullableString(rec.Plot),
		nullableString(rec.Language),
		nullableString(rec.Country),
		nullableString(rec.Awards),
		nullableString(rec.PosterLink),
		nullableString(rec.Metascore),
		rec.ImdbRating,
		nullableString(rec.ImdbVotes),
		nullableString(rec.Type),
		nullableString(rec.DVD),
		nullableString(rec.BoxOffice),
		nullableString(rec.Production),
		nullableString(rec.Website),
		nullableString(posterLocalPath),
		star,
		review,
		reviewedAt.Format(time.RFC3339Nano),
	}
}

func scanMovie(scanner interface{ Scan(dest ...any) error }) (*Movie, error) {
	var (
		imdbID          string
		title           string
		year            sql.NullString
		rated           sql.NullString
		released        sql.NullString
		runtime         sql.NullString
		genre           sql.NullString
		director        sql.NullString
		writer          sql.NullString
		actors          sql.NullString
		plot            sql.NullString
		language        sql.NullString
		country         sql.NullString
		awards          sql.NullString
		posterLink      sql.NullString
		metascore       sql.NullString
		imdbRating      sql.NullFloat64
		imdbVotes       sql.NullString
		mediaType       sql.NullString
		dvd             sql.NullString
		boxOffice       sql.NullString
		production      sql.NullString
		website         sql.NullString
		posterLocalPath sql.NullString
		star            sql.NullFloat64
		review          sql.NullString
		reviewedRaw     sql.NullString
	)

	if err := scanner.Scan(
		&imdbID,
		&title,
		&year,
		&rated,
		&released,
		&runtime,
		&genre,
		&director,
		&writer,
		&actors,
		&plot,
		&language,
		&country,
		&awards,
		&posterLink,
		&metascore,
		&imdbRating,
		&imdbVotes,
		&mediaType,
		&dvd,
		&boxOffice,
		&production,
		&website,
		&posterLocalPath,
		&star,
		&review,
		&reviewedRaw,
	); err != nil {
		return nil, err
	}

	movie := &Movie{
		ImdbID:          imdbID,
		Title:           title,
		Year:            year.String,
		Rated:           rated.String,
		Released:        released.String,
		Runtime:         runtime.String,
		Genre:           genre.String,
		Director:        director.String,
		Writer:          writer.String,
		Actors:          actors.String,
		Plot:            plot.String,
		Language:        language.String,
		Country:         country.String,
		Awards:          awards.String,
		PosterLink:      posterLink.String,
		Metascore:       metascore.String,
		ImdbRating:      imdbRating.Float64,
		ImdbVotes:       imdbVotes.String,
		Type:            mediaType.String,
		DVD:             dvd.String,
		BoxOffice:       boxOffice.String,
		Production:      production.String,
		Website:         website.String,
		PosterLocalPath: posterLocalPath.String,
		Star:            star.Float64,
		Review:          review.String,
	}

	if reviewedRaw.Valid {
		if reviewed, err := parseTimeString(reviewedRaw.String); err == nil {
			movie.ReviewedAt = reviewed
		}
	}
	return movie, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

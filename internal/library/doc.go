// Package library persists reviewed movies in SQLite.
//
// The Store owns a single movies table keyed by IMDb identifier. Two write
// paths exist: Upsert replaces a whole row after a catalog fetch (the caller
// passes the current local star/review through so a re-fetch never erases a
// prior rating), and UpdateReview touches only the star and review columns.
// Reads are GetAll and an exact-match GetByTitle.
//
// Open takes a lock file next to the database so two mvw processes never
// share the same library file; Close releases both the lock and the
// connection and is safe to call more than once.
package library

// Package omdb talks to the Open Movie Database API.
//
// The client maps the provider's flat JSON payloads onto the fixed
// library.Movie shape; a payload missing its identity fields fails with
// ErrSchemaMismatch instead of producing a record with absent attributes.
// "Movie not found" responses surface as ErrNotFound so callers can
// distinguish them from transport failures.
package omdb

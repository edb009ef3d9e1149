// Package review orchestrates a single interactive review: decide whether
// the movie is already in the library (edit) or needs a catalog fetch
// (first review), collect the user's rating and text, and issue exactly one
// store mutation. The session aborts cleanly, persisting nothing, when the
// catalog has no match or the user cancels at a prompt.
package review

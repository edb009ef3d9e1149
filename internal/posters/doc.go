// Package posters caches movie poster images on local disk, keyed by a
// filename derived from the remote link so repeated reviews of the same
// movie never re-download artwork.
package posters

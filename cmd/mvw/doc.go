// Command mvw is a personal movie review journal. It looks up movie
// metadata on OMDb, asks for a star rating and a short review, and keeps
// everything in a local SQLite library for later browsing and re-editing.
package main

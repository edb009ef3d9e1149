package library

import "time"

// Movie is one row of the review library, keyed by IMDb identifier.
//
// Catalog fields are owned by the OMDb fetch path and are only ever written
// by Upsert. PosterLocalPath, Star, and Review are locally owned; Star and
// Review are the only columns UpdateReview touches.
type Movie struct {
	ImdbID          string    `json:"imdbid"`
	Title           string    `json:"title"`
	Year            string    `json:"year"`
	Rated           string    `json:"rated"`
	Released        string    `json:"released"`
	Runtime         string    `json:"runtime"`
	Genre           string    `json:"genre"`
	Director        string    `json:"director"`
	Writer          string    `json:"writer"`
	Actors          string    `json:"actors"`
	Plot            string    `json:"plot"`
	Language        string    `json:"language"`
	Country         string    `json:"country"`
	Awards          string    `json:"awards"`
	PosterLink      string    `json:"poster_link"`
	Metascore       string    `json:"metascore"`
	ImdbRating      float64   `json:"imdbrating"`
	ImdbVotes       string    `json:"imdbvotes"`
	Type            string    `json:"type"`
	DVD             string    `json:"dvd"`
	BoxOffice       string    `json:"boxoffice"`
	Production      string    `json:"production"`
	Website         string    `json:"website"`
	PosterLocalPath string    `json:"poster_local_path"`
	Star            float64   `json:"star"`
	Review          string    `json:"review"`
	ReviewedAt      time.Time `json:"reviewed_at"`
}

// MinStar and MaxStar bound the accepted star rating range. Display uses
// half-point increments but the stored value is a plain float.
const (
	MinStar = 0.0
	MaxStar = 5.0
)

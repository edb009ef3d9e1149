package library

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks caller mistakes that are rejected before any
// database access, such as star ratings outside the accepted range.
var ErrInvalidInput = errors.New("invalid input")

// ErrLocked indicates another process holds the library lock file.
var ErrLocked = errors.New("library is locked by another process")

// ValidateStar rejects star values outside [MinStar, MaxStar].
func ValidateStar(star float64) error {
	if star < MinStar || star > MaxStar {
		return fmt.Errorf("%w: star %.2f outside [%.1f, %.1f]", ErrInvalidInput, star, MinStar, MaxStar)
	}
	return nil
}

package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// ValidateRating enforces the 1-5 star domain at ingestion boundaries.
// Classification itself accepts any int.
func ValidateRating(stars int) error {
	if stars < 1 || stars > 5 {
		return fmt.Errorf("%w: Rating: must be between 1 and 5, got %d", ErrInvalidInput, stars)
	}
	return nil
}

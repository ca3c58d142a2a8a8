// Package filter decides which games survive a run and how their move
// text is rewritten on the way out.
package filter

import (
	"fmt"

	"github.com/ianrastall/pgnfilter/internal/errors"
)

// Options holds the filter settings for one run. The zero value keeps
// every game unchanged. Options is immutable once handed to an
// Evaluator and may be shared across concurrent runs.
type Options struct {
	// Rating bounds in Elo points. Zero means no bound.
	MinRating int
	MaxRating int
	// BothRated requires a parseable rating for both sides, each
	// within bounds. When false one qualifying side satisfies the
	// minimum, while the maximum still applies to every rated side.
	BothRated bool

	// CheckmateOnly keeps only games whose move text ends in mate.
	CheckmateOnly bool

	// Move-text rewriting switches, applied to kept games.
	RemoveComments   bool
	RemoveNAGs       bool
	RemoveVariations bool

	// StandardOnly rejects variant games and games that start from a
	// set-up position.
	StandardOnly bool

	// Ply bounds counted in half-moves. Zero means no bound.
	MinPlies int
	MaxPlies int
}

// Validate checks that the options describe a satisfiable filter.
func (o Options) Validate() error {
	if o.MinRating < 0 || o.MaxRating < 0 {
		return fmt.Errorf("negative rating bound: %w", errors.ErrInvalidConfig)
	}
	if o.MinPlies < 0 || o.MaxPlies < 0 {
		return fmt.Errorf("negative ply bound: %w", errors.ErrInvalidConfig)
	}
	if o.MinRating > 0 && o.MaxRating > 0 && o.MinRating > o.MaxRating {
		return fmt.Errorf("minimum rating (%d) > maximum rating (%d): %w",
			o.MinRating, o.MaxRating, errors.ErrInvalidConfig)
	}
	if o.MinPlies > 0 && o.MaxPlies > 0 && o.MinPlies > o.MaxPlies {
		return fmt.Errorf("minimum plies (%d) > maximum plies (%d): %w",
			o.MinPlies, o.MaxPlies, errors.ErrInvalidConfig)
	}
	return nil
}

func (o Options) ratingBounded() bool {
	return o.MinRating > 0 || o.MaxRating > 0
}

func (o Options) plyBounded() bool {
	return o.MinPlies > 0 || o.MaxPlies > 0
}

func (o Options) stripping() bool {
	return o.RemoveComments || o.RemoveNAGs || o.RemoveVariations
}

func (o Options) inRatingBounds(rating int) bool {
	if o.MinRating > 0 && rating < o.MinRating {
		return false
	}
	if o.MaxRating > 0 && rating > o.MaxRating {
		return false
	}
	return true
}

// Package deck builds the question deck of a practice session by weighted sampling
// against the learner's predicted success.
package deck

import (
	"github.com/at-ishikawa/spacetimes/internal/fact"
	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

const (
	MinDueWeight = 1
	MaxDueWeight = 6
)

// Card is a session-scoped snapshot of a fact's scheduling state.
// It is a plain value: copying a Card produces an independent clone.
type Card struct {
	Fact            fact.Fact
	Streak          int
	DueWeight       int
	SelectionWeight float64
	Predicted       float64
	SeenCount       int
	// LastResult is empty until the card has been answered
	LastResult mastery.Result
}

func ClampDueWeight(w int) int {
	return clamp(w, MinDueWeight, MaxDueWeight)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

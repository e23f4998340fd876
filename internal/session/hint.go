package session

import (
	"math/rand/v2"
	"slices"
)

const (
	hintOptionCount = 3
	maxDecoyOffset  = 5
)

// HintOptions returns the product and two distinct decoys near it, shuffled.
// Decoys are never negative.
func HintOptions(rng *rand.Rand, product int) []int {
	options := []int{product}
	for len(options) < hintOptionCount {
		offset := rng.IntN(maxDecoyOffset) + 1
		if rng.IntN(2) == 0 {
			offset = -offset
		}
		decoy := max(0, product+offset)
		if slices.Contains(options, decoy) {
			continue
		}
		options = append(options, decoy)
	}
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

package deck

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/at-ishikawa/spacetimes/internal/fact"
	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

const (
	AllTablesDeckSize = 20
	MaxDeckSize       = 25

	DefaultTargetSuccessRate = 0.8
	MinSelectionWeight       = 0.2

	// dueWeightBand is the distance from the target success rate at which the
	// due weight starts to be adjusted
	dueWeightBand = 0.15
)

type Builder struct {
	rng               *rand.Rand
	targetSuccessRate float64
	logger            *slog.Logger
}

func NewBuilder(rng *rand.Rand, targetSuccessRate float64, logger *slog.Logger) *Builder {
	if targetSuccessRate <= 0 || targetSuccessRate >= 1 {
		targetSuccessRate = DefaultTargetSuccessRate
	}
	return &Builder{
		rng:               rng,
		targetSuccessRate: targetSuccessRate,
		logger:            logger.With("component", "deck_builder"),
	}
}

// Build returns the shuffled deck for the requested tables.
// Callers must reject an empty table set before calling it.
func (b *Builder) Build(tables []int, record *mastery.Record) []Card {
	candidates, size := Candidates(tables)
	tallies := record.Tallies()

	cards := make([]Card, 0, len(candidates))
	for _, f := range candidates {
		cards = append(cards, b.newCard(f, record.Mastery(f), tallies[f]))
	}

	deck, fallback := sample(b.rng, cards, size)
	if fallback {
		b.logger.Warn("weighted sampling degenerated, took candidates in order",
			"size", len(deck),
			"tables", tables)
	}
	b.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	b.logger.Debug("deck built",
		"tables", tables,
		"candidates", len(candidates),
		"size", len(deck))
	return deck
}

// Candidates enumerates the facts of the requested tables and the target deck size
func Candidates(tables []int) ([]fact.Fact, int) {
	if fact.AllTables(tables) {
		return fact.Grid(), AllTablesDeckSize
	}

	var facts []fact.Fact
	seen := make(map[int]struct{}, len(tables))
	for _, t := range tables {
		if _, ok := seen[t]; ok || !fact.IsOperand(t) {
			continue
		}
		seen[t] = struct{}{}
		facts = append(facts, fact.Table(t)...)
	}
	return facts, min(MaxDeckSize, len(facts))
}

func (b *Builder) newCard(f fact.Fact, m mastery.FactMastery, tally mastery.Tally) Card {
	predicted := mastery.PredictSuccess(tally)
	card := Card{
		Fact:            f,
		Streak:          m.Streak,
		Predicted:       predicted,
		SelectionWeight: SelectionWeight(predicted, b.targetSuccessRate),
		DueWeight:       DueWeight(m, predicted, b.targetSuccessRate),
	}
	if m.Misses > 0 {
		card.LastResult = mastery.ResultWrong
	}
	return card
}

// SelectionWeight grows as the predicted success falls below the target,
// floored so that no fact is unselectable.
func SelectionWeight(predicted, target float64) float64 {
	return math.Max(MinSelectionWeight, 1+3*(target-predicted))
}

// DueWeight derives the initial requeue weight from the stored streak and misses,
// nudged by how far the predicted success lies outside target±band.
func DueWeight(m mastery.FactMastery, predicted, target float64) int {
	w := 5 - m.Streak
	if m.Misses > 0 {
		w++
	}
	w = ClampDueWeight(w)

	// rounded so that values sitting exactly on a band edge stay inside it
	gap := math.Round((target-predicted)*1000) / 1000
	switch {
	case gap > 2*dueWeightBand:
		w += 2
	case gap > dueWeightBand:
		w++
	case gap < -2*dueWeightBand:
		w -= 2
	case gap < -dueWeightBand:
		w--
	}
	return ClampDueWeight(w)
}

// sample draws up to size cards without replacement, each with probability
// proportional to its selection weight. When the remaining weight collapses
// it takes the remaining cards in order and reports the fallback.
func sample(rng *rand.Rand, candidates []Card, size int) ([]Card, bool) {
	remaining := append([]Card(nil), candidates...)
	deck := make([]Card, 0, size)

	for len(deck) < size && len(remaining) > 0 {
		total := 0.0
		for _, c := range remaining {
			total += math.Max(0, c.SelectionWeight)
		}
		if total <= 0 {
			n := min(size-len(deck), len(remaining))
			return append(deck, remaining[:n]...), true
		}

		target := rng.Float64() * total
		picked := -1
		for i, c := range remaining {
			if c.SelectionWeight <= 0 {
				continue
			}
			picked = i
			target -= c.SelectionWeight
			if target < 0 {
				break
			}
		}
		deck = append(deck, remaining[picked])
		remaining = append(remaining[:picked], remaining[picked+1:]...)
	}
	return deck, false
}

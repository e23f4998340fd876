package deck

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/spacetimes/internal/fact"
	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

func newTestBuilder(seed uint64) *Builder {
	return NewBuilder(
		rand.New(rand.NewPCG(seed, seed+1)),
		DefaultTargetSuccessRate,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestBuilder_Build(t *testing.T) {
	allTables := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name     string
		tables   []int
		wantSize int
		validate func(t *testing.T, cards []Card)
	}{
		{
			name:     "single table",
			tables:   []int{7},
			wantSize: 10,
			validate: func(t *testing.T, cards []Card) {
				for _, c := range cards {
					assert.Equal(t, 7, c.Fact.B)
				}
			},
		},
		{
			name:     "two tables",
			tables:   []int{3, 7},
			wantSize: 20,
		},
		{
			name:     "three tables are capped",
			tables:   []int{2, 3, 4},
			wantSize: MaxDeckSize,
		},
		{
			name:     "duplicate tables count once",
			tables:   []int{7, 7},
			wantSize: 10,
		},
		{
			name:     "all tables",
			tables:   allTables,
			wantSize: AllTablesDeckSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := uint64(0); seed < 20; seed++ {
				cards := newTestBuilder(seed).Build(tt.tables, mastery.NewRecord("l", "L", time.Time{}))
				require.Len(t, cards, tt.wantSize)

				seen := make(map[fact.Fact]struct{})
				for _, c := range cards {
					_, dup := seen[c.Fact]
					assert.False(t, dup, "duplicate fact %s", c.Fact)
					seen[c.Fact] = struct{}{}

					assert.GreaterOrEqual(t, c.DueWeight, MinDueWeight)
					assert.LessOrEqual(t, c.DueWeight, MaxDueWeight)
					assert.Greater(t, c.SelectionWeight, 0.0)
					assert.Zero(t, c.SeenCount)
				}
				if tt.validate != nil {
					tt.validate(t, cards)
				}
			}
		})
	}
}

func TestBuilder_BuildCopiesMastery(t *testing.T) {
	record := mastery.NewRecord("l", "L", time.Time{})
	record.Facts["3|7"] = mastery.FactMastery{Streak: 2, Misses: 1}

	cards := newTestBuilder(1).Build([]int{7}, record)
	for _, c := range cards {
		if c.Fact != fact.New(3, 7) {
			assert.Zero(t, c.Streak)
			assert.Empty(t, c.LastResult)
			continue
		}
		assert.Equal(t, 2, c.Streak)
		assert.Equal(t, mastery.ResultWrong, c.LastResult)
		assert.Equal(t, 5, c.DueWeight)
	}
}

func TestBuilder_BuildFavorsWeakFacts(t *testing.T) {
	record := mastery.NewRecord("l", "L", time.Time{})
	var attempts []mastery.Attempt
	for i := 0; i < 8; i++ {
		attempts = append(attempts, mastery.Attempt{Fact: fact.New(6, 8), Result: mastery.ResultWrong})
		attempts = append(attempts, mastery.Attempt{Fact: fact.New(1, 8), Result: mastery.ResultCorrect})
	}
	record.AppendSession(mastery.SessionRecord{Attempts: attempts})

	weak, strong := 0, 0
	for seed := uint64(0); seed < 200; seed++ {
		// draw 3 of the 30 candidates so that inclusion depends on the weights
		deck, _ := sample(rand.New(rand.NewPCG(seed, 7)), cardsFor(t, []int{2, 3, 8}, record), 3)
		for _, c := range deck {
			switch c.Fact {
			case fact.New(6, 8):
				weak++
			case fact.New(1, 8):
				strong++
			}
		}
	}
	assert.Greater(t, weak, strong)
}

func cardsFor(t *testing.T, tables []int, record *mastery.Record) []Card {
	t.Helper()
	b := newTestBuilder(0)
	facts, _ := Candidates(tables)
	tallies := record.Tallies()
	cards := make([]Card, 0, len(facts))
	for _, f := range facts {
		cards = append(cards, b.newCard(f, record.Mastery(f), tallies[f]))
	}
	return cards
}

func TestSelectionWeight(t *testing.T) {
	tests := []struct {
		name      string
		predicted float64
		want      float64
	}{
		{name: "at target", predicted: 0.8, want: 1},
		{name: "unseen", predicted: 0.5, want: 1.9},
		{name: "well above target", predicted: 0.99, want: 0.43},
		{name: "floor", predicted: 1.2, want: MinSelectionWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SelectionWeight(tt.predicted, DefaultTargetSuccessRate), 1e-9)
		})
	}
}

func TestSelectionWeight_Monotonic(t *testing.T) {
	// facts with the same history length: lower predicted success never weighs less
	const historyLength = 6
	previous := SelectionWeight(mastery.PredictSuccess(mastery.Tally{Success: historyLength}), DefaultTargetSuccessRate)
	for success := historyLength - 1; success >= 0; success-- {
		tally := mastery.Tally{Success: success, Fail: historyLength - success}
		weight := SelectionWeight(mastery.PredictSuccess(tally), DefaultTargetSuccessRate)
		assert.GreaterOrEqual(t, weight, previous)
		previous = weight
	}
}

func TestDueWeight(t *testing.T) {
	tests := []struct {
		name      string
		mastery   mastery.FactMastery
		predicted float64
		want      int
	}{
		{name: "unseen fact at target", predicted: 0.8, want: 5},
		{name: "miss bonus", mastery: mastery.FactMastery{Misses: 2}, predicted: 0.8, want: 6},
		{name: "long streak is clamped", mastery: mastery.FactMastery{Streak: 9}, predicted: 0.8, want: 1},
		{name: "slightly below target", mastery: mastery.FactMastery{Streak: 2}, predicted: 0.6, want: 4},
		{name: "far below target", mastery: mastery.FactMastery{Streak: 2}, predicted: 0.4, want: 5},
		{name: "above target", mastery: mastery.FactMastery{Streak: 1}, predicted: 0.96, want: 3},
		{name: "never exceeds the maximum", mastery: mastery.FactMastery{Misses: 3}, predicted: 0.2, want: MaxDueWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueWeight(tt.mastery, tt.predicted, DefaultTargetSuccessRate))
		})
	}
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	t.Run("degenerate weights fall back to enumeration order", func(t *testing.T) {
		candidates := []Card{
			{Fact: fact.New(1, 2)},
			{Fact: fact.New(2, 2)},
			{Fact: fact.New(3, 2)},
		}
		deck, fallback := sample(rng, candidates, 2)
		assert.True(t, fallback)
		assert.Equal(t, []Card{candidates[0], candidates[1]}, deck)
	})

	t.Run("fallback after some draws still fills the deck", func(t *testing.T) {
		candidates := []Card{
			{Fact: fact.New(1, 2)},
			{Fact: fact.New(2, 2), SelectionWeight: 1},
			{Fact: fact.New(3, 2)},
		}
		deck, fallback := sample(rng, candidates, 3)
		assert.True(t, fallback)
		require.Len(t, deck, 3)
		assert.Equal(t, fact.New(2, 2), deck[0].Fact)
		assert.Equal(t, fact.New(1, 2), deck[1].Fact)
		assert.Equal(t, fact.New(3, 2), deck[2].Fact)
	})

	t.Run("more slots than candidates", func(t *testing.T) {
		candidates := []Card{{Fact: fact.New(1, 2), SelectionWeight: 1}}
		deck, fallback := sample(rng, candidates, 5)
		assert.False(t, fallback)
		assert.Len(t, deck, 1)
	})
}

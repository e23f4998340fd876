package statistics

import (
	"cmp"
	"slices"
	"time"

	"github.com/at-ishikawa/spacetimes/internal/fact"
	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

// SessionStatistics summarizes one retained session
type SessionStatistics struct {
	FinishedAt  time.Time
	Mode        mastery.Mode
	Tables      []int
	Asked       int
	Correct     int
	Incorrect   int
	Accuracy    float64
	Target      float64
	HintsUsed   int
	Timeouts    int
	AverageTime time.Duration
}

// AggregateStatistics holds totals across all retained sessions
type AggregateStatistics struct {
	Sessions        int
	Asked           int
	Correct         int
	Incorrect       int
	AverageAccuracy float64 // mean of the per-session accuracies
	BestAccuracy    float64
	SessionsOnGoal  int // sessions whose accuracy reached their target
	HintsUsed       int
	Timeouts        int
}

// TableStatistics counts the attempts on the facts of one table, i.e. with that right operand
type TableStatistics struct {
	Table    int
	Attempts int
	Correct  int
	Accuracy float64
}

type FactStatistics struct {
	Fact      fact.Fact
	Tally     mastery.Tally
	Predicted float64
	Streak    int
	Misses    int
}

type HistoryResult struct {
	Learner   string
	Sessions  []SessionStatistics // newest first
	Aggregate AggregateStatistics
	Tables    []TableStatistics
	Weakest   []FactStatistics
}

// CalculateHistory aggregates the session history of a learner.
// At most weakestLimit facts, those with the lowest predicted success, are listed as weakest.
func CalculateHistory(record *mastery.Record, weakestLimit int) HistoryResult {
	result := HistoryResult{Learner: record.Name}
	tables := make(map[int]*TableStatistics)

	var accuracySum float64
	for _, s := range record.Sessions {
		stats := SessionStatistics{
			FinishedAt: s.FinishedAt,
			Mode:       s.Mode,
			Tables:     s.Tables,
			Asked:      s.Asked,
			Correct:    s.Correct,
			Incorrect:  s.Incorrect,
			Accuracy:   s.Accuracy,
			Target:     s.TargetSuccessRate,
		}
		var totalDuration int64
		for _, attempt := range s.Attempts {
			totalDuration += attempt.DurationMs
			if attempt.HintUsed {
				stats.HintsUsed++
			}
			if attempt.Result == mastery.ResultTimeout {
				stats.Timeouts++
			}

			table, ok := tables[attempt.Fact.B]
			if !ok {
				table = &TableStatistics{Table: attempt.Fact.B}
				tables[attempt.Fact.B] = table
			}
			table.Attempts++
			if attempt.Result == mastery.ResultCorrect {
				table.Correct++
			}
		}
		if len(s.Attempts) > 0 {
			stats.AverageTime = time.Duration(totalDuration/int64(len(s.Attempts))) * time.Millisecond
		}
		result.Sessions = append(result.Sessions, stats)

		result.Aggregate.Sessions++
		result.Aggregate.Asked += s.Asked
		result.Aggregate.Correct += s.Correct
		result.Aggregate.Incorrect += s.Incorrect
		result.Aggregate.HintsUsed += stats.HintsUsed
		result.Aggregate.Timeouts += stats.Timeouts
		result.Aggregate.BestAccuracy = max(result.Aggregate.BestAccuracy, s.Accuracy)
		if s.Accuracy >= s.TargetSuccessRate {
			result.Aggregate.SessionsOnGoal++
		}
		accuracySum += s.Accuracy
	}
	if result.Aggregate.Sessions > 0 {
		result.Aggregate.AverageAccuracy = accuracySum / float64(result.Aggregate.Sessions)
	}

	slices.Reverse(result.Sessions)
	for _, table := range tables {
		table.Accuracy = float64(table.Correct) / float64(table.Attempts)
		result.Tables = append(result.Tables, *table)
	}
	slices.SortFunc(result.Tables, func(a, b TableStatistics) int {
		return cmp.Compare(a.Table, b.Table)
	})

	result.Weakest = weakestFacts(record, weakestLimit)
	return result
}

func weakestFacts(record *mastery.Record, limit int) []FactStatistics {
	if limit <= 0 {
		return nil
	}
	var facts []FactStatistics
	for f, tally := range record.Tallies() {
		if tally.Fail == 0 {
			continue
		}
		m := record.Mastery(f)
		facts = append(facts, FactStatistics{
			Fact:      f,
			Tally:     tally,
			Predicted: mastery.PredictSuccess(tally),
			Streak:    m.Streak,
			Misses:    m.Misses,
		})
	}
	slices.SortFunc(facts, func(a, b FactStatistics) int {
		return cmp.Or(
			cmp.Compare(a.Predicted, b.Predicted),
			cmp.Compare(b.Tally.Fail, a.Tally.Fail),
			cmp.Compare(a.Fact.B, b.Fact.B),
			cmp.Compare(a.Fact.A, b.Fact.A),
		)
	})
	if len(facts) > limit {
		facts = facts[:limit]
	}
	return facts
}

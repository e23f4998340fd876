// Package testutil provides shared test helpers for creating config files and learner fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/spacetimes/internal/fact"
	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

// LearnersDirectory is where SetupTestConfig points the YAML store, relative to tmpDir
const LearnersDirectory = "learners"

// SetupTestConfig creates a config file using the YAML store under tmpDir with the timer disabled.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	learnersDir := filepath.Join(tmpDir, LearnersDirectory)
	require.NoError(t, os.MkdirAll(learnersDir, 0755))

	configContent := fmt.Sprintf(`quiz:
  timer_enabled: false
  hint_enabled: false
  target_questions: 15
storage:
  driver: yaml
  directory: %s
`, learnersDir)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// LearnerOption configures optional fields when creating a learner fixture.
type LearnerOption func(*mastery.Record)

// WithFactMastery sets the stored mastery of the fact a × b
func WithFactMastery(a, b, streak, misses int) LearnerOption {
	return func(r *mastery.Record) {
		r.Facts[fact.New(a, b).Key()] = mastery.FactMastery{Streak: streak, Misses: misses}
	}
}

// WithSessions appends count finished sessions on table, each answering every fact of the table once.
// Facts are answered correctly when the right result is returned by correct.
func WithSessions(table, count int, correct func(f fact.Fact) bool) LearnerOption {
	return func(r *mastery.Record) {
		for i := 0; i < count; i++ {
			s := mastery.SessionRecord{
				ID:                fmt.Sprintf("session-%d-%d", table, len(r.Sessions)+1),
				FinishedAt:        r.CreatedAt.Add(time.Duration(len(r.Sessions)+1) * time.Hour),
				Mode:              mastery.ModeSingle,
				Tables:            []int{table},
				TargetSuccessRate: 0.8,
			}
			for _, f := range fact.Table(table) {
				attempt := mastery.Attempt{
					Fact:          f,
					CorrectAnswer: f.Product(),
					Result:        mastery.ResultWrong,
					DurationMs:    1000,
				}
				if correct(f) {
					attempt.Result = mastery.ResultCorrect
					s.Correct++
				} else {
					s.Incorrect++
				}
				s.Attempts = append(s.Attempts, attempt)
				s.Asked++
			}
			s.Accuracy = float64(s.Correct) / float64(s.Asked)
			r.AppendSession(s)
		}
	}
}

// CreateLearner stores a learner record in the YAML store rooted at learnersDir and returns it
func CreateLearner(t *testing.T, learnersDir, id, name string, opts ...LearnerOption) *mastery.Record {
	t.Helper()

	record := mastery.NewRecord(id, name, time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	for _, opt := range opts {
		opt(record)
	}
	require.NoError(t, mastery.NewYAMLStore(learnersDir).Put(context.Background(), id, record))
	return record
}

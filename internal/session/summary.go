package session

import (
	"context"
	"fmt"
	"math"

	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

// finish folds the attempt log into the learner record, appends the session
// record to the history and emits the summary. The mastery store is written
// here and nowhere else during a session.
func (s *Session) finish(ctx context.Context) error {
	s.timer.cancel()
	s.state = StateFinished

	answered := max(1, s.correct+s.incorrect)
	accuracy := float64(s.correct) / float64(answered)
	sessionRecord := mastery.SessionRecord{
		ID:                s.id,
		FinishedAt:        s.clock.Now(),
		Mode:              mastery.ModeOf(s.tables),
		Tables:            s.tables,
		Asked:             s.asked,
		Correct:           s.correct,
		Incorrect:         s.incorrect,
		Accuracy:          accuracy,
		TargetSuccessRate: s.opts.TargetSuccessRate,
		Attempts:          s.attempts,
	}
	summary := Summary{
		Asked:               s.asked,
		Correct:             s.correct,
		Incorrect:           s.incorrect,
		Accuracy:            accuracy,
		AchievedAccuracyPct: percent(accuracy),
		TargetPct:           percent(s.opts.TargetSuccessRate),
		Record:              sessionRecord,
	}
	summary.DeltaPct = summary.AchievedAccuracyPct - summary.TargetPct
	s.summary = &summary

	err := s.persist(ctx, sessionRecord)
	if err != nil {
		s.err = err
	}
	s.logger.Debug("session finished",
		"asked", s.asked,
		"correct", s.correct,
		"incorrect", s.incorrect,
		"accuracy", accuracy)
	s.presenter.Summary(summary)
	return err
}

func (s *Session) persist(ctx context.Context, sessionRecord mastery.SessionRecord) error {
	record, err := s.store.Get(ctx, s.learnerID)
	if err != nil {
		return fmt.Errorf("store.Get(%s) > %w", s.learnerID, err)
	}
	record.Apply(sessionRecord.Attempts)
	record.AppendSession(sessionRecord)
	if err := s.store.Put(ctx, s.learnerID, record); err != nil {
		return fmt.Errorf("store.Put(%s) > %w", s.learnerID, err)
	}
	return nil
}

func percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

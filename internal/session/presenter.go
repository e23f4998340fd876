package session

import (
	"github.com/at-ishikawa/spacetimes/internal/fact"
	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

type FeedbackKind string

const (
	FeedbackOK      FeedbackKind = "ok"
	FeedbackWrong   FeedbackKind = "wrong"
	FeedbackTimeout FeedbackKind = "timeout"
)

type Prompt struct {
	Fact   fact.Fact
	Text   string
	Asked  int
	Target int
}

type Feedback struct {
	Kind          FeedbackKind
	Message       string
	CorrectAnswer int
	Asked         int
	Target        int
	Correct       int
	Incorrect     int
}

// Countdown is either a remaining time, an unbounded timer or an expired one
type Countdown struct {
	RemainingSeconds int
	Unbounded        bool
	Expired          bool
}

// Hint carries three distinct candidate answers, one of them correct
type Hint struct {
	Options []int
}

type Summary struct {
	Asked               int
	Correct             int
	Incorrect           int
	Accuracy            float64
	AchievedAccuracyPct int
	TargetPct           int
	DeltaPct            int
	Record              mastery.SessionRecord
}

//go:generate mockgen -source=presenter.go -destination=../mocks/session/mock_presenter.go -package=mock_session

// Presenter renders what the engine emits. Calls happen on the goroutine driving the session.
type Presenter interface {
	Prompt(prompt Prompt)
	Feedback(feedback Feedback)
	Countdown(countdown Countdown)
	Hint(hint Hint)
	Summary(summary Summary)
}

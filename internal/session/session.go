package session

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/at-ishikawa/spacetimes/internal/deck"
	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

const (
	// streak at which a correctly answered card is not requeued anymore
	masteredStreak = 3
	// offset from the head where a missed card is requeued
	missRequeueOffset = 2
	tailShuffleWindow = 4
)

type State int

const (
	StateEmpty State = iota
	StatePresenting
	StateResolved
	StateFinished
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePresenting:
		return "presenting"
	case StateResolved:
		return "resolved"
	case StateFinished:
		return "finished"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// Session is the live state of one practice session. It is not safe for
// concurrent use: every method and every timer callback must run on one goroutine.
type Session struct {
	id        string
	ctx       context.Context
	learnerID string
	tables    []int
	opts      Options

	queue   []deck.Card
	current deck.Card
	state   State

	asked     int
	correct   int
	incorrect int
	attempts  []mastery.Attempt

	presentedAt time.Time
	staged      string
	hintOptions []int
	timer       countdown

	store     mastery.Store
	clock     Clock
	presenter Presenter
	rng       *rand.Rand
	logger    *slog.Logger

	summary *Summary
	err     error
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	return s.state
}

// Done reports whether the session has finished or was aborted
func (s *Session) Done() bool {
	return s.state == StateFinished || s.state == StateAborted
}

// Current returns the presented card
func (s *Session) Current() (deck.Card, bool) {
	return s.current, s.state == StatePresenting
}

// Queue returns a copy of the cards waiting to be presented
func (s *Session) Queue() []deck.Card {
	return slices.Clone(s.queue)
}

func (s *Session) Attempts() []mastery.Attempt {
	return slices.Clone(s.attempts)
}

func (s *Session) Counts() (asked, correct, incorrect int) {
	return s.asked, s.correct, s.incorrect
}

func (s *Session) Tables() []int {
	return slices.Clone(s.tables)
}

// Summary is set once the session has finished
func (s *Session) Summary() (Summary, bool) {
	if s.summary == nil {
		return Summary{}, false
	}
	return *s.summary, true
}

// Err returns the last error raised from a timer callback
func (s *Session) Err() error {
	return s.err
}

// Stage records the value currently typed, which an expiry submits
func (s *Session) Stage(raw string) {
	if s.state == StatePresenting {
		s.staged = raw
	}
}

// Submit resolves the presented card with a typed answer.
// Empty or non-numeric input is rejected without consuming a question.
func (s *Session) Submit(ctx context.Context, raw string) error {
	if s.state != StatePresenting {
		s.logger.Debug("stale submission dropped", "state", s.state)
		return nil
	}
	value, err := parseAnswer(raw)
	if err != nil {
		return err
	}
	return s.resolve(ctx, &value, false, false)
}

// SelectHint resolves the presented card with one of the offered hint options
func (s *Session) SelectHint(ctx context.Context, index int) error {
	if s.state != StatePresenting {
		s.logger.Debug("stale hint selection dropped", "state", s.state)
		return nil
	}
	if index < 0 || index >= len(s.hintOptions) {
		return ErrNoHint
	}
	value := float64(s.hintOptions[index])
	return s.resolve(ctx, &value, false, true)
}

// Abort ends the session without a summary. The mastery store is left untouched.
func (s *Session) Abort() {
	if s.Done() {
		return
	}
	s.timer.cancel()
	s.state = StateAborted
	s.logger.Debug("session aborted", "asked", s.asked)
}

func parseAnswer(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrEmptyAnswer
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	return value, nil
}

func (s *Session) nextCard(ctx context.Context) error {
	s.timer.cancel()
	if s.asked >= s.opts.TargetQuestions || len(s.queue) == 0 {
		return s.finish(ctx)
	}

	shuffleTail(s.rng, s.queue, tailShuffleWindow)
	s.current = s.queue[0]
	s.queue = s.queue[1:]
	s.current.SeenCount++

	s.present()
	s.presenter.Prompt(Prompt{
		Fact:   s.current.Fact,
		Text:   s.current.Fact.Prompt(),
		Asked:  s.asked,
		Target: s.opts.TargetQuestions,
	})
	s.startCountdown()
	return nil
}

func (s *Session) present() {
	s.state = StatePresenting
	s.presentedAt = s.clock.Now()
	s.staged = ""
	s.hintOptions = nil
}

func (s *Session) startCountdown() {
	if !s.opts.TimerEnabled {
		s.presenter.Countdown(Countdown{Unbounded: true})
		return
	}
	s.timer.start(time.Duration(s.opts.TimerSeconds)*time.Second, s.opts.HintEnabled, countdownHandlers{
		onTick: func(remaining time.Duration) {
			s.presenter.Countdown(Countdown{RemainingSeconds: remainingSeconds(remaining)})
		},
		onHint: func() {
			s.hintOptions = HintOptions(s.rng, s.current.Fact.Product())
			s.presenter.Hint(Hint{Options: slices.Clone(s.hintOptions)})
		},
		onExpire: s.expire,
	})
}

func (s *Session) expire() {
	var submitted *float64
	if value, err := parseAnswer(s.staged); err == nil {
		submitted = &value
	}
	if err := s.resolve(s.ctx, submitted, true, false); err != nil {
		s.err = err
	}
}

func (s *Session) resolve(ctx context.Context, submitted *float64, expired, hintUsed bool) error {
	if s.state != StatePresenting {
		s.logger.Debug("stale resolution dropped", "state", s.state)
		return nil
	}
	s.timer.cancel()
	s.state = StateResolved

	card := &s.current
	correctAnswer := card.Fact.Product()
	result := mastery.ResultWrong
	switch {
	case submitted != nil && *submitted == float64(correctAnswer):
		result = mastery.ResultCorrect
	case expired:
		result = mastery.ResultTimeout
	}

	s.asked++
	s.attempts = append(s.attempts, mastery.Attempt{
		Fact:            card.Fact,
		SubmittedAnswer: submitted,
		CorrectAnswer:   correctAnswer,
		Result:          result,
		DurationMs:      max(0, s.clock.Now().Sub(s.presentedAt).Milliseconds()),
		HintUsed:        hintUsed,
	})

	if result == mastery.ResultCorrect {
		s.correct++
		card.Streak++
		card.DueWeight = deck.ClampDueWeight(card.DueWeight + 1)
		card.LastResult = mastery.ResultCorrect
		s.feedback(FeedbackOK, "Bravo!", correctAnswer)
		s.requeueCorrect(*card)
		return s.nextCard(ctx)
	}

	s.incorrect++
	card.Streak = 0
	card.DueWeight = deck.MinDueWeight
	card.LastResult = mastery.ResultWrong
	if result == mastery.ResultTimeout {
		s.feedback(FeedbackTimeout, "Time's up! Answer: "+strconv.Itoa(correctAnswer), correctAnswer)
	} else {
		s.feedback(FeedbackWrong, "Missed! The right answer: "+strconv.Itoa(correctAnswer), correctAnswer)
	}
	s.requeueMiss(*card)

	if s.asked >= s.opts.TargetQuestions {
		return s.nextCard(ctx)
	}

	// the learner retries the same card
	s.present()
	if result == mastery.ResultTimeout {
		s.presenter.Countdown(Countdown{Expired: true})
		return nil
	}
	s.startCountdown()
	return nil
}

func (s *Session) feedback(kind FeedbackKind, message string, correctAnswer int) {
	s.presenter.Feedback(Feedback{
		Kind:          kind,
		Message:       message,
		CorrectAnswer: correctAnswer,
		Asked:         s.asked,
		Target:        s.opts.TargetQuestions,
		Correct:       s.correct,
		Incorrect:     s.incorrect,
	})
}

// requeueCorrect reinserts a clone counted back from the tail by its due weight
func (s *Session) requeueCorrect(card deck.Card) {
	if card.Streak >= masteredStreak || s.asked >= s.opts.TargetQuestions {
		return
	}
	n := len(s.queue)
	insertAt := 0
	if n > 0 {
		insertAt = n - min(max(card.DueWeight, 1), n)
	}
	s.queue = slices.Insert(s.queue, insertAt, card)
	s.logger.Debug("card requeued", "fact", card.Fact.Key(), "at", insertAt, "queue", len(s.queue))
}

// requeueMiss reinserts a clone near the head so that the fact comes back soon
func (s *Session) requeueMiss(card deck.Card) {
	insertAt := min(missRequeueOffset, len(s.queue))
	s.queue = slices.Insert(s.queue, insertAt, card)
	s.logger.Debug("missed card requeued", "fact", card.Fact.Key(), "at", insertAt, "queue", len(s.queue))
}

// shuffleTail shuffles the last window cards, keeping the head of the queue in place
func shuffleTail(rng *rand.Rand, queue []deck.Card, window int) {
	window = min(window, len(queue))
	if window < 2 {
		return
	}
	tail := queue[len(queue)-window:]
	rng.Shuffle(len(tail), func(i, j int) {
		tail[i], tail[j] = tail[j], tail[i]
	})
}

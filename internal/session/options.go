package session

import "github.com/at-ishikawa/spacetimes/internal/deck"

const (
	DefaultTargetQuestions = 15
	DefaultTimerSeconds    = 15
	MinTimerSeconds        = 5
	MaxTimerSeconds        = 60
)

// Options are read once when a session starts
type Options struct {
	TimerEnabled      bool
	TimerSeconds      int
	HintEnabled       bool
	TargetQuestions   int
	TargetSuccessRate float64
}

func DefaultOptions() Options {
	return Options{
		TimerEnabled:      true,
		TimerSeconds:      DefaultTimerSeconds,
		HintEnabled:       true,
		TargetQuestions:   DefaultTargetQuestions,
		TargetSuccessRate: deck.DefaultTargetSuccessRate,
	}
}

func (o Options) normalize() Options {
	if o.TimerSeconds == 0 {
		o.TimerSeconds = DefaultTimerSeconds
	}
	o.TimerSeconds = min(max(o.TimerSeconds, MinTimerSeconds), MaxTimerSeconds)
	if o.TargetQuestions <= 0 {
		o.TargetQuestions = DefaultTargetQuestions
	}
	if o.TargetSuccessRate <= 0 || o.TargetSuccessRate >= 1 {
		o.TargetSuccessRate = deck.DefaultTargetSuccessRate
	}
	return o
}

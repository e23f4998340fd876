// Package mastery holds the per-learner mastery records read by the deck builder
// and written back once a practice session is summarized.
package mastery

import (
	"time"

	"github.com/at-ishikawa/spacetimes/internal/fact"
)

// MaxSessions is the number of session records retained per learner
const MaxSessions = 10

type Result string

const (
	ResultCorrect Result = "correct"
	ResultWrong   Result = "wrong"
	ResultTimeout Result = "timeout"
)

// Mode describes which tables a session drilled
type Mode string

const (
	ModeSingle Mode = "single"
	ModeMixed  Mode = "mixed"
	ModeAll    Mode = "all"
)

func ModeOf(tables []int) Mode {
	switch {
	case fact.AllTables(tables):
		return ModeAll
	case len(tables) == 1:
		return ModeSingle
	default:
		return ModeMixed
	}
}

// FactMastery is the short-term record of a fact.
// Streak resets on any miss, Misses never decreases.
type FactMastery struct {
	Streak int `yaml:"streak"`
	Misses int `yaml:"misses"`
}

// Attempt is one resolved answer during a session
type Attempt struct {
	Fact            fact.Fact `yaml:",inline"`
	SubmittedAnswer *float64  `yaml:"submitted_answer,omitempty"`
	CorrectAnswer   int       `yaml:"correct_answer"`
	Result          Result    `yaml:"result"`
	DurationMs      int64     `yaml:"duration_ms"`
	HintUsed        bool      `yaml:"hint_used,omitempty"`
}

type SessionRecord struct {
	ID                string    `yaml:"id"`
	FinishedAt        time.Time `yaml:"finished_at"`
	Mode              Mode      `yaml:"mode"`
	Tables            []int     `yaml:"tables,flow"`
	Asked             int       `yaml:"asked"`
	Correct           int       `yaml:"correct"`
	Incorrect         int       `yaml:"incorrect"`
	Accuracy          float64   `yaml:"accuracy"`
	TargetSuccessRate float64   `yaml:"target_success_rate"`
	Attempts          []Attempt `yaml:"attempts,omitempty"`
}

// Delta is the achieved accuracy minus the target success rate
func (s SessionRecord) Delta() float64 {
	return s.Accuracy - s.TargetSuccessRate
}

type Settings struct {
	SoundOn bool `yaml:"sound_on"`
}

// Record is everything stored for one learner
type Record struct {
	ID        string                 `yaml:"id"`
	Name      string                 `yaml:"name"`
	CreatedAt time.Time              `yaml:"created_at"`
	Settings  Settings               `yaml:"settings"`
	Facts     map[string]FactMastery `yaml:"facts,omitempty"`
	Sessions  []SessionRecord        `yaml:"sessions,omitempty"`
}

func NewRecord(id, name string, createdAt time.Time) *Record {
	return &Record{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt,
		Settings:  Settings{SoundOn: true},
		Facts:     make(map[string]FactMastery),
	}
}

// Mastery returns the stored mastery of f, or the zero value for an unseen fact
func (r *Record) Mastery(f fact.Fact) FactMastery {
	if r == nil || r.Facts == nil {
		return FactMastery{}
	}
	return r.Facts[f.Key()]
}

// Apply folds the attempts into the per-fact streak and miss counters
func (r *Record) Apply(attempts []Attempt) {
	if r.Facts == nil {
		r.Facts = make(map[string]FactMastery)
	}
	for _, attempt := range attempts {
		key := attempt.Fact.Key()
		m := r.Facts[key]
		if attempt.Result == ResultCorrect {
			m.Streak++
		} else {
			m.Streak = 0
			m.Misses++
		}
		r.Facts[key] = m
	}
}

// AppendSession appends s and evicts the oldest records beyond MaxSessions
func (r *Record) AppendSession(s SessionRecord) {
	r.Sessions = append(r.Sessions, s)
	if overflow := len(r.Sessions) - MaxSessions; overflow > 0 {
		r.Sessions = append([]SessionRecord(nil), r.Sessions[overflow:]...)
	}
}

// Tallies counts successes and failures per fact over the retained sessions
func (r *Record) Tallies() map[fact.Fact]Tally {
	tallies := make(map[fact.Fact]Tally)
	if r == nil {
		return tallies
	}
	for _, s := range r.Sessions {
		for _, attempt := range s.Attempts {
			t := tallies[attempt.Fact]
			if attempt.Result == ResultCorrect {
				t.Success++
			} else {
				t.Fail++
			}
			tallies[attempt.Fact] = t
		}
	}
	return tallies
}

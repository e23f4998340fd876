package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/spacetimes/internal/fact"
	"github.com/at-ishikawa/spacetimes/internal/session"
)

func TestTerminalPresenter(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name    string
		present func(p *terminalPresenter)
		want    string
	}{
		{
			name: "prompt",
			present: func(p *terminalPresenter) {
				p.Prompt(session.Prompt{Fact: fact.New(3, 7), Text: "3 × 7 = ?", Asked: 4, Target: 15})
			},
			want: "\nQuestion 5 / 15\n3 × 7 = ?\n",
		},
		{
			name: "correct feedback",
			present: func(p *terminalPresenter) {
				p.Feedback(session.Feedback{Kind: session.FeedbackOK, Message: "Bravo!", CorrectAnswer: 21, Asked: 5, Target: 15, Correct: 4, Incorrect: 1})
			},
			want: "✅ Bravo!\nQuestion 5 / 15  Score: 4 ✓ / 1 ✗\n",
		},
		{
			name: "timeout feedback",
			present: func(p *terminalPresenter) {
				p.Feedback(session.Feedback{Kind: session.FeedbackTimeout, Message: "Time's up! Answer: 21", Asked: 1, Target: 15, Incorrect: 1})
			},
			want: "⏰ Time's up! Answer: 21\nQuestion 1 / 15  Score: 0 ✓ / 1 ✗\n",
		},
		{
			name: "countdown prints whole seconds sparsely",
			present: func(p *terminalPresenter) {
				for _, seconds := range []int{12, 12, 11, 10, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0} {
					p.Countdown(session.Countdown{RemainingSeconds: seconds})
				}
				p.Countdown(session.Countdown{Expired: true})
			},
			want: "Time: 12s\nTime: 10s\nTime: 5s\nTime: 4s\nTime: 3s\nTime: 2s\nTime: 1s\nTime: expired\n",
		},
		{
			name: "a new prompt restarts the countdown display",
			present: func(p *terminalPresenter) {
				p.Countdown(session.Countdown{RemainingSeconds: 7})
				p.Prompt(session.Prompt{Text: "2 × 2 = ?", Target: 3})
				p.Countdown(session.Countdown{RemainingSeconds: 7})
				p.Countdown(session.Countdown{Unbounded: true})
			},
			want: "Time: 7s\n\nQuestion 1 / 3\n2 × 2 = ?\nTime: 7s\nTime: ∞\n",
		},
		{
			name: "hint",
			present: func(p *terminalPresenter) {
				p.Hint(session.Hint{Options: []int{24, 21, 18}})
			},
			want: "Hint: [h1] 24  [h2] 21  [h3] 18\n",
		},
		{
			name: "summary",
			present: func(p *terminalPresenter) {
				p.Summary(session.Summary{Asked: 15, Correct: 14, Incorrect: 1, AchievedAccuracyPct: 93, TargetPct: 80, DeltaPct: 13})
			},
			want: "\nSession finished\nAsked: 15\nCorrect: 14\nIncorrect: 1\nAccuracy: 93% (target 80%, +13)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			p := newTerminalPresenter(stdout)
			tt.present(p)
			assert.NoError(t, p.err)
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestTerminalPresenter_WriteError(t *testing.T) {
	p := newTerminalPresenter(failingWriter{})
	p.Prompt(session.Prompt{Text: "1 × 1 = ?"})
	p.Summary(session.Summary{})
	assert.EqualError(t, p.err, "broken pipe")
}

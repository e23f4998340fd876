package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/spacetimes/internal/session"
)

// terminalPresenter renders a session as lines of text.
// Write errors are kept and reported by the driver loop.
type terminalPresenter struct {
	stdoutWriter io.Writer
	bold         *color.Color
	green        *color.Color
	red          *color.Color
	yellow       *color.Color
	faint        *color.Color

	lastSeconds int
	err         error
}

func newTerminalPresenter(w io.Writer) *terminalPresenter {
	return &terminalPresenter{
		stdoutWriter: w,
		bold:         color.New(color.Bold),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
		yellow:       color.New(color.FgYellow),
		faint:        color.New(color.Faint),
		lastSeconds:  -1,
	}
}

func (p *terminalPresenter) Prompt(prompt session.Prompt) {
	p.lastSeconds = -1
	p.println()
	p.printf(p.faint, "Question %d / %d\n", prompt.Asked+1, prompt.Target)
	p.printf(p.bold, "%s\n", prompt.Text)
}

func (p *terminalPresenter) Feedback(feedback session.Feedback) {
	switch feedback.Kind {
	case session.FeedbackOK:
		p.printf(p.green, "✅ %s\n", feedback.Message)
	case session.FeedbackTimeout:
		p.printf(p.yellow, "⏰ %s\n", feedback.Message)
	default:
		p.printf(p.red, "❌ %s\n", feedback.Message)
	}
	p.printf(p.faint, "Question %d / %d  Score: %d ✓ / %d ✗\n",
		feedback.Asked, feedback.Target, feedback.Correct, feedback.Incorrect)
}

// Countdown prints whole seconds only: every fifth second, then each of the last five
func (p *terminalPresenter) Countdown(countdown session.Countdown) {
	switch {
	case countdown.Unbounded:
		p.printf(p.faint, "Time: ∞\n")
	case countdown.Expired:
		p.printf(p.yellow, "Time: expired\n")
	default:
		seconds := countdown.RemainingSeconds
		if seconds == p.lastSeconds || seconds == 0 {
			return
		}
		first := p.lastSeconds < 0
		p.lastSeconds = seconds
		if first || seconds <= 5 || seconds%5 == 0 {
			p.printf(p.faint, "Time: %ds\n", seconds)
		}
	}
}

func (p *terminalPresenter) Hint(hint session.Hint) {
	options := make([]string, 0, len(hint.Options))
	for i, option := range hint.Options {
		options = append(options, fmt.Sprintf("[h%d] %d", i+1, option))
	}
	p.printf(p.bold, "Hint: %s\n", strings.Join(options, "  "))
}

func (p *terminalPresenter) Summary(summary session.Summary) {
	p.println()
	p.printf(p.bold, "Session finished\n")
	p.printf(nil, "Asked: %d\n", summary.Asked)
	p.printf(p.green, "Correct: %d\n", summary.Correct)
	p.printf(p.red, "Incorrect: %d\n", summary.Incorrect)

	accuracy := p.green
	if summary.DeltaPct < 0 {
		accuracy = p.red
	}
	p.printf(accuracy, "Accuracy: %d%% (target %d%%, %+d)\n",
		summary.AchievedAccuracyPct, summary.TargetPct, summary.DeltaPct)
}

func (p *terminalPresenter) printf(c *color.Color, format string, args ...any) {
	if p.err != nil {
		return
	}
	if c == nil {
		_, p.err = fmt.Fprintf(p.stdoutWriter, format, args...)
		return
	}
	_, p.err = c.Fprintf(p.stdoutWriter, format, args...)
}

func (p *terminalPresenter) println() {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.stdoutWriter)
}

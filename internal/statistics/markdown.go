package statistics

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const finishedAtLayout = "2006-01-02 15:04"

// WriteMarkdown renders the history as a Markdown report
func WriteMarkdown(w io.Writer, result HistoryResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Practice history: %s\n\n", result.Learner)
	if result.Aggregate.Sessions == 0 {
		b.WriteString("No session has been finished yet.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	aggregate := result.Aggregate
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Sessions: %d\n", aggregate.Sessions)
	fmt.Fprintf(&b, "- Questions: %d (%d correct, %d incorrect)\n", aggregate.Asked, aggregate.Correct, aggregate.Incorrect)
	fmt.Fprintf(&b, "- Average accuracy: %d%%\n", percent(aggregate.AverageAccuracy))
	fmt.Fprintf(&b, "- Best accuracy: %d%%\n", percent(aggregate.BestAccuracy))
	fmt.Fprintf(&b, "- Sessions on target: %d / %d\n", aggregate.SessionsOnGoal, aggregate.Sessions)
	fmt.Fprintf(&b, "- Hints used: %d\n", aggregate.HintsUsed)
	fmt.Fprintf(&b, "- Timeouts: %d\n\n", aggregate.Timeouts)

	b.WriteString("## Sessions\n\n")
	b.WriteString("| Finished | Mode | Tables | Asked | Correct | Accuracy | Target | Avg. time |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, s := range result.Sessions {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %d%% | %d%% (%+d) | %.1fs |\n",
			s.FinishedAt.Format(finishedAtLayout),
			s.Mode,
			formatTables(s.Tables),
			s.Asked,
			s.Correct,
			percent(s.Accuracy),
			percent(s.Target),
			percent(s.Accuracy)-percent(s.Target),
			s.AverageTime.Seconds(),
		)
	}
	b.WriteString("\n")

	if len(result.Tables) > 0 {
		b.WriteString("## Tables\n\n")
		b.WriteString("| Table | Attempts | Correct | Accuracy |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, t := range result.Tables {
			fmt.Fprintf(&b, "| %d | %d | %d | %d%% |\n", t.Table, t.Attempts, t.Correct, percent(t.Accuracy))
		}
		b.WriteString("\n")
	}

	if len(result.Weakest) > 0 {
		b.WriteString("## Weakest facts\n\n")
		b.WriteString("| Fact | Correct | Missed | Predicted | Streak |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, f := range result.Weakest {
			fmt.Fprintf(&b, "| %s = %d | %d | %d | %d%% | %d |\n",
				f.Fact, f.Fact.Product(), f.Tally.Success, f.Tally.Fail, percent(f.Predicted), f.Streak)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

func formatTables(tables []int) string {
	parts := make([]string, 0, len(tables))
	for _, t := range tables {
		parts = append(parts, strconv.Itoa(t))
	}
	return strings.Join(parts, ", ")
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/spacetimes/internal/cli"
	"github.com/at-ishikawa/spacetimes/internal/config"
	"github.com/at-ishikawa/spacetimes/internal/fact"
	"github.com/at-ishikawa/spacetimes/internal/session"
)

type quizFlags struct {
	tables       []int
	all          bool
	learnerID    string
	timer        bool
	timerSeconds int
	hint         bool
	questions    int
}

func newQuizCommand() *cobra.Command {
	var flags quizFlags
	command := &cobra.Command{
		Use:   "quiz",
		Short: "Practice session on the chosen multiplication tables",
		Long: `Practice session on the chosen multiplication tables.

Type the product and press enter. When a hint is shown, h1, h2 or h3 picks an option.
Type q to leave the session without saving it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			learnerID, tables, options := flags.resolve(cmd, cfg)

			store, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			quizCLI := cli.NewQuizCLI(store, learnerID, tables, options, slog.Default()).
				WithIO(cmd.InOrStdin(), cmd.OutOrStdout())
			return quizCLI.Run(cmd.Context())
		},
	}

	command.Flags().IntSliceVar(&flags.tables, "tables", nil, "tables to practice, e.g. 3,7")
	command.Flags().BoolVar(&flags.all, "all", false, "practice all ten tables")
	command.Flags().StringVar(&flags.learnerID, "learner", "", "learner ID, overrides the configured learner")
	command.Flags().BoolVar(&flags.timer, "timer", true, "limit the time for each question")
	command.Flags().IntVar(&flags.timerSeconds, "timer-seconds", session.DefaultTimerSeconds, "seconds per question (5-60)")
	command.Flags().BoolVar(&flags.hint, "hint", true, "offer three options 5 seconds before the time is up")
	command.Flags().IntVar(&flags.questions, "questions", session.DefaultTargetQuestions, "number of questions in a session")
	command.MarkFlagsOneRequired("tables", "all")
	command.MarkFlagsMutuallyExclusive("tables", "all")

	return command
}

// resolve applies the flags the user set on top of the configuration
func (flags quizFlags) resolve(cmd *cobra.Command, cfg *config.Config) (string, []int, session.Options) {
	learnerID := cfg.Learner
	if cmd.Flags().Changed("learner") {
		learnerID = flags.learnerID
	}

	tables := flags.tables
	if flags.all {
		tables = make([]int, 0, fact.MaxOperand)
		for t := fact.MinOperand; t <= fact.MaxOperand; t++ {
			tables = append(tables, t)
		}
	}

	options := session.Options{
		TimerEnabled:      cfg.Quiz.TimerEnabled,
		TimerSeconds:      cfg.Quiz.TimerSeconds,
		HintEnabled:       cfg.Quiz.HintEnabled,
		TargetQuestions:   cfg.Quiz.TargetQuestions,
		TargetSuccessRate: cfg.Quiz.TargetSuccessRate,
	}
	if cmd.Flags().Changed("timer") {
		options.TimerEnabled = flags.timer
	}
	if cmd.Flags().Changed("timer-seconds") {
		options.TimerSeconds = flags.timerSeconds
	}
	if cmd.Flags().Changed("hint") {
		options.HintEnabled = flags.hint
	}
	if cmd.Flags().Changed("questions") {
		options.TargetQuestions = flags.questions
	}
	slog.Debug("quiz options resolved",
		"learner", learnerID,
		"tables", fmt.Sprint(tables),
		"timer", options.TimerEnabled,
		"timer_seconds", options.TimerSeconds,
		"hint", options.HintEnabled,
		"questions", options.TargetQuestions)
	return learnerID, tables, options
}

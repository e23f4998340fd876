package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

func newLearnerCommand() *cobra.Command {
	learnerCommand := &cobra.Command{
		Use:   "learner",
		Short: "Manage learner profiles",
	}

	learnerCommand.AddCommand(newLearnerAddCommand())
	learnerCommand.AddCommand(newLearnerListCommand())

	return learnerCommand
}

func newLearnerAddCommand() *cobra.Command {
	var soundOn bool
	command := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a learner profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			record := mastery.NewRecord(uuid.NewString(), args[0], time.Now())
			record.Settings.SoundOn = soundOn
			if err := store.Put(cmd.Context(), record.ID, record); err != nil {
				return fmt.Errorf("store.Put(%s) > %w", record.ID, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created learner %s with ID %s\nSet learner: %s in the config or SPACETIMES_LEARNER to practice as this learner\n",
				record.Name, record.ID, record.ID)
			return err
		},
	}
	command.Flags().BoolVar(&soundOn, "sound", true, "play sounds on feedback")
	return command
}

func newLearnerListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List learner profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			records, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("store.List() > %w", err)
			}
			if len(records) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No learner yet. Create one with: spacetimes learner add <name>")
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if _, err := fmt.Fprintln(w, "\tID\tNAME\tCREATED"); err != nil {
				return fmt.Errorf("fmt.Fprintln() > %w", err)
			}
			for _, record := range records {
				active := ""
				if record.ID == cfg.Learner {
					active = "*"
				}
				if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					active, record.ID, record.Name, record.CreatedAt.Format(time.DateOnly)); err != nil {
					return fmt.Errorf("fmt.Fprintf() > %w", err)
				}
			}
			return w.Flush()
		},
	}
}

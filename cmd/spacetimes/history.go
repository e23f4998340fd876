package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/spacetimes/internal/pdf"
	"github.com/at-ishikawa/spacetimes/internal/statistics"
)

const defaultWeakestFacts = 5

func newHistoryCommand() *cobra.Command {
	var (
		learnerID string
		pdfPath   string
		weakest   int
	)
	command := &cobra.Command{
		Use:   "history",
		Short: "Show statistics of the recent sessions of a learner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("learner") {
				learnerID = cfg.Learner
			}
			if learnerID == "" {
				return fmt.Errorf("no learner: pass --learner or set learner in the config")
			}

			store, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			record, err := store.Get(cmd.Context(), learnerID)
			if err != nil {
				return fmt.Errorf("store.Get(%s) > %w", learnerID, err)
			}

			var report bytes.Buffer
			if err := statistics.WriteMarkdown(&report, statistics.CalculateHistory(record, weakest)); err != nil {
				return fmt.Errorf("statistics.WriteMarkdown() > %w", err)
			}
			if _, err := cmd.OutOrStdout().Write(report.Bytes()); err != nil {
				return fmt.Errorf("write report > %w", err)
			}

			if pdfPath == "" {
				return nil
			}
			path, err := pdf.WriteMarkdownAsPDF(report.Bytes(), pdfPath)
			if err != nil {
				return fmt.Errorf("pdf.WriteMarkdownAsPDF() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", path)
			return err
		},
	}
	command.Flags().StringVar(&learnerID, "learner", "", "learner ID, overrides the configured learner")
	command.Flags().StringVar(&pdfPath, "pdf", "", "also export the report to this PDF file")
	command.Flags().IntVar(&weakest, "weakest", defaultWeakestFacts, "number of weakest facts to list")
	return command
}

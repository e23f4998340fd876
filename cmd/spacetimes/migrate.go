package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/spacetimes/internal/config"
	"github.com/at-ishikawa/spacetimes/internal/database"
	"github.com/at-ishikawa/spacetimes/internal/datasync"
	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

func newMigrateCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables of the mysql or sqlite storage driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver == config.StorageDriverYAML {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "The yaml storage driver needs no migration")
				return err
			}

			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()
			if err := database.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Tables of the %s database are up to date\n", cfg.Storage.Driver)
			return err
		},
	}
	command.AddCommand(newMigrateImportYAMLCommand())
	return command
}

func newMigrateImportYAMLCommand() *cobra.Command {
	var (
		directory      string
		dryRun         bool
		updateExisting bool
	)
	command := &cobra.Command{
		Use:   "import-yaml",
		Short: "Copy learners from YAML files into the mysql or sqlite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver == config.StorageDriverYAML {
				return fmt.Errorf("import-yaml needs the mysql or sqlite storage driver, got %q", cfg.Storage.Driver)
			}
			if directory == "" {
				directory = cfg.Storage.Directory
			}

			target, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			output := cmd.OutOrStdout()
			if dryRun {
				_, _ = fmt.Fprintln(output, "[DRY RUN] No changes will be made")
			}
			importer := datasync.NewImporter(mastery.NewYAMLStore(directory), target, output)
			result, err := importer.ImportLearners(cmd.Context(), datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			})
			if err != nil {
				return fmt.Errorf("importer.ImportLearners() > %w", err)
			}

			_, _ = fmt.Fprintln(output, "\nImport Summary:")
			_, _ = fmt.Fprintf(output, "  Learners: %d new, %d updated, %d skipped\n", result.LearnersNew, result.LearnersUpdated, result.LearnersSkipped)
			_, err = fmt.Fprintf(output, "  Sessions: %d\n", result.Sessions)
			return err
		},
	}
	command.Flags().StringVar(&directory, "directory", "", "Directory of the YAML learner files (default: storage.directory)")
	command.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be imported without writing")
	command.Flags().BoolVar(&updateExisting, "update-existing", false, "Replace learners that already exist in the database")
	return command
}

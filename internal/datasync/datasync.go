// Package datasync copies learner records from one mastery store to another.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	LearnersNew     int
	LearnersSkipped int
	LearnersUpdated int
	Sessions        int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer reads learners from a source store, typically the YAML files, and writes them to a target store.
type Importer struct {
	source mastery.Store
	target mastery.Store
	writer io.Writer
}

func NewImporter(source, target mastery.Store, writer io.Writer) *Importer {
	return &Importer{
		source: source,
		target: target,
		writer: writer,
	}
}

// ImportLearners copies every learner of the source store.
// A learner already in the target store is skipped unless UpdateExisting is set, in which case it is replaced.
func (imp *Importer) ImportLearners(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	learners, err := imp.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("source.List() > %w", err)
	}

	var result ImportResult
	for _, learner := range learners {
		if err := imp.importLearner(ctx, learner.ID, opts, &result); err != nil {
			return nil, fmt.Errorf("importLearner(%s) > %w", learner.ID, err)
		}
	}
	return &result, nil
}

func (imp *Importer) importLearner(ctx context.Context, learnerID string, opts ImportOptions, result *ImportResult) error {
	record, err := imp.source.Get(ctx, learnerID)
	if err != nil {
		return fmt.Errorf("source.Get() > %w", err)
	}

	_, err = imp.target.Get(ctx, learnerID)
	exists := err == nil
	if err != nil && !errors.Is(err, mastery.ErrLearnerNotFound) {
		return fmt.Errorf("target.Get() > %w", err)
	}

	if exists && !opts.UpdateExisting {
		fmt.Fprintf(imp.writer, "  [SKIP]  %q (%s)\n", record.Name, learnerID)
		result.LearnersSkipped++
		return nil
	}
	if !opts.DryRun {
		if err := imp.target.Put(ctx, learnerID, record); err != nil {
			return fmt.Errorf("target.Put() > %w", err)
		}
	}
	if exists {
		fmt.Fprintf(imp.writer, "  [UPDATE]  %q (%s)\n", record.Name, learnerID)
		result.LearnersUpdated++
	} else {
		fmt.Fprintf(imp.writer, "  [NEW]  %q (%s)\n", record.Name, learnerID)
		result.LearnersNew++
	}
	result.Sessions += len(record.Sessions)
	return nil
}

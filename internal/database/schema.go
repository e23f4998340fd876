package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS learners (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	sound_on BOOLEAN NOT NULL DEFAULT TRUE,
	created_at DATETIME NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS fact_mastery (
	learner_id VARCHAR(36) NOT NULL,
	a INTEGER NOT NULL,
	b INTEGER NOT NULL,
	streak INTEGER NOT NULL DEFAULT 0,
	misses INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (learner_id, a, b)
)`,
	`CREATE TABLE IF NOT EXISTS session_records (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	learner_id VARCHAR(36) NOT NULL,
	seq INTEGER NOT NULL,
	finished_at DATETIME NOT NULL,
	mode VARCHAR(16) NOT NULL,
	tables VARCHAR(64) NOT NULL,
	asked INTEGER NOT NULL,
	correct INTEGER NOT NULL,
	incorrect INTEGER NOT NULL,
	accuracy DOUBLE NOT NULL,
	target_success_rate DOUBLE NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS session_attempts (
	session_id VARCHAR(36) NOT NULL,
	learner_id VARCHAR(36) NOT NULL,
	seq INTEGER NOT NULL,
	a INTEGER NOT NULL,
	b INTEGER NOT NULL,
	submitted_answer DOUBLE NULL,
	correct_answer INTEGER NOT NULL,
	result VARCHAR(16) NOT NULL,
	duration_ms BIGINT NOT NULL,
	hint_used BOOLEAN NOT NULL DEFAULT FALSE,
	PRIMARY KEY (session_id, seq)
)`,
}

// Migrate creates the mastery tables that do not exist yet
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, statement := range schema {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("db.ExecContext() > %w", err)
		}
	}
	return nil
}

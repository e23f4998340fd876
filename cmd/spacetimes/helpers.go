package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/spacetimes/internal/config"
	"github.com/at-ishikawa/spacetimes/internal/database"
	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

const retryDelay = 100 * time.Millisecond

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openDB opens the SQL database of the configured driver. SQLite files get their schema on open.
func openDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Open() > %w", err)
		}
		return db, nil
	case config.StorageDriverSQLite:
		db, err := database.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("database.OpenSQLite(%s) > %w", cfg.Storage.SQLitePath, err)
		}
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("database.Migrate() > %w", err)
		}
		return db, nil
	}
	return nil, fmt.Errorf("storage driver %q has no database", cfg.Storage.Driver)
}

// openStore returns the configured mastery store and a function releasing it
func openStore(ctx context.Context, cfg *config.Config) (mastery.Store, func() error, error) {
	if cfg.Storage.Driver == config.StorageDriverYAML {
		return mastery.NewYAMLStore(cfg.Storage.Directory), func() error { return nil }, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	store := mastery.NewDBStore(db, mastery.WithRetry(max(1, cfg.Database.RetryAttempts), retryDelay))
	return store, db.Close, nil
}

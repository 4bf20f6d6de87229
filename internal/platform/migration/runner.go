// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

// Package migration applies the graph schema migrations at startup.
//
// The catalogue serves no traffic until the nodes and edges tables (and the
// identity index) are at the expected version, so a dirty schema aborts
// startup rather than being retried.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers the "pgx5://" database scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source registers the "file://" source scheme.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Apply brings the schema up to the latest migration under sourcePath.
// Already-applied migrations are skipped.
func Apply(databaseURL, sourcePath string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+sourcePath, pgx5URL(databaseURL))
	if err != nil {
		return fmt.Errorf("migration: init: %w", err)
	}
	migrator.Log = slogAdapter{logger: logger}
	defer func() {
		if sourceErr, dbErr := migrator.Close(); sourceErr != nil || dbErr != nil {
			logger.Error("migration_close_failed",
				slog.Any("source_error", sourceErr),
				slog.Any("db_error", dbErr),
			)
		}
	}()

	version, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: read version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: schema dirty at version %d, manual intervention required", version)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("schema_up_to_date", slog.Int("version", int(version)))
			return nil
		}
		return fmt.Errorf("migration: apply: %w", err)
	}

	applied, _, _ := migrator.Version()
	logger.Info("schema_migrated",
		slog.Int("from_version", int(version)),
		slog.Int("to_version", int(applied)),
	)
	return nil
}

// pgx5URL rewrites a postgres:// or postgresql:// URL onto the pgx5://
// scheme registered by golang-migrate's pgx/v5 driver. Other URLs pass
// through untouched.
func pgx5URL(databaseURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, prefix)
		}
	}
	return databaseURL
}

// slogAdapter bridges golang-migrate's Logger to slog at debug level.
type slogAdapter struct {
	logger *slog.Logger
}

func (adapter slogAdapter) Printf(format string, args ...any) {
	adapter.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (adapter slogAdapter) Verbose() bool { return false }

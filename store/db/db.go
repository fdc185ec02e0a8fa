package db

import (
	"context"
	"database/sql"
	"embed"

	// sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"fashionhub/service/profile"
	"fashionhub/service/version"
)

//go:embed migration
var migrationFS embed.FS

const latestSchemaFileName = "migration/LATEST__SCHEMA.sql"

type DB struct {
	// DBInstance is the sqlite connection handle.
	DBInstance *sql.DB
	profile    *profile.Profile
}

// NewDB returns a new instance of DB associated with the given profile.
func NewDB(profile *profile.Profile) *DB {
	return &DB{
		profile: profile,
	}
}

func (db *DB) Open(ctx context.Context) error {
	if db.profile.DSN == "" {
		return errors.New("dsn required")
	}

	// WAL keeps readers unblocked during preference writes; busy_timeout
	// covers the brief write lock hand-off.
	sqliteDB, err := sql.Open("sqlite3", db.profile.DSN+"?cache=shared&_foreign_keys=1&_journal_mode=WAL&_busy_timeout=10000")
	if err != nil {
		return errors.Wrapf(err, "failed to open db with dsn: %s", db.profile.DSN)
	}
	db.DBInstance = sqliteDB

	if db.profile.Mode == "prod" {
		migrated, err := db.isMigrated(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to check migration history")
		}
		if !migrated {
			if err := db.applyLatestSchema(ctx); err != nil {
				return errors.Wrap(err, "failed to apply latest schema")
			}
		}
		if _, err := db.UpsertMigrationHistory(ctx, &MigrationHistoryUpsert{
			Version: version.GetCurrentVersion(db.profile.Mode),
		}); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
	} else {
		// In demo and dev modes the schema is rebuilt on every start.
		if err := db.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
	}

	return nil
}

func (db *DB) isMigrated(ctx context.Context) (bool, error) {
	rows, err := db.DBInstance.QueryContext(ctx, `
		SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'migration_history'
	`)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	migrated := rows.Next()
	if err := rows.Err(); err != nil {
		return false, err
	}
	return migrated, nil
}

func (db *DB) applyLatestSchema(ctx context.Context) error {
	buf, err := migrationFS.ReadFile(latestSchemaFileName)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file %q", latestSchemaFileName)
	}
	if _, err := db.DBInstance.ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "failed to execute latest schema")
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

const (
	// CurrentSchemaVersion tracks the database schema version
	CurrentSchemaVersion = "1.0.0"
)

// Migration represents a database schema migration
type Migration struct {
	Version string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: "1.0.0",
		Up:      migrationV1Up,
		Down:    migrationV1Down,
	},
}

const migrationV1Up = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version TEXT PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Analyses table: one row per enriched model
CREATE TABLE IF NOT EXISTS analyses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    model_name TEXT NOT NULL UNIQUE,
    descriptor_path TEXT,
    analyzer_version TEXT NOT NULL,
    types_count INTEGER DEFAULT 0,
    aggregate_count INTEGER DEFAULT 0,
    relationship_count INTEGER DEFAULT 0,
    diagnostic_count INTEGER DEFAULT 0,
    duration_ms INTEGER DEFAULT 0,
    last_analyzed_at TIMESTAMP,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_analyses_model ON analyses(model_name);

-- Domain types table
CREATE TABLE IF NOT EXISTS domain_types (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    analysis_id INTEGER NOT NULL,
    qualified_name TEXT NOT NULL,
    simple_name TEXT NOT NULL,
    package_path TEXT,
    kind TEXT NOT NULL,
    evidence_kind TEXT,
    evidence_detail TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (analysis_id) REFERENCES analyses(id) ON DELETE CASCADE,
    UNIQUE(analysis_id, qualified_name)
);

CREATE INDEX IF NOT EXISTS idx_types_analysis ON domain_types(analysis_id);
CREATE INDEX IF NOT EXISTS idx_types_kind ON domain_types(kind);
CREATE INDEX IF NOT EXISTS idx_types_simple ON domain_types(simple_name);

-- Full-text search on type names
CREATE VIRTUAL TABLE IF NOT EXISTS domain_types_fts USING fts5(
    qualified_name, simple_name,
    content='domain_types',
    content_rowid='id'
);

-- Triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS domain_types_ai AFTER INSERT ON domain_types BEGIN
    INSERT INTO domain_types_fts(rowid, qualified_name, simple_name)
    VALUES (new.id, new.qualified_name, new.simple_name);
END;

CREATE TRIGGER IF NOT EXISTS domain_types_ad AFTER DELETE ON domain_types BEGIN
    DELETE FROM domain_types_fts WHERE rowid = old.id;
END;

CREATE TRIGGER IF NOT EXISTS domain_types_au AFTER UPDATE ON domain_types BEGIN
    UPDATE domain_types_fts SET
        qualified_name = new.qualified_name,
        simple_name = new.simple_name
    WHERE rowid = new.id;
END;

-- Properties table: one row per property, with relationship columns populated
-- when classification produced evidence
CREATE TABLE IF NOT EXISTS properties (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    rendered_type TEXT NOT NULL,
    relationship_kind TEXT,
    relationship_target TEXT,
    inter_aggregate BOOLEAN DEFAULT 0,
    evidence_source TEXT,
    evidence_detail TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (type_id) REFERENCES domain_types(id) ON DELETE CASCADE,
    UNIQUE(type_id, name)
);

CREATE INDEX IF NOT EXISTS idx_properties_type ON properties(type_id);
CREATE INDEX IF NOT EXISTS idx_properties_target ON properties(relationship_target);

-- Diagnostics table
CREATE TABLE IF NOT EXISTS diagnostics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    analysis_id INTEGER NOT NULL,
    code TEXT NOT NULL,
    severity TEXT NOT NULL,
    message TEXT NOT NULL,
    owner_type TEXT,
    property TEXT,
    target_type TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (analysis_id) REFERENCES analyses(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_diagnostics_analysis ON diagnostics(analysis_id);
CREATE INDEX IF NOT EXISTS idx_diagnostics_code ON diagnostics(code);
`

const migrationV1Down = `
-- Drop all tables in reverse order of dependencies
DROP TRIGGER IF EXISTS domain_types_au;
DROP TRIGGER IF EXISTS domain_types_ad;
DROP TRIGGER IF EXISTS domain_types_ai;

DROP TABLE IF EXISTS diagnostics;
DROP TABLE IF EXISTS properties;
DROP TABLE IF EXISTS domain_types_fts;
DROP TABLE IF EXISTS domain_types;
DROP TABLE IF EXISTS analyses;
DROP TABLE IF EXISTS schema_version;
`

// ApplyMigrations runs all pending migrations
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	// Check if schema_version table exists
	var tableName string
	err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableName)

	// Parse current version (default to 0.0.0 if no migrations applied or table doesn't exist)
	var currentVersion *semver.Version
	if err == sql.ErrNoRows {
		currentVersion = semver.MustParse("0.0.0")
	} else if err != nil {
		return fmt.Errorf("failed to check schema_version table: %w", err)
	} else {
		var currentVersionStr string
		err = db.QueryRowContext(ctx, "SELECT version FROM schema_version ORDER BY applied_at DESC LIMIT 1").Scan(&currentVersionStr)
		if err == sql.ErrNoRows || currentVersionStr == "" {
			currentVersion = semver.MustParse("0.0.0")
		} else if err != nil {
			return fmt.Errorf("failed to read schema_version: %w", err)
		} else {
			currentVersion, err = semver.NewVersion(currentVersionStr)
			if err != nil {
				return fmt.Errorf("invalid current schema version %s: %w", currentVersionStr, err)
			}
		}
	}

	// Run migrations in order
	for _, migration := range AllMigrations {
		migrationVersion, err := semver.NewVersion(migration.Version)
		if err != nil {
			return fmt.Errorf("invalid migration version %s: %w", migration.Version, err)
		}

		if !currentVersion.LessThan(migrationVersion) {
			continue // Already applied
		}

		_, err = db.ExecContext(ctx, migration.Up)
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version, err)
		}

		_, err = db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
		}

		currentVersion = migrationVersion
	}

	return nil
}

// RollbackMigration rolls back the most recent migration
func RollbackMigration(ctx context.Context, db *sql.DB) error {
	var currentVersion string
	err := db.QueryRowContext(ctx, "SELECT version FROM schema_version ORDER BY applied_at DESC LIMIT 1").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("no migrations to rollback: %w", err)
	}

	var migration *Migration
	for i := range AllMigrations {
		if AllMigrations[i].Version == currentVersion {
			migration = &AllMigrations[i]
			break
		}
	}

	if migration == nil {
		return fmt.Errorf("migration %s not found", currentVersion)
	}

	_, err = db.ExecContext(ctx, migration.Down)
	if err != nil {
		return fmt.Errorf("failed to rollback migration %s: %w", currentVersion, err)
	}

	_, err = db.ExecContext(ctx, "DELETE FROM schema_version WHERE version = ?", currentVersion)
	if err != nil {
		return fmt.Errorf("failed to remove migration record %s: %w", currentVersion, err)
	}

	return nil
}

// Package migrations provides a framework for database schema management.
//
// Executed migrations are tracked in a dedicated table so that each one runs
// exactly once. A migration whose table already exists is recorded without
// running its SQL, which makes the whole run safe to repeat at every startup.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/database"
)

// Migration represents a database migration.
type Migration struct {
	// Name is a unique identifier for the migration
	Name string
	// Description is a human-readable explanation of what the migration does
	Description string
	// TableName is the table created by this migration, used for existence checks
	TableName string
	// RunSQL executes the migration within a transaction
	RunSQL func(ctx context.Context, tx *sql.Tx, d Dialect) error
}

// Dialect captures the DDL differences between the supported drivers.
type Dialect struct {
	// Driver is the database/sql driver name.
	Driver string
	// IdentityColumn declares an auto-incrementing BIGINT primary key.
	IdentityColumn string
	// JSONColumn is the column type for JSON documents.
	JSONColumn string
	// CurrentSchema is the SQL expression naming the active schema.
	CurrentSchema string
}

// DialectFor returns the dialect for a driver name. Unknown drivers get PostgreSQL.
func DialectFor(driver string) Dialect {
	if driver == constants.DriverMySQL {
		return Dialect{
			Driver:         constants.DriverMySQL,
			IdentityColumn: "BIGINT AUTO_INCREMENT PRIMARY KEY",
			JSONColumn:     "JSON",
			CurrentSchema:  "DATABASE()",
		}
	}
	return Dialect{
		Driver:         constants.DriverPostgres,
		IdentityColumn: "BIGSERIAL PRIMARY KEY",
		JSONColumn:     "JSONB",
		CurrentSchema:  "current_schema()",
	}
}

// Migrator handles database migrations.
type Migrator struct {
	db         *database.Pool
	dialect    Dialect
	migrations []Migration
}

// NewMigrator creates a new migrator for the pool's driver.
func NewMigrator(db *database.Pool) *Migrator {
	return &Migrator{
		db:         db,
		dialect:    DialectFor(db.Driver),
		migrations: GetMigrations(),
	}
}

// RunMigrations creates the tracking table and applies every pending migration.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	log.Info().Msg("Running database migrations")
	startTime := time.Now()

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	executedMigrations, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	migrationsRun := 0
	migrationsRecorded := 0

	for _, migration := range m.migrations {
		exists, err := m.tableExists(ctx, migration.TableName)
		if err != nil {
			return fmt.Errorf("failed to check if table %s exists: %w", migration.TableName, err)
		}

		switch {
		case !exists:
			// Also covers a recorded migration whose table was dropped afterwards
			log.Info().
				Str("migration", migration.Name).
				Str("table", migration.TableName).
				Msg("Running migration")

			if err := m.runMigration(ctx, migration, !executedMigrations[migration.Name]); err != nil {
				return err
			}
			migrationsRun++

		case !executedMigrations[migration.Name]:
			log.Info().
				Str("migration", migration.Name).
				Str("table", migration.TableName).
				Msg("Table already exists, recording migration as completed")

			if err := m.recordMigration(ctx, m.db.DB, migration); err != nil {
				return err
			}
			migrationsRecorded++
		}
	}

	log.Info().
		Int("migrations_run", migrationsRun).
		Int("migrations_recorded", migrationsRecorded).
		Int("total_migrations", len(m.migrations)).
		Dur("duration", time.Since(startTime)).
		Msg("Database migrations completed")

	return nil
}

// createMigrationsTable creates the tracking table if it doesn't exist.
func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name VARCHAR(255) PRIMARY KEY,
			description TEXT,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, constants.TableSchemaMigrations)
	_, err := m.db.ExecContext(ctx, query)
	return err
}

// getExecutedMigrations returns the names of recorded migrations.
func (m *Migrator) getExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	query := fmt.Sprintf(`SELECT name FROM %s`, constants.TableSchemaMigrations)
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	migrations := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		migrations[name] = true
	}

	return migrations, rows.Err()
}

// runMigration runs a migration within a transaction, recording it when record is set.
func (m *Migrator) runMigration(ctx context.Context, migration Migration, record bool) error {
	return m.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := migration.RunSQL(ctx, tx, m.dialect); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
		if !record {
			return nil
		}
		return m.recordMigration(ctx, tx, migration)
	})
}

// recordMigration records a migration as completed.
func (m *Migrator) recordMigration(ctx context.Context, db database.DBTX, migration Migration) error {
	query := m.db.Rebind(fmt.Sprintf(`INSERT INTO %s (name, description) VALUES ($1, $2)`, constants.TableSchemaMigrations))
	if _, err := db.ExecContext(ctx, query, migration.Name, migration.Description); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
	}
	return nil
}

// tableExists checks if a table exists in the current database schema.
func (m *Migrator) tableExists(ctx context.Context, tableName string) (bool, error) {
	query := m.db.Rebind(fmt.Sprintf(`
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = %s
		AND table_name = $1
	`, m.dialect.CurrentSchema))

	var count int
	if err := m.db.QueryRowContext(ctx, query, tableName).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetMigrations returns all migrations in the order they must be applied.
func GetMigrations() []Migration {
	return []Migration{
		createAnalysesTable(),
		createPatientSentimentsTable(),
	}
}

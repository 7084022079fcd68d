package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

// execAll runs statements in order within tx.
func execAll(ctx context.Context, tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// createdAtIndex returns the statement indexing a table's created_at column.
// MySQL has no IF NOT EXISTS for indexes, which is fine because the
// migration only runs when the table is missing.
func createdAtIndex(d Dialect, table string) string {
	if d.Driver == constants.DriverMySQL {
		return fmt.Sprintf("CREATE INDEX idx_%s_created_at ON %s (created_at)", table, table)
	}
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at)", table, table)
}

// createAnalysesTable creates the analyses table
func createAnalysesTable() Migration {
	return Migration{
		Name:        "create_analyses_table",
		Description: "Creates the analyses table",
		TableName:   constants.TableAnalyses,
		RunSQL: func(ctx context.Context, tx *sql.Tx, d Dialect) error {
			query := fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS analyses (
					analysis_id %s,
					combined_statement TEXT NOT NULL,
					sentiment VARCHAR(64) NOT NULL,
					emotions %s,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				)
			`, d.IdentityColumn, d.JSONColumn)
			return execAll(ctx, tx, query, createdAtIndex(d, constants.TableAnalyses))
		},
	}
}

// createPatientSentimentsTable creates the patient_sentiments table
func createPatientSentimentsTable() Migration {
	return Migration{
		Name:        "create_patient_sentiments_table",
		Description: "Creates the patient_sentiments table",
		TableName:   constants.TablePatientSentiments,
		RunSQL: func(ctx context.Context, tx *sql.Tx, d Dialect) error {
			query := fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS patient_sentiments (
					patient_sentiment_id %s,
					name VARCHAR(255),
					age VARCHAR(32),
					sentiment VARCHAR(64) NOT NULL,
					emotions %s,
					type VARCHAR(255),
					country VARCHAR(255),
					city VARCHAR(255),
					state VARCHAR(255),
					gender VARCHAR(64),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				)
			`, d.IdentityColumn, d.JSONColumn)
			return execAll(ctx, tx, query, createdAtIndex(d, constants.TablePatientSentiments))
		},
	}
}

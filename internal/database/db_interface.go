// Package database provides the connection pool, transactions, and the
// small query helpers shared by the repositories and migrations.
package database

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB and *sql.Tx used by the repositories.
// Accepting it lets a repository run inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// HealthChecker is satisfied by *Pool and used by the health endpoint.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

var (
	_ DBTX          = (*sql.DB)(nil)
	_ DBTX          = (*sql.Tx)(nil)
	_ HealthChecker = (*Pool)(nil)
)

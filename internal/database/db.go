package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/config"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

// Pool is the shared connection pool. Driver is the database/sql driver
// name it was opened with ("postgres" or "mysql").
type Pool struct {
	*sql.DB
	Driver string
}

// NewPool wraps an existing handle. It is mainly used with sqlmock in tests.
func NewPool(db *sql.DB, driver string) *Pool {
	return &Pool{DB: db, Driver: driver}
}

// Connect creates a new database connection pool for the configured driver
func Connect(ctx context.Context, cfg *config.AppConfig) (*Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBConnectionTimeout)
	defer cancel()

	driver := cfg.Database.Driver
	log.Info().
		Str("driver", driver).
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("database", cfg.Database.Name).
		Str("user", cfg.Database.User).
		Msg("Connecting to database")

	if driver == constants.DriverMySQL {
		if err := ensureMySQLDatabase(ctx, &cfg.Database); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, cfg.Database.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MinConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("Successfully connected to database")

	return &Pool{DB: db, Driver: driver}, nil
}

// ensureMySQLDatabase creates the configured schema when it does not exist yet.
func ensureMySQLDatabase(ctx context.Context, dbs *config.DatabaseSettings) error {
	rootCfg := mysqldriver.NewConfig()
	rootCfg.User = dbs.User
	rootCfg.Passwd = dbs.Password
	rootCfg.Net = "tcp"
	rootCfg.Addr = fmt.Sprintf("%s:%d", dbs.Host, dbs.Port)

	rootDB, err := sql.Open(constants.DriverMySQL, rootCfg.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to root database: %w", err)
	}
	defer rootDB.Close()

	if _, err := rootDB.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbs.Name)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	log.Info().Msgf("Ensured database '%s' exists", dbs.Name)
	return nil
}

// Close releases the pool. It tolerates a nil receiver.
func (p *Pool) Close() {
	if p == nil || p.DB == nil {
		return
	}
	log.Info().Msg("Closing database connection pool")
	if err := p.DB.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database connection pool")
	}
}

// IsMySQL reports whether the pool talks to MySQL/MariaDB.
func (p *Pool) IsMySQL() bool {
	return p.Driver == constants.DriverMySQL
}

// Rebind converts $n placeholders to the driver's bind style.
// Queries are written in PostgreSQL form; MySQL receives ? placeholders.
func (p *Pool) Rebind(query string) string {
	if !p.IsMySQL() {
		return query
	}
	return Rebind(query)
}

// Rebind rewrites $1, $2, ... into ? placeholders.
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query))

	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(c)
	}

	return b.String()
}

// Transaction runs fn inside a transaction. fn's error or panic rolls it
// back; a nil return commits it.
func (p *Pool) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := p.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Rollback after panic failed")
			}
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// HealthCheck pings the server and runs a trivial query through the pool.
func (p *Pool) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBHealthCheckTimeout)
	defer cancel()

	if err := p.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	var one int
	switch err := p.QueryRowContext(ctx, "SELECT 1").Scan(&one); {
	case err != nil:
		return fmt.Errorf("check query: %w", err)
	case one != 1:
		return fmt.Errorf("check query returned %d", one)
	}
	return nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

// InsertReturningID runs an INSERT written with $n placeholders and returns
// the generated key. PostgreSQL uses RETURNING; MySQL uses LastInsertId.
func (p *Pool) InsertReturningID(ctx context.Context, db DBTX, query, idColumn string, args ...interface{}) (int64, error) {
	if db == nil {
		db = p.DB
	}

	start := time.Now()

	if p.IsMySQL() {
		query = Rebind(query)
		result, err := db.ExecContext(ctx, query, args...)
		utils.LogDBQuery(query, args, time.Since(start), err)
		if err != nil {
			return 0, err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get last insert ID: %w", err)
		}
		return id, nil
	}

	query = fmt.Sprintf("%s RETURNING %s", query, idColumn)
	var id int64
	err := db.QueryRowContext(ctx, query, args...).Scan(&id)
	utils.LogDBQuery(query, args, time.Since(start), err)
	if err != nil {
		return 0, err
	}
	return id, nil
}


package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the database behind driver ("postgres" or "sqlite") and
// verifies it with a ping.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	switch driver {
	case "sqlite":
		// A memory database lives only as long as its last connection, and
		// SQLite serialises writers anyway.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		db.SetMaxIdleConns(20)
		db.SetMaxOpenConns(30)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(15 * time.Minute)
	}

	return db, nil
}

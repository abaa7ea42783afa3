package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the accounts table and its lookup indexes when
// missing. The DDL is portable between Postgres and SQLite.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
	account_number           TEXT PRIMARY KEY,
	account_type             TEXT NOT NULL DEFAULT '',
	account_status           TEXT NOT NULL DEFAULT '',
	account_balance          TEXT NOT NULL DEFAULT '',
	account_currency         TEXT NOT NULL DEFAULT '',
	account_opening_date     TEXT,
	account_closing_date     TEXT,
	account_description      TEXT,
	account_branch           TEXT,
	account_customer_id      TEXT NOT NULL DEFAULT '',
	account_customer_name    TEXT NOT NULL DEFAULT '',
	account_customer_email   TEXT,
	account_customer_phone   TEXT,
	account_customer_address TEXT,
	account_customer_city    TEXT,
	account_customer_state   TEXT,
	account_customer_zip     TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_customer_id ON accounts (account_customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_type ON accounts (account_type)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_status ON accounts (account_status)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_branch ON accounts (account_branch)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_customer_email ON accounts (account_customer_email)`,
}

// EnsureSchema creates the accounts table if it does not exist yet. It never
// alters an existing table.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

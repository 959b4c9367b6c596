package database

import (
	"database/sql"
	"fmt"
)

// Migrate runs all table creation statements. Safe to call multiple times
// due to IF NOT EXISTS clauses.
func Migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nstatement: %s", err, stmt)
		}
	}
	return nil
}

var migrations = []string{
	// Customers carry a cached outstanding balance maintained only by the
	// ledger engine and the audit job, never by API writes.
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT,
		balance_centavos BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// Debts: amount is immutable, paid grows via allocation and shrinks only
	// on repayment deletion. created_at defines FIFO order.
	`CREATE TABLE IF NOT EXISTS debts (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers(id),
		amount_centavos BIGINT NOT NULL CHECK (amount_centavos >= 0),
		paid_centavos BIGINT NOT NULL DEFAULT 0
			CHECK (paid_centavos >= 0 AND paid_centavos <= amount_centavos),
		category TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'UNPAID'
			CHECK (status IN ('UNPAID', 'PARTIAL', 'PAID')),
		order_ref TEXT,
		note TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_debts_customer_category
		ON debts (customer_id, LOWER(category), created_at)`,

	// Repayments are aggregate credit entries; which debts they covered is
	// recomputed from FIFO order, not stored.
	`CREATE TABLE IF NOT EXISTS repayments (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers(id),
		amount_centavos BIGINT NOT NULL CHECK (amount_centavos > 0),
		category TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_repayments_customer_category
		ON repayments (customer_id, LOWER(category), created_at)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers(id),
		kind TEXT NOT NULL,
		message TEXT NOT NULL,
		amount_centavos BIGINT NOT NULL,
		category TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_unread
		ON notifications (is_read, created_at)`,
}

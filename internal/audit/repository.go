package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abagtas/listahan/pkg/money"
)

// Repository gives the audit job its view of the store: customer IDs with
// cached balances, raw ledger sums, and the one column it may write.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new audit repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CustomerBalances returns every customer ID with its cached balance,
// in a stable order so progress reporting is repeatable.
func (r *Repository) CustomerBalances(ctx context.Context) ([]CustomerBalance, error) {
	query := `SELECT id, balance_centavos FROM customers ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []CustomerBalance
	for rows.Next() {
		var c CustomerBalance
		if err := rows.Scan(&c.CustomerID, &c.Cached); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// LedgerSums returns the customer's total debts and repayments from source
// records, ignoring any cache.
func (r *Repository) LedgerSums(ctx context.Context, customerID int64) (money.Centavos, money.Centavos, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(amount_centavos), 0) FROM debts WHERE customer_id = $1),
			(SELECT COALESCE(SUM(amount_centavos), 0) FROM repayments WHERE customer_id = $1)
	`

	var debts, repayments money.Centavos
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(&debts, &repayments); err != nil {
		return 0, 0, fmt.Errorf("failed to sum ledger: %w", err)
	}
	return debts, repayments, nil
}

// UpdateBalance overwrites one customer's cached balance.
func (r *Repository) UpdateBalance(ctx context.Context, customerID int64, balance money.Centavos) error {
	query := `UPDATE customers SET balance_centavos = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, customerID, balance); err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	return nil
}

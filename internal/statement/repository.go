package statement

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abagtas/listahan/pkg/money"
)

// Repository reads ledger history for balance reconstruction. It never
// writes anything.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new statement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CustomerExists reports whether a customer row exists
func (r *Repository) CustomerExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check customer: %w", err)
	}
	return exists, nil
}

// LiveSums returns the customer's total debt and repayment amounts.
func (r *Repository) LiveSums(ctx context.Context, customerID int64) (money.Centavos, money.Centavos, error) {
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

// EntriesThrough returns the customer's debit and credit entries created
// strictly before the cutoff, in chronological order (ID breaks timestamp
// ties, debts before repayments on a full tie so a same-instant repayment
// never appears to precede the debt it paid).
func (r *Repository) EntriesThrough(ctx context.Context, customerID int64, cutoff time.Time, category *string) ([]Entry, error) {
	query := `
		SELECT kind, entry_id, amount_centavos, category, created_at FROM (
			SELECT 'DEBT' AS kind, id AS entry_id, amount_centavos, category, created_at
			FROM debts
			WHERE customer_id = $1 AND created_at < $2
			UNION ALL
			SELECT 'REPAYMENT' AS kind, id AS entry_id, amount_centavos, category, created_at
			FROM repayments
			WHERE customer_id = $1 AND created_at < $2
		) entries
	`
	args := []interface{}{customerID, cutoff}
	if category != nil {
		query += ` WHERE LOWER(category) = LOWER($3)`
		args = append(args, *category)
	}
	query += ` ORDER BY created_at ASC, kind ASC, entry_id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Kind, &e.EntryID, &e.Amount, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abagtas/listahan/pkg/money"
)

// Repository handles ledger data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new ledger repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const debtColumns = `id, customer_id, amount_centavos, paid_centavos, category, status, order_ref, note, created_at`

func scanDebt(row interface{ Scan(...interface{}) error }) (*Debt, error) {
	debt := &Debt{}
	err := row.Scan(
		&debt.ID,
		&debt.CustomerID,
		&debt.AmountCentavos,
		&debt.PaidCentavos,
		&debt.Category,
		&debt.Status,
		&debt.OrderRef,
		&debt.Note,
		&debt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return debt, nil
}

// GetDebt retrieves a debt by its ID
func (r *Repository) GetDebt(ctx context.Context, id int64) (*Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1`

	debt, err := scanDebt(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return debt, nil
}

// InsertDebt writes a new debt entry
func (r *Repository) InsertDebt(ctx context.Context, d *Debt) (*Debt, error) {
	query := `
		INSERT INTO debts (customer_id, amount_centavos, paid_centavos, category, status, order_ref, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + debtColumns

	debt, err := scanDebt(r.db.QueryRowContext(ctx, query,
		d.CustomerID, d.AmountCentavos, d.PaidCentavos, d.Category, d.Status, d.OrderRef, d.Note))
	if err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}
	return debt, nil
}

// DeleteDebt removes a debt entry
func (r *Repository) DeleteDebt(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateDebtPaid atomically sets the paid amount and derived status of one debt
func (r *Repository) UpdateDebtPaid(ctx context.Context, id int64, paid money.Centavos, status DebtStatus) error {
	query := `UPDATE debts SET paid_centavos = $2, status = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, paid, status)
	if err != nil {
		return fmt.Errorf("failed to update debt paid amount: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateDebtCategory reclassifies a debt; amounts are untouched
func (r *Repository) UpdateDebtCategory(ctx context.Context, id int64, category string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE debts SET category = $2 WHERE id = $1`, id, category)
	if err != nil {
		return fmt.Errorf("failed to reassign debt category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetRepayment retrieves a repayment by its ID
func (r *Repository) GetRepayment(ctx context.Context, id int64) (*Repayment, error) {
	query := `
		SELECT id, customer_id, amount_centavos, category, created_at
		FROM repayments
		WHERE id = $1
	`

	repayment := &Repayment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&repayment.ID,
		&repayment.CustomerID,
		&repayment.AmountCentavos,
		&repayment.Category,
		&repayment.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get repayment: %w", err)
	}
	return repayment, nil
}

// InsertRepayment writes a new repayment entry
func (r *Repository) InsertRepayment(ctx context.Context, p *Repayment) (*Repayment, error) {
	query := `
		INSERT INTO repayments (customer_id, amount_centavos, category)
		VALUES ($1, $2, $3)
		RETURNING id, customer_id, amount_centavos, category, created_at
	`

	repayment := &Repayment{}
	err := r.db.QueryRowContext(ctx, query, p.CustomerID, p.AmountCentavos, p.Category).Scan(
		&repayment.ID,
		&repayment.CustomerID,
		&repayment.AmountCentavos,
		&repayment.Category,
		&repayment.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create repayment: %w", err)
	}
	return repayment, nil
}

// DeleteRepayment removes a repayment entry
func (r *Repository) DeleteRepayment(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM repayments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete repayment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateRepaymentCategory reclassifies a repayment; the amount is untouched
func (r *Repository) UpdateRepaymentCategory(ctx context.Context, id int64, category string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE repayments SET category = $2 WHERE id = $1`, id, category)
	if err != nil {
		return fmt.Errorf("failed to reassign repayment category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// OpenDebts returns a customer's not-fully-paid debts in one category,
// oldest first with ID as the tie-break — the allocation order.
func (r *Repository) OpenDebts(ctx context.Context, customerID int64, category string) ([]*Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE customer_id = $1
		  AND LOWER(category) = LOWER($2)
		  AND paid_centavos < amount_centavos
		ORDER BY created_at ASC, id ASC
	`
	return r.queryDebts(ctx, query, customerID, category)
}

// PaidDebts returns a customer's debts in one category with any paid
// amount, newest first — the reversal order for repayment deletion.
func (r *Repository) PaidDebts(ctx context.Context, customerID int64, category string) ([]*Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE customer_id = $1
		  AND LOWER(category) = LOWER($2)
		  AND paid_centavos > 0
		ORDER BY created_at DESC, id DESC
	`
	return r.queryDebts(ctx, query, customerID, category)
}

// ListDebts returns all of a customer's debts, optionally filtered by category
func (r *Repository) ListDebts(ctx context.Context, customerID int64, category *string) ([]*Debt, error) {
	if category != nil {
		query := `
			SELECT ` + debtColumns + `
			FROM debts
			WHERE customer_id = $1 AND LOWER(category) = LOWER($2)
			ORDER BY created_at ASC, id ASC
		`
		return r.queryDebts(ctx, query, customerID, *category)
	}

	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE customer_id = $1
		ORDER BY created_at ASC, id ASC
	`
	return r.queryDebts(ctx, query, customerID)
}

func (r *Repository) queryDebts(ctx context.Context, query string, args ...interface{}) ([]*Debt, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []*Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, debt)
	}
	return debts, rows.Err()
}

// ListRepayments returns all of a customer's repayments, optionally filtered by category
func (r *Repository) ListRepayments(ctx context.Context, customerID int64, category *string) ([]*Repayment, error) {
	query := `
		SELECT id, customer_id, amount_centavos, category, created_at
		FROM repayments
		WHERE customer_id = $1
	`
	args := []interface{}{customerID}
	if category != nil {
		query += ` AND LOWER(category) = LOWER($2)`
		args = append(args, *category)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list repayments: %w", err)
	}
	defer rows.Close()

	var repayments []*Repayment
	for rows.Next() {
		repayment := &Repayment{}
		if err := rows.Scan(
			&repayment.ID,
			&repayment.CustomerID,
			&repayment.AmountCentavos,
			&repayment.Category,
			&repayment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan repayment: %w", err)
		}
		repayments = append(repayments, repayment)
	}
	return repayments, rows.Err()
}

// Categories returns every category string used across all customers,
// for autocomplete in the entry forms.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category FROM debts
		UNION
		SELECT DISTINCT category FROM repayments
		ORDER BY category ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// LedgerSums returns the customer's total debt and repayment amounts across
// all categories, the inputs to a live balance.
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

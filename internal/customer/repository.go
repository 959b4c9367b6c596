package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abagtas/listahan/pkg/money"
)

// Repository handles customer data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new customer repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new customer into the database
func (r *Repository) Create(ctx context.Context, req *CreateCustomerRequest) (*Customer, error) {
	query := `
		INSERT INTO customers (name, phone)
		VALUES ($1, $2)
		RETURNING id, name, phone, balance_centavos, created_at
	`

	customer := &Customer{}
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Phone).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.BalanceCentavos,
		&customer.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// GetByID retrieves a customer by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	query := `
		SELECT id, name, phone, balance_centavos, created_at
		FROM customers
		WHERE id = $1
	`

	customer := &Customer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.BalanceCentavos,
		&customer.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

// Exists reports whether a customer row exists
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check customer: %w", err)
	}
	return exists, nil
}

// List retrieves all customers with pagination
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Customer, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM customers`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	query := `
		SELECT id, name, phone, balance_centavos, created_at
		FROM customers
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		customer := &Customer{}
		if err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Phone,
			&customer.BalanceCentavos,
			&customer.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	return customers, total, nil
}

// Update modifies an existing customer's profile fields
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateCustomerRequest) (*Customer, error) {
	query := `
		UPDATE customers
		SET name = COALESCE($2, name),
		    phone = COALESCE($3, phone)
		WHERE id = $1
		RETURNING id, name, phone, balance_centavos, created_at
	`

	customer := &Customer{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Phone).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.BalanceCentavos,
		&customer.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

// UpdateBalance overwrites the cached outstanding balance
func (r *Repository) UpdateBalance(ctx context.Context, id int64, balance money.Centavos) error {
	query := `UPDATE customers SET balance_centavos = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, balance)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
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

// HasLedgerEntries reports whether any debt or repayment references the customer
func (r *Repository) HasLedgerEntries(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (SELECT 1 FROM debts WHERE customer_id = $1)
		    OR EXISTS (SELECT 1 FROM repayments WHERE customer_id = $1)
	`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check ledger entries: %w", err)
	}
	return exists, nil
}

// Delete removes a customer from the database
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM customers WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
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

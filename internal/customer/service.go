package customer

import (
	"context"
	"database/sql"
	"errors"
)

// Common errors
var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerHasEntries = errors.New("customer still has ledger entries")
)

// Service handles customer business logic
type Service struct {
	repo *Repository
}

// NewService creates a new customer service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new customer
func (s *Service) Create(ctx context.Context, req *CreateCustomerRequest) (*Customer, error) {
	return s.repo.Create(ctx, req)
}

// GetByID retrieves a customer by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// List retrieves all customers with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Customer, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update modifies an existing customer
func (s *Service) Update(ctx context.Context, id int64, req *UpdateCustomerRequest) (*Customer, error) {
	customer, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// Delete removes a customer. Customers with ledger history cannot be
// deleted; their debts and repayments are the audit trail.
func (s *Service) Delete(ctx context.Context, id int64) error {
	hasEntries, err := s.repo.HasLedgerEntries(ctx, id)
	if err != nil {
		return err
	}
	if hasEntries {
		return ErrCustomerHasEntries
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCustomerNotFound
		}
		return err
	}
	return nil
}

package statement

import (
	"context"
	"errors"
	"time"

	"github.com/abagtas/listahan/internal/ledger"
	"github.com/abagtas/listahan/pkg/money"
)

// Common errors
var (
	ErrCustomerNotFound = errors.New("customer not found")
)

// Service reconstructs customer balances from ledger history.
type Service struct {
	repo *Repository
}

// NewService creates a new statement service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Live returns the customer's current outstanding balance straight from
// source records: total debts minus total repayments, floored at zero.
// The cached customers.balance_centavos column is only a memoization of
// this value.
func (s *Service) Live(ctx context.Context, customerID int64) (money.Centavos, error) {
	exists, err := s.repo.CustomerExists(ctx, customerID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrCustomerNotFound
	}

	debts, repayments, err := s.repo.LiveSums(ctx, customerID)
	if err != nil {
		return 0, err
	}

	balance := debts - repayments
	if balance < 0 {
		balance = 0
	}
	return balance, nil
}

// AsOf reconstructs the customer's balance for a historical date: opening
// from everything strictly before the date, a replayed per-entry trail of
// the date itself, and the closing balance. Entries after the date are
// excluded entirely. An optional category restricts the statement to that
// category's ledger.
func (s *Service) AsOf(ctx context.Context, customerID int64, date time.Time, category *string) (*Statement, error) {
	exists, err := s.repo.CustomerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCustomerNotFound
	}

	var filter *string
	if category != nil {
		c := ledger.NormalizeCategory(*category)
		if c != "" {
			filter = &c
		}
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	entries, err := s.repo.EntriesThrough(ctx, customerID, dayEnd, filter)
	if err != nil {
		return nil, err
	}

	opening, lines, closing := BuildStatement(entries, dayStart, dayEnd)

	return &Statement{
		CustomerID: customerID,
		Date:       dayStart,
		Category:   filter,
		Opening:    opening,
		Lines:      lines,
		Closing:    closing,
	}, nil
}

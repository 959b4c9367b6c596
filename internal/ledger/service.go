package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abagtas/listahan/internal/ledger/allocation"
	"github.com/abagtas/listahan/pkg/keylock"
	"github.com/abagtas/listahan/pkg/money"
)

// Common errors
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrEmptyCategory     = errors.New("category is required")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrDebtNotFound      = errors.New("debt not found")
	ErrRepaymentNotFound = errors.New("repayment not found")
	ErrDebtHasPayments   = errors.New("debt has payments applied; delete the covering repayments first")
	ErrInvalidEntryType  = errors.New("entry type must be DEBT or REPAYMENT")
)

// recalcAttempts bounds the balance recalculation retry after a successful
// entity write. Recalculation recomputes from source records, so repeating
// it is always safe; the audit job is the backstop if all attempts fail.
const recalcAttempts = 3

// Store is the durable ledger the service drives.
type Store interface {
	GetDebt(ctx context.Context, id int64) (*Debt, error)
	InsertDebt(ctx context.Context, d *Debt) (*Debt, error)
	DeleteDebt(ctx context.Context, id int64) error
	UpdateDebtPaid(ctx context.Context, id int64, paid money.Centavos, status DebtStatus) error
	UpdateDebtCategory(ctx context.Context, id int64, category string) error

	GetRepayment(ctx context.Context, id int64) (*Repayment, error)
	InsertRepayment(ctx context.Context, p *Repayment) (*Repayment, error)
	DeleteRepayment(ctx context.Context, id int64) error
	UpdateRepaymentCategory(ctx context.Context, id int64, category string) error

	OpenDebts(ctx context.Context, customerID int64, category string) ([]*Debt, error)
	PaidDebts(ctx context.Context, customerID int64, category string) ([]*Debt, error)
	ListDebts(ctx context.Context, customerID int64, category *string) ([]*Debt, error)
	ListRepayments(ctx context.Context, customerID int64, category *string) ([]*Repayment, error)
	Categories(ctx context.Context) ([]string, error)
	LedgerSums(ctx context.Context, customerID int64) (money.Centavos, money.Centavos, error)
}

// CustomerStore is the slice of the customer feature the ledger needs.
type CustomerStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
	UpdateBalance(ctx context.Context, id int64, balance money.Centavos) error
}

// Notifier consumes ledger events. Delivery is fire-and-forget; failures
// are logged and never roll back the mutation that produced the event.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Service handles ledger business logic
type Service struct {
	store     Store
	customers CustomerStore
	notifier  Notifier
	locks     *keylock.KeyLock
	log       *logrus.Logger
}

// NewService creates a new ledger service. The key lock serializes all
// mutations and balance recalculations per customer; pass the same instance
// to the audit service.
func NewService(store Store, customers CustomerStore, notifier Notifier, locks *keylock.KeyLock, log *logrus.Logger) *Service {
	return &Service{
		store:     store,
		customers: customers,
		notifier:  notifier,
		locks:     locks,
		log:       log,
	}
}

// CreateDebt records a new debt. With req.Paid set it performs the POS
// cash-sale pattern: the debt is written fully paid and a matching
// repayment is recorded alongside it.
func (s *Service) CreateDebt(ctx context.Context, req *CreateDebtRequest) (*Debt, *Repayment, error) {
	category := NormalizeCategory(req.Category)
	if category == "" {
		return nil, nil, ErrEmptyCategory
	}

	amount := money.FromPesos(req.Amount)
	if amount < 0 || (amount == 0 && !req.Adjustment) {
		return nil, nil, ErrInvalidAmount
	}

	exists, err := s.customers.Exists(ctx, req.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, ErrCustomerNotFound
	}

	s.locks.Lock(req.CustomerID)
	defer s.locks.Unlock(req.CustomerID)

	paid := money.Centavos(0)
	if req.Paid {
		paid = amount
	}
	debt := &Debt{
		CustomerID:     req.CustomerID,
		AmountCentavos: amount,
		PaidCentavos:   paid,
		Category:       category,
		Status:         StatusFor(paid, amount),
		OrderRef:       req.OrderRef,
		Note:           req.Note,
	}

	debt, err = s.store.InsertDebt(ctx, debt)
	if err != nil {
		return nil, nil, err
	}

	var repayment *Repayment
	if req.Paid && amount > 0 {
		repayment, err = s.store.InsertRepayment(ctx, &Repayment{
			CustomerID:     req.CustomerID,
			AmountCentavos: amount,
			Category:       category,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	if err := s.recalcBalance(ctx, req.CustomerID); err != nil {
		return nil, nil, err
	}

	s.emit(Event{CustomerID: req.CustomerID, Kind: EventDebt, Amount: amount, Category: category})
	if repayment != nil {
		s.emit(Event{CustomerID: req.CustomerID, Kind: EventRepayment, Amount: amount, Category: category})
	}

	return debt, repayment, nil
}

// AllocationOutcome is the service-level result of ApplyRepayment.
type AllocationOutcome struct {
	Repayment   *Repayment
	Changes     []allocation.Change
	Statuses    map[int64]DebtStatus
	Consumed    money.Centavos
	Surplus     money.Centavos
	NoOpenDebts bool
}

// ApplyRepayment distributes amount across the customer's open debts in the
// category, oldest first, and records one repayment for the consumed
// portion. When nothing is open the call succeeds with zero effect and
// NoOpenDebts set — callers must surface that distinctly from an error.
// Surplus beyond the open total is returned for the caller to flag, never
// persisted.
func (s *Service) ApplyRepayment(ctx context.Context, req *ApplyRepaymentRequest) (*AllocationOutcome, error) {
	category := NormalizeCategory(req.Category)
	if category == "" {
		return nil, ErrEmptyCategory
	}

	amount := money.FromPesos(req.Amount)
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	exists, err := s.customers.Exists(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCustomerNotFound
	}

	s.locks.Lock(req.CustomerID)
	defer s.locks.Unlock(req.CustomerID)

	open, err := s.store.OpenDebts(ctx, req.CustomerID, category)
	if err != nil {
		return nil, err
	}

	result := allocation.Apply(toStates(open), amount)
	if result.Consumed == 0 {
		// Zero-effect success: no repayment row, balance untouched.
		return &AllocationOutcome{Surplus: result.Surplus, NoOpenDebts: true}, nil
	}

	amounts := make(map[int64]money.Centavos, len(open))
	for _, d := range open {
		amounts[d.ID] = d.AmountCentavos
	}

	statuses := make(map[int64]DebtStatus, len(result.Changes))
	for _, ch := range result.Changes {
		status := StatusFor(ch.NewPaid, amounts[ch.DebtID])
		if err := s.store.UpdateDebtPaid(ctx, ch.DebtID, ch.NewPaid, status); err != nil {
			return nil, err
		}
		statuses[ch.DebtID] = status
	}

	repayment, err := s.store.InsertRepayment(ctx, &Repayment{
		CustomerID:     req.CustomerID,
		AmountCentavos: result.Consumed,
		Category:       category,
	})
	if err != nil {
		return nil, err
	}

	if err := s.recalcBalance(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	if result.Surplus > 0 {
		s.log.WithFields(logrus.Fields{
			"customer_id": req.CustomerID,
			"category":    category,
			"surplus":     result.Surplus,
		}).Warn("repayment exceeded open debts; surplus discarded")
	}

	s.emit(Event{CustomerID: req.CustomerID, Kind: EventRepayment, Amount: result.Consumed, Category: category})

	return &AllocationOutcome{
		Repayment: repayment,
		Changes:   result.Changes,
		Statuses:  statuses,
		Consumed:  result.Consumed,
		Surplus:   result.Surplus,
	}, nil
}

// DeleteDebt removes a debt that has no payments applied. Debts with paid
// amounts cannot be deleted: the aggregate-repayment model has no exact way
// to reattach their payments, so the covering repayments must go first.
func (s *Service) DeleteDebt(ctx context.Context, id int64) error {
	debt, err := s.store.GetDebt(ctx, id)
	if err != nil {
		return err
	}
	if debt == nil {
		return ErrDebtNotFound
	}

	s.locks.Lock(debt.CustomerID)
	defer s.locks.Unlock(debt.CustomerID)

	// Re-read under the lock; an allocation may have landed in between.
	debt, err = s.store.GetDebt(ctx, id)
	if err != nil {
		return err
	}
	if debt == nil {
		return ErrDebtNotFound
	}
	if debt.PaidCentavos > 0 {
		return ErrDebtHasPayments
	}

	if err := s.store.DeleteDebt(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDebtNotFound
		}
		return err
	}

	if err := s.recalcBalance(ctx, debt.CustomerID); err != nil {
		return err
	}

	s.emit(Event{CustomerID: debt.CustomerID, Kind: EventDeletion, Amount: debt.AmountCentavos, Category: debt.Category})
	return nil
}

// DeleteRepayment removes a repayment and un-applies its amount from the
// customer's debts in the same category, most recently created first —
// those are the debts most likely covered by this repayment. Affected
// statuses are recomputed.
func (s *Service) DeleteRepayment(ctx context.Context, id int64) error {
	repayment, err := s.store.GetRepayment(ctx, id)
	if err != nil {
		return err
	}
	if repayment == nil {
		return ErrRepaymentNotFound
	}

	s.locks.Lock(repayment.CustomerID)
	defer s.locks.Unlock(repayment.CustomerID)

	// Re-read under the lock; a concurrent delete may have won, and
	// reversing twice would strip paid amounts covered by other repayments.
	repayment, err = s.store.GetRepayment(ctx, id)
	if err != nil {
		return err
	}
	if repayment == nil {
		return ErrRepaymentNotFound
	}

	paid, err := s.store.PaidDebts(ctx, repayment.CustomerID, repayment.Category)
	if err != nil {
		return err
	}

	result := allocation.Reverse(toStates(paid), repayment.AmountCentavos)

	amounts := make(map[int64]money.Centavos, len(paid))
	for _, d := range paid {
		amounts[d.ID] = d.AmountCentavos
	}
	for _, ch := range result.Changes {
		status := StatusFor(ch.NewPaid, amounts[ch.DebtID])
		if err := s.store.UpdateDebtPaid(ctx, ch.DebtID, ch.NewPaid, status); err != nil {
			return err
		}
	}

	if err := s.store.DeleteRepayment(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRepaymentNotFound
		}
		return err
	}

	if result.Surplus > 0 {
		// More credit than paid debt in the category; the live balance
		// floors at zero so the customer total stays consistent.
		s.log.WithFields(logrus.Fields{
			"repayment_id": id,
			"customer_id":  repayment.CustomerID,
			"unapplied":    result.Surplus,
		}).Warn("repayment deletion could not un-apply full amount")
	}

	if err := s.recalcBalance(ctx, repayment.CustomerID); err != nil {
		return err
	}

	s.emit(Event{CustomerID: repayment.CustomerID, Kind: EventDeletion, Amount: repayment.AmountCentavos, Category: repayment.Category})
	return nil
}

// ReassignCategory moves one ledger entry to a new category. Amounts are
// untouched and the customer total is invariant, so no balance
// recalculation runs.
func (s *Service) ReassignCategory(ctx context.Context, entryID int64, entryType, newCategory string) error {
	category := NormalizeCategory(newCategory)
	if category == "" {
		return ErrEmptyCategory
	}

	switch entryType {
	case string(EventDebt):
		debt, err := s.store.GetDebt(ctx, entryID)
		if err != nil {
			return err
		}
		if debt == nil {
			return ErrDebtNotFound
		}

		s.locks.Lock(debt.CustomerID)
		defer s.locks.Unlock(debt.CustomerID)

		if err := s.store.UpdateDebtCategory(ctx, entryID, category); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrDebtNotFound
			}
			return err
		}
		s.emit(Event{CustomerID: debt.CustomerID, Kind: EventDebt, Amount: debt.AmountCentavos, Category: category})
		return nil

	case string(EventRepayment):
		repayment, err := s.store.GetRepayment(ctx, entryID)
		if err != nil {
			return err
		}
		if repayment == nil {
			return ErrRepaymentNotFound
		}

		s.locks.Lock(repayment.CustomerID)
		defer s.locks.Unlock(repayment.CustomerID)

		if err := s.store.UpdateRepaymentCategory(ctx, entryID, category); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrRepaymentNotFound
			}
			return err
		}
		s.emit(Event{CustomerID: repayment.CustomerID, Kind: EventRepayment, Amount: repayment.AmountCentavos, Category: category})
		return nil

	default:
		return ErrInvalidEntryType
	}
}

// BulkReassign applies ReassignCategory to each item in order, the confirm
// step of the drag-and-drop flow. It stops at the first failure; already
// reassigned entries stay reassigned (each reassignment is independent and
// total-neutral).
func (s *Service) BulkReassign(ctx context.Context, req *BulkReassignRequest) (int, error) {
	for i, item := range req.Items {
		if err := s.ReassignCategory(ctx, item.EntryID, item.EntryType, req.Category); err != nil {
			return i, fmt.Errorf("item %d (entry %d): %w", i, item.EntryID, err)
		}
	}
	return len(req.Items), nil
}

// ListDebts returns a customer's debts, optionally filtered by category
func (s *Service) ListDebts(ctx context.Context, customerID int64, category *string) ([]*Debt, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.store.ListDebts(ctx, customerID, normalizeFilter(category))
}

// ListRepayments returns a customer's repayments, optionally filtered by category
func (s *Service) ListRepayments(ctx context.Context, customerID int64, category *string) ([]*Repayment, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.store.ListRepayments(ctx, customerID, normalizeFilter(category))
}

// Categories returns the union of category strings across all customers
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}

func (s *Service) requireCustomer(ctx context.Context, customerID int64) error {
	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCustomerNotFound
	}
	return nil
}

// recalcBalance recomputes the customer's cached balance from source
// records. It retries because a stale cache after a successful entity write
// is the one failure the engine must not leave behind silently; if every
// attempt fails the whole mutation is reported failed and the audit job
// remains the backstop.
func (s *Service) recalcBalance(ctx context.Context, customerID int64) error {
	var lastErr error
	for attempt := 0; attempt < recalcAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("balance recalculation cancelled: %w", ctx.Err())
			case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
			}
		}

		debts, repayments, err := s.store.LedgerSums(ctx, customerID)
		if err != nil {
			lastErr = err
			continue
		}

		balance := debts - repayments
		if balance < 0 {
			balance = 0
		}

		if err := s.customers.UpdateBalance(ctx, customerID, balance); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	s.log.WithError(lastErr).WithField("customer_id", customerID).
		Error("balance recalculation failed; cache is stale until next audit")
	return fmt.Errorf("balance recalculation failed: %w", lastErr)
}

// emit delivers a ledger event without blocking the mutation path.
func (s *Service) emit(event Event) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.notifier.Notify(ctx, event); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"customer_id": event.CustomerID,
				"kind":        event.Kind,
			}).Warn("ledger event delivery failed")
		}
	}()
}

func toStates(debts []*Debt) []allocation.DebtState {
	states := make([]allocation.DebtState, len(debts))
	for i, d := range debts {
		states[i] = allocation.DebtState{
			ID:        d.ID,
			CreatedAt: d.CreatedAt,
			Amount:    d.AmountCentavos,
			Paid:      d.PaidCentavos,
		}
	}
	return states
}

func normalizeFilter(category *string) *string {
	if category == nil {
		return nil
	}
	c := NormalizeCategory(*category)
	if c == "" {
		return nil
	}
	return &c
}

package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abagtas/listahan/pkg/keylock"
	"github.com/abagtas/listahan/pkg/money"
)

// Common errors
var (
	ErrRunNotFound      = errors.New("audit run not found")
	ErrRunAlreadyActive = errors.New("an audit run is already in progress")
)

// CustomerBalance pairs a customer with its cached balance.
type CustomerBalance struct {
	CustomerID int64
	Cached     money.Centavos
}

// Store is the audit job's view of the durable store. It reads ledger
// history and writes only the customer balance cache — debts and
// repayments are never touched.
type Store interface {
	CustomerBalances(ctx context.Context) ([]CustomerBalance, error)
	LedgerSums(ctx context.Context, customerID int64) (money.Centavos, money.Centavos, error)
	UpdateBalance(ctx context.Context, customerID int64, balance money.Centavos) error
}

// ProgressFunc receives incremental progress during a recalibration pass.
type ProgressFunc func(processed, total int, message string)

// RunState describes where a background audit run is in its lifecycle.
type RunState string

const (
	RunStateRunning   RunState = "RUNNING"
	RunStateCompleted RunState = "COMPLETED"
	RunStateFailed    RunState = "FAILED"
)

// Run is a snapshot of one audit run's progress, safe to hand to callers.
type Run struct {
	ID         string     `json:"id"`
	State      RunState   `json:"state"`
	Processed  int        `json:"processed"`
	Total      int        `json:"total"`
	Adjusted   int        `json:"adjusted"`
	Message    string     `json:"message"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Service runs balance recalibrations: it recomputes every customer's
// live balance from raw ledger history and corrects cache drift. Runs are
// at-least-once convergent — a customer mutated mid-run may be corrected
// from slightly stale inputs, and the next run always lands on the truth.
type Service struct {
	store Store
	locks *keylock.KeyLock
	log   *logrus.Logger

	mu     sync.Mutex
	runs   map[string]*Run
	active string
}

// NewService creates a new audit service. Pass the same key lock the
// ledger service uses so corrections never interleave with mutations for
// the same customer.
func NewService(store Store, locks *keylock.KeyLock, log *logrus.Logger) *Service {
	return &Service{
		store: store,
		locks: locks,
		log:   log,
		runs:  make(map[string]*Run),
	}
}

// RecalibrateAll walks every customer, recomputes the live balance from
// source records and overwrites the cache where it drifted. Progress is
// reported after each customer. Cancellation is honored between customers;
// a failure aborts the remainder without undoing completed corrections.
// Returns the number of customers whose cache was adjusted.
func (s *Service) RecalibrateAll(ctx context.Context, progress ProgressFunc) (int, error) {
	customers, err := s.store.CustomerBalances(ctx)
	if err != nil {
		return 0, fmt.Errorf("audit failed to list customers: %w", err)
	}

	total := len(customers)
	adjusted := 0

	for i, c := range customers {
		if err := ctx.Err(); err != nil {
			return adjusted, fmt.Errorf("audit cancelled after %d of %d customers: %w", i, total, err)
		}

		changed, err := s.recalibrate(ctx, c)
		if err != nil {
			return adjusted, fmt.Errorf("audit failed at customer %d (%d of %d): %w", c.CustomerID, i+1, total, err)
		}
		if changed {
			adjusted++
		}

		if progress != nil {
			msg := fmt.Sprintf("checked customer %d", c.CustomerID)
			if changed {
				msg = fmt.Sprintf("corrected customer %d", c.CustomerID)
			}
			progress(i+1, total, msg)
		}
	}

	s.log.WithFields(logrus.Fields{"customers": total, "adjusted": adjusted}).
		Info("balance recalibration finished")
	return adjusted, nil
}

// recalibrate corrects one customer under its ledger lock.
func (s *Service) recalibrate(ctx context.Context, c CustomerBalance) (bool, error) {
	s.locks.Lock(c.CustomerID)
	defer s.locks.Unlock(c.CustomerID)

	debts, repayments, err := s.store.LedgerSums(ctx, c.CustomerID)
	if err != nil {
		return false, err
	}

	live := debts - repayments
	if live < 0 {
		live = 0
	}

	if live == c.Cached {
		return false, nil
	}

	if err := s.store.UpdateBalance(ctx, c.CustomerID, live); err != nil {
		return false, err
	}

	s.log.WithFields(logrus.Fields{
		"customer_id": c.CustomerID,
		"cached":      c.Cached,
		"live":        live,
	}).Warn("corrected drifted balance cache")
	return true, nil
}

// StartRun launches a recalibration in the background and returns its
// handle immediately. The run keeps going after the initiating request
// ends, so it is not tied to a request context.
func (s *Service) StartRun() (*Run, error) {
	s.mu.Lock()
	if s.active != "" {
		s.mu.Unlock()
		return nil, ErrRunAlreadyActive
	}

	run := &Run{
		ID:        uuid.NewString(),
		State:     RunStateRunning,
		StartedAt: time.Now().UTC(),
	}
	s.runs[run.ID] = run
	s.active = run.ID
	snapshot := *run
	s.mu.Unlock()

	go func() {
		adjusted, err := s.RecalibrateAll(context.Background(), func(processed, total int, message string) {
			s.mu.Lock()
			run.Processed = processed
			run.Total = total
			run.Message = message
			s.mu.Unlock()
		})

		now := time.Now().UTC()
		s.mu.Lock()
		run.Adjusted = adjusted
		run.FinishedAt = &now
		if err != nil {
			// Partial progress stays visible: everything corrected so far
			// is durable and a re-run is always safe.
			run.State = RunStateFailed
			run.Message = err.Error()
		} else {
			run.State = RunStateCompleted
			run.Message = fmt.Sprintf("adjusted %d customers", adjusted)
		}
		s.active = ""
		s.mu.Unlock()

		if err != nil {
			s.log.WithError(err).Error("audit run failed")
		}
	}()

	return &snapshot, nil
}

// GetRun returns a snapshot of a run by its ID.
func (s *Service) GetRun(id string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	snapshot := *run
	return &snapshot, nil
}

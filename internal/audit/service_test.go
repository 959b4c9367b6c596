package audit

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abagtas/listahan/pkg/keylock"
	"github.com/abagtas/listahan/pkg/money"
)

type fakeCustomer struct {
	cached     money.Centavos
	debts      money.Centavos
	repayments money.Centavos
}

type fakeStore struct {
	order     []int64
	customers map[int64]*fakeCustomer

	updates  int
	sumsErr  error
	listSeen func()
}

func (s *fakeStore) CustomerBalances(ctx context.Context) ([]CustomerBalance, error) {
	if s.listSeen != nil {
		s.listSeen()
	}
	out := make([]CustomerBalance, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, CustomerBalance{CustomerID: id, Cached: s.customers[id].cached})
	}
	return out, nil
}

func (s *fakeStore) LedgerSums(ctx context.Context, customerID int64) (money.Centavos, money.Centavos, error) {
	if s.sumsErr != nil {
		return 0, 0, s.sumsErr
	}
	c := s.customers[customerID]
	return c.debts, c.repayments, nil
}

func (s *fakeStore) UpdateBalance(ctx context.Context, customerID int64, balance money.Centavos) error {
	s.customers[customerID].cached = balance
	s.updates++
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRecalibrateAll_CorrectsDriftThenConverges(t *testing.T) {
	store := &fakeStore{
		order: []int64{1, 2, 3},
		customers: map[int64]*fakeCustomer{
			1: {cached: 5000, debts: 10000, repayments: 2500},  // drifted, should be 7500
			2: {cached: 4000, debts: 4000, repayments: 0},      // correct
			3: {cached: 1000, debts: 3000, repayments: 5000},   // overpaid history, floors at 0
		},
	}
	svc := NewService(store, keylock.New(), quietLogger())

	adjusted, err := svc.RecalibrateAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("RecalibrateAll() error = %v", err)
	}
	if adjusted != 2 {
		t.Fatalf("adjusted = %d, want 2", adjusted)
	}
	if got := store.customers[1].cached; got != 7500 {
		t.Errorf("customer 1 cached = %d, want 7500", got)
	}
	if got := store.customers[2].cached; got != 4000 {
		t.Errorf("customer 2 cached = %d, want 4000", got)
	}
	if got := store.customers[3].cached; got != 0 {
		t.Errorf("customer 3 cached = %d, want 0", got)
	}

	// A second pass over an already-consistent store writes nothing.
	store.updates = 0
	adjusted, err = svc.RecalibrateAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("second RecalibrateAll() error = %v", err)
	}
	if adjusted != 0 {
		t.Errorf("second pass adjusted = %d, want 0", adjusted)
	}
	if store.updates != 0 {
		t.Errorf("second pass wrote %d updates, want 0", store.updates)
	}
}

func TestRecalibrateAll_ReportsProgress(t *testing.T) {
	store := &fakeStore{
		order: []int64{7, 8},
		customers: map[int64]*fakeCustomer{
			7: {cached: 100, debts: 100},
			8: {cached: 0, debts: 9000, repayments: 1000},
		},
	}
	svc := NewService(store, keylock.New(), quietLogger())

	var calls []int
	_, err := svc.RecalibrateAll(context.Background(), func(processed, total int, message string) {
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
		calls = append(calls, processed)
	})
	if err != nil {
		t.Fatalf("RecalibrateAll() error = %v", err)
	}
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("progress calls = %v, want [1 2]", calls)
	}
}

func TestRecalibrateAll_CancelStopsBetweenCustomers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &fakeStore{
		order: []int64{1, 2, 3},
		customers: map[int64]*fakeCustomer{
			1: {cached: 0, debts: 100},
			2: {cached: 0, debts: 200},
			3: {cached: 0, debts: 300},
		},
	}
	svc := NewService(store, keylock.New(), quietLogger())

	processedBeforeCancel := 0
	_, err := svc.RecalibrateAll(ctx, func(processed, total int, message string) {
		processedBeforeCancel = processed
		if processed == 1 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("RecalibrateAll() error = %v, want context.Canceled", err)
	}
	if processedBeforeCancel != 1 {
		t.Errorf("processed before cancel = %d, want 1", processedBeforeCancel)
	}
	// The first correction stays applied.
	if got := store.customers[1].cached; got != 100 {
		t.Errorf("customer 1 cached = %d, want 100", got)
	}
	if got := store.customers[2].cached; got != 0 {
		t.Errorf("customer 2 cached = %d, want 0 (untouched)", got)
	}
}

func TestRecalibrateAll_FailureKeepsPartialProgress(t *testing.T) {
	store := &fakeStore{
		order: []int64{1, 2},
		customers: map[int64]*fakeCustomer{
			1: {cached: 0, debts: 100},
			2: {cached: 0, debts: 200},
		},
	}
	svc := NewService(store, keylock.New(), quietLogger())

	adjusted, err := svc.RecalibrateAll(context.Background(), func(processed, total int, message string) {
		// Fail the sums query for the second customer.
		store.sumsErr = errors.New("connection reset")
	})
	if err == nil {
		t.Fatal("RecalibrateAll() error = nil, want failure")
	}
	if adjusted != 1 {
		t.Errorf("adjusted = %d, want 1", adjusted)
	}
	if got := store.customers[1].cached; got != 100 {
		t.Errorf("customer 1 cached = %d, want 100", got)
	}
}

func TestStartRun_SingleActiveRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	store := &fakeStore{
		order: []int64{1},
		customers: map[int64]*fakeCustomer{
			1: {cached: 0, debts: 500},
		},
		listSeen: func() {
			close(started)
			<-release
		},
	}
	svc := NewService(store, keylock.New(), quietLogger())

	run, err := svc.StartRun()
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if run.State != RunStateRunning {
		t.Errorf("run state = %s, want RUNNING", run.State)
	}
	<-started

	if _, err := svc.StartRun(); !errors.Is(err, ErrRunAlreadyActive) {
		t.Errorf("second StartRun() error = %v, want ErrRunAlreadyActive", err)
	}
	close(release)

	deadline := time.After(2 * time.Second)
	for {
		got, err := svc.GetRun(run.ID)
		if err != nil {
			t.Fatalf("GetRun() error = %v", err)
		}
		if got.State == RunStateCompleted {
			if got.Adjusted != 1 {
				t.Errorf("run adjusted = %d, want 1", got.Adjusted)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatalf("run did not complete, state = %s", got.State)
		case <-time.After(10 * time.Millisecond):
		}
	}

	// The slot frees up once the run finishes.
	store.listSeen = nil
	if _, err := svc.StartRun(); err != nil {
		t.Errorf("StartRun() after completion error = %v", err)
	}
}

func TestGetRun_Unknown(t *testing.T) {
	svc := NewService(&fakeStore{}, keylock.New(), quietLogger())
	if _, err := svc.GetRun("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun() error = %v, want ErrRunNotFound", err)
	}
}

package allocation

import (
	"testing"
	"time"

	"github.com/abagtas/listahan/pkg/money"
)

var (
	t1 = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 = time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	t3 = time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC)
)

func TestApply_OldestFirst(t *testing.T) {
	debts := []DebtState{
		{ID: 2, CreatedAt: t2, Amount: 5000, Paid: 0},
		{ID: 1, CreatedAt: t1, Amount: 10000, Paid: 0},
	}

	result := Apply(debts, 12000)

	if result.Consumed != 12000 {
		t.Fatalf("Consumed = %d, want 12000", result.Consumed)
	}
	if result.Surplus != 0 {
		t.Fatalf("Surplus = %d, want 0", result.Surplus)
	}
	if len(result.Changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(result.Changes))
	}

	// D1 (older) absorbs its full 100.00, D2 gets the remaining 20.00.
	if result.Changes[0].DebtID != 1 || result.Changes[0].NewPaid != 10000 {
		t.Errorf("first change = %+v, want debt 1 paid to 10000", result.Changes[0])
	}
	if result.Changes[1].DebtID != 2 || result.Changes[1].NewPaid != 2000 {
		t.Errorf("second change = %+v, want debt 2 paid to 2000", result.Changes[1])
	}
}

func TestApply_SurplusNotConsumed(t *testing.T) {
	debts := []DebtState{
		{ID: 1, CreatedAt: t1, Amount: 10000, Paid: 0},
		{ID: 2, CreatedAt: t2, Amount: 5000, Paid: 0},
	}

	// 200.00 against 150.00 open: only 150.00 is consumed, the remaining
	// 50.00 is surfaced as surplus for the caller to flag.
	result := Apply(debts, 20000)

	if result.Consumed != 15000 {
		t.Errorf("Consumed = %d, want 15000", result.Consumed)
	}
	if result.Surplus != 5000 {
		t.Errorf("Surplus = %d, want 5000", result.Surplus)
	}
}

func TestApply_SkipsPaidAndPartials(t *testing.T) {
	debts := []DebtState{
		{ID: 1, CreatedAt: t1, Amount: 10000, Paid: 10000}, // fully paid
		{ID: 2, CreatedAt: t2, Amount: 6000, Paid: 1000},
		{ID: 3, CreatedAt: t3, Amount: 4000, Paid: 0},
	}

	result := Apply(debts, 7000)

	if len(result.Changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(result.Changes))
	}
	if result.Changes[0].DebtID != 2 || result.Changes[0].NewPaid != 6000 {
		t.Errorf("first change = %+v, want debt 2 topped up to 6000", result.Changes[0])
	}
	if result.Changes[1].DebtID != 3 || result.Changes[1].NewPaid != 2000 {
		t.Errorf("second change = %+v, want debt 3 paid to 2000", result.Changes[1])
	}
}

func TestApply_EqualTimestampsTieBreakByID(t *testing.T) {
	debts := []DebtState{
		{ID: 9, CreatedAt: t1, Amount: 100, Paid: 0},
		{ID: 3, CreatedAt: t1, Amount: 100, Paid: 0},
	}

	result := Apply(debts, 100)

	if result.Changes[0].DebtID != 3 {
		t.Errorf("tie-break applied to debt %d first, want 3", result.Changes[0].DebtID)
	}
}

func TestApply_NoOpenDebts(t *testing.T) {
	result := Apply(nil, 5000)

	if result.Consumed != 0 || len(result.Changes) != 0 {
		t.Errorf("Apply over no debts consumed %d with %d changes, want zero effect",
			result.Consumed, len(result.Changes))
	}
	if result.Surplus != 5000 {
		t.Errorf("Surplus = %d, want 5000", result.Surplus)
	}
}

func TestReverse_NewestFirst(t *testing.T) {
	// The 120.00 repayment from the FIFO test left D1 fully paid and D2
	// partially paid. Reversal walks newest-created first and restores both
	// to unpaid.
	debts := []DebtState{
		{ID: 1, CreatedAt: t1, Amount: 10000, Paid: 10000},
		{ID: 2, CreatedAt: t2, Amount: 5000, Paid: 2000},
	}

	result := Reverse(debts, 12000)

	if result.Consumed != 12000 || result.Surplus != 0 {
		t.Fatalf("Consumed = %d Surplus = %d, want 12000/0", result.Consumed, result.Surplus)
	}
	if len(result.Changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(result.Changes))
	}
	if result.Changes[0].DebtID != 2 || result.Changes[0].NewPaid != 0 {
		t.Errorf("first change = %+v, want debt 2 back to 0", result.Changes[0])
	}
	if result.Changes[1].DebtID != 1 || result.Changes[1].NewPaid != 0 {
		t.Errorf("second change = %+v, want debt 1 back to 0", result.Changes[1])
	}
}

func TestReverse_StopsWhenNothingPaidRemains(t *testing.T) {
	debts := []DebtState{
		{ID: 1, CreatedAt: t1, Amount: 10000, Paid: 3000},
	}

	result := Reverse(debts, 5000)

	if result.Consumed != 3000 {
		t.Errorf("Consumed = %d, want 3000", result.Consumed)
	}
	if result.Surplus != 2000 {
		t.Errorf("Surplus = %d, want 2000", result.Surplus)
	}
}

// Reversal is a heuristic, not an exact inverse: when another repayment
// landed between the original allocation and its deletion, the newest-first
// walk can pull paid amount off different debts than the deleted repayment
// originally covered. Totals still balance; only per-debt attribution moves.
func TestReverse_DivergesFromOriginalAllocation(t *testing.T) {
	// Repayment A (30.00) originally covered part of D1 (oldest). Then
	// repayment B (50.00) finished D1 and started D2.
	debts := []DebtState{
		{ID: 1, CreatedAt: t1, Amount: 6000, Paid: 6000},
		{ID: 2, CreatedAt: t2, Amount: 4000, Paid: 2000},
	}

	// Deleting repayment A now removes from D2 first, even though A never
	// touched D2.
	result := Reverse(debts, 3000)

	if len(result.Changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(result.Changes))
	}
	if result.Changes[0].DebtID != 2 || result.Changes[0].Delta != -2000 {
		t.Errorf("first change = %+v, want -2000 off debt 2", result.Changes[0])
	}
	if result.Changes[1].DebtID != 1 || result.Changes[1].Delta != -1000 {
		t.Errorf("second change = %+v, want -1000 off debt 1", result.Changes[1])
	}

	// The customer-level total is exact regardless of attribution.
	if result.Consumed != 3000 {
		t.Errorf("Consumed = %d, want 3000", result.Consumed)
	}
}

func TestApplyThenReverse_RestoresPaidTotals(t *testing.T) {
	debts := []DebtState{
		{ID: 1, CreatedAt: t1, Amount: 7500, Paid: 500},
		{ID: 2, CreatedAt: t2, Amount: 2500, Paid: 0},
		{ID: 3, CreatedAt: t3, Amount: 10000, Paid: 0},
	}

	applied := Apply(debts, 9000)

	// Carry the new paid values into a post-allocation snapshot.
	after := make([]DebtState, len(debts))
	copy(after, debts)
	for _, ch := range applied.Changes {
		for i := range after {
			if after[i].ID == ch.DebtID {
				after[i].Paid = ch.NewPaid
			}
		}
	}

	reversed := Reverse(after, applied.Consumed)

	if reversed.Consumed != applied.Consumed {
		t.Fatalf("reversed %d, applied %d", reversed.Consumed, applied.Consumed)
	}

	var delta money.Centavos
	for _, ch := range applied.Changes {
		delta += ch.Delta
	}
	for _, ch := range reversed.Changes {
		delta += ch.Delta
	}
	if delta != 0 {
		t.Errorf("net paid delta after apply+reverse = %d, want 0", delta)
	}
}

package allocation

import (
	"sort"
	"time"

	"github.com/abagtas/listahan/pkg/money"
)

// =============================================================================
// REPAYMENT ALLOCATION
// Pure arithmetic over a customer's debts in one category. The caller loads
// rows and persists the resulting changes; nothing here touches a store.
// =============================================================================

// DebtState is the slice of a debt row the allocator needs.
type DebtState struct {
	ID        int64
	CreatedAt time.Time
	Amount    money.Centavos
	Paid      money.Centavos
}

// Remaining returns the unpaid portion of the debt.
func (d DebtState) Remaining() money.Centavos {
	return d.Amount - d.Paid
}

// Change records how one debt's paid amount moves.
type Change struct {
	DebtID  int64
	Delta   money.Centavos // positive when applying, negative when reversing
	NewPaid money.Centavos
}

// Result is the outcome of an Apply or Reverse pass.
type Result struct {
	Changes  []Change
	Consumed money.Centavos // portion of the requested amount actually moved
	Surplus  money.Centavos // requested minus consumed; never persisted
}

// Apply distributes amount across the given debts oldest-created-first,
// filling each debt's remaining balance before moving to the next. Equal
// timestamps break ties by ascending ID so the result is deterministic.
// Fully paid debts are skipped. Any amount left after the last open debt is
// returned as Surplus.
func Apply(debts []DebtState, amount money.Centavos) Result {
	ordered := make([]DebtState, len(debts))
	copy(ordered, debts)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	result := Result{}
	left := amount
	for _, d := range ordered {
		if left <= 0 {
			break
		}
		remaining := d.Remaining()
		if remaining <= 0 {
			continue
		}
		applied := money.Min(remaining, left)
		result.Changes = append(result.Changes, Change{
			DebtID:  d.ID,
			Delta:   applied,
			NewPaid: d.Paid + applied,
		})
		left -= applied
	}

	result.Consumed = amount - left
	result.Surplus = left
	return result
}

// Reverse un-applies amount from the given debts most-recently-created
// first, the inverse of Apply's FIFO order. The most recently created debts
// are the ones most likely covered by the repayment being deleted, so they
// lose their paid amount first. Equal timestamps break ties by descending
// ID. Debts with nothing paid are skipped. Surplus carries whatever portion
// could not be un-applied because no paid debt remained.
func Reverse(debts []DebtState, amount money.Centavos) Result {
	ordered := make([]DebtState, len(debts))
	copy(ordered, debts)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID > ordered[j].ID
		}
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	result := Result{}
	left := amount
	for _, d := range ordered {
		if left <= 0 {
			break
		}
		if d.Paid <= 0 {
			continue
		}
		removed := money.Min(d.Paid, left)
		result.Changes = append(result.Changes, Change{
			DebtID:  d.ID,
			Delta:   -removed,
			NewPaid: d.Paid - removed,
		})
		left -= removed
	}

	result.Consumed = amount - left
	result.Surplus = left
	return result
}

package statement

import (
	"testing"
	"time"

	"github.com/abagtas/listahan/pkg/money"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func at(d, hour int) time.Time {
	return time.Date(2025, 3, d, hour, 0, 0, 0, time.UTC)
}

// Debt of 100.00 on day 1, repayment of 40.00 on day 3. The balance as of
// day 2 is the full 100.00; as of day 4 it is 60.00.
func TestBuildStatement_HistoricalReconstruction(t *testing.T) {
	history := []Entry{
		{Kind: EntryDebt, EntryID: 1, Amount: 10000, Category: "Rice", CreatedAt: at(1, 10)},
		{Kind: EntryRepayment, EntryID: 2, Amount: 4000, Category: "Rice", CreatedAt: at(3, 15)},
	}

	// As of day 2: only entries before day 3 matter, the repayment hasn't
	// happened yet.
	upToDay2 := history[:1]
	opening, lines, closing := BuildStatement(upToDay2, day(2), day(3))
	if opening != 10000 {
		t.Errorf("day 2 opening = %d, want 10000", opening)
	}
	if len(lines) != 0 {
		t.Errorf("day 2 has %d trail lines, want 0", len(lines))
	}
	if closing != 10000 {
		t.Errorf("day 2 closing = %d, want 10000", closing)
	}

	opening, lines, closing = BuildStatement(history, day(4), day(5))
	if opening != 6000 {
		t.Errorf("day 4 opening = %d, want 6000", opening)
	}
	if len(lines) != 0 {
		t.Errorf("day 4 has %d trail lines, want 0", len(lines))
	}
	if closing != 6000 {
		t.Errorf("day 4 closing = %d, want 6000", closing)
	}
}

func TestBuildStatement_RunningTrail(t *testing.T) {
	history := []Entry{
		{Kind: EntryDebt, EntryID: 1, Amount: 5000, Category: "Rice", CreatedAt: at(1, 9)},
		{Kind: EntryDebt, EntryID: 2, Amount: 3000, Category: "Load", CreatedAt: at(2, 8)},
		{Kind: EntryRepayment, EntryID: 3, Amount: 2000, Category: "Rice", CreatedAt: at(2, 12)},
		{Kind: EntryDebt, EntryID: 4, Amount: 1500, Category: "Rice", CreatedAt: at(2, 17)},
	}

	opening, lines, closing := BuildStatement(history, day(2), day(3))

	if opening != 5000 {
		t.Fatalf("opening = %d, want 5000", opening)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d trail lines, want 3", len(lines))
	}

	wantRunning := []money.Centavos{8000, 6000, 7500}
	for i, want := range wantRunning {
		if lines[i].Running != want {
			t.Errorf("line %d running = %d, want %d", i, lines[i].Running, want)
		}
	}
	if closing != 7500 {
		t.Errorf("closing = %d, want 7500", closing)
	}
}

func TestBuildStatement_ExcludesLaterEntries(t *testing.T) {
	// The caller loads entries strictly before dayEnd; anything at or past
	// dayEnd that slips through is still ignored.
	history := []Entry{
		{Kind: EntryDebt, EntryID: 1, Amount: 10000, CreatedAt: at(1, 10)},
		{Kind: EntryDebt, EntryID: 2, Amount: 999, CreatedAt: at(3, 10)},
	}

	_, lines, closing := BuildStatement(history, day(1), day(2))
	if len(lines) != 1 {
		t.Fatalf("got %d trail lines, want 1", len(lines))
	}
	if closing != 10000 {
		t.Errorf("closing = %d, want 10000", closing)
	}
}

func TestBuildStatement_ClosingFloorsAtZero(t *testing.T) {
	// Historic data can carry more credit than debit in a window; the
	// closing floors at zero like the live balance, while the trail keeps
	// the true running values.
	history := []Entry{
		{Kind: EntryDebt, EntryID: 1, Amount: 1000, CreatedAt: at(1, 9)},
		{Kind: EntryRepayment, EntryID: 2, Amount: 2500, CreatedAt: at(1, 10)},
	}

	opening, lines, closing := BuildStatement(history, day(1), day(2))
	if opening != 0 {
		t.Errorf("opening = %d, want 0", opening)
	}
	if lines[len(lines)-1].Running != -1500 {
		t.Errorf("last running = %d, want -1500", lines[len(lines)-1].Running)
	}
	if closing != 0 {
		t.Errorf("closing = %d, want 0", closing)
	}
}

func TestBuildStatement_EmptyHistory(t *testing.T) {
	opening, lines, closing := BuildStatement(nil, day(1), day(2))
	if opening != 0 || closing != 0 || len(lines) != 0 {
		t.Errorf("empty history: opening %d closing %d lines %d, want all zero",
			opening, closing, len(lines))
	}
}

// The live balance equals the as-of closing for "today": replaying the
// full history through end of day matches the plain sum.
func TestBuildStatement_MatchesLiveSum(t *testing.T) {
	history := []Entry{
		{Kind: EntryDebt, EntryID: 1, Amount: 12000, CreatedAt: at(1, 9)},
		{Kind: EntryRepayment, EntryID: 2, Amount: 5000, CreatedAt: at(2, 9)},
		{Kind: EntryDebt, EntryID: 3, Amount: 700, CreatedAt: at(3, 9)},
		{Kind: EntryRepayment, EntryID: 4, Amount: 1700, CreatedAt: at(3, 11)},
	}

	var live money.Centavos
	for _, e := range history {
		if e.Kind == EntryDebt {
			live += e.Amount
		} else {
			live -= e.Amount
		}
	}
	if live < 0 {
		live = 0
	}

	_, _, closing := BuildStatement(history, day(3), day(4))
	if closing != live {
		t.Errorf("as-of closing = %d, live = %d; must be equal", closing, live)
	}
}

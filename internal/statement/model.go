package statement

import (
	"time"

	"github.com/abagtas/listahan/pkg/money"
)

// EntryKind marks which side of the ledger an entry sits on.
type EntryKind string

const (
	EntryDebt      EntryKind = "DEBT"
	EntryRepayment EntryKind = "REPAYMENT"
)

// Entry is one ledger row flattened for replay. Amount is always positive;
// the kind decides the sign during replay.
type Entry struct {
	Kind      EntryKind      `json:"kind"`
	EntryID   int64          `json:"entry_id"`
	Amount    money.Centavos `json:"amount_centavos"`
	Category  string         `json:"category"`
	CreatedAt time.Time      `json:"created_at"`
}

// delta is the entry's signed effect on the balance.
func (e Entry) delta() money.Centavos {
	if e.Kind == EntryRepayment {
		return -e.Amount
	}
	return e.Amount
}

// Line is one row of the statement trail: an entry plus the balance after it.
type Line struct {
	Entry
	Running money.Centavos `json:"running_centavos"`
}

// Statement is the as-of reconstruction for one date: the opening balance
// carried in from everything strictly before the date, a replay trail of
// the date's entries, and the closing balance.
type Statement struct {
	CustomerID int64
	Date       time.Time
	Category   *string
	Opening    money.Centavos
	Lines      []Line
	Closing    money.Centavos
}

// BuildStatement partitions a chronologically ordered entry history at the
// [dayStart, dayEnd) window: entries before dayStart fold into the opening
// balance, entries inside the window become the replay trail, and anything
// at or after dayEnd must not be passed in. The closing balance floors at
// zero, matching the live balance; the trail itself is unfloored — it is a
// faithful record of the day's motion.
func BuildStatement(entries []Entry, dayStart, dayEnd time.Time) (money.Centavos, []Line, money.Centavos) {
	var opening money.Centavos
	var lines []Line

	running := money.Centavos(0)
	seededRunning := false

	for _, e := range entries {
		if e.CreatedAt.Before(dayStart) {
			opening += e.delta()
			continue
		}
		if !e.CreatedAt.Before(dayEnd) {
			continue
		}
		if !seededRunning {
			running = opening
			seededRunning = true
		}
		running += e.delta()
		lines = append(lines, Line{Entry: e, Running: running})
	}

	closing := opening
	if seededRunning {
		closing = running
	}
	if closing < 0 {
		closing = 0
	}
	return opening, lines, closing
}

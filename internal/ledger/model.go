package ledger

import (
	"time"

	"github.com/abagtas/listahan/pkg/money"
)

// DebtStatus is derived from the paid/amount pair and persisted for
// cheap querying.
type DebtStatus string

const (
	DebtStatusUnpaid  DebtStatus = "UNPAID"
	DebtStatusPartial DebtStatus = "PARTIAL"
	DebtStatusPaid    DebtStatus = "PAID"
)

// StatusFor derives a debt status from its paid and original amounts.
func StatusFor(paid, amount money.Centavos) DebtStatus {
	switch {
	case paid == 0:
		return DebtStatusUnpaid
	case paid >= amount:
		return DebtStatusPaid
	default:
		return DebtStatusPartial
	}
}

// Debt is a debit ledger entry. AmountCentavos and CreatedAt are immutable
// once written; PaidCentavos moves only through allocation and repayment
// deletion, and Category only through reassignment.
type Debt struct {
	ID             int64          `json:"id"`
	CustomerID     int64          `json:"customer_id"`
	AmountCentavos money.Centavos `json:"amount_centavos"`
	PaidCentavos   money.Centavos `json:"paid_centavos"`
	Category       string         `json:"category"`
	Status         DebtStatus     `json:"status"`
	OrderRef       *string        `json:"order_ref,omitempty"`
	Note           *string        `json:"note,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Remaining returns the unpaid portion of the debt.
func (d *Debt) Remaining() money.Centavos {
	return d.AmountCentavos - d.PaidCentavos
}

// Repayment is a credit ledger entry. It is a single aggregate record per
// allocation pass; which debts it covered is recomputed from FIFO order
// when needed, never stored.
type Repayment struct {
	ID             int64          `json:"id"`
	CustomerID     int64          `json:"customer_id"`
	AmountCentavos money.Centavos `json:"amount_centavos"`
	Category       string         `json:"category"`
	CreatedAt      time.Time      `json:"created_at"`
}

// EventKind classifies a ledger mutation for the notification stream.
type EventKind string

const (
	EventDebt      EventKind = "DEBT"
	EventRepayment EventKind = "REPAYMENT"
	EventDeletion  EventKind = "DELETION"
)

// Event is the fire-and-forget record emitted after every ledger mutation.
type Event struct {
	CustomerID int64
	Kind       EventKind
	Amount     money.Centavos
	Category   string
}

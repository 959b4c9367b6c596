package customer

import (
	"time"

	"github.com/abagtas/listahan/pkg/money"
)

// Customer represents a store customer with a running utang balance.
// BalanceCentavos is a cache of the live balance derived from the ledger;
// it is written only by the ledger engine and the audit job.
type Customer struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Phone           *string        `json:"phone,omitempty"`
	BalanceCentavos money.Centavos `json:"balance_centavos"`
	CreatedAt       time.Time      `json:"created_at"`
}

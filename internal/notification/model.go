package notification

import (
	"time"

	"github.com/abagtas/listahan/pkg/money"
)

// Notification represents a stored ledger event notification
type Notification struct {
	ID             int64          `json:"id"`
	CustomerID     int64          `json:"customer_id"`
	Kind           string         `json:"kind"`
	Message        string         `json:"message"`
	AmountCentavos money.Centavos `json:"amount_centavos"`
	Category       string         `json:"category"`
	IsRead         bool           `json:"is_read"`
	CreatedAt      time.Time      `json:"created_at"`
}

package ledger

// CreateDebtRequest represents the request body for recording a debt.
// Paid=true is the POS cash-sale pattern: the debt is written fully paid
// and a matching repayment is recorded in the same operation. Adjustment
// permits a zero amount for correction entries; negative amounts are never
// accepted.
type CreateDebtRequest struct {
	CustomerID int64   `json:"customer_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	Category   string  `json:"category" validate:"required"`
	OrderRef   *string `json:"order_ref,omitempty"`
	Note       *string `json:"note,omitempty"`
	Paid       bool    `json:"paid,omitempty"`
	Adjustment bool    `json:"adjustment,omitempty"`
}

// ApplyRepaymentRequest represents the request body for applying a repayment
// across a customer's open debts in one category.
type ApplyRepaymentRequest struct {
	CustomerID int64   `json:"customer_id" validate:"required"`
	Category   string  `json:"category" validate:"required"`
	Amount     float64 `json:"amount" validate:"gt=0"`
}

// ReassignCategoryRequest reclassifies a single ledger entry.
type ReassignCategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

// ReassignItem identifies one ledger entry in a bulk reassignment.
type ReassignItem struct {
	EntryID   int64  `json:"entry_id" validate:"required"`
	EntryType string `json:"entry_type" validate:"required,oneof=DEBT REPAYMENT"`
}

// BulkReassignRequest moves a set of entries into one category, the confirm
// step of the drag-and-drop flow.
type BulkReassignRequest struct {
	Category string         `json:"category" validate:"required"`
	Items    []ReassignItem `json:"items" validate:"required,min=1"`
}

// DebtResponse represents the response for a single debt
type DebtResponse struct {
	ID             int64   `json:"id"`
	CustomerID     int64   `json:"customer_id"`
	Amount         float64 `json:"amount"`
	AmountCentavos int64   `json:"amount_centavos"`
	Paid           float64 `json:"paid"`
	PaidCentavos   int64   `json:"paid_centavos"`
	Category       string  `json:"category"`
	Status         string  `json:"status"`
	OrderRef       *string `json:"order_ref,omitempty"`
	Note           *string `json:"note,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// ToResponse converts a Debt model to a DebtResponse DTO
func (d *Debt) ToResponse() *DebtResponse {
	return &DebtResponse{
		ID:             d.ID,
		CustomerID:     d.CustomerID,
		Amount:         d.AmountCentavos.Pesos(),
		AmountCentavos: int64(d.AmountCentavos),
		Paid:           d.PaidCentavos.Pesos(),
		PaidCentavos:   int64(d.PaidCentavos),
		Category:       d.Category,
		Status:         string(d.Status),
		OrderRef:       d.OrderRef,
		Note:           d.Note,
		CreatedAt:      d.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// RepaymentResponse represents the response for a single repayment
type RepaymentResponse struct {
	ID             int64   `json:"id"`
	CustomerID     int64   `json:"customer_id"`
	Amount         float64 `json:"amount"`
	AmountCentavos int64   `json:"amount_centavos"`
	Category       string  `json:"category"`
	CreatedAt      string  `json:"created_at"`
}

// ToResponse converts a Repayment model to a RepaymentResponse DTO
func (p *Repayment) ToResponse() *RepaymentResponse {
	return &RepaymentResponse{
		ID:             p.ID,
		CustomerID:     p.CustomerID,
		Amount:         p.AmountCentavos.Pesos(),
		AmountCentavos: int64(p.AmountCentavos),
		Category:       p.Category,
		CreatedAt:      p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// AppliedDebtResponse shows how much of a repayment one debt absorbed.
type AppliedDebtResponse struct {
	DebtID       int64   `json:"debt_id"`
	Applied      float64 `json:"applied"`
	PaidCentavos int64   `json:"paid_centavos"`
	Status       string  `json:"status"`
}

// AllocationResponse is the result of applying a repayment. NoOpenDebts
// marks the distinguished zero-effect success; Surplus carries any
// overpayment that was not consumed and not persisted.
type AllocationResponse struct {
	Repayment   *RepaymentResponse    `json:"repayment,omitempty"`
	Applied     float64               `json:"applied"`
	Surplus     float64               `json:"surplus"`
	NoOpenDebts bool                  `json:"no_open_debts"`
	Debts       []AppliedDebtResponse `json:"debts"`
}

// CreateDebtResponse bundles the debt with the matching repayment produced
// by the cash-sale pattern (nil for ordinary credit sales).
type CreateDebtResponse struct {
	Debt      *DebtResponse      `json:"debt"`
	Repayment *RepaymentResponse `json:"repayment,omitempty"`
}

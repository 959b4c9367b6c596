package statement

// BalanceResponse is the live balance payload.
type BalanceResponse struct {
	CustomerID      int64   `json:"customer_id"`
	Balance         float64 `json:"balance"`
	BalanceCentavos int64   `json:"balance_centavos"`
}

// LineResponse is one row of a statement trail.
type LineResponse struct {
	Kind            string  `json:"kind"`
	EntryID         int64   `json:"entry_id"`
	Category        string  `json:"category"`
	Amount          float64 `json:"amount"`
	Running         float64 `json:"running"`
	RunningCentavos int64   `json:"running_centavos"`
	CreatedAt       string  `json:"created_at"`
}

// StatementResponse is the as-of reconstruction payload.
type StatementResponse struct {
	CustomerID      int64          `json:"customer_id"`
	Date            string         `json:"date"`
	Category        *string        `json:"category,omitempty"`
	Opening         float64        `json:"opening"`
	OpeningCentavos int64          `json:"opening_centavos"`
	Lines           []LineResponse `json:"lines"`
	Closing         float64        `json:"closing"`
	ClosingCentavos int64          `json:"closing_centavos"`
}

// ToResponse converts a Statement to its DTO
func (st *Statement) ToResponse() *StatementResponse {
	lines := make([]LineResponse, len(st.Lines))
	for i, l := range st.Lines {
		lines[i] = LineResponse{
			Kind:            string(l.Kind),
			EntryID:         l.EntryID,
			Category:        l.Category,
			Amount:          l.Amount.Pesos(),
			Running:         l.Running.Pesos(),
			RunningCentavos: int64(l.Running),
			CreatedAt:       l.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	return &StatementResponse{
		CustomerID:      st.CustomerID,
		Date:            st.Date.Format("2006-01-02"),
		Category:        st.Category,
		Opening:         st.Opening.Pesos(),
		OpeningCentavos: int64(st.Opening),
		Lines:           lines,
		Closing:         st.Closing.Pesos(),
		ClosingCentavos: int64(st.Closing),
	}
}

package customer

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=120"`
	Phone *string `json:"phone,omitempty"`
}

// UpdateCustomerRequest represents the request body for updating a customer.
// The cached balance is deliberately absent: it is never writable.
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Phone *string `json:"phone,omitempty"`
}

// CustomerResponse represents the response for a single customer
type CustomerResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Phone           *string `json:"phone,omitempty"`
	Balance         float64 `json:"balance"`
	BalanceCentavos int64   `json:"balance_centavos"`
	CreatedAt       string  `json:"created_at"`
}

// ToResponse converts a Customer model to a CustomerResponse DTO
func (c *Customer) ToResponse() *CustomerResponse {
	return &CustomerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		Balance:         c.BalanceCentavos.Pesos(),
		BalanceCentavos: int64(c.BalanceCentavos),
		CreatedAt:       c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

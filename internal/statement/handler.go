package statement

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abagtas/listahan/pkg/response"
)

// Handler handles HTTP requests for balance queries
type Handler struct {
	service *Service
}

// NewHandler creates a new statement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{customerId}", h.Live)
	r.Get("/{customerId}/statement", h.AsOf)

	return r
}

// Live handles GET /balances/{customerId}
//
// @Summary Current outstanding balance recomputed from ledger history
// @Tags balances
// @Produce json
// @Success 200 {object} BalanceResponse
// @Router /balances/{customerId} [get]
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid customer ID")
		return
	}

	balance, err := h.service.Live(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute balance")
		return
	}

	response.JSON(w, http.StatusOK, &BalanceResponse{
		CustomerID:      customerID,
		Balance:         balance.Pesos(),
		BalanceCentavos: int64(balance),
	})
}

// AsOf handles GET /balances/{customerId}/statement?date=YYYY-MM-DD&category=
//
// @Summary Historical balance as of a date, with a per-entry running trail
// @Tags balances
// @Produce json
// @Param date query string true "statement date (YYYY-MM-DD)"
// @Param category query string false "restrict to one category"
// @Success 200 {object} StatementResponse
// @Router /balances/{customerId}/statement [get]
func (h *Handler) AsOf(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid customer ID")
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		response.BadRequest(w, "date query parameter is required")
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		response.BadRequest(w, "date must be YYYY-MM-DD")
		return
	}

	var category *string
	if c := r.URL.Query().Get("category"); c != "" {
		category = &c
	}

	statement, err := h.service.AsOf(r.Context(), customerID, date, category)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build statement")
		return
	}

	response.JSON(w, http.StatusOK, statement.ToResponse())
}

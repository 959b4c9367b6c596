package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abagtas/listahan/pkg/response"
)

// Handler handles HTTP requests for ledger operations
type Handler struct {
	service *Service
}

// NewHandler creates a new ledger handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// DebtRoutes returns the router for debt endpoints
func (h *Handler) DebtRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateDebt)
	r.Get("/", h.ListDebts)
	r.Delete("/{id}", h.DeleteDebt)
	r.Patch("/{id}/category", h.ReassignDebt)

	return r
}

// RepaymentRoutes returns the router for repayment endpoints
func (h *Handler) RepaymentRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.ApplyRepayment)
	r.Get("/", h.ListRepayments)
	r.Delete("/{id}", h.DeleteRepayment)
	r.Patch("/{id}/category", h.ReassignRepayment)

	return r
}

// CategoryRoutes returns the router for category endpoints
func (h *Handler) CategoryRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListCategories)
	r.Post("/reassign", h.BulkReassign)

	return r
}

// CreateDebt handles POST /debts
//
// @Summary Record a debt (or POS cash sale when paid=true)
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body CreateDebtRequest true "debt"
// @Success 201 {object} CreateDebtResponse
// @Router /debts [post]
func (h *Handler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var req CreateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	debt, repayment, err := h.service.CreateDebt(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrEmptyCategory) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to record debt")
		return
	}

	resp := &CreateDebtResponse{Debt: debt.ToResponse()}
	if repayment != nil {
		resp.Repayment = repayment.ToResponse()
	}
	response.JSON(w, http.StatusCreated, resp)
}

// ListDebts handles GET /debts?customer_id=&category=
func (h *Handler) ListDebts(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(r.URL.Query().Get("customer_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "customer_id query parameter is required")
		return
	}
	category := categoryFilter(r)

	debts, err := h.service.ListDebts(r.Context(), customerID, category)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list debts")
		return
	}

	debtResponses := make([]*DebtResponse, len(debts))
	for i, d := range debts {
		debtResponses[i] = d.ToResponse()
	}
	response.JSON(w, http.StatusOK, debtResponses)
}

// DeleteDebt handles DELETE /debts/{id}
func (h *Handler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid debt ID")
		return
	}

	if err := h.service.DeleteDebt(r.Context(), id); err != nil {
		if errors.Is(err, ErrDebtNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrDebtHasPayments) {
			response.UnprocessableEntity(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete debt")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ApplyRepayment handles POST /repayments
//
// @Summary Apply a repayment across open debts in a category
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body ApplyRepaymentRequest true "repayment"
// @Success 201 {object} AllocationResponse
// @Success 200 {object} AllocationResponse "no open debts; zero effect"
// @Router /repayments [post]
func (h *Handler) ApplyRepayment(w http.ResponseWriter, r *http.Request) {
	var req ApplyRepaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	outcome, err := h.service.ApplyRepayment(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrEmptyCategory) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to apply repayment")
		return
	}

	resp := &AllocationResponse{
		Applied:     outcome.Consumed.Pesos(),
		Surplus:     outcome.Surplus.Pesos(),
		NoOpenDebts: outcome.NoOpenDebts,
		Debts:       make([]AppliedDebtResponse, len(outcome.Changes)),
	}
	for i, ch := range outcome.Changes {
		resp.Debts[i] = AppliedDebtResponse{
			DebtID:       ch.DebtID,
			Applied:      ch.Delta.Pesos(),
			PaidCentavos: int64(ch.NewPaid),
			Status:       string(outcome.Statuses[ch.DebtID]),
		}
	}
	if outcome.Repayment != nil {
		resp.Repayment = outcome.Repayment.ToResponse()
	}

	// A zero-effect allocation is success, but not a created resource.
	status := http.StatusCreated
	if outcome.NoOpenDebts {
		status = http.StatusOK
	}
	response.JSON(w, status, resp)
}

// ListRepayments handles GET /repayments?customer_id=&category=
func (h *Handler) ListRepayments(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(r.URL.Query().Get("customer_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "customer_id query parameter is required")
		return
	}
	category := categoryFilter(r)

	repayments, err := h.service.ListRepayments(r.Context(), customerID, category)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list repayments")
		return
	}

	repaymentResponses := make([]*RepaymentResponse, len(repayments))
	for i, p := range repayments {
		repaymentResponses[i] = p.ToResponse()
	}
	response.JSON(w, http.StatusOK, repaymentResponses)
}

// DeleteRepayment handles DELETE /repayments/{id}
func (h *Handler) DeleteRepayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid repayment ID")
		return
	}

	if err := h.service.DeleteRepayment(r.Context(), id); err != nil {
		if errors.Is(err, ErrRepaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete repayment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReassignDebt handles PATCH /debts/{id}/category
func (h *Handler) ReassignDebt(w http.ResponseWriter, r *http.Request) {
	h.reassign(w, r, string(EventDebt))
}

// ReassignRepayment handles PATCH /repayments/{id}/category
func (h *Handler) ReassignRepayment(w http.ResponseWriter, r *http.Request) {
	h.reassign(w, r, string(EventRepayment))
}

func (h *Handler) reassign(w http.ResponseWriter, r *http.Request, entryType string) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid entry ID")
		return
	}

	var req ReassignCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.ReassignCategory(r.Context(), id, entryType, req.Category); err != nil {
		if errors.Is(err, ErrEmptyCategory) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, ErrDebtNotFound) || errors.Is(err, ErrRepaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to reassign category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BulkReassign handles POST /categories/reassign
func (h *Handler) BulkReassign(w http.ResponseWriter, r *http.Request) {
	var req BulkReassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(req.Items) == 0 {
		response.BadRequest(w, "At least one item is required")
		return
	}

	moved, err := h.service.BulkReassign(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmptyCategory) || errors.Is(err, ErrInvalidEntryType) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, ErrDebtNotFound) || errors.Is(err, ErrRepaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to reassign categories")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int{"moved": moved})
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list categories")
		return
	}
	if categories == nil {
		categories = []string{}
	}
	response.JSON(w, http.StatusOK, categories)
}

func categoryFilter(r *http.Request) *string {
	if c := r.URL.Query().Get("category"); c != "" {
		return &c
	}
	return nil
}

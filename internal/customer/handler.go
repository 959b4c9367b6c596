package customer

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abagtas/listahan/pkg/response"
)

// Handler handles HTTP requests for customer operations
type Handler struct {
	service *Service
}

// NewHandler creates a new customer handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for customer endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /customers
//
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body CreateCustomerRequest true "customer"
// @Success 201 {object} CustomerResponse
// @Router /customers [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		response.BadRequest(w, "Name is required")
		return
	}

	customer, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create customer")
		return
	}

	response.JSON(w, http.StatusCreated, customer.ToResponse())
}

// GetByID handles GET /customers/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid customer ID")
		return
	}

	customer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get customer")
		return
	}

	response.JSON(w, http.StatusOK, customer.ToResponse())
}

// List handles GET /customers
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	customers, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list customers")
		return
	}

	customerResponses := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		customerResponses[i] = c.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, customerResponses, meta)
}

// Update handles PUT /customers/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	customer, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update customer")
		return
	}

	response.JSON(w, http.StatusOK, customer.ToResponse())
}

// Delete handles DELETE /customers/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid customer ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrCustomerHasEntries) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete customer")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

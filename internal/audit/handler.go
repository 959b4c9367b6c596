package audit

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abagtas/listahan/pkg/response"
)

// Handler handles HTTP requests for audit operations
type Handler struct {
	service *Service
}

// NewHandler creates a new audit handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for audit endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/recalibrate", h.Recalibrate)
	r.Get("/runs/{id}", h.GetRun)

	return r
}

// Recalibrate handles POST /audit/recalibrate
//
// @Summary Start a background recalibration of all cached balances
// @Tags audit
// @Produce json
// @Success 202 {object} Run
// @Router /audit/recalibrate [post]
func (h *Handler) Recalibrate(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.StartRun()
	if err != nil {
		if errors.Is(err, ErrRunAlreadyActive) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to start audit run")
		return
	}

	response.JSON(w, http.StatusAccepted, run)
}

// GetRun handles GET /audit/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.GetRun(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get audit run")
		return
	}

	response.JSON(w, http.StatusOK, run)
}

package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"energytrack/backend/services/cost-service/internal/apperrors"
	"energytrack/backend/services/cost-service/internal/models"
)

// CostService is the part of the cost service the handlers drive.
type CostService interface {
	Create(ctx context.Context, in models.CostInput) (*models.CostRecord, error)
	Get(ctx context.Context, id string) (*models.CostRecord, error)
	List(ctx context.Context, filter models.CostFilter) (*models.CostList, error)
	Update(ctx context.Context, id string, in models.CostInput) (*models.CostRecord, error)
	Delete(ctx context.Context, id string) error
	Pricing() models.Tariff
}

// CostHandler serves the /energy-cost resource.
type CostHandler struct {
	service  CostService
	location *time.Location
	logger   *zap.Logger
}

// NewCostHandler builds handler. Plain dates in requests are read in location.
func NewCostHandler(service CostService, location *time.Location, logger *zap.Logger) *CostHandler {
	if location == nil {
		location = time.Local
	}
	return &CostHandler{service: service, location: location, logger: logger}
}

// costRequest shadows CostInput.Date so plain dates are accepted too.
type costRequest struct {
	models.CostInput
	Date *string `json:"date,omitempty"`
}

func (h *CostHandler) decodeInput(w http.ResponseWriter, r *http.Request) (models.CostInput, error) {
	var req costRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return models.CostInput{}, err
	}
	in := req.CostInput
	if req.Date != nil {
		date, _, err := parseDate(*req.Date, h.location)
		if err != nil {
			return models.CostInput{}, apperrors.Validation("date", err.Error())
		}
		in.Date = &date
	}
	return in, nil
}

// Create handles POST /energy-cost.
func (h *CostHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeInput(w, r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if in.UserID == nil {
		if id := requestUser(r, ""); id != "" {
			in.UserID = &id
		}
	}

	rec, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// List handles GET /energy-cost.
func (h *CostHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := h.listFilter(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *CostHandler) listFilter(r *http.Request) (models.CostFilter, error) {
	q := r.URL.Query()
	filter := models.CostFilter{
		UserID:   requestUser(r, q.Get("user_id")),
		FuelType: models.FuelType(strings.ToLower(strings.TrimSpace(q.Get("fuel_type")))),
	}

	if raw := q.Get("energy_type"); raw != "" {
		energyType, err := models.ParseEnergyType(raw)
		if err != nil {
			return filter, apperrors.Validation("energy_type", err.Error())
		}
		filter.EnergyType = energyType
	}
	if raw := q.Get("from"); raw != "" {
		from, _, err := parseDate(raw, h.location)
		if err != nil {
			return filter, apperrors.Validation("from", err.Error())
		}
		filter.From = from
	}
	if raw := q.Get("to"); raw != "" {
		to, dateOnly, err := parseDate(raw, h.location)
		if err != nil {
			return filter, apperrors.Validation("to", err.Error())
		}
		if dateOnly {
			filter.Before = to.AddDate(0, 0, 1)
		} else {
			filter.Through = to
		}
	}
	return filter, nil
}

// Get handles GET /energy-cost/{id}.
func (h *CostHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Update handles PUT /energy-cost/{id} with a partial payload.
func (h *CostHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeInput(w, r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	rec, err := h.service.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /energy-cost/{id}.
func (h *CostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// Pricing handles GET /energy-cost/pricing/info.
func (h *CostHandler) Pricing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Pricing())
}

package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"energytrack/backend/services/cost-service/internal/apperrors"
	"energytrack/backend/services/cost-service/internal/models"
)

// ReportService aggregates stored costs.
type ReportService interface {
	Report(ctx context.Context, userID string, period models.Period) (*models.Report, error)
	Summary(ctx context.Context, userID string) (*models.Summary, error)
}

// ReportHandler serves reports and summaries.
type ReportHandler struct {
	service ReportService
	logger  *zap.Logger
}

// NewReportHandler builds handler.
func NewReportHandler(service ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: logger}
}

// Report handles GET /energy-cost/reports/{period}/{userId}.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	period, err := models.ParsePeriod(r.PathValue("period"))
	if err != nil {
		writeError(w, h.logger, r, apperrors.Validation("period", err.Error()))
		return
	}

	report, err := h.service.Report(r.Context(), r.PathValue("userId"), period)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Summary handles GET /energy-cost/summary.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), requestUser(r, r.URL.Query().Get("user_id")))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

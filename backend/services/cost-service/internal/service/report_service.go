package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"energytrack/backend/services/cost-service/internal/apperrors"
	"energytrack/backend/services/cost-service/internal/models"
)

// ReportService aggregates stored cost records into calendar buckets.
type ReportService struct {
	repo     CostRecordRepository
	currency string
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService builds the aggregator. A nil location means server local time.
func NewReportService(repo CostRecordRepository, currency string, location *time.Location, logger *zap.Logger) *ReportService {
	if location == nil {
		location = time.Local
	}
	return &ReportService{
		repo:     repo,
		currency: currency,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// Report sums the user's costs per energy type over the current bucket of period.
func (s *ReportService) Report(ctx context.Context, userID string, period models.Period) (*models.Report, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.Validation("user_id", "is required")
	}

	start, end, err := BucketBounds(period, s.now().In(s.location))
	if err != nil {
		return nil, apperrors.Validation("period", err.Error())
	}

	records, err := s.repo.List(ctx, models.CostFilter{UserID: userID, From: start, Before: end})
	if err != nil {
		return nil, apperrors.Upstream("list cost records", err)
	}

	totals, net := groupByType(records)
	s.logger.Debug("report aggregated",
		zap.String("user_id", userID),
		zap.String("period", string(period)),
		zap.Time("bucket_start", start),
		zap.Int("records", len(records)),
	)
	return &models.Report{
		UserID:      userID,
		Period:      period,
		BucketStart: start,
		BucketEnd:   end,
		Totals:      totals,
		NetTotal:    net,
		Currency:    s.currency,
	}, nil
}

// Summary groups every stored record, optionally for one user.
func (s *ReportService) Summary(ctx context.Context, userID string) (*models.Summary, error) {
	userID = strings.TrimSpace(userID)
	records, err := s.repo.List(ctx, models.CostFilter{UserID: userID})
	if err != nil {
		return nil, apperrors.Upstream("list cost records", err)
	}

	totals, net := groupByType(records)
	return &models.Summary{
		UserID:   userID,
		Totals:   totals,
		NetTotal: net,
		Currency: s.currency,
	}, nil
}

// groupByType returns one entry per energy type present, in models.EnergyTypes order.
func groupByType(records []models.CostRecord) ([]models.TypeTotal, decimal.Decimal) {
	sums := make(map[models.EnergyType]*models.TypeTotal, len(models.EnergyTypes))
	for _, rec := range records {
		t, ok := sums[rec.EnergyType]
		if !ok {
			t = &models.TypeTotal{EnergyType: rec.EnergyType, TotalCost: decimal.Zero}
			sums[rec.EnergyType] = t
		}
		t.TotalCost = t.TotalCost.Add(rec.TotalCost)
		t.Count++
	}

	totals := make([]models.TypeTotal, 0, len(sums))
	net := decimal.Zero
	for _, et := range models.EnergyTypes {
		if t, ok := sums[et]; ok {
			totals = append(totals, *t)
			net = net.Add(t.TotalCost)
		}
	}
	return totals, net
}

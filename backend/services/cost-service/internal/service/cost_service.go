package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"energytrack/backend/services/cost-service/internal/apperrors"
	"energytrack/backend/services/cost-service/internal/calculator"
	"energytrack/backend/services/cost-service/internal/models"
)

var idGenerator = uuid.NewString

// CostService prices and persists cost records.
type CostService struct {
	repo    CostRecordRepository
	devices DeviceLookup
	calc    *calculator.Calculator
	events  EventPublisher
	logger  *zap.Logger
	now     func() time.Time
}

// NewCostService builds the service. events may be nil.
func NewCostService(
	repo CostRecordRepository,
	devices DeviceLookup,
	calc *calculator.Calculator,
	events EventPublisher,
	logger *zap.Logger,
) *CostService {
	return &CostService{
		repo:    repo,
		devices: devices,
		calc:    calc,
		events:  events,
		logger:  logger,
		now:     time.Now,
	}
}

// Pricing returns the tariff the service prices with.
func (s *CostService) Pricing() models.Tariff {
	return s.calc.Tariff()
}

// Create prices and stores a new record. A device reference is resolved to its rated wattage
// unless the payload carries an explicit wattage.
func (s *CostService) Create(ctx context.Context, in models.CostInput) (*models.CostRecord, error) {
	if err := validateInput(&in, true); err != nil {
		return nil, err
	}

	rec := &models.CostRecord{}
	in.ApplyTo(rec)
	rec.UserID = strings.TrimSpace(rec.UserID)

	if err := s.applyDevice(ctx, rec, in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rec.ID = idGenerator()
	if rec.Date.IsZero() {
		rec.Date = now
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if err := s.price(rec); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, apperrors.Upstream("create cost record", err)
	}

	s.logger.Info("cost record created",
		zap.String("record_id", rec.ID),
		zap.String("user_id", rec.UserID),
		zap.String("energy_type", string(rec.EnergyType)),
		zap.String("total_cost", rec.TotalCost.StringFixed(2)),
	)
	s.publish(ctx, models.EventCostCreated, rec)
	return rec, nil
}

// Get returns a stored record.
func (s *CostService) Get(ctx context.Context, id string) (*models.CostRecord, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, recordError("get cost record", id, err)
	}
	return rec, nil
}

// List returns matching records, newest first, with their running total.
func (s *CostService) List(ctx context.Context, filter models.CostFilter) (*models.CostList, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Upstream("list cost records", err)
	}

	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.TotalCost)
	}
	if records == nil {
		records = []models.CostRecord{}
	}
	return &models.CostList{
		Count:     len(records),
		TotalCost: total,
		Currency:  s.calc.Tariff().Currency,
		Records:   records,
	}, nil
}

// Update merges the supplied fields over the stored record, then recomputes the derived
// electricity figures and the total from the merged view.
func (s *CostService) Update(ctx context.Context, id string, in models.CostInput) (*models.CostRecord, error) {
	if err := validateInput(&in, false); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, recordError("get cost record", id, err)
	}

	merged := existing.Clone()
	in.ApplyTo(merged)
	merged.UserID = strings.TrimSpace(merged.UserID)

	if err := s.applyDevice(ctx, merged, in); err != nil {
		return nil, err
	}

	merged.UpdatedAt = s.now().UTC()
	if err := s.price(merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, merged); err != nil {
		return nil, recordError("update cost record", id, err)
	}

	s.logger.Info("cost record updated",
		zap.String("record_id", merged.ID),
		zap.String("user_id", merged.UserID),
		zap.String("energy_type", string(merged.EnergyType)),
		zap.String("total_cost", merged.TotalCost.StringFixed(2)),
	)
	s.publish(ctx, models.EventCostUpdated, merged)
	return merged, nil
}

// Delete removes a record. Related usage logs are left to their owner, which learns about the
// deletion from the published event.
func (s *CostService) Delete(ctx context.Context, id string) error {
	rec, err := s.repo.Delete(ctx, id)
	if err != nil {
		return recordError("delete cost record", id, err)
	}

	s.logger.Info("cost record deleted", zap.String("record_id", id), zap.String("user_id", rec.UserID))
	s.publish(ctx, models.EventCostDeleted, rec)
	return nil
}

// applyDevice resolves the wattage of a device referenced by the payload. Explicit wattage in
// the same payload wins over the resolved value.
func (s *CostService) applyDevice(ctx context.Context, rec *models.CostRecord, in models.CostInput) error {
	if in.DeviceID == nil {
		return nil
	}
	deviceID := strings.TrimSpace(*in.DeviceID)
	rec.DeviceID = deviceID
	if deviceID == "" {
		return nil
	}

	watts, err := s.devices.Wattage(ctx, deviceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDeviceNotFound) {
			return apperrors.NotFound(apperrors.EntityDevice, deviceID)
		}
		return apperrors.Upstream("device lookup", err)
	}
	if in.Wattage == nil {
		rec.Wattage = &watts
	}
	return nil
}

// price refreshes the derived figures and the total of rec.
func (s *CostService) price(rec *models.CostRecord) error {
	err := priceRecord(s.calc, rec)
	var computation *apperrors.ComputationError
	if errors.As(err, &computation) {
		s.logger.Error("cost computation failed",
			zap.String("record_id", rec.ID),
			zap.String("energy_type", string(rec.EnergyType)),
			zap.Error(err),
		)
	}
	return err
}

func (s *CostService) publish(ctx context.Context, kind string, rec *models.CostRecord) {
	if s.events == nil {
		return
	}
	event := models.CostEvent{Kind: kind, Record: *rec, OccurredAt: s.now().UTC()}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish cost event",
			zap.String("kind", kind),
			zap.String("record_id", rec.ID),
			zap.Error(err),
		)
	}
}

func recordError(op, id string, err error) error {
	if errors.Is(err, apperrors.ErrRecordNotFound) {
		return apperrors.NotFound(apperrors.EntityRecord, id)
	}
	return apperrors.Upstream(op, err)
}

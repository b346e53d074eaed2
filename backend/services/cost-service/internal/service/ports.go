package service

import (
	"context"

	"energytrack/backend/services/cost-service/internal/models"
)

// CostRecordRepository persists cost records. Get, Update and Delete return
// apperrors.ErrRecordNotFound for unknown ids.
type CostRecordRepository interface {
	Create(ctx context.Context, rec *models.CostRecord) error
	Get(ctx context.Context, id string) (*models.CostRecord, error)
	Update(ctx context.Context, rec *models.CostRecord) error
	Delete(ctx context.Context, id string) (*models.CostRecord, error)
	List(ctx context.Context, filter models.CostFilter) ([]models.CostRecord, error)
}

// DeviceLookup resolves a device's rated wattage. Unknown devices yield
// apperrors.ErrDeviceNotFound.
type DeviceLookup interface {
	Wattage(ctx context.Context, deviceID string) (float64, error)
}

// EventPublisher announces cost record lifecycle changes.
type EventPublisher interface {
	Publish(ctx context.Context, event models.CostEvent) error
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"energytrack/backend/services/cost-service/internal/apperrors"
)

// DeviceRepository reads rated wattage from the devices table shared with the device registry.
type DeviceRepository struct {
	db *sql.DB
}

// NewDeviceRepository returns repository.
func NewDeviceRepository(db *sql.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Wattage returns the rated consumption of a device in watts.
func (r *DeviceRepository) Wattage(ctx context.Context, deviceID string) (float64, error) {
	const query = `SELECT consumption FROM devices WHERE id = $1`
	var watts float64
	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(&watts)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperrors.ErrDeviceNotFound
	}
	if err != nil {
		return 0, err
	}
	return watts, nil
}

package cache

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// WattageLookup resolves a device's rated wattage.
type WattageLookup interface {
	Wattage(ctx context.Context, deviceID string) (float64, error)
}

// DeviceWattage caches successful lookups of next. Failures, including unknown devices, are
// never cached. A failing store only costs a trip to next.
type DeviceWattage struct {
	next   WattageLookup
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewDeviceWattage wraps next with store.
func NewDeviceWattage(next WattageLookup, store Store, ttl time.Duration, logger *zap.Logger) *DeviceWattage {
	return &DeviceWattage{next: next, store: store, ttl: ttl, logger: logger}
}

func wattageKey(deviceID string) string {
	return "devices:wattage:" + deviceID
}

func (d *DeviceWattage) Wattage(ctx context.Context, deviceID string) (float64, error) {
	key := wattageKey(deviceID)

	data, found, err := d.store.Get(ctx, key)
	switch {
	case err != nil:
		d.logger.Warn("device cache read failed", zap.String("device_id", deviceID), zap.Error(err))
	case found:
		if watts, perr := strconv.ParseFloat(string(data), 64); perr == nil {
			return watts, nil
		}
		d.logger.Warn("discarding malformed device cache entry", zap.String("device_id", deviceID))
		_ = d.store.Delete(ctx, key)
	}

	watts, err := d.next.Wattage(ctx, deviceID)
	if err != nil {
		return 0, err
	}

	if err := d.store.Set(ctx, key, []byte(strconv.FormatFloat(watts, 'g', -1, 64)), d.ttl); err != nil {
		d.logger.Warn("device cache write failed", zap.String("device_id", deviceID), zap.Error(err))
	}
	return watts, nil
}

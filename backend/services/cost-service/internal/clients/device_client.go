package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"energytrack/backend/services/cost-service/internal/apperrors"
)

// DeviceClient resolves device wattage from the device registry over HTTP.
type DeviceClient struct {
	base *BaseClient
}

// NewDeviceClient returns client instance.
func NewDeviceClient(baseURL string, httpClient HTTPDoer) *DeviceClient {
	return &DeviceClient{base: NewBaseClient(baseURL, httpClient)}
}

type deviceResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Consumption *float64 `json:"consumption"`
}

// Wattage fetches GET /devices/{id} and returns its rated consumption in watts.
func (c *DeviceClient) Wattage(ctx context.Context, deviceID string) (float64, error) {
	status, body, err := c.base.Do(ctx, http.MethodGet, "/devices/"+url.PathEscape(deviceID), nil, nil)
	if err != nil {
		return 0, fmt.Errorf("devices: %w", err)
	}

	switch {
	case status == http.StatusNotFound:
		return 0, apperrors.ErrDeviceNotFound
	case status != http.StatusOK:
		return 0, fmt.Errorf("devices: unexpected status %d", status)
	}

	var device deviceResponse
	if err := json.Unmarshal(body, &device); err != nil {
		return 0, fmt.Errorf("devices: decode response: %w", err)
	}
	if device.Consumption == nil {
		return 0, fmt.Errorf("devices: device %s has no consumption", deviceID)
	}
	return *device.Consumption, nil
}

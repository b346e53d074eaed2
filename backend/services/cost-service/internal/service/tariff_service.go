package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"energytrack/backend/services/cost-service/internal/models"
)

// TariffService owns the single current tariff. It is loaded once at startup and only handed
// out as copies.
type TariffService struct {
	tariff models.Tariff
	source string
}

// NewTariffService validates tariff and wraps it.
func NewTariffService(tariff models.Tariff, source string) (*TariffService, error) {
	if err := tariff.Validate(); err != nil {
		return nil, err
	}
	if source == "" {
		source = "builtin"
	}
	return &TariffService{tariff: tariff.Clone(), source: source}, nil
}

// LoadTariffService reads the tariff from path, or falls back to the built-in default when
// path is empty.
func LoadTariffService(path string) (*TariffService, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return NewTariffService(DefaultTariff(), "")
	}
	tariff, err := LoadTariffFile(path)
	if err != nil {
		return nil, err
	}
	return NewTariffService(tariff, path)
}

// Current returns a copy of the active tariff.
func (s *TariffService) Current() models.Tariff {
	return s.tariff.Clone()
}

// Source names where the tariff came from (a file path or "builtin").
func (s *TariffService) Source() string {
	return s.source
}

// LoadTariffFile decodes and validates a YAML tariff file.
func LoadTariffFile(path string) (models.Tariff, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Tariff{}, fmt.Errorf("tariff: read file: %w", err)
	}
	return DecodeTariff(bytes.NewReader(data))
}

// DecodeTariff decodes a YAML tariff, rejecting unknown keys.
func DecodeTariff(r io.Reader) (models.Tariff, error) {
	var tariff models.Tariff
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&tariff); err != nil {
		if errors.Is(err, io.EOF) {
			return models.Tariff{}, errors.New("tariff: empty document")
		}
		return models.Tariff{}, fmt.Errorf("tariff: decode yaml: %w", err)
	}
	if tariff.Electricity.Mode == "" {
		tariff.Electricity.Mode = models.BillingTiered
	}
	if err := tariff.Validate(); err != nil {
		return models.Tariff{}, err
	}
	return tariff, nil
}

// DefaultTariff is the domestic pricing table used when no tariff file is configured.
func DefaultTariff() models.Tariff {
	limit := func(v float64) *float64 { return &v }
	return models.Tariff{
		Currency: "LKR",
		Electricity: models.ElectricityTariff{
			Mode:     models.BillingTiered,
			FlatRate: 35.00,
			Tiers: []models.TariffTier{
				{Limit: limit(30), Rate: 7.85},
				{Limit: limit(60), Rate: 10.00},
				{Limit: limit(90), Rate: 27.75},
				{Limit: limit(120), Rate: 32.00},
				{Limit: limit(180), Rate: 45.00},
				{Rate: 50.00},
			},
		},
		Fuel: models.FuelTariff{
			PetrolBaseGrade: "petrol92",
			Petrol:          map[string]float64{"petrol92": 299.00, "petrol95": 356.00},
			Diesel:          320.00,
			Kerosene:        180.00,
			LPG:             map[string]float64{"12.5kg": 4850.00, "5kg": 1940.00, "2.5kg": 893.00},
		},
		Solar: models.SolarTariff{
			ExportRate:          22.00,
			SelfConsumptionRate: 35.00,
		},
	}
}

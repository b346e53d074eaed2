package models

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Electricity billing modes.
const (
	BillingTiered = "tiered"
	BillingFlat   = "flat"
)

// Tariff is the single current pricing configuration. It is loaded once and never mutated;
// callers that need to hold on to it take a Clone.
type Tariff struct {
	Currency    string            `yaml:"currency" json:"currency"`
	Electricity ElectricityTariff `yaml:"electricity" json:"electricity"`
	Fuel        FuelTariff        `yaml:"fuel" json:"fuel"`
	Solar       SolarTariff       `yaml:"solar" json:"solar"`
}

// ElectricityTariff holds the progressive tiers and the flat fallback.
type ElectricityTariff struct {
	Mode     string       `yaml:"mode" json:"mode"`
	FlatRate float64      `yaml:"flat_rate" json:"flat_rate"`
	Tiers    []TariffTier `yaml:"tiers" json:"tiers"`
}

// TariffTier bills usage up to a cumulative monthly kWh limit. A nil Limit is unbounded.
type TariffTier struct {
	Limit *float64 `yaml:"limit" json:"limit"`
	Rate  float64  `yaml:"rate" json:"rate"`
}

// FuelTariff prices liquid fuels per liter and LPG per cylinder.
type FuelTariff struct {
	PetrolBaseGrade string             `yaml:"petrol_base_grade" json:"petrol_base_grade"`
	Petrol          map[string]float64 `yaml:"petrol" json:"petrol"`
	Diesel          float64            `yaml:"diesel" json:"diesel"`
	Kerosene        float64            `yaml:"kerosene" json:"kerosene"`
	LPG             map[string]float64 `yaml:"lpg" json:"lpg"`
}

// SolarTariff credits exported and self-consumed generation.
type SolarTariff struct {
	ExportRate          float64 `yaml:"export_rate" json:"export_rate"`
	SelfConsumptionRate float64 `yaml:"self_consumption_rate" json:"self_consumption_rate"`
}

// Tiered reports whether electricity is billed progressively. Anything but an explicit
// "flat" mode is tiered.
func (e ElectricityTariff) Tiered() bool {
	return !strings.EqualFold(strings.TrimSpace(e.Mode), BillingFlat)
}

// Validate rejects non-increasing tier thresholds and negative or non-finite rates.
func (t Tariff) Validate() error {
	var errs []error

	mode := strings.ToLower(strings.TrimSpace(t.Electricity.Mode))
	if mode != "" && mode != BillingTiered && mode != BillingFlat {
		errs = append(errs, fmt.Errorf("electricity.mode %q must be %q or %q", t.Electricity.Mode, BillingTiered, BillingFlat))
	}
	errs = append(errs, checkRate("electricity.flat_rate", t.Electricity.FlatRate))

	if t.Electricity.Tiered() && len(t.Electricity.Tiers) == 0 {
		errs = append(errs, errors.New("electricity.tiers must not be empty in tiered mode"))
	}
	prev := 0.0
	for i, tier := range t.Electricity.Tiers {
		name := fmt.Sprintf("electricity.tiers[%d]", i)
		errs = append(errs, checkRate(name+".rate", tier.Rate))
		if tier.Limit == nil {
			if i != len(t.Electricity.Tiers)-1 {
				errs = append(errs, fmt.Errorf("%s: only the last tier may be unbounded", name))
			}
			continue
		}
		limit := *tier.Limit
		if math.IsNaN(limit) || math.IsInf(limit, 0) || limit <= prev {
			errs = append(errs, fmt.Errorf("%s.limit %v must be greater than %v", name, limit, prev))
			continue
		}
		prev = limit
	}

	for _, grade := range sortedKeys(t.Fuel.Petrol) {
		errs = append(errs, checkRate("fuel.petrol."+grade, t.Fuel.Petrol[grade]))
	}
	if len(t.Fuel.Petrol) > 0 {
		if _, ok := t.Fuel.Petrol[t.Fuel.PetrolBaseGrade]; !ok {
			errs = append(errs, fmt.Errorf("fuel.petrol_base_grade %q has no price", t.Fuel.PetrolBaseGrade))
		}
	}
	errs = append(errs, checkRate("fuel.diesel", t.Fuel.Diesel))
	errs = append(errs, checkRate("fuel.kerosene", t.Fuel.Kerosene))
	for _, size := range sortedKeys(t.Fuel.LPG) {
		errs = append(errs, checkRate("fuel.lpg."+size, t.Fuel.LPG[size]))
	}

	errs = append(errs, checkRate("solar.export_rate", t.Solar.ExportRate))
	errs = append(errs, checkRate("solar.self_consumption_rate", t.Solar.SelfConsumptionRate))

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("tariff: %w", err)
	}
	return nil
}

// Clone deep-copies the tariff.
func (t Tariff) Clone() Tariff {
	c := t
	c.Electricity.Tiers = make([]TariffTier, len(t.Electricity.Tiers))
	for i, tier := range t.Electricity.Tiers {
		c.Electricity.Tiers[i] = TariffTier{Rate: tier.Rate}
		if tier.Limit != nil {
			limit := *tier.Limit
			c.Electricity.Tiers[i].Limit = &limit
		}
	}
	c.Fuel.Petrol = copyPrices(t.Fuel.Petrol)
	c.Fuel.LPG = copyPrices(t.Fuel.LPG)
	return c
}

func checkRate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s %v must be a non-negative number", name, v)
	}
	return nil
}

func copyPrices(src map[string]float64) map[string]float64 {
	if src == nil {
		return nil
	}
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

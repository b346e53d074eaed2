package models

import (
	"fmt"
	"strings"
)

// EnergyType is the closed set of billed modalities.
type EnergyType string

const (
	EnergyElectricity EnergyType = "electricity"
	EnergyGas         EnergyType = "gas"
	EnergySolar       EnergyType = "solar"
)

// EnergyTypes lists every modality in report order.
var EnergyTypes = []EnergyType{EnergyElectricity, EnergyGas, EnergySolar}

// ParseEnergyType accepts the canonical lowercase names.
func ParseEnergyType(raw string) (EnergyType, error) {
	switch t := EnergyType(strings.ToLower(strings.TrimSpace(raw))); t {
	case EnergyElectricity, EnergyGas, EnergySolar:
		return t, nil
	default:
		return "", fmt.Errorf("unknown energy type %q", raw)
	}
}

// FuelType names a combustible fuel. Values outside the known set are kept as-is and
// price at zero.
type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelKerosene FuelType = "kerosene"
	FuelLPG      FuelType = "lpg"
)

// Usage is the type-specific input to the cost calculator. Only the variants in this
// package implement it.
type Usage interface {
	EnergyType() EnergyType
	isUsage()
}

// ElectricityUsage is grid consumption, either as a rated wattage run for hours per day or
// as a monthly kWh figure.
type ElectricityUsage struct {
	Wattage     *float64
	HoursPerDay *float64
	MonthlyKWh  *float64
}

// GasUsage is fuel bought by the liter or LPG bought by the cylinder.
type GasUsage struct {
	FuelType    FuelType
	PetrolGrade string
	Liters      *float64
	TankSize    string
	Quantity    *float64
}

// SolarUsage is on-site generation credited against the bill.
type SolarUsage struct {
	GeneratedKWh    *float64
	SelfConsumedKWh *float64
	ExternalSavings *float64
}

func (ElectricityUsage) EnergyType() EnergyType { return EnergyElectricity }
func (GasUsage) EnergyType() EnergyType         { return EnergyGas }
func (SolarUsage) EnergyType() EnergyType       { return EnergySolar }

func (ElectricityUsage) isUsage() {}
func (GasUsage) isUsage()         {}
func (SolarUsage) isUsage()       {}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostRecord is a persisted, priced usage entry. TotalCost is always the calculator output
// for the record's current fields.
type CostRecord struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"user_id"`
	EnergyType EnergyType `db:"energy_type" json:"energy_type"`

	DeviceID    string   `db:"device_id" json:"device_id,omitempty"`
	Wattage     *float64 `db:"wattage" json:"wattage,omitempty"`
	HoursPerDay *float64 `db:"hours_per_day" json:"hours_per_day,omitempty"`
	DailyKWh    *float64 `db:"daily_kwh" json:"daily_kwh,omitempty"`
	MonthlyKWh  *float64 `db:"monthly_kwh" json:"monthly_kwh,omitempty"`

	FuelType    FuelType `db:"fuel_type" json:"fuel_type,omitempty"`
	PetrolGrade string   `db:"petrol_grade" json:"petrol_grade,omitempty"`
	Liters      *float64 `db:"liters" json:"liters,omitempty"`
	TankSize    string   `db:"tank_size" json:"tank_size,omitempty"`
	Quantity    *float64 `db:"quantity" json:"quantity,omitempty"`

	GeneratedKWh    *float64 `db:"generated_kwh" json:"generated_kwh,omitempty"`
	SelfConsumedKWh *float64 `db:"self_consumed_kwh" json:"self_consumed_kwh,omitempty"`
	ExternalSavings *float64 `db:"external_savings" json:"external_savings,omitempty"`

	TotalCost decimal.Decimal `db:"total_cost" json:"total_cost"`
	Date      time.Time       `db:"date" json:"date"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Usage projects the record onto the calculator variant for its energy type.
// It returns nil for a record whose energy type is not one of the known modalities.
func (r *CostRecord) Usage() Usage {
	switch r.EnergyType {
	case EnergyElectricity:
		return ElectricityUsage{
			Wattage:     r.Wattage,
			HoursPerDay: r.HoursPerDay,
			MonthlyKWh:  r.MonthlyKWh,
		}
	case EnergyGas:
		return GasUsage{
			FuelType:    r.FuelType,
			PetrolGrade: r.PetrolGrade,
			Liters:      r.Liters,
			TankSize:    r.TankSize,
			Quantity:    r.Quantity,
		}
	case EnergySolar:
		return SolarUsage{
			GeneratedKWh:    r.GeneratedKWh,
			SelfConsumedKWh: r.SelfConsumedKWh,
			ExternalSavings: r.ExternalSavings,
		}
	default:
		return nil
	}
}

// Clone returns a deep copy so a merge never aliases the stored record's numbers.
func (r *CostRecord) Clone() *CostRecord {
	c := *r
	c.Wattage = copyFloat(r.Wattage)
	c.HoursPerDay = copyFloat(r.HoursPerDay)
	c.DailyKWh = copyFloat(r.DailyKWh)
	c.MonthlyKWh = copyFloat(r.MonthlyKWh)
	c.Liters = copyFloat(r.Liters)
	c.Quantity = copyFloat(r.Quantity)
	c.GeneratedKWh = copyFloat(r.GeneratedKWh)
	c.SelfConsumedKWh = copyFloat(r.SelfConsumedKWh)
	c.ExternalSavings = copyFloat(r.ExternalSavings)
	return &c
}

// CostInput carries the client-supplied fields of a create or a partial update.
// A nil field means "not supplied".
type CostInput struct {
	UserID     *string     `json:"user_id,omitempty"`
	EnergyType *EnergyType `json:"energy_type,omitempty"`
	Date       *time.Time  `json:"date,omitempty"`

	DeviceID    *string  `json:"device_id,omitempty"`
	Wattage     *float64 `json:"wattage,omitempty"`
	HoursPerDay *float64 `json:"hours_per_day,omitempty"`
	MonthlyKWh  *float64 `json:"monthly_kwh,omitempty"`

	FuelType    *FuelType `json:"fuel_type,omitempty"`
	PetrolGrade *string   `json:"petrol_grade,omitempty"`
	Liters      *float64  `json:"liters,omitempty"`
	TankSize    *string   `json:"tank_size,omitempty"`
	Quantity    *float64  `json:"quantity,omitempty"`

	GeneratedKWh    *float64 `json:"generated_kwh,omitempty"`
	SelfConsumedKWh *float64 `json:"self_consumed_kwh,omitempty"`
	ExternalSavings *float64 `json:"external_savings,omitempty"`
}

// ApplyTo overlays every supplied field onto rec. Derived fields and TotalCost are left for
// the caller to recompute.
func (in CostInput) ApplyTo(rec *CostRecord) {
	if in.UserID != nil {
		rec.UserID = *in.UserID
	}
	if in.EnergyType != nil {
		rec.EnergyType = *in.EnergyType
	}
	if in.Date != nil {
		rec.Date = *in.Date
	}
	if in.DeviceID != nil {
		rec.DeviceID = *in.DeviceID
	}
	setFloat(&rec.Wattage, in.Wattage)
	setFloat(&rec.HoursPerDay, in.HoursPerDay)
	setFloat(&rec.MonthlyKWh, in.MonthlyKWh)
	if in.FuelType != nil {
		rec.FuelType = *in.FuelType
	}
	if in.PetrolGrade != nil {
		rec.PetrolGrade = *in.PetrolGrade
	}
	setFloat(&rec.Liters, in.Liters)
	if in.TankSize != nil {
		rec.TankSize = *in.TankSize
	}
	setFloat(&rec.Quantity, in.Quantity)
	setFloat(&rec.GeneratedKWh, in.GeneratedKWh)
	setFloat(&rec.SelfConsumedKWh, in.SelfConsumedKWh)
	setFloat(&rec.ExternalSavings, in.ExternalSavings)
}

// CostFilter narrows repository listings. Zero values do not filter.
type CostFilter struct {
	UserID     string
	EnergyType EnergyType
	FuelType   FuelType
	// From is inclusive.
	From time.Time
	// Before is exclusive.
	Before time.Time
	// Through is inclusive.
	Through time.Time
}

// CostList is a listing with its running total.
type CostList struct {
	Count     int             `json:"count"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Currency  string          `json:"currency"`
	Records   []CostRecord    `json:"records"`
}

func setFloat(dst **float64, src *float64) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

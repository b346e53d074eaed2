package service

import (
	"strings"

	"energytrack/backend/services/cost-service/internal/apperrors"
	"energytrack/backend/services/cost-service/internal/models"
)

const maxHoursPerDay = 24

// validateInput checks the shape of a create or update payload and canonicalizes the energy
// type. Fuel types, tank sizes and grades are not checked: unknown values price at zero.
func validateInput(in *models.CostInput, creating bool) error {
	if in.UserID != nil && strings.TrimSpace(*in.UserID) == "" {
		return apperrors.Validation("user_id", "must not be empty")
	}
	if creating && in.UserID == nil {
		return apperrors.Validation("user_id", "is required")
	}
	if in.EnergyType != nil {
		parsed, err := models.ParseEnergyType(string(*in.EnergyType))
		if err != nil {
			return apperrors.Validation("energy_type", err.Error())
		}
		in.EnergyType = &parsed
	} else if creating {
		return apperrors.Validation("energy_type", "is required")
	}

	if in.FuelType != nil {
		fuel := models.FuelType(strings.ToLower(strings.TrimSpace(string(*in.FuelType))))
		in.FuelType = &fuel
	}

	amounts := []struct {
		field string
		value *float64
	}{
		{"wattage", in.Wattage},
		{"hours_per_day", in.HoursPerDay},
		{"monthly_kwh", in.MonthlyKWh},
		{"liters", in.Liters},
		{"quantity", in.Quantity},
		{"generated_kwh", in.GeneratedKWh},
		{"self_consumed_kwh", in.SelfConsumedKWh},
		{"external_savings", in.ExternalSavings},
	}
	for _, a := range amounts {
		if a.value != nil && *a.value < 0 {
			return apperrors.Validation(a.field, "must not be negative")
		}
	}
	if in.HoursPerDay != nil && *in.HoursPerDay > maxHoursPerDay {
		return apperrors.Validation("hours_per_day", "must not exceed 24")
	}
	return nil
}

// validateRecord checks constraints that span fields of the merged record.
func validateRecord(rec *models.CostRecord) error {
	if rec.EnergyType == models.EnergySolar && rec.GeneratedKWh != nil && rec.SelfConsumedKWh != nil &&
		*rec.SelfConsumedKWh > *rec.GeneratedKWh {
		return apperrors.Validation("self_consumed_kwh", "must not exceed generated_kwh")
	}
	return nil
}

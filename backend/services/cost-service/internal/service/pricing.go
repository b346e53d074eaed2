package service

import (
	"energytrack/backend/services/cost-service/internal/apperrors"
	"energytrack/backend/services/cost-service/internal/calculator"
	"energytrack/backend/services/cost-service/internal/models"
)

// Quote prices in without storing it. Only energy_type is required.
func Quote(calc *calculator.Calculator, in models.CostInput) (*models.CostRecord, error) {
	if err := validateInput(&in, false); err != nil {
		return nil, err
	}
	if in.EnergyType == nil {
		return nil, apperrors.Validation("energy_type", "is required")
	}

	rec := &models.CostRecord{}
	in.ApplyTo(rec)
	if err := priceRecord(calc, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// priceRecord derives daily and monthly kWh for electricity, checks cross-field constraints
// and sets TotalCost. Wattage with hours wins over a supplied monthly figure.
func priceRecord(calc *calculator.Calculator, rec *models.CostRecord) error {
	if rec.EnergyType == models.EnergyElectricity {
		switch {
		case rec.Wattage != nil && rec.HoursPerDay != nil:
			daily, monthly := calculator.DeriveKWh(*rec.Wattage, *rec.HoursPerDay)
			rec.DailyKWh, rec.MonthlyKWh = &daily, &monthly
		case rec.MonthlyKWh != nil:
			daily := *rec.MonthlyKWh / calculator.DaysPerMonth
			rec.DailyKWh = &daily
		}
	}
	if err := validateRecord(rec); err != nil {
		return err
	}

	total, err := calc.Compute(rec.Usage())
	if err != nil {
		return err
	}
	rec.TotalCost = total
	return nil
}

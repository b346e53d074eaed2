package calculator

import "energytrack/backend/services/cost-service/internal/models"

// DaysPerMonth is the fixed month length used to turn daily usage into monthly usage.
const DaysPerMonth = 30

// DeriveKWh converts a rated wattage run hoursPerDay into daily and monthly kWh.
func DeriveKWh(watts, hoursPerDay float64) (daily, monthly float64) {
	daily = watts * hoursPerDay / 1000
	return daily, daily * DaysPerMonth
}

func (c *Calculator) electricity(u models.ElectricityUsage) float64 {
	watts, okW := value(u.Wattage)
	hours, okH := value(u.HoursPerDay)
	if okW && okH {
		_, monthly := DeriveKWh(watts, hours)
		return c.ElectricityCost(monthly)
	}
	if monthly, ok := value(u.MonthlyKWh); ok {
		return c.ElectricityCost(monthly)
	}
	return 0
}

// ElectricityCost bills monthly kWh under the tariff's mode without rounding.
func (c *Calculator) ElectricityCost(monthlyKWh float64) float64 {
	if !c.tariff.Electricity.Tiered() {
		return monthlyKWh * c.tariff.Electricity.FlatRate
	}
	return tieredCost(monthlyKWh, c.tariff.Electricity.Tiers)
}

// tieredCost consumes usage tier by tier from the lowest threshold. The last tier absorbs
// whatever remains regardless of its limit.
func tieredCost(kWh float64, tiers []models.TariffTier) float64 {
	var (
		cost      float64
		remaining = kWh
		prevLimit float64
	)
	for i, tier := range tiers {
		if remaining <= 0 {
			break
		}
		units := remaining
		if tier.Limit != nil && i < len(tiers)-1 {
			units = min(remaining, *tier.Limit-prevLimit)
			prevLimit = *tier.Limit
		}
		cost += units * tier.Rate
		remaining -= units
	}
	return cost
}

package calculator

import "energytrack/backend/services/cost-service/internal/models"

// DefaultSelfConsumedShare is the share of generation assumed to be used on site when the
// self-consumed figure is absent.
const DefaultSelfConsumedShare = 0.7

// solar returns the negated savings: generation is a credit, never a charge.
func (c *Calculator) solar(u models.SolarUsage) float64 {
	if generated, ok := value(u.GeneratedKWh); ok {
		selfConsumed := generated * DefaultSelfConsumedShare
		if u.SelfConsumedKWh != nil {
			selfConsumed = min(*u.SelfConsumedKWh, generated)
		}
		exported := generated - selfConsumed
		savings := selfConsumed*c.tariff.Solar.SelfConsumptionRate + exported*c.tariff.Solar.ExportRate
		return -savings
	}
	if savings, ok := value(u.ExternalSavings); ok {
		return -savings
	}
	return 0
}

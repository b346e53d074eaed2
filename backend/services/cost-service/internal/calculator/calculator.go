// Package calculator turns a usage variant into a monetary amount under a tariff.
// It performs no I/O and keeps no state beyond the tariff it was built with.
package calculator

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"energytrack/backend/services/cost-service/internal/apperrors"
	"energytrack/backend/services/cost-service/internal/models"
)

// Calculator prices usage against an immutable tariff.
type Calculator struct {
	tariff models.Tariff
}

// New returns a Calculator holding its own copy of tariff.
func New(tariff models.Tariff) *Calculator {
	return &Calculator{tariff: tariff.Clone()}
}

// Tariff returns a copy of the tariff in use.
func (c *Calculator) Tariff() models.Tariff {
	return c.tariff.Clone()
}

// Compute prices usage and rounds the total to two decimal places. Unknown fuel types and
// missing amounts price at zero; only a non-finite result is an error.
func (c *Calculator) Compute(usage models.Usage) (decimal.Decimal, error) {
	var amount float64
	switch u := usage.(type) {
	case models.ElectricityUsage:
		amount = c.electricity(u)
	case models.GasUsage:
		amount = c.gas(u)
	case models.SolarUsage:
		amount = c.solar(u)
	case nil:
		return decimal.Zero, nil
	default:
		return decimal.Zero, &apperrors.ComputationError{Reason: fmt.Sprintf("unhandled usage %T", usage)}
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return decimal.Zero, &apperrors.ComputationError{
			Reason: fmt.Sprintf("%s cost is not finite (%v)", usage.EnergyType(), amount),
		}
	}
	return Round(amount), nil
}

var half = decimal.NewFromFloat(0.5)

// Round rounds to two decimal places with ties going toward positive infinity, so a solar
// credit of -1.125 becomes -1.12.
func Round(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Shift(2).Add(half).Floor().Shift(-2)
}

func value(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

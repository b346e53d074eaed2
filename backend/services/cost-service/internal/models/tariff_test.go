package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limit(v float64) *float64 { return &v }

func validTariff() Tariff {
	return Tariff{
		Currency: "LKR",
		Electricity: ElectricityTariff{
			Mode: BillingTiered,
			Tiers: []TariffTier{
				{Limit: limit(30), Rate: 7.85},
				{Limit: limit(60), Rate: 10},
				{Rate: 50},
			},
		},
		Fuel: FuelTariff{
			PetrolBaseGrade: "petrol92",
			Petrol:          map[string]float64{"petrol92": 299},
			LPG:             map[string]float64{"5kg": 1940},
		},
	}
}

func TestTariffValidate(t *testing.T) {
	require.NoError(t, validTariff().Validate())

	cases := map[string]func(*Tariff){
		"unknown mode":        func(tr *Tariff) { tr.Electricity.Mode = "progressive" },
		"empty tiers":         func(tr *Tariff) { tr.Electricity.Tiers = nil },
		"non increasing":      func(tr *Tariff) { tr.Electricity.Tiers[1].Limit = limit(30) },
		"unbounded not last":  func(tr *Tariff) { tr.Electricity.Tiers[0].Limit = nil },
		"negative rate":       func(tr *Tariff) { tr.Electricity.Tiers[2].Rate = -1 },
		"nan price":           func(tr *Tariff) { tr.Fuel.LPG["5kg"] = math.NaN() },
		"missing base grade":  func(tr *Tariff) { tr.Fuel.PetrolBaseGrade = "petrol95" },
		"negative solar rate": func(tr *Tariff) { tr.Solar.ExportRate = -0.5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			tr := validTariff()
			mutate(&tr)
			assert.Error(t, tr.Validate())
		})
	}
}

func TestFlatTariffNeedsNoTiers(t *testing.T) {
	tr := validTariff()
	tr.Electricity.Mode = BillingFlat
	tr.Electricity.Tiers = nil
	require.NoError(t, tr.Validate())
	assert.False(t, tr.Electricity.Tiered())
}

func TestTariffCloneIsDeep(t *testing.T) {
	tr := validTariff()
	c := tr.Clone()
	*c.Electricity.Tiers[0].Limit = 99
	c.Fuel.Petrol["petrol92"] = 1

	assert.InDelta(t, 30, *tr.Electricity.Tiers[0].Limit, 1e-9)
	assert.InDelta(t, 299, tr.Fuel.Petrol["petrol92"], 1e-9)
}

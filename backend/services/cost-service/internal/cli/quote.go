package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"energytrack/backend/services/cost-service/internal/calculator"
	"energytrack/backend/services/cost-service/internal/models"
	"energytrack/backend/services/cost-service/internal/service"
)

type quoteOptions struct {
	energyType      string
	wattage         float64
	hours           float64
	monthlyKWh      float64
	fuel            string
	grade           string
	liters          float64
	tank            string
	quantity        float64
	generated       float64
	selfConsumed    float64
	externalSavings float64
}

func newQuoteCmd(root *rootOptions) *cobra.Command {
	opts := &quoteOptions{}
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute the cost of one usage entry without storing it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := root.validateOutput(); err != nil {
				return err
			}
			tariffs, err := root.tariffs()
			if err != nil {
				return err
			}

			rec, err := service.Quote(calculator.New(tariffs.Current()), opts.input(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if root.output == "json" {
				return printJSON(out, rec)
			}
			if rec.MonthlyKWh != nil {
				fmt.Fprintf(out, "monthly_kwh: %.2f\n", *rec.MonthlyKWh)
			}
			_, err = fmt.Fprintf(out, "%s cost: %s %s\n", rec.EnergyType, rec.TotalCost.StringFixed(2), tariffs.Current().Currency)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.energyType, "type", "", "energy type: electricity, gas or solar")
	f.Float64Var(&opts.wattage, "wattage", 0, "rated device wattage")
	f.Float64Var(&opts.hours, "hours", 0, "hours of use per day")
	f.Float64Var(&opts.monthlyKWh, "monthly-kwh", 0, "monthly consumption in kWh")
	f.StringVar(&opts.fuel, "fuel", "", "fuel type: petrol, diesel, kerosene or lpg")
	f.StringVar(&opts.grade, "grade", "", "petrol grade")
	f.Float64Var(&opts.liters, "liters", 0, "liters of liquid fuel")
	f.StringVar(&opts.tank, "tank", "", "LPG cylinder size")
	f.Float64Var(&opts.quantity, "quantity", 0, "number of LPG cylinders")
	f.Float64Var(&opts.generated, "generated", 0, "solar generation in kWh")
	f.Float64Var(&opts.selfConsumed, "self-consumed", 0, "self-consumed solar kWh")
	f.Float64Var(&opts.externalSavings, "external-savings", 0, "externally reported solar savings")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

// input maps only the flags the user set, so unset amounts stay absent.
func (o *quoteOptions) input(cmd *cobra.Command) models.CostInput {
	flags := cmd.Flags()
	num := func(name string, v float64) *float64 {
		if !flags.Changed(name) {
			return nil
		}
		return &v
	}
	str := func(name, v string) *string {
		if !flags.Changed(name) {
			return nil
		}
		return &v
	}

	energyType := models.EnergyType(o.energyType)
	in := models.CostInput{
		EnergyType:      &energyType,
		Wattage:         num("wattage", o.wattage),
		HoursPerDay:     num("hours", o.hours),
		MonthlyKWh:      num("monthly-kwh", o.monthlyKWh),
		PetrolGrade:     str("grade", o.grade),
		Liters:          num("liters", o.liters),
		TankSize:        str("tank", o.tank),
		Quantity:        num("quantity", o.quantity),
		GeneratedKWh:    num("generated", o.generated),
		SelfConsumedKWh: num("self-consumed", o.selfConsumed),
		ExternalSavings: num("external-savings", o.externalSavings),
	}
	if flags.Changed("fuel") {
		fuel := models.FuelType(o.fuel)
		in.FuelType = &fuel
	}
	return in
}

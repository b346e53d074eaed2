package calculator

import "energytrack/backend/services/cost-service/internal/models"

func (c *Calculator) gas(u models.GasUsage) float64 {
	fuel := c.tariff.Fuel
	switch u.FuelType {
	case models.FuelLPG:
		price, ok := fuel.LPG[u.TankSize]
		if !ok {
			return 0
		}
		quantity := 1.0
		if u.Quantity != nil {
			quantity = *u.Quantity
		}
		return price * quantity
	case models.FuelPetrol:
		grade := u.PetrolGrade
		if grade == "" {
			grade = fuel.PetrolBaseGrade
		}
		price, ok := fuel.Petrol[grade]
		if !ok {
			return 0
		}
		return litersCost(u.Liters, price)
	case models.FuelDiesel:
		return litersCost(u.Liters, fuel.Diesel)
	case models.FuelKerosene:
		return litersCost(u.Liters, fuel.Kerosene)
	default:
		return 0
	}
}

func litersCost(liters *float64, price float64) float64 {
	l, ok := value(liters)
	if !ok {
		return 0
	}
	return l * price
}

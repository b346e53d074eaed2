package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// money renders an amount as a JSON string with exactly two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (r CostRecord) MarshalJSON() ([]byte, error) {
	type alias CostRecord
	return json.Marshal(struct {
		alias
		TotalCost string `json:"total_cost"`
	}{alias(r), money(r.TotalCost)})
}

func (l CostList) MarshalJSON() ([]byte, error) {
	type alias CostList
	return json.Marshal(struct {
		alias
		TotalCost string `json:"total_cost"`
	}{alias(l), money(l.TotalCost)})
}

func (t TypeTotal) MarshalJSON() ([]byte, error) {
	type alias TypeTotal
	return json.Marshal(struct {
		alias
		TotalCost string `json:"total_cost"`
	}{alias(t), money(t.TotalCost)})
}

func (r Report) MarshalJSON() ([]byte, error) {
	type alias Report
	return json.Marshal(struct {
		alias
		NetTotal string `json:"net_total"`
	}{alias(r), money(r.NetTotal)})
}

func (s Summary) MarshalJSON() ([]byte, error) {
	type alias Summary
	return json.Marshal(struct {
		alias
		NetTotal string `json:"net_total"`
	}{alias(s), money(s.NetTotal)})
}

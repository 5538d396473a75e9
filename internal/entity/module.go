package entity

import "github.com/shopspring/decimal"

// Module is a catalog entry. Leads keep copies of it, not references.
type Module struct {
	ID    string          `json:"id" yaml:"id"`
	Name  string          `json:"name" yaml:"name"`
	Price decimal.Decimal `json:"price" yaml:"price"`
}

func SumPrices(modules []Module) decimal.Decimal {
	total := decimal.Zero
	for _, m := range modules {
		total = total.Add(m.Price)
	}
	return total
}

func FindModule(modules []Module, id string) (Module, bool) {
	for _, m := range modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

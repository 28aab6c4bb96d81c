package catalog

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	InStock     bool            `json:"inStock"`
}

// MarshalJSON writes Price as a JSON number, which is what browser clients
// parse. Decoding accepts both numbers and strings.
func (p Product) MarshalJSON() ([]byte, error) {
	type wire Product
	return json.Marshal(struct {
		wire
		Price json.Number `json:"price"`
	}{wire(p), PriceNumber(p.Price)})
}

// PriceNumber renders d as an unquoted JSON number.
func PriceNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

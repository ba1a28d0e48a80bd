package item

import "github.com/shopspring/decimal"

// Item is immutable reference data: nothing in the API mutates an item after
// it is seeded into the catalog.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
}

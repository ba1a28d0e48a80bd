package cart

import (
	"github.com/shopspring/decimal"

	"github.com/DrigerKhanh/go-ecommerce-api/internal/item"
)

// Cart holds one Items element per unit in the cart, in insertion order.
// Total is always the sum of the prices of every element.
type Cart struct {
	ID     string          `json:"id"`
	UserID string          `json:"user_id"`
	Items  []item.Item     `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

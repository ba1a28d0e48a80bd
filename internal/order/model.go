package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable snapshot of a cart at submission time. Later cart
// mutations never touch it.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// Item is a per-unit snapshot row: name and price are copied, not referenced,
// so catalog changes cannot rewrite order history.
type Item struct {
	ItemID string          `json:"item_id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// Package cart implements the shopping cart: one entry per unit, a decimal
// total recomputed from the full entry sequence on every mutation.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/DrigerKhanh/go-ecommerce-api/internal/item"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/user"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

type ItemStore interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type Service struct {
	users UserStore
	items ItemStore
	carts Repository
}

func NewService(users UserStore, items ItemStore, carts Repository) *Service {
	return &Service{users: users, items: items, carts: carts}
}

// AddItem appends quantity units of the item to the user's cart and persists
// the entries together with the recomputed total. All lookups happen before
// any write, so a failed resolution never leaves a partially updated cart.
func (s *Service) AddItem(ctx context.Context, username, itemID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	c, err := s.carts.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("resolve item: %w", err)
	}

	for i := 0; i < quantity; i++ {
		c.Items = append(c.Items, *it)
	}
	c.Total = sumPrices(c.Items)

	if err := s.carts.AddEntries(ctx, c.ID, it.ID, quantity, c.Total); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return c, nil
}

// RemoveItem removes up to quantity matching units, oldest first. Asking for
// more than the cart holds removes all matching units and is not an error.
func (s *Service) RemoveItem(ctx context.Context, username, itemID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	c, err := s.carts.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("resolve item: %w", err)
	}

	removed := 0
	kept := make([]item.Item, 0, len(c.Items))
	for _, entry := range c.Items {
		if entry.ID == it.ID && removed < quantity {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	c.Items = kept
	c.Total = sumPrices(kept)

	if removed > 0 {
		if err := s.carts.RemoveEntries(ctx, c.ID, it.ID, removed, c.Total); err != nil {
			return nil, fmt.Errorf("save cart: %w", err)
		}
	}
	return c, nil
}

func sumPrices(items []item.Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	return total
}

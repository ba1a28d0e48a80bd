// Package order converts carts into immutable persisted orders.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DrigerKhanh/go-ecommerce-api/internal/cart"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/user"
)

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

type CartReader interface {
	GetByUserID(ctx context.Context, userID string) (*cart.Cart, error)
}

type Service struct {
	users  UserStore
	carts  CartReader
	orders Repository
}

func NewService(users UserStore, carts CartReader, orders Repository) *Service {
	return &Service{users: users, carts: carts, orders: orders}
}

// Submit snapshots the user's current cart into a new order. The cart itself
// is left untouched: submitting the same cart again is legal.
func (s *Service) Submit(ctx context.Context, username string) (*Order, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	c, err := s.carts.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	o := &Order{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Items:     make([]Item, 0, len(c.Items)),
		Total:     c.Total,
		CreatedAt: time.Now().UTC(),
	}
	for _, entry := range c.Items {
		o.Items = append(o.Items, Item{ItemID: entry.ID, Name: entry.Name, Price: entry.Price})
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	return o, nil
}

// History returns every order the user has submitted, newest first.
func (s *Service) History(ctx context.Context, username string) ([]Order, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return s.orders.ListByUser(ctx, u.ID)
}

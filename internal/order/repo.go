package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, o *Order) error
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Create persists the order row and its item snapshot rows in one
// transaction.
func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, total, created_at)
		VALUES ($1,$2,$3,$4)
	`, o.ID, o.UserID, o.Total, o.CreatedAt); err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, item_id, name, price)
			VALUES ($1,$2,$3,$4)
		`, o.ID, it.ItemID, it.Name, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, total::text, created_at
		FROM orders WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		var (
			o     Order
			total string
		)
		if err := rows.Scan(&o.ID, &o.UserID, &total, &o.CreatedAt); err != nil {
			return nil, err
		}
		if o.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.getItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *PGRepo) getItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT item_id, name, price::text
		FROM order_items WHERE order_id=$1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var (
			it    Item
			price string
		)
		if err := rows.Scan(&it.ItemID, &it.Name, &price); err != nil {
			return nil, err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

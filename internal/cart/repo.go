package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/DrigerKhanh/go-ecommerce-api/internal/item"
)

var ErrNotFound = errors.New("cart not found")

type Repository interface {
	CreateEmpty(ctx context.Context, userID string) (string, error)
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	AddEntries(ctx context.Context, cartID, itemID string, n int, total decimal.Decimal) error
	RemoveEntries(ctx context.Context, cartID, itemID string, n int, total decimal.Decimal) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) CreateEmpty(ctx context.Context, userID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id := uuid.NewString()
	_, err := r.db.Exec(ctx, `
		INSERT INTO carts (id, user_id, total)
		VALUES ($1,$2,0)
	`, id, userID)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetByUserID loads the cart with its entries resolved to current item
// records, oldest entry first.
func (r *PGRepo) GetByUserID(ctx context.Context, userID string) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		c     Cart
		total string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, total::text
		FROM carts WHERE user_id=$1
	`, userID).Scan(&c.ID, &c.UserID, &total)
	if err != nil {
		return nil, ErrNotFound
	}
	if c.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.name, i.price::text, i.description
		FROM cart_entries ce
		JOIN items i ON i.id = ce.item_id
		WHERE ce.cart_id=$1
		ORDER BY ce.id
	`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c.Items = make([]item.Item, 0)
	for rows.Next() {
		var (
			it    item.Item
			price string
		)
		if err := rows.Scan(&it.ID, &it.Name, &price, &it.Description); err != nil {
			return nil, err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price: %w", err)
		}
		c.Items = append(c.Items, it)
	}
	return &c, rows.Err()
}

// AddEntries appends n entries for itemID and stores the recomputed total in
// one transaction.
func (r *PGRepo) AddEntries(ctx context.Context, cartID, itemID string, n int, total decimal.Decimal) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := 0; i < n; i++ {
		if _, err := tx.Exec(ctx, `
			INSERT INTO cart_entries (cart_id, item_id) VALUES ($1,$2)
		`, cartID, itemID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `
		UPDATE carts SET total=$2 WHERE id=$1
	`, cartID, total); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RemoveEntries deletes the n oldest entries matching itemID and stores the
// recomputed total in one transaction.
func (r *PGRepo) RemoveEntries(ctx context.Context, cartID, itemID string, n int, total decimal.Decimal) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		DELETE FROM cart_entries WHERE id IN (
			SELECT id FROM cart_entries
			WHERE cart_id=$1 AND item_id=$2
			ORDER BY id
			LIMIT $3
		)
	`, cartID, itemID, n); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE carts SET total=$2 WHERE id=$1
	`, cartID, total); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

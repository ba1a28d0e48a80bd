// Package item provides the catalog repository interface and its PostgreSQL
// implementation.
package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("item not found")

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	SearchByName(ctx context.Context, name string) ([]Item, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) List(ctx context.Context) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, price::text, description
		FROM items
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		it    Item
		price string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, name, price::text, description
		FROM items WHERE id=$1
	`, id).Scan(&it.ID, &it.Name, &price, &it.Description)
	if err != nil {
		return nil, ErrNotFound
	}
	it.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	return &it, nil
}

// SearchByName matches case-insensitively on a substring of the item name.
func (r *PGRepo) SearchByName(ctx context.Context, name string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	search := strings.TrimSpace(name)

	rows, err := r.db.Query(ctx, `
		SELECT id, name, price::text, description
		FROM items
		WHERE name ILIKE '%'||$1||'%'
		ORDER BY name
	`, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]Item, error) {
	out := make([]Item, 0)
	for rows.Next() {
		var (
			it    Item
			price string
		)
		if err := rows.Scan(&it.ID, &it.Name, &price, &it.Description); err != nil {
			return nil, err
		}
		var err error
		it.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse price: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

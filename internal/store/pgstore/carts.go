package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/ident"
)

type CartRepository struct {
	pool DBPool
}

func NewCartRepository(pool DBPool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) Get(ctx context.Context, id string) (cart.Cart, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, lines FROM carts WHERE id=$1`, id)

	c, err := scanCart(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cart.Cart{}, cart.ErrNotFound
		}
		return cart.Cart{}, err
	}
	return c, nil
}

func (r *CartRepository) List(ctx context.Context, limit int) ([]cart.Cart, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, lines FROM carts ORDER BY created_at, id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cart.Cart, 0)
	for rows.Next() {
		c, err := scanCart(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CartRepository) Create(ctx context.Context, c cart.Cart) (string, error) {
	lines, err := encodeLines(c.Lines)
	if err != nil {
		return "", err
	}

	id := ident.New()
	if _, err := r.pool.Exec(ctx, `INSERT INTO carts(id, lines) VALUES($1, $2)`, id, lines); err != nil {
		return "", err
	}
	return id, nil
}

// Replace overwrites the stored lines. No version column is compared, so
// concurrent writers race and the last one wins.
func (r *CartRepository) Replace(ctx context.Context, id string, c cart.Cart) error {
	lines, err := encodeLines(c.Lines)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `UPDATE carts SET lines=$2, updated_at=now() WHERE id=$1`, id, lines)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return cart.ErrNotFound
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return cart.ErrNotFound
	}
	return nil
}

func scanCart(row pgx.Row) (cart.Cart, error) {
	var (
		c   cart.Cart
		raw []byte
	)
	if err := row.Scan(&c.ID, &raw); err != nil {
		return cart.Cart{}, err
	}
	if err := json.Unmarshal(raw, &c.Lines); err != nil {
		return cart.Cart{}, fmt.Errorf("cart %s: decode lines: %w", c.ID, err)
	}
	return c.Normalize(), nil
}

func encodeLines(lines []cart.Line) ([]byte, error) {
	if lines == nil {
		lines = []cart.Line{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encode lines: %w", err)
	}
	return b, nil
}

package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/ident"
)

type ProductRepository struct {
	pool DBPool
}

func NewProductRepository(pool DBPool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Get(ctx context.Context, id string) (catalog.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, price::text, image_src
		FROM products
		WHERE id=$1
	`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Product{}, catalog.ErrNotFound
		}
		return catalog.Product{}, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, limit int) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, price::text, image_src
		FROM products
		ORDER BY created_at, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Create(ctx context.Context, p catalog.Product) (string, error) {
	id := ident.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products(id, name, description, price, image_src)
		VALUES($1, $2, $3, $4::numeric, $5)
	`, id, p.Name, p.Description, p.Price.String(), p.ImageSrc)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *ProductRepository) Replace(ctx context.Context, id string, p catalog.Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name=$2, description=$3, price=$4::numeric, image_src=$5
		WHERE id=$1
	`, id, p.Name, p.Description, p.Price.String(), p.ImageSrc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (catalog.Product, error) {
	var (
		p     catalog.Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.ImageSrc); err != nil {
		return catalog.Product{}, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("product %s: parse price %q: %w", p.ID, price, err)
	}
	p.Price = d
	return p, nil
}

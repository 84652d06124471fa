package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("product not found")

// Repository is the data-access capability for the Products collection.
// Get and Replace return ErrNotFound when no document has the given id.
type Repository interface {
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, limit int) ([]Product, error)
	Create(ctx context.Context, p Product) (string, error)
	Replace(ctx context.Context, id string, p Product) error
	Delete(ctx context.Context, id string) error
}

// Exists reports whether a product with id is stored.
func Exists(ctx context.Context, repo Repository, id string) (bool, error) {
	_, err := repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

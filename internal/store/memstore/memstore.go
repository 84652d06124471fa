// Package memstore keeps products and carts in process memory. It backs
// STORE_DRIVER=memory and the HTTP tests.
package memstore

import (
	"context"
	"sync"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/ident"
)

type ProductRepository struct {
	mu    sync.RWMutex
	docs  map[string]catalog.Product
	order []string
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{docs: make(map[string]catalog.Product)}
}

func (r *ProductRepository) Get(ctx context.Context, id string) (catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Product{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.docs[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

// List returns up to limit products in insertion order.
func (r *ProductRepository) List(ctx context.Context, limit int) ([]catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Product, 0, max(0, min(limit, len(r.order))))
	for _, id := range r.order {
		if len(out) >= limit {
			break
		}
		out = append(out, r.docs[id])
	}
	return out, nil
}

func (r *ProductRepository) Create(ctx context.Context, p catalog.Product) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = ident.New()
	r.docs[p.ID] = p
	r.order = append(r.order, p.ID)
	return p.ID, nil
}

func (r *ProductRepository) Replace(ctx context.Context, id string, p catalog.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return catalog.ErrNotFound
	}
	p.ID = id
	r.docs[id] = p
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(r.docs, id)
	r.order = removeID(r.order, id)
	return nil
}

type CartRepository struct {
	mu    sync.RWMutex
	docs  map[string][]cart.Line
	order []string
}

func NewCartRepository() *CartRepository {
	return &CartRepository{docs: make(map[string][]cart.Line)}
}

func (r *CartRepository) Get(ctx context.Context, id string) (cart.Cart, error) {
	if err := ctx.Err(); err != nil {
		return cart.Cart{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines, ok := r.docs[id]
	if !ok {
		return cart.Cart{}, cart.ErrNotFound
	}
	return cart.Cart{ID: id, Lines: copyLines(lines)}, nil
}

func (r *CartRepository) List(ctx context.Context, limit int) ([]cart.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cart.Cart, 0, max(0, min(limit, len(r.order))))
	for _, id := range r.order {
		if len(out) >= limit {
			break
		}
		out = append(out, cart.Cart{ID: id, Lines: copyLines(r.docs[id])})
	}
	return out, nil
}

func (r *CartRepository) Create(ctx context.Context, c cart.Cart) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := ident.New()
	r.docs[id] = copyLines(c.Lines)
	r.order = append(r.order, id)
	return id, nil
}

// Replace overwrites the stored lines unconditionally.
func (r *CartRepository) Replace(ctx context.Context, id string, c cart.Cart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return cart.ErrNotFound
	}
	r.docs[id] = copyLines(c.Lines)
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return cart.ErrNotFound
	}
	delete(r.docs, id)
	r.order = removeID(r.order, id)
	return nil
}

func copyLines(lines []cart.Line) []cart.Line {
	out := make([]cart.Line, len(lines))
	copy(out, lines)
	return out
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

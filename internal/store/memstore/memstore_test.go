package memstore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/ident"
)

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	var ids []string
	for _, name := range []string{"mug", "lamp", "desk"} {
		id, err := repo.Create(ctx, catalog.Product{Name: name, Price: decimal.RequireFromString("9.99")})
		require.NoError(t, err)
		require.True(t, ident.Valid(id), "id %q", id)
		ids = append(ids, id)
	}

	got, err := repo.Get(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, "lamp", got.Name)
	assert.Equal(t, ids[1], got.ID)

	list, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "mug", list[0].Name)
	assert.Equal(t, "lamp", list[1].Name)

	require.NoError(t, repo.Replace(ctx, ids[0], catalog.Product{Name: "cup"}))
	got, err = repo.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "cup", got.Name)

	require.NoError(t, repo.Delete(ctx, ids[0]))
	_, err = repo.Get(ctx, ids[0])
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	assert.ErrorIs(t, repo.Replace(ctx, ids[0], catalog.Product{}), catalog.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, ids[0]), catalog.ErrNotFound)

	list, err = repo.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestProductRepositoryEmptyList(t *testing.T) {
	list, err := NewProductRepository().List(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListNegativeLimit(t *testing.T) {
	ctx := context.Background()

	products := NewProductRepository()
	_, err := products.Create(ctx, catalog.Product{Name: "mug"})
	require.NoError(t, err)
	plist, err := products.List(ctx, -1)
	require.NoError(t, err)
	assert.NotNil(t, plist)
	assert.Empty(t, plist)

	carts := NewCartRepository()
	_, err = carts.Create(ctx, cart.New("507f1f77bcf86cd799439011"))
	require.NoError(t, err)
	clist, err := carts.List(ctx, -1)
	require.NoError(t, err)
	assert.NotNil(t, clist)
	assert.Empty(t, clist)
}

func TestCartRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	id, err := repo.Create(ctx, cart.New("507f1f77bcf86cd799439011"))
	require.NoError(t, err)

	c, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, []cart.Line{{ProductID: "507f1f77bcf86cd799439011", Quantity: 1}}, c.Lines)

	// Mutating a returned cart must not leak into the store.
	c.Lines[0].Quantity = 99
	again, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Lines[0].Quantity)

	require.NoError(t, repo.Replace(ctx, id, cart.Cart{Lines: []cart.Line{}}))
	emptied, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, emptied.Lines)
	assert.Empty(t, emptied.Lines)

	_, err = repo.Get(ctx, ident.New())
	assert.ErrorIs(t, err, cart.ErrNotFound)
	assert.ErrorIs(t, repo.Replace(ctx, ident.New(), cart.Cart{}), cart.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, id))
	list, err := repo.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProductRepository().Get(ctx, ident.New())
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewCartRepository().Create(ctx, cart.Cart{})
	assert.ErrorIs(t, err, context.Canceled)
}

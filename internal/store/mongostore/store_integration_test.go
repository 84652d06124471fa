//go:build integration
// +build integration

package mongostore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

func startMongo(ctx context.Context, t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		require.NoError(t, container.Terminate(terminateCtx))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("mongodb://%s:%s", host, mappedPort.Port())
}

func TestStoreIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := Connect(ctx, Config{
		URI:                startMongo(ctx, t),
		Database:           "storefront",
		ProductsCollection: "Products",
		CartsCollection:    "Carts",
	})
	require.NoError(t, err)
	defer func() { _ = store.Close(context.Background()) }()

	require.NoError(t, store.Ping(ctx))

	pid, err := store.Products.Create(ctx, catalog.Product{
		Name:        "Mug",
		Description: "Stoneware",
		Price:       decimal.RequireFromString("12.50"),
		ImageSrc:    "/img/mug.png",
	})
	require.NoError(t, err)

	p, err := store.Products.Get(ctx, pid)
	require.NoError(t, err)
	require.Equal(t, "Mug", p.Name)
	require.True(t, decimal.RequireFromString("12.5").Equal(p.Price))

	products, err := store.Products.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, products, 1)

	cid, err := store.Carts.Create(ctx, cart.New(pid))
	require.NoError(t, err)

	c, err := store.Carts.Get(ctx, cid)
	require.NoError(t, err)
	c, err = c.Adjust(pid, false)
	require.NoError(t, err)
	require.NoError(t, store.Carts.Replace(ctx, cid, c))

	c, err = store.Carts.Get(ctx, cid)
	require.NoError(t, err)
	require.NotNil(t, c.Lines)
	require.Empty(t, c.Lines)

	_, err = store.Carts.Get(ctx, "65a0000000000000000000ff")
	require.ErrorIs(t, err, cart.ErrNotFound)
	require.ErrorIs(t, store.Products.Replace(ctx, "65a0000000000000000000ff", p), catalog.ErrNotFound)
}

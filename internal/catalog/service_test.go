package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/pipeline"
)

type fakeRepository struct {
	products map[string]Product
	order    []string
	next     int

	getErr    error
	listErr   error
	createErr error
	getCalls  int
}

func newFakeRepository(initial ...Product) *fakeRepository {
	f := &fakeRepository{products: map[string]Product{}}
	for _, p := range initial {
		f.products[p.ID] = p
		f.order = append(f.order, p.ID)
	}
	return f
}

func (f *fakeRepository) Get(ctx context.Context, id string) (Product, error) {
	f.getCalls++
	if f.getErr != nil {
		return Product{}, f.getErr
	}
	p, ok := f.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeRepository) List(ctx context.Context, limit int) ([]Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []Product
	for _, id := range f.order {
		if len(out) == limit {
			break
		}
		out = append(out, f.products[id])
	}
	return out, nil
}

func (f *fakeRepository) Create(ctx context.Context, p Product) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.next++
	p.ID = fmt.Sprintf("%024x", f.next)
	f.products[p.ID] = p
	f.order = append(f.order, p.ID)
	return p.ID, nil
}

func (f *fakeRepository) Replace(ctx context.Context, id string, p Product) error {
	if _, ok := f.products[id]; !ok {
		return ErrNotFound
	}
	p.ID = id
	f.products[id] = p
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func strPtr(s string) *string { return &s }

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validCreate() CreateProductRequest {
	return CreateProductRequest{
		Name:        strPtr("Linen shirt"),
		Description: strPtr("Relaxed fit"),
		Price:       price("49.95"),
		ImageSrc:    strPtr("/img/linen.png"),
	}
}

func TestCreateProductThenGetRoundTrip(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	created := svc.CreateProduct(ctx, validCreate())
	require.Equal(t, pipeline.KindSuccess, created.Kind)
	require.NotEmpty(t, created.Value.ProductID)

	got := svc.GetProduct(ctx, GetProductRequest{ProductID: created.Value.ProductID})
	require.Equal(t, pipeline.KindSuccess, got.Kind)

	assert.Equal(t, created.Value.ProductID, got.Value.ID)
	assert.Equal(t, "Linen shirt", got.Value.Name)
	assert.Equal(t, "Relaxed fit", got.Value.Description)
	assert.True(t, got.Value.Price.Equal(decimal.RequireFromString("49.95")))
	assert.Equal(t, "/img/linen.png", got.Value.ImageSrc)
}

func TestCreateProductValidation(t *testing.T) {
	tests := map[string]struct {
		mutate     func(*CreateProductRequest)
		wantFields []string
	}{
		"zero price": {
			mutate:     func(r *CreateProductRequest) { r.Price = price("0") },
			wantFields: []string{"price"},
		},
		"missing price": {
			mutate:     func(r *CreateProductRequest) { r.Price = decimal.NullDecimal{} },
			wantFields: []string{"price"},
		},
		"missing name and zero price": {
			mutate: func(r *CreateProductRequest) {
				r.Name = nil
				r.Price = price("0.00")
			},
			wantFields: []string{"name", "price"},
		},
		"every field missing": {
			mutate:     func(r *CreateProductRequest) { *r = CreateProductRequest{} },
			wantFields: []string{"name", "description", "imageSrc", "price"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo := newFakeRepository()
			req := validCreate()
			tt.mutate(&req)

			out := newTestService(repo).CreateProduct(context.Background(), req)

			require.Equal(t, pipeline.KindInvalid, out.Kind)
			var fields []string
			for _, f := range out.Failures {
				assert.Equal(t, pipeline.CodeInvalid, f.Code)
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
			assert.Empty(t, repo.products, "nothing may be persisted on invalid input")
		})
	}
}

func TestCreateProductNegativePriceAllowed(t *testing.T) {
	req := validCreate()
	req.Price = price("-5")

	out := newTestService(newFakeRepository()).CreateProduct(context.Background(), req)

	assert.Equal(t, pipeline.KindSuccess, out.Kind)
}

func TestCreateProductStoreFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.createErr = errors.New("insert failed")

	out := newTestService(repo).CreateProduct(context.Background(), validCreate())

	assert.Equal(t, pipeline.KindFatal, out.Kind)
	assert.ErrorIs(t, out.Err, repo.createErr)
}

func TestSearchProducts(t *testing.T) {
	repo := newFakeRepository(
		Product{ID: "000000000000000000000001", Name: "a", Price: decimal.NewFromInt(1)},
		Product{ID: "000000000000000000000002", Name: "b", Price: decimal.NewFromInt(2)},
		Product{ID: "000000000000000000000003", Name: "c", Price: decimal.NewFromInt(3)},
	)
	svc := newTestService(repo)

	t.Run("limit caps results", func(t *testing.T) {
		out := svc.SearchProducts(context.Background(), SearchProductsRequest{Limit: 2})
		require.Equal(t, pipeline.KindSuccess, out.Kind)
		assert.Len(t, out.Value, 2)
	})

	t.Run("zero limit is invalid", func(t *testing.T) {
		out := svc.SearchProducts(context.Background(), SearchProductsRequest{Limit: 0})
		require.Equal(t, pipeline.KindInvalid, out.Kind)
		assert.Equal(t, "limit", out.Failures[0].Field)
	})

	t.Run("negative limit is invalid", func(t *testing.T) {
		out := svc.SearchProducts(context.Background(), SearchProductsRequest{Limit: -1})
		assert.Equal(t, pipeline.KindInvalid, out.Kind)
	})

	t.Run("empty catalog yields empty slice", func(t *testing.T) {
		out := newTestService(newFakeRepository()).SearchProducts(context.Background(), SearchProductsRequest{Limit: 5})
		require.Equal(t, pipeline.KindSuccess, out.Kind)
		assert.NotNil(t, out.Value)
		assert.Empty(t, out.Value)
	})
}

func TestGetProduct(t *testing.T) {
	const id = "507f1f77bcf86cd799439011"

	t.Run("malformed id is invalid without lookup", func(t *testing.T) {
		repo := newFakeRepository()
		out := newTestService(repo).GetProduct(context.Background(), GetProductRequest{ProductID: "xyz"})

		assert.Equal(t, pipeline.KindInvalid, out.Kind)
		assert.Zero(t, repo.getCalls)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		out := newTestService(newFakeRepository()).GetProduct(context.Background(), GetProductRequest{ProductID: id})

		assert.Equal(t, pipeline.KindNotFound, out.Kind)
		assert.Equal(t, MsgNoProductFound, out.Message)
	})

	t.Run("upper-case id finds the product", func(t *testing.T) {
		repo := newFakeRepository(Product{ID: id, Name: "mug"})
		out := newTestService(repo).GetProduct(context.Background(), GetProductRequest{ProductID: strings.ToUpper(id)})

		require.Equal(t, pipeline.KindSuccess, out.Kind)
		assert.Equal(t, id, out.Value.ID)
	})

	t.Run("lookup failure is fatal", func(t *testing.T) {
		repo := newFakeRepository()
		repo.getErr = errors.New("socket closed")

		out := newTestService(repo).GetProduct(context.Background(), GetProductRequest{ProductID: id})

		assert.Equal(t, pipeline.KindFatal, out.Kind)
	})
}

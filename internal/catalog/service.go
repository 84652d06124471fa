package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/ident"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/pipeline"
)

const (
	MsgNoProductFound   = "no product found"
	msgInvalidProductID = "productId must be a 24-character hex identifier"
)

type CreateProductRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
	ImageSrc    *string             `json:"imageSrc"`
}

type CreateProductResult struct {
	ProductID string `json:"productId"`
}

type SearchProductsRequest struct {
	Limit int
}

type GetProductRequest struct {
	ProductID string
}

type Service struct {
	products Repository
	logger   *slog.Logger
}

func NewService(products Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{products: products, logger: logger}
}

// ProductRule checks that the id selected by idOf is well formed and, only
// then, that it resolves in the catalog.
func ProductRule[R any](products Repository, field string, idOf func(R) string) pipeline.Rule[R] {
	return pipeline.Rule[R]{
		Field:   field,
		Message: msgInvalidProductID,
		Check:   pipeline.Check(func(req R) bool { return ident.Valid(idOf(req)) }),
		Then: []pipeline.Rule[R]{{
			Field:   field,
			Message: MsgNoProductFound,
			Code:    pipeline.CodeNotFound,
			Check: func(ctx context.Context, req R) (bool, error) {
				return Exists(ctx, products, idOf(req))
			},
		}},
	}
}

func createProductValidators() []pipeline.Validator[CreateProductRequest] {
	present := func(field string, get func(CreateProductRequest) *string) pipeline.Rule[CreateProductRequest] {
		return pipeline.Rule[CreateProductRequest]{
			Field:   field,
			Message: field + " is required",
			Check:   pipeline.Check(func(r CreateProductRequest) bool { return get(r) != nil }),
		}
	}

	return []pipeline.Validator[CreateProductRequest]{
		pipeline.Rules(
			present("name", func(r CreateProductRequest) *string { return r.Name }),
			present("description", func(r CreateProductRequest) *string { return r.Description }),
			present("imageSrc", func(r CreateProductRequest) *string { return r.ImageSrc }),
		),
		pipeline.Rules(pipeline.Rule[CreateProductRequest]{
			Field:   "price",
			Message: "price must be non-zero",
			Check: pipeline.Check(func(r CreateProductRequest) bool {
				return r.Price.Valid && !r.Price.Decimal.IsZero()
			}),
		}),
	}
}

func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) pipeline.Outcome[CreateProductResult] {
	return pipeline.Execute(ctx, "catalog.CreateProduct", req, createProductValidators(),
		func(ctx context.Context, req CreateProductRequest) (CreateProductResult, error) {
			p := Product{
				Name:        *req.Name,
				Description: *req.Description,
				Price:       req.Price.Decimal,
				ImageSrc:    *req.ImageSrc,
			}

			id, err := s.products.Create(ctx, p)
			if err != nil {
				return CreateProductResult{}, fmt.Errorf("create product: %w", err)
			}
			s.logger.InfoContext(ctx, "product created", "productId", id)
			return CreateProductResult{ProductID: id}, nil
		})
}

func (s *Service) SearchProducts(ctx context.Context, req SearchProductsRequest) pipeline.Outcome[[]Product] {
	validators := []pipeline.Validator[SearchProductsRequest]{
		pipeline.Rules(pipeline.Rule[SearchProductsRequest]{
			Field:   "limit",
			Message: "limit must be greater than zero",
			Check:   pipeline.Check(func(r SearchProductsRequest) bool { return r.Limit > 0 }),
		}),
	}

	return pipeline.Execute(ctx, "catalog.SearchProducts", req, validators,
		func(ctx context.Context, req SearchProductsRequest) ([]Product, error) {
			products, err := s.products.List(ctx, req.Limit)
			if err != nil {
				return nil, fmt.Errorf("list products: %w", err)
			}
			if products == nil {
				products = []Product{}
			}
			return products, nil
		})
}

func (s *Service) GetProduct(ctx context.Context, req GetProductRequest) pipeline.Outcome[Product] {
	req.ProductID = ident.Canonical(req.ProductID)
	validators := []pipeline.Validator[GetProductRequest]{
		pipeline.Rules(ProductRule(s.products, "productId", func(r GetProductRequest) string { return r.ProductID })),
	}

	return pipeline.Execute(ctx, "catalog.GetProduct", req, validators,
		func(ctx context.Context, req GetProductRequest) (Product, error) {
			p, err := s.products.Get(ctx, req.ProductID)
			if err != nil {
				return Product{}, fmt.Errorf("get product %s: %w", req.ProductID, err)
			}
			return p, nil
		})
}

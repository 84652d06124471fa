package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/ident"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/pipeline"
)

const (
	MsgNoCartFound          = "no cart found"
	MsgNoProductInCart      = "no product found in cart"
	msgInvalidCartID        = "cartId must be a 24-character hex identifier"
	msgQuantityNotPositive  = "quantity must be greater than zero"
	msgCannotDecreaseAbsent = "cannot decrease the quantity of a product that is not in the cart"
)

type GetCartRequest struct {
	CartID string
}

// Entry is one cart line resolved against the catalog.
type Entry struct {
	Quantity int             `json:"quantity"`
	Product  catalog.Product `json:"product"`
}

type AddItemToNewCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type AddItemToNewCartResult struct {
	CartID string `json:"cartId"`
}

type UpdateItemQuantityRequest struct {
	CartID           string `json:"-"`
	ProductID        string `json:"productId"`
	IncreaseQuantity bool   `json:"increaseQuantity"`
}

type DeleteItemRequest struct {
	CartID    string
	ProductID string
}

type Service struct {
	carts    Repository
	products catalog.Repository
	events   EventPublisher
	logger   *slog.Logger
}

type Option func(*Service)

func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.events = p
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(carts Repository, products catalog.Repository, opts ...Option) *Service {
	s := &Service{
		carts:    carts,
		products: products,
		events:   nopPublisher{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func cartRule[R any](carts Repository, idOf func(R) string) pipeline.Rule[R] {
	return pipeline.Rule[R]{
		Field:   "cartId",
		Message: msgInvalidCartID,
		Check:   pipeline.Check(func(req R) bool { return ident.Valid(idOf(req)) }),
		Then: []pipeline.Rule[R]{{
			Field:   "cartId",
			Message: MsgNoCartFound,
			Code:    pipeline.CodeNotFound,
			Check: func(ctx context.Context, req R) (bool, error) {
				_, err := carts.Get(ctx, idOf(req))
				if errors.Is(err, ErrNotFound) {
					return false, nil
				}
				if err != nil {
					return false, fmt.Errorf("load cart: %w", err)
				}
				return true, nil
			},
		}},
	}
}

func (s *Service) GetCart(ctx context.Context, req GetCartRequest) pipeline.Outcome[[]Entry] {
	req.CartID = ident.Canonical(req.CartID)
	validators := []pipeline.Validator[GetCartRequest]{
		pipeline.Rules(cartRule(s.carts, func(r GetCartRequest) string { return r.CartID })),
	}

	return pipeline.Execute(ctx, "cart.GetCart", req, validators, s.getCart)
}

func (s *Service) getCart(ctx context.Context, req GetCartRequest) ([]Entry, error) {
	c, err := s.carts.Get(ctx, req.CartID)
	if err != nil {
		return nil, fmt.Errorf("get cart %s: %w", req.CartID, err)
	}

	entries := make([]Entry, 0, len(c.Lines))
	for _, line := range c.Lines {
		p, err := s.products.Get(ctx, line.ProductID)
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, pipeline.NotFound("productId", catalog.MsgNoProductFound)
		}
		if err != nil {
			return nil, fmt.Errorf("get product %s: %w", line.ProductID, err)
		}
		entries = append(entries, Entry{Quantity: line.Quantity, Product: p})
	}
	return entries, nil
}

func (s *Service) AddItemToNewCart(ctx context.Context, req AddItemToNewCartRequest) pipeline.Outcome[AddItemToNewCartResult] {
	req.ProductID = ident.Canonical(req.ProductID)
	validators := []pipeline.Validator[AddItemToNewCartRequest]{
		pipeline.Rules(catalog.ProductRule(s.products, "productId", func(r AddItemToNewCartRequest) string { return r.ProductID })),
		pipeline.Rules(pipeline.Rule[AddItemToNewCartRequest]{
			Field:   "quantity",
			Message: msgQuantityNotPositive,
			Check:   pipeline.Check(func(r AddItemToNewCartRequest) bool { return r.Quantity > 0 }),
		}),
	}

	return pipeline.Execute(ctx, "cart.AddItemToNewCart", req, validators, s.addItemToNewCart)
}

// addItemToNewCart always starts the line at quantity 1; the requested
// quantity is only validated.
func (s *Service) addItemToNewCart(ctx context.Context, req AddItemToNewCartRequest) (AddItemToNewCartResult, error) {
	c := New(req.ProductID)

	id, err := s.carts.Create(ctx, c)
	if err != nil {
		return AddItemToNewCartResult{}, fmt.Errorf("create cart: %w", err)
	}
	c.ID = id

	s.publish(ctx, Change{Cart: c, ProductID: req.ProductID, Reason: ReasonCreated})
	return AddItemToNewCartResult{CartID: id}, nil
}

// cartAndLineValidator checks the cart and the line in one pass: the cart
// must exist, and the line must exist unless the request is an increase.
func (s *Service) cartAndLineValidator() pipeline.Validator[UpdateItemQuantityRequest] {
	return pipeline.ValidatorFunc[UpdateItemQuantityRequest](func(ctx context.Context, req UpdateItemQuantityRequest) ([]pipeline.Failure, error) {
		if !ident.Valid(req.CartID) {
			return []pipeline.Failure{pipeline.Invalid("cartId", msgInvalidCartID)}, nil
		}

		c, err := s.carts.Get(ctx, req.CartID)
		if errors.Is(err, ErrNotFound) {
			return []pipeline.Failure{pipeline.NotFound("cartId", MsgNoCartFound)}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load cart: %w", err)
		}

		if _, ok := c.Line(req.ProductID); !ok && !req.IncreaseQuantity {
			return []pipeline.Failure{pipeline.Invalid("increaseQuantity", msgCannotDecreaseAbsent)}, nil
		}
		return nil, nil
	})
}

func (s *Service) UpdateItemQuantity(ctx context.Context, req UpdateItemQuantityRequest) pipeline.Outcome[Cart] {
	req.CartID, req.ProductID = ident.Canonical(req.CartID), ident.Canonical(req.ProductID)
	validators := []pipeline.Validator[UpdateItemQuantityRequest]{
		s.cartAndLineValidator(),
		pipeline.Rules(catalog.ProductRule(s.products, "productId", func(r UpdateItemQuantityRequest) string { return r.ProductID })),
	}

	return pipeline.Execute(ctx, "cart.UpdateItemQuantity", req, validators, s.updateItemQuantity)
}

func (s *Service) updateItemQuantity(ctx context.Context, req UpdateItemQuantityRequest) (Cart, error) {
	c, err := s.carts.Get(ctx, req.CartID)
	if err != nil {
		return Cart{}, fmt.Errorf("get cart %s: %w", req.CartID, err)
	}

	updated, err := c.Adjust(req.ProductID, req.IncreaseQuantity)
	if errors.Is(err, ErrLineNotFound) {
		return Cart{}, pipeline.Invalid("increaseQuantity", msgCannotDecreaseAbsent)
	}
	if err != nil {
		return Cart{}, err
	}
	updated.ID = req.CartID

	if err := s.carts.Replace(ctx, req.CartID, updated); err != nil {
		return Cart{}, fmt.Errorf("replace cart %s: %w", req.CartID, err)
	}

	s.publish(ctx, Change{Cart: updated, ProductID: req.ProductID, Reason: ReasonQuantityChanged})
	return updated.Normalize(), nil
}

func (s *Service) lineValidator() pipeline.Validator[DeleteItemRequest] {
	return pipeline.ValidatorFunc[DeleteItemRequest](func(ctx context.Context, req DeleteItemRequest) ([]pipeline.Failure, error) {
		// Malformed ids and missing carts are reported by the other validators.
		if !ident.Valid(req.CartID) || !ident.Valid(req.ProductID) {
			return nil, nil
		}

		c, err := s.carts.Get(ctx, req.CartID)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load cart: %w", err)
		}

		if _, ok := c.Line(req.ProductID); !ok {
			return []pipeline.Failure{pipeline.NotFound("productId", MsgNoProductInCart)}, nil
		}
		return nil, nil
	})
}

func (s *Service) DeleteItem(ctx context.Context, req DeleteItemRequest) pipeline.Outcome[catalog.Product] {
	req.CartID, req.ProductID = ident.Canonical(req.CartID), ident.Canonical(req.ProductID)
	validators := []pipeline.Validator[DeleteItemRequest]{
		pipeline.Rules(cartRule(s.carts, func(r DeleteItemRequest) string { return r.CartID })),
		pipeline.Rules(catalog.ProductRule(s.products, "productId", func(r DeleteItemRequest) string { return r.ProductID })),
		s.lineValidator(),
	}

	return pipeline.Execute(ctx, "cart.DeleteItem", req, validators, s.deleteItem)
}

func (s *Service) deleteItem(ctx context.Context, req DeleteItemRequest) (catalog.Product, error) {
	c, err := s.carts.Get(ctx, req.CartID)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get cart %s: %w", req.CartID, err)
	}

	updated, err := c.Remove(req.ProductID)
	if errors.Is(err, ErrLineNotFound) {
		return catalog.Product{}, pipeline.NotFound("productId", MsgNoProductInCart)
	}
	if err != nil {
		return catalog.Product{}, err
	}
	updated.ID = req.CartID

	if err := s.carts.Replace(ctx, req.CartID, updated); err != nil {
		return catalog.Product{}, fmt.Errorf("replace cart %s: %w", req.CartID, err)
	}
	s.publish(ctx, Change{Cart: updated, ProductID: req.ProductID, Reason: ReasonLineRemoved})

	p, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get product %s: %w", req.ProductID, err)
	}
	return p, nil
}

func (s *Service) publish(ctx context.Context, change Change) {
	if err := s.events.PublishCartUpdated(ctx, change); err != nil {
		s.logger.WarnContext(ctx, "publish cart updated event failed",
			"cartId", change.Cart.ID,
			"reason", string(change.Reason),
			"error", err,
		)
	}
}

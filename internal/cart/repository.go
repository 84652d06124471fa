package cart

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("cart not found")

// Repository is the data-access capability for the Carts collection.
// Replace rewrites the whole document; there is no version check, so the
// last writer wins. Get and Replace return ErrNotFound for unknown ids.
type Repository interface {
	Get(ctx context.Context, id string) (Cart, error)
	List(ctx context.Context, limit int) ([]Cart, error)
	Create(ctx context.Context, c Cart) (string, error)
	Replace(ctx context.Context, id string, c Cart) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher is notified after a cart document has been written.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, change Change) error
}

type ChangeReason string

const (
	ReasonCreated         ChangeReason = "created"
	ReasonQuantityChanged ChangeReason = "quantity_changed"
	ReasonLineRemoved     ChangeReason = "line_removed"
)

// Change describes one persisted cart mutation.
type Change struct {
	Cart      Cart
	ProductID string
	Reason    ChangeReason
}

type nopPublisher struct{}

func (nopPublisher) PublishCartUpdated(context.Context, Change) error { return nil }

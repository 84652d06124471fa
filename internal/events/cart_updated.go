package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

const (
	EventTypeCartUpdated = "CartUpdated"
	cartUpdatedSchema    = "contracts/events/cart/CartUpdated.v1.payload.schema.json"
)

type CartUpdatedPayload struct {
	CartID    string     `json:"cartId"`
	ProductID string     `json:"productId"`
	Reason    string     `json:"reason"`
	Lines     []CartLine `json:"lines"`
	Timestamp time.Time  `json:"timestamp"`
}

type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func newCartUpdatedPayload(change cart.Change, at time.Time) CartUpdatedPayload {
	lines := make([]CartLine, 0, len(change.Cart.Lines))
	for _, l := range change.Cart.Lines {
		lines = append(lines, CartLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return CartUpdatedPayload{
		CartID:    change.Cart.ID,
		ProductID: change.ProductID,
		Reason:    string(change.Reason),
		Lines:     lines,
		Timestamp: at,
	}
}

// newCartUpdatedEvent wraps payload in a v1 envelope partitioned by cart id.
func newCartUpdatedEvent(correlationID, producer string, payload CartUpdatedPayload) (EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("marshal CartUpdated payload: %w", err)
	}
	return EventEnvelope{
		EventName:     EventTypeCartUpdated,
		EventVersion:  1,
		EventID:       uuid.NewString(),
		CorrelationID: correlationID,
		Producer:      producer,
		PartitionKey:  payload.CartID,
		OccurredAt:    payload.Timestamp,
		Schema:        cartUpdatedSchema,
		Payload:       raw,
	}, nil
}

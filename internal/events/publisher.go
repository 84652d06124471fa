package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/correlation"
)

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	ch       channel
	producer string
	now      func() time.Time
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	return newPublisher(ch), nil
}

func newPublisher(ch channel) *Publisher {
	return &Publisher{
		ch:       ch,
		producer: storefrontServiceName,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// PublishCartUpdated emits a CartUpdated envelope for a persisted cart change.
func (p *Publisher) PublishCartUpdated(ctx context.Context, change cart.Change) error {
	payload := newCartUpdatedPayload(change, p.now())

	env, err := newCartUpdatedEvent(correlation.ID(ctx), p.producer, payload)
	if err != nil {
		return err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal CartUpdated envelope: %w", err)
	}

	return p.publishJSON(ctx, CartUpdatedRoutingKey, env, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, env EventEnvelope, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, defaultPublishDeadline)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     env.EventID,
			CorrelationId: env.CorrelationID,
			Timestamp:     env.OccurredAt,
			Type:          env.EventName,
			AppId:         env.Producer,
			Body:          body,
		},
	)
}

package events

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange         = "ecommerce.events"
	CartUpdatedRoutingKey  = "cart.updated.v1"
	storefrontServiceName  = "storefront-service-go"
	defaultDialTimeout     = 10 * time.Second
	defaultPublishDeadline = 3 * time.Second
)

// Dial opens an AMQP connection with a bounded dial timeout.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Dial: amqp.DefaultDial(defaultDialTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	return conn, nil
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp091 "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"

	"github.com/cimillas/surplus-market/internal/app"
)

const (
	capacityExchange = "capacity_notifications"
	publishTimeout   = 10 * time.Second
	maxInFlight      = 4
)

// AMQPNotifier broadcasts capacity changes on a durable fanout exchange, one
// message per recipient. Publishing is best-effort: failures are logged and
// never reach the caller.
type AMQPNotifier struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *log.Logger
}

func DialAMQP(url string, logger *log.Logger) (*AMQPNotifier, error) {
	if logger == nil {
		logger = log.Default()
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		capacityExchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPNotifier{
		conn:    conn,
		channel: channel,
		logger:  logger,
	}, nil
}

type capacityMessage struct {
	Recipient      string    `json:"recipient"`
	RestaurantID   string    `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	BagsReleased   int       `json:"bags_released"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func (n *AMQPNotifier) CapacityChanged(_ context.Context, change app.CapacityChange) {
	// Detach from the request: the broadcast must not block the operation
	// that triggered it.
	go n.broadcast(change)
}

func (n *AMQPNotifier) broadcast(change app.CapacityChange) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(maxInFlight)
	for _, recipient := range change.Recipients {
		recipient := recipient
		g.Go(func() error {
			body, err := json.Marshal(capacityMessage{
				Recipient:      recipient,
				RestaurantID:   change.RestaurantID,
				RestaurantName: change.RestaurantName,
				BagsReleased:   change.BagsReleased,
				OccurredAt:     change.OccurredAt,
			})
			if err != nil {
				return fmt.Errorf("marshal notification: %w", err)
			}
			return n.channel.PublishWithContext(
				ctx,
				capacityExchange,
				"",    // routing key ignored for fanout
				false, // mandatory
				false, // immediate
				amqp091.Publishing{
					ContentType: "application/json",
					Body:        body,
					Timestamp:   change.OccurredAt,
				},
			)
		})
	}
	if err := g.Wait(); err != nil {
		n.logger.Printf("WARN: capacity notification publish failed: %v", err)
	}
}

func (n *AMQPNotifier) Close() error {
	if n.channel != nil {
		_ = n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

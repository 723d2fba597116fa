// Package amqp publishes committed ledger log entries to a RabbitMQ exchange.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/mmynk/konta/internal/eventlog"
	"github.com/mmynk/konta/internal/models"
)

const publishTimeout = 5 * time.Second

var _ eventlog.Publisher = (*Client)(nil)

// Client publishes log entries to a topic exchange. Routing keys are
// "<prefix>.<kind>", e.g. "ledger.events.bill_added".
type Client struct {
	url          string
	exchangeName string
	routingKey   string

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// NewClient dials the broker and declares the exchange.
func NewClient(url, exchangeName, routingKey string) (*Client, error) {
	c := &Client{
		url:          url,
		exchangeName: exchangeName,
		routingKey:   routingKey,
	}

	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

// connect opens a connection and channel. Callers hold c.mu or own c exclusively.
func (c *Client) connect() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		c.exchangeName, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	c.conn, c.channel = conn, channel
	return nil
}

// RoutingKey returns the routing key used for entries of the given kind.
func (c *Client) RoutingKey(kind models.EntryKind) string {
	return RoutingKey(c.routingKey, kind)
}

// RoutingKey joins prefix and kind.
func RoutingKey(prefix string, kind models.EntryKind) string {
	if prefix == "" {
		return string(kind)
	}
	return prefix + "." + string(kind)
}

// Publish sends e as a persistent JSON message. A dropped connection is
// re-established once before giving up.
func (c *Client) Publish(ctx context.Context, e *models.LogEntry) error {
	body, err := NewEntryMessage(e).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() || c.channel == nil || c.channel.IsClosed() {
		c.closeLocked()
		if err := c.connect(); err != nil {
			return fmt.Errorf("reconnect: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	key := c.RoutingKey(e.Kind)
	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		key,            // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    e.ID,
			Timestamp:    e.CreatedAt,
			Type:         string(e.Kind),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.DebugContext(ctx, "Published log entry",
		"entry_id", e.ID,
		"kind", e.Kind,
		"exchange", c.exchangeName,
		"routing_key", key)

	return nil
}

// Close closes the channel and connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Client) closeLocked() error {
	var err error
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		err = c.conn.Close()
		c.conn = nil
	}
	return err
}

// Package broker manages the AMQP 0-9-1 connection and the topology
// declared on it: one topic exchange and, per robot identity, a durable
// command queue bound to "{robot_id}.cmd" (spec §6).
package broker

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/c12-ai/robomock/pkg/config"
)

// Client wraps the AMQP connection and a dedicated channel, grounded on
// pkg/database's Config-struct-plus-constructor shape, retargeted from a
// pooled SQL connection to a single long-lived AMQP channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     *config.BrokerConfig
}

// NewClient dials the broker, opens a channel, sets the configured
// prefetch, and declares the topic exchange.
func NewClient(cfg *config.BrokerConfig) (*Client, error) {
	amqpCfg := amqp.Config{
		Heartbeat: cfg.Heartbeat,
		Dial:      amqp.DefaultDial(cfg.ConnectionTimeout),
	}

	conn, err := amqp.DialConfig(cfg.URL(), amqpCfg)
	if err != nil {
		return nil, fmt.Errorf("dialing broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if err := ch.Qos(cfg.Prefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("setting qos: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declaring exchange %q: %w", cfg.Exchange, err)
	}

	return &Client{conn: conn, channel: ch, cfg: cfg}, nil
}

// Channel returns the underlying AMQP channel for publishers and consumers.
func (c *Client) Channel() *amqp.Channel {
	return c.channel
}

// Exchange returns the configured exchange name.
func (c *Client) Exchange() string {
	return c.cfg.Exchange
}

// DeclareCommandQueue declares (idempotently) and binds the durable
// per-robot command queue to "{robotID}.cmd" on the exchange, returning
// its name.
func (c *Client) DeclareCommandQueue(robotID string) (string, error) {
	queueName := robotID + ".cmd"
	routingKey := robotID + ".cmd"

	if _, err := c.channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return "", fmt.Errorf("declaring queue %q: %w", queueName, err)
	}
	if err := c.channel.QueueBind(queueName, routingKey, c.cfg.Exchange, false, nil); err != nil {
		return "", fmt.Errorf("binding queue %q to %q: %w", queueName, routingKey, err)
	}
	return queueName, nil
}

// Health reports whether the connection and channel are still open.
func (c *Client) Health() Health {
	return Health{
		Connected: c.conn != nil && !c.conn.IsClosed(),
		CheckedAt: time.Now(),
	}
}

// Health describes the broker connection's current status.
type Health struct {
	Connected bool      `json:"connected"`
	CheckedAt time.Time `json:"checked_at"`
}

// Close closes the channel, then the connection.
func (c *Client) Close() error {
	var firstErr error
	if err := c.channel.Close(); err != nil {
		firstErr = err
	}
	if err := c.conn.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

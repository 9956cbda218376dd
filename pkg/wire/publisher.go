// Package wire publishes and consumes the three outbound message kinds
// (result, log, heartbeat) and the one inbound kind (cmd) on their
// "{robot_id}.*" routing keys (spec §6). Grounded on pkg/events'
// one-typed-method-per-event-kind publisher shape, retargeted from
// Postgres NOTIFY/LISTEN to an AMQP channel.
package wire

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/c12-ai/robomock/pkg/protocol"
)

// channel is the narrow surface Publisher needs from *amqp.Channel, so
// tests can substitute a recorder.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher publishes Result, LogEnvelope, and Heartbeat messages to their
// respective routing keys on the configured exchange. Every publish uses
// the persistent delivery mode (spec §6): messages survive a broker
// restart.
type Publisher struct {
	ch       channel
	exchange string
	robotID  string
}

// NewPublisher creates a Publisher bound to one robot identity.
func NewPublisher(ch channel, exchange, robotID string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, robotID: robotID}
}

// PublishResult publishes the terminal result for a command to
// "{robot_id}.result". A publish failure is retried once before being
// returned to the caller (spec §7: "retried once and then logged" — the
// logging itself is the caller's responsibility, since only the caller
// knows whether the failure is fatal to the command outcome).
func (p *Publisher) PublishResult(ctx context.Context, result protocol.Result) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result for task %s: %w", result.TaskID, err)
	}
	routingKey := p.robotID + ".result"
	if err := p.publish(ctx, routingKey, body); err != nil {
		slog.Warn("result publish failed, retrying once", "task_id", result.TaskID, "error", err)
		if err := p.publish(ctx, routingKey, body); err != nil {
			return fmt.Errorf("publishing result for task %s (after retry): %w", result.TaskID, err)
		}
	}
	return nil
}

// PublishLog publishes one intermediate update for a task to
// "{robot_id}.log".
func (p *Publisher) PublishLog(ctx context.Context, entry protocol.LogEnvelope) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log for task %s: %w", entry.TaskID, err)
	}
	return p.publish(ctx, p.robotID+".log", body)
}

// PublishHeartbeat publishes the current robot state snapshot to
// "{robot_id}.hb".
func (p *Publisher) PublishHeartbeat(ctx context.Context, hb protocol.Heartbeat) error {
	body, err := json.Marshal(hb)
	if err != nil {
		return fmt.Errorf("marshaling heartbeat: %w", err)
	}
	return p.publish(ctx, p.robotID+".hb", body)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, body []byte) error {
	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

package wire

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/c12-ai/robomock/pkg/protocol"
)

// channelConsumer is the narrow surface Consumer needs from *amqp.Channel.
type channelConsumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Handler processes one parsed command. An error nacks the delivery
// without requeue — the scenario selector, not redelivery, decides a
// command's fate (spec §4.4); malformed envelopes are not retried.
type Handler func(ctx context.Context, cmd protocol.Command) error

// Consumer consumes "{robot_id}.cmd" with manual acknowledgement: a
// delivery is acked only after Handler returns, so a crash mid-handling
// redelivers the command (grounded on queue.Worker's run loop, generalized
// from polling a database table to draining an AMQP delivery channel).
type Consumer struct {
	ch        channelConsumer
	queueName string
	robotID   string
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewConsumer creates a Consumer for the named queue.
func NewConsumer(ch channelConsumer, queueName, robotID string) *Consumer {
	return &Consumer{ch: ch, queueName: queueName, robotID: robotID, stopCh: make(chan struct{})}
}

// Start begins consuming in a goroutine, invoking handler for each parsed
// command. Parse failures are logged and nacked without requeue rather
// than passed to handler.
func (c *Consumer) Start(ctx context.Context, handler Handler) error {
	deliveries, err := c.ch.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("starting consume on %q: %w", c.queueName, err)
	}

	c.wg.Add(1)
	go c.run(ctx, deliveries, handler)
	return nil
}

// Stop signals the consume loop to stop and waits for it to drain.
func (c *Consumer) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
	c.wg.Wait()
}

func (c *Consumer) run(ctx context.Context, deliveries <-chan amqp.Delivery, handler Handler) {
	defer c.wg.Done()
	log := slog.With("robot_id", c.robotID, "queue", c.queueName)
	log.Info("consumer started")

	for {
		select {
		case <-c.stopCh:
			log.Info("consumer stopping")
			return
		case <-ctx.Done():
			log.Info("context cancelled, consumer stopping")
			return
		case d, ok := <-deliveries:
			if !ok {
				log.Warn("delivery channel closed by broker")
				return
			}
			c.handle(ctx, d, handler, log)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery, handler Handler, log *slog.Logger) {
	cmd, err := protocol.ParseCommand(d.Body)
	if err != nil {
		log.Error("dropping malformed command", "error", err)
		_ = d.Nack(false, false)
		return
	}

	log = log.With("task_id", cmd.TaskID, "task_type", cmd.TaskType)
	if err := handler(ctx, cmd); err != nil {
		log.Error("command handling failed", "error", err)
		_ = d.Nack(false, false)
		return
	}
	if err := d.Ack(false); err != nil {
		log.Error("failed to ack delivery", "error", err)
	}
}

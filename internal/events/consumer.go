package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Purger drops every cached read response.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// Consumer reads catalog events, writes one audit record per event and
// purges the read cache when an event touches public data.
type Consumer struct {
	URL   string
	Queue string
	Audit *slog.Logger // audit sink, one record per event
	Log   *slog.Logger // operational messages
	Cache Purger       // optional
}

// Run connects to RabbitMQ and consumes until ctx is cancelled, reconnecting
// with exponential backoff when the broker goes away.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Log.Warn("event-consumer: failed to dial broker", "err", err, "retry_in", backoff.String())
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Log.Warn("event-consumer: consume loop ended, reconnecting", "err", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Log.Warn("event-consumer: set QoS failed", "err", err)
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.Handle(ctx, d.Body); err != nil {
				c.Log.Error("event-consumer: handle message failed", "err", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle processes a single message body.
func (c *Consumer) Handle(ctx context.Context, body []byte) error {
	var ev CatalogEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Entity == "" || ev.Action == "" {
		return errors.New("event without entity or action")
	}

	c.Audit.Info("catalog change",
		"event_id", ev.ID,
		"entity", string(ev.Entity),
		"kind", ev.Kind,
		"action", string(ev.Action),
		"entity_id", ev.EntityID,
		"user_id", ev.UserID,
		"occurred_at", ev.OccurredAt.Format(time.RFC3339),
	)

	if c.Cache != nil && ev.InvalidatesReads() {
		n, err := c.Cache.Purge(ctx)
		if err != nil {
			// the audit line is written, a stale cache expires by TTL
			c.Log.Warn("event-consumer: cache purge failed", "err", err)
			return nil
		}
		c.Log.Debug("event-consumer: cache purged", "keys", n, "event_id", ev.ID)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

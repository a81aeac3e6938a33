package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueName is the durable queue catalog events are routed to.
const QueueName = "catalog.events"

// Publisher hands catalog events to whatever transports them.  Failures are
// returned so the caller can log them; they never fail a request.
type Publisher interface {
	Publish(ctx context.Context, ev CatalogEvent) error
}

// Nop drops every event.  It is used when AMQP is disabled.
type Nop struct{}

func (Nop) Publish(context.Context, CatalogEvent) error { return nil }

// AMQPPublisher publishes events to RabbitMQ.  It dials per publish, which
// keeps it free of connection state at the price of latency; catalog writes
// are rare enough for that.
type AMQPPublisher struct {
	URL   string
	Queue string
	Log   *slog.Logger
}

func NewAMQPPublisher(url string, log *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Queue: QueueName, Log: log}
}

// Publish sends ev as a persistent JSON message on the default exchange.
func (p *AMQPPublisher) Publish(ctx context.Context, ev CatalogEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Warn("rabbitmq: dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn("rabbitmq: channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.Log.Warn("rabbitmq: queue declare failed", "err", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    ev.ID,
		Timestamp:    time.Now().UTC(),
		Type:         string(ev.Entity) + "." + string(ev.Action),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		p.Log.Warn("rabbitmq: publish failed", "err", err)
		return err
	}
	return nil
}

// Purging drops the read cache for every event that changes public reads
// before handing the event on.  It covers the case where no consumer is
// running to do the purge after the broker delivers the event.
type Purging struct {
	Next  Publisher
	Cache Purger
	Log   *slog.Logger
}

// Publish purges synchronously so the next read after a committed write
// misses the cache.
func (p Purging) Publish(ctx context.Context, ev CatalogEvent) error {
	if p.Cache != nil && ev.InvalidatesReads() {
		if _, err := p.Cache.Purge(ctx); err != nil && p.Log != nil {
			p.Log.Warn("cache purge failed", "err", err, "event_id", ev.ID)
		}
	}
	if p.Next == nil {
		return nil
	}
	return p.Next.Publish(ctx, ev)
}

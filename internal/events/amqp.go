package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	DefaultQueue   = "bmi_readings"
	publishTimeout = 5 * time.Second
)

var errNotConnected = errors.New("not connected to a server")

// AMQPPublisher pushes reading events onto a RabbitMQ queue. A closed
// channel is re-opened once on the next publish.
type AMQPPublisher struct {
	mu      sync.Mutex
	queue   string
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *zap.Logger
}

// NewAMQP dials addr and declares queue.
func NewAMQP(addr, queue string, log *zap.Logger) (*AMQPPublisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	p := &AMQPPublisher{queue: queue, conn: conn, log: log}
	if err := p.init(); err != nil {
		conn.Close()
		return nil, err
	}
	log.Info("connected to rabbitmq", zap.String("queue", queue))
	return p, nil
}

// init opens a channel and declares the queue.
func (p *AMQPPublisher) init() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // delete when unused
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		ch.Close()
		return fmt.Errorf("declare queue %q: %w", p.queue, err)
	}
	p.channel = ch
	return nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev ReadingEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		return errNotConnected
	}
	if p.channel == nil || p.channel.IsClosed() {
		p.log.Warn("channel closed, re-initializing")
		if err := p.init(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.channel.PublishWithContext(
		ctx,
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.RecordedAt,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil && !p.channel.IsClosed() {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil && !p.conn.IsClosed() {
		errs = append(errs, p.conn.Close())
	}
	p.channel = nil
	p.conn = nil
	return errors.Join(errs...)
}

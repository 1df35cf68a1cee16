package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publisherAppID = "credit-application-system"

var (
	errNilConnection = errors.New("rabbitmq: nil connection")
	errNoExchange    = errors.New("rabbitmq: exchange name is required")
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQEventPublisher writes events to a durable topic exchange. It keeps
// one channel open and replaces it after a failed publish.
type RabbitMQEventPublisher struct {
	open     func() (channel, error)
	exchange string
	logger   *slog.Logger
	now      func() time.Time

	mu sync.Mutex
	ch channel
}

var _ Publisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchange string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, errNilConnection
	}
	if exchange == "" {
		return nil, errNoExchange
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	if err := declareExchange(conn, exchange); err != nil {
		return nil, err
	}
	logger.Info("RabbitMQ exchange declared", slog.String("exchange", exchange), slog.String("kind", amqp.ExchangeTopic))

	return newPublisher(func() (channel, error) { return conn.Channel() }, exchange, logger), nil
}

func declareExchange(conn *amqp.Connection, exchange string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel for exchange %q: %w", exchange, err)
	}
	defer ch.Close()

	// durable, not auto-deleted, not internal, wait for the broker
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %q: %w", exchange, err)
	}
	return nil
}

func newPublisher(open func() (channel, error), exchange string, logger *slog.Logger) *RabbitMQEventPublisher {
	return &RabbitMQEventPublisher{
		open:     open,
		exchange: exchange,
		logger:   logger.With("component", "RabbitMQEventPublisher", "exchange", exchange),
		now:      time.Now,
	}
}

func (p *RabbitMQEventPublisher) PublishCustomerCreated(ctx context.Context, evt CustomerEvent) error {
	return p.publish(ctx, RoutingKeyCustomerCreated, evt)
}

func (p *RabbitMQEventPublisher) PublishCustomerUpdated(ctx context.Context, evt CustomerEvent) error {
	return p.publish(ctx, RoutingKeyCustomerUpdated, evt)
}

func (p *RabbitMQEventPublisher) PublishCustomerDeleted(ctx context.Context, evt CustomerDeletedEvent) error {
	return p.publish(ctx, RoutingKeyCustomerDeleted, evt)
}

func (p *RabbitMQEventPublisher) PublishCreditIssued(ctx context.Context, evt CreditIssuedEvent) error {
	return p.publish(ctx, RoutingKeyCreditIssued, evt)
}

// Close releases the cached channel, if any.
func (p *RabbitMQEventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}

func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey string, evt any) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", routingKey, err)
	}

	msg := amqp.Publishing{
		MessageId:    uuid.NewString(),
		Type:         routingKey,
		AppId:        publisherAppID,
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now().UTC(),
		Body:         body,
	}
	log := p.logger.With(slog.String("routing_key", routingKey), slog.String("message_id", msg.MessageId))

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		if p.ch, err = p.open(); err != nil {
			log.ErrorContext(ctx, "Cannot open RabbitMQ channel", slog.Any("error", err))
			return fmt.Errorf("open channel: %w", err)
		}
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		log.ErrorContext(ctx, "RabbitMQ publish failed, dropping channel", slog.Any("error", err))
		_ = p.ch.Close()
		p.ch = nil
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	log.DebugContext(ctx, "Event published", slog.Int("bytes", len(body)))
	return nil
}

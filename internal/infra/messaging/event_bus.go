// Package messaging publishes booking lifecycle events to a RabbitMQ topic exchange.
package messaging

import (
	"context"
	"encoding/json"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/pkg/config"
	"carwash-scheduler/internal/pkg/errs"
	"carwash-scheduler/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPEventBus routes each event by its type, e.g. "booking.cancelled".
type AMQPEventBus struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   *zap.Logger
}

func NewAMQPEventBus(cfg config.AMQPConfig, logger *zap.Logger) (*AMQPEventBus, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "declare exchange")
	}
	return &AMQPEventBus{conn: conn, ch: ch, exchange: cfg.Exchange, logger: logger}, nil
}

var _ shared.EventBus = (*AMQPEventBus)(nil)

func (b *AMQPEventBus) Publish(ctx context.Context, e booking.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return errs.Wrap(err, "marshal event")
	}
	err = b.ch.PublishWithContext(ctx, b.exchange, string(e.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID.String(),
		Timestamp:    e.OccurredAt,
		Type:         string(e.Type),
		Body:         body,
	})
	if err != nil {
		return errs.Wrapf(err, "publish %s", e.Type)
	}
	b.logger.Debug("event published",
		zap.String("event", string(e.Type)),
		zap.String("booking_id", e.BookingID.String()))
	return nil
}

func (b *AMQPEventBus) Close() error {
	if b.ch != nil {
		_ = b.ch.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

// LogEventBus stands in when no broker is configured.
type LogEventBus struct {
	logger *zap.Logger
}

func NewLogEventBus(logger *zap.Logger) *LogEventBus {
	return &LogEventBus{logger: logger}
}

func (b *LogEventBus) Publish(_ context.Context, e booking.Event) error {
	b.logger.Info("event",
		zap.String("event", string(e.Type)),
		zap.String("booking_id", e.BookingID.String()),
		zap.String("status", e.Status.String()),
		zap.Any("data", e.Data))
	return nil
}

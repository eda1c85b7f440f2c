//go:build unit

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/tests/common/builder"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error { return nil }

func TestAMQPEventBus_Publish(t *testing.T) {
	b, err := builder.NewBookingBuilder().BuildInStatus(booking.StatusCancelled)
	require.NoError(t, err)
	event := booking.NewEvent(booking.EventCancelled, b, builder.DefaultNow, map[string]any{"feeCents": 0})

	t.Run("routes by event type", func(t *testing.T) {
		ch := &fakeChannel{}
		bus := &AMQPEventBus{ch: ch, exchange: "booking.events", logger: zap.NewNop()}

		require.NoError(t, bus.Publish(context.Background(), event))
		require.Len(t, ch.sent, 1)

		sent := ch.sent[0]
		assert.Equal(t, "booking.events", sent.exchange)
		assert.Equal(t, "booking.cancelled", sent.key)
		assert.Equal(t, "application/json", sent.msg.ContentType)
		assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)

		var body map[string]any
		require.NoError(t, json.Unmarshal(sent.msg.Body, &body))
		assert.Equal(t, b.ID().String(), body["bookingId"])
		assert.Equal(t, "CANCELLED", body["status"])
	})

	t.Run("broker failure is returned", func(t *testing.T) {
		ch := &fakeChannel{err: errors.New("channel closed")}
		bus := &AMQPEventBus{ch: ch, exchange: "booking.events", logger: zap.NewNop()}

		err := bus.Publish(context.Background(), event)
		assert.ErrorContains(t, err, "channel closed")
	})
}

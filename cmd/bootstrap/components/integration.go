package components

import (
	"context"

	"carwash-scheduler/internal/infra/cache"
	"carwash-scheduler/internal/infra/lock"
	"carwash-scheduler/internal/infra/messaging"
	"carwash-scheduler/internal/infra/notification"
	"carwash-scheduler/internal/infra/payment"
	"carwash-scheduler/internal/pkg/config"
	"carwash-scheduler/internal/usecase/shared"
	"carwash-scheduler/internal/worker"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// IntegrationModule wires the adapters behind the side-effect ports: locks, cache, events,
// notifications and payments.
var IntegrationModule = fx.Module("integration",
	fx.Provide(
		lock.NewLocker,
		fx.Annotate(
			NewBookingCache,
			fx.As(new(shared.BookingCache)),
		),
		NewEventBus,
		NewTaskClient,
		func(c *asynq.Client) notification.Enqueuer { return c },
		fx.Annotate(
			NewNotificationService,
			fx.As(new(shared.NotificationService)),
		),
		func(cfg config.Config, logger *zap.Logger) shared.PaymentService {
			return payment.NewPaymentService(cfg.Stripe, logger)
		},
		func(cfg config.Config) config.LockConfig { return cfg.Lock },
	),
)

func NewBookingCache(client redis.UniversalClient, cfg config.Config) *cache.RedisBookingCache {
	return cache.NewRedisBookingCache(client, cfg.Scheduling.CacheTTL)
}

// NewEventBus publishes to RabbitMQ when AMQP_URL is set and only logs otherwise.
func NewEventBus(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (shared.EventBus, error) {
	if cfg.AMQP.URL == "" {
		logger.Warn("AMQP_URL not set; booking events are logged only")
		return messaging.NewLogEventBus(logger), nil
	}
	bus, err := messaging.NewAMQPEventBus(cfg.AMQP, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bus.Close()
		},
	})
	return bus, nil
}

func NewTaskClient(lc fx.Lifecycle, cfg config.Config) *asynq.Client {
	client := asynq.NewClient(worker.RedisOpt(cfg.Redis))
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}

func NewNotificationService(client notification.Enqueuer, cfg config.Config, logger *zap.Logger) *notification.QueueNotificationService {
	return notification.NewQueueNotificationService(client, cfg.Queue, logger)
}

package components

import (
	"carwash-scheduler/internal/infra/notification"
	"carwash-scheduler/internal/pkg/config"
	"carwash-scheduler/internal/usecase/commands"
	"carwash-scheduler/internal/worker"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		fx.Annotate(
			notification.NewLogSender,
			fx.As(new(notification.Sender)),
		),
		func(sender notification.Sender, sweeper commands.BookingCommands, cfg config.Config, logger *zap.Logger) *worker.Handlers {
			return worker.NewHandlers(sender, sweeper, cfg.Queue.SweepBatchSize, logger)
		},
		worker.New,
	),
)

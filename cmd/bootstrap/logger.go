package bootstrap

import (
	"context"

	"carwash-scheduler/internal/handler/middleware"
	"carwash-scheduler/internal/pkg/config"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(lc fx.Lifecycle, cfg config.Config) (*zap.Logger, error) {
	logger, err := middleware.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}

// FxLogger routes fx's own lifecycle events through zap.
var FxLogger = fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: logger.Named("fx")}
})

package main

import (
	"context"
	"os"

	"carwash-scheduler/cmd/bootstrap"
	"carwash-scheduler/cmd/bootstrap/components"
	"carwash-scheduler/internal/worker"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func runWorker(lc fx.Lifecycle, shutdowner fx.Shutdowner, w *worker.Worker, logger *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := w.Run(ctx); err != nil {
					logger.Error("worker stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.Module,
		components.WorkerModule,
		fx.Invoke(runWorker),
	)

	if err := app.Start(context.Background()); err != nil {
		zap.L().Error("worker failed to start", zap.Error(err))
		os.Exit(1)
	}

	sig := <-app.Wait()

	if err := app.Stop(context.Background()); err != nil {
		zap.L().Error("worker failed to stop cleanly", zap.Error(err))
	}
	os.Exit(sig.ExitCode)
}

// Package worker runs background jobs: notification delivery and the periodic no-show sweep.
package worker

import (
	"context"

	"carwash-scheduler/internal/infra/notification"
	"carwash-scheduler/internal/pkg/config"
	"carwash-scheduler/internal/pkg/errs"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.QueueDB,
	}
}

type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	cron      string
	logger    *zap.Logger
}

func New(cfg config.Config, handlers *Handlers, logger *zap.Logger) *Worker {
	opt := RedisOpt(cfg.Redis)
	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: cfg.Queue.Concurrency,
		Queues: map[string]int{
			notification.Queue: 6,
			QueueMaintenance:   3,
			"default":          1,
		},
		Logger:   zapAdapter{logger.Sugar()},
		LogLevel: asynq.WarnLevel,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Warn("task failed",
				zap.String("task", task.Type()),
				zap.Int("retried", retried),
				zap.Int("max_retry", maxRetry),
				zap.Error(err))
		}),
	})
	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Logger:   zapAdapter{logger.Sugar()},
		LogLevel: asynq.WarnLevel,
	})

	mux := asynq.NewServeMux()
	handlers.Register(mux)

	return &Worker{
		server:    server,
		scheduler: scheduler,
		mux:       mux,
		cron:      cfg.Queue.NoShowSweepCron,
		logger:    logger,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	entryID, err := w.scheduler.Register(w.cron, asynq.NewTask(TypeNoShowSweep, nil),
		asynq.Queue(QueueMaintenance),
		asynq.MaxRetry(0))
	if err != nil {
		return errs.Wrapf(err, "register no-show sweep %q", w.cron)
	}
	w.logger.Info("no-show sweep scheduled", zap.String("cron", w.cron), zap.String("entry_id", entryID))

	if err := w.server.Start(w.mux); err != nil {
		return errs.Wrap(err, "start task server")
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return errs.Wrap(err, "start scheduler")
	}

	<-ctx.Done()
	w.logger.Info("stopping worker")
	w.scheduler.Shutdown()
	w.server.Shutdown()
	return nil
}

type zapAdapter struct {
	s *zap.SugaredLogger
}

func (a zapAdapter) Debug(args ...any) { a.s.Debug(args...) }
func (a zapAdapter) Info(args ...any)  { a.s.Info(args...) }
func (a zapAdapter) Warn(args ...any)  { a.s.Warn(args...) }
func (a zapAdapter) Error(args ...any) { a.s.Error(args...) }
func (a zapAdapter) Fatal(args ...any) { a.s.Fatal(args...) }

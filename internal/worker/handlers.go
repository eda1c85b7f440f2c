package worker

import (
	"context"

	"carwash-scheduler/internal/infra/notification"
	"carwash-scheduler/internal/usecase/commands"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type NoShowSweeper interface {
	SweepNoShows(ctx context.Context, limit int) (commands.SweepResult, error)
}

type Handlers struct {
	sender    notification.Sender
	sweeper   NoShowSweeper
	batchSize int
	logger    *zap.Logger
}

func NewHandlers(sender notification.Sender, sweeper NoShowSweeper, batchSize int, logger *zap.Logger) *Handlers {
	return &Handlers{sender: sender, sweeper: sweeper, batchSize: batchSize, logger: logger}
}

func (h *Handlers) Register(mux *asynq.ServeMux) {
	for _, t := range []string{
		notification.TypeBookingConfirmation,
		notification.TypeBookingCancellation,
		notification.TypeBookingReschedule,
		notification.TypeStatusUpdate,
	} {
		mux.HandleFunc(t, h.HandleNotification)
	}
	mux.HandleFunc(TypeNoShowSweep, h.HandleNoShowSweep)
}

func (h *Handlers) HandleNotification(ctx context.Context, t *asynq.Task) error {
	p, err := notification.ParsePayload(t)
	if err != nil {
		h.logger.Error("invalid notification payload", zap.String("task", t.Type()), zap.Error(err))
		// a malformed payload never succeeds on retry
		return asynq.SkipRetry
	}
	if err := h.sender.Send(ctx, t.Type(), p); err != nil {
		h.logger.Warn("notification delivery failed",
			zap.String("task", t.Type()),
			zap.String("booking_id", p.BookingID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

// HandleNoShowSweep drains due bookings batch by batch until a pass marks nothing.
func (h *Handlers) HandleNoShowSweep(ctx context.Context, _ *asynq.Task) error {
	total := commands.SweepResult{}
	for {
		res, err := h.sweeper.SweepNoShows(ctx, h.batchSize)
		total.Scanned += res.Scanned
		total.Marked += res.Marked
		total.Skipped += res.Skipped
		if err != nil {
			h.logger.Error("no-show sweep failed", zap.Int("marked", total.Marked), zap.Error(err))
			return err
		}
		if res.Scanned < h.batchSize || res.Marked == 0 {
			break
		}
	}
	h.logger.Debug("no-show sweep task done",
		zap.Int("scanned", total.Scanned),
		zap.Int("marked", total.Marked),
		zap.Int("skipped", total.Skipped))
	return nil
}

// Package notification enqueues customer notifications for the background worker.
package notification

import (
	"context"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/pkg/config"
	"carwash-scheduler/internal/pkg/errs"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type QueueNotificationService struct {
	client   Enqueuer
	maxRetry int
	timeout  time.Duration
	logger   *zap.Logger
}

func NewQueueNotificationService(client Enqueuer, cfg config.QueueConfig, logger *zap.Logger) *QueueNotificationService {
	return &QueueNotificationService{
		client:   client,
		maxRetry: cfg.MaxRetry,
		timeout:  cfg.TaskTimeout,
		logger:   logger,
	}
}

var _ shared.NotificationService = (*QueueNotificationService)(nil)

func (s *QueueNotificationService) SendBookingConfirmation(ctx context.Context, b *booking.Booking) error {
	return s.enqueue(ctx, TypeBookingConfirmation, NewPayload(b))
}

func (s *QueueNotificationService) SendBookingCancellation(ctx context.Context, b *booking.Booking) error {
	return s.enqueue(ctx, TypeBookingCancellation, NewPayload(b))
}

func (s *QueueNotificationService) SendBookingReschedule(ctx context.Context, b *booking.Booking, previous time.Time) error {
	p := NewPayload(b)
	p.PreviousScheduledAt = &previous
	return s.enqueue(ctx, TypeBookingReschedule, p)
}

func (s *QueueNotificationService) SendStatusUpdate(ctx context.Context, b *booking.Booking) error {
	return s.enqueue(ctx, TypeStatusUpdate, NewPayload(b))
}

func (s *QueueNotificationService) enqueue(ctx context.Context, taskType string, p Payload) error {
	task, err := NewTask(taskType, p)
	if err != nil {
		return errs.Wrapf(err, "build %s task", taskType)
	}
	info, err := s.client.EnqueueContext(ctx, task,
		asynq.Queue(Queue),
		asynq.MaxRetry(s.maxRetry),
		asynq.Timeout(s.timeout))
	if err != nil {
		return errs.Wrapf(err, "enqueue %s", taskType)
	}
	s.logger.Debug("notification enqueued",
		zap.String("task", taskType),
		zap.String("task_id", info.ID),
		zap.String("booking_id", p.BookingID.String()))
	return nil
}

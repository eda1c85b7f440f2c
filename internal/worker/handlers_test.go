//go:build unit

package worker_test

import (
	"context"
	"errors"
	"testing"

	"carwash-scheduler/internal/infra/notification"
	"carwash-scheduler/internal/usecase/commands"
	"carwash-scheduler/internal/worker"
	"carwash-scheduler/tests/common/builder"
	commandsmock "carwash-scheduler/tests/mock/commands"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, taskType string, p notification.Payload) error {
	args := m.Called(ctx, taskType, p)
	return args.Error(0)
}

func TestHandleNotification(t *testing.T) {
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)
	task, err := notification.NewTask(notification.TypeBookingConfirmation, notification.NewPayload(b))
	require.NoError(t, err)

	t.Run("delivers the payload", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, notification.TypeBookingConfirmation, mock.MatchedBy(func(p notification.Payload) bool {
			return p.BookingID == b.ID() && p.CustomerID == b.CustomerID()
		})).Return(nil)
		h := worker.NewHandlers(sender, nil, 10, zap.NewNop())

		assert.NoError(t, h.HandleNotification(context.Background(), task))
		sender.AssertExpectations(t)
	})

	t.Run("delivery failure is retried by the queue", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
		h := worker.NewHandlers(sender, nil, 10, zap.NewNop())

		err := h.HandleNotification(context.Background(), task)
		assert.ErrorContains(t, err, "smtp down")
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("malformed payload skips retry", func(t *testing.T) {
		sender := new(MockSender)
		h := worker.NewHandlers(sender, nil, 10, zap.NewNop())

		err := h.HandleNotification(context.Background(), asynq.NewTask(notification.TypeStatusUpdate, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleNoShowSweep(t *testing.T) {
	task := asynq.NewTask(worker.TypeNoShowSweep, nil)

	t.Run("drains full batches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sweeper := commandsmock.NewMockBookingCommands(ctrl)
		gomock.InOrder(
			sweeper.EXPECT().SweepNoShows(gomock.Any(), 2).Return(commands.SweepResult{Scanned: 2, Marked: 2}, nil),
			sweeper.EXPECT().SweepNoShows(gomock.Any(), 2).Return(commands.SweepResult{Scanned: 1, Marked: 1}, nil),
		)
		h := worker.NewHandlers(nil, sweeper, 2, zap.NewNop())

		assert.NoError(t, h.HandleNoShowSweep(context.Background(), task))
	})

	t.Run("stops when a full batch is all skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sweeper := commandsmock.NewMockBookingCommands(ctrl)
		sweeper.EXPECT().SweepNoShows(gomock.Any(), 2).Return(commands.SweepResult{Scanned: 2, Skipped: 2}, nil).Times(1)
		h := worker.NewHandlers(nil, sweeper, 2, zap.NewNop())

		assert.NoError(t, h.HandleNoShowSweep(context.Background(), task))
	})

	t.Run("error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sweeper := commandsmock.NewMockBookingCommands(ctrl)
		sweeper.EXPECT().SweepNoShows(gomock.Any(), 2).Return(commands.SweepResult{}, errors.New("db down"))
		h := worker.NewHandlers(nil, sweeper, 2, zap.NewNop())

		assert.Error(t, h.HandleNoShowSweep(context.Background(), task))
	})
}

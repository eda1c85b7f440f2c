//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/pkg/clock"
	"carwash-scheduler/internal/usecase/commands"
	"carwash-scheduler/internal/usecase/shared"
	"carwash-scheduler/tests/common/builder"
	"carwash-scheduler/tests/common/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func activeConstraints(t *testing.T, store *memstore.Store) scheduling.Constraints {
	t.Helper()
	var c scheduling.Constraints
	err := store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		c, err = tx.Constraints().Active(ctx)
		return err
	})
	require.NoError(t, err)
	return c
}

func TestReplaceConstraints(t *testing.T) {
	t.Run("successor becomes the only active version", func(t *testing.T) {
		initial := builder.NewBookingBuilder().BuildConstraints()
		store := memstore.New(initial)
		uc := commands.NewConstraintsUseCase(store, clock.NewMockClock(builder.DefaultNow), zap.NewNop())

		p := initial.Params()
		p.Buffer = 20 * time.Minute
		p.ClosedDates = []string{"2026-12-25"}

		next, err := uc.ReplaceConstraints(context.Background(), p)

		require.NoError(t, err)
		assert.Equal(t, initial.Version()+1, next.Version())
		assert.Equal(t, 20*time.Minute, next.Buffer())
		assert.True(t, next.IsActive())

		active := activeConstraints(t, store)
		assert.Equal(t, next.ID(), active.ID())
	})

	t.Run("invalid parameters leave the active version in place", func(t *testing.T) {
		initial := builder.NewBookingBuilder().BuildConstraints()
		store := memstore.New(initial)
		uc := commands.NewConstraintsUseCase(store, clock.NewMockClock(builder.DefaultNow), zap.NewNop())

		p := initial.Params()
		p.SlotDuration = 0

		_, err := uc.ReplaceConstraints(context.Background(), p)

		require.Error(t, err)
		assert.Equal(t, initial.ID(), activeConstraints(t, store).ID())
	})
}

//go:build unit

package uow

import (
	"context"
	"testing"
	"time"

	"carwash-scheduler/internal/infra/pgquery"
	"carwash-scheduler/internal/pkg/errs"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed || t.rolledBack {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type fakePool struct {
	txs     []*fakeTx
	options []pgx.TxOptions
}

func (p *fakePool) BeginTx(_ context.Context, options pgx.TxOptions) (pgx.Tx, error) {
	tx := &fakeTx{}
	p.txs = append(p.txs, tx)
	p.options = append(p.options, options)
	return tx, nil
}

func newTestUoW(pool *fakePool) *PostgresUoW {
	u := newPostgresUoW(pool, pgquery.New(), zap.NewNop())
	u.base = time.Millisecond
	return u
}

func TestWithin_CommitsOnSuccess(t *testing.T) {
	pool := &fakePool{}
	u := newTestUoW(pool)

	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		assert.NotNil(t, tx.Bookings())
		assert.Same(t, tx.Bookings(), tx.Bookings())
		return nil
	})

	require.NoError(t, err)
	require.Len(t, pool.txs, 1)
	assert.True(t, pool.txs[0].committed)
	assert.Equal(t, pgx.ReadCommitted, pool.options[0].IsoLevel)
}

func TestWithin_RetriesSerializationFailure(t *testing.T) {
	pool := &fakePool{}
	u := newTestUoW(pool)

	calls := 0
	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: pgErrCodeSerializationFailure}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.True(t, pool.txs[0].rolledBack)
	assert.True(t, pool.txs[2].committed)
}

func TestWithin_DoesNotRetryOtherErrors(t *testing.T) {
	pool := &fakePool{}
	u := newTestUoW(pool)
	boom := &pgconn.PgError{Code: "23P01"}

	calls := 0
	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.True(t, pool.txs[0].rolledBack)
}

func TestWithin_GivesUpAfterMaxRetries(t *testing.T) {
	pool := &fakePool{}
	u := newTestUoW(pool)

	calls := 0
	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		calls++
		return &pgconn.PgError{Code: pgErrCodeDeadlockDetected}
	})

	require.Error(t, err)
	assert.True(t, errs.Is(err, errMaxRetriesExceeded))
	assert.Equal(t, u.maxRetries+1, calls)
}

func TestWithinReadOnly(t *testing.T) {
	pool := &fakePool{}
	u := newTestUoW(pool)

	err := u.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, pgx.ReadOnly, pool.options[0].AccessMode)
	assert.True(t, pool.txs[0].committed)
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		wait := calculateBackoff(attempt, base)
		floor := time.Duration(1<<attempt) * base
		assert.GreaterOrEqual(t, wait, floor)
		assert.Less(t, wait, floor+floor/5+time.Nanosecond)
	}
}

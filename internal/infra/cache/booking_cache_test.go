//go:build unit

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"carwash-scheduler/internal/usecase/shared"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBookingCache_Booking(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	key := "carwash:cache:booking:" + id.String()
	genKey := "carwash:cache:booking-gen:" + id.String()

	t.Run("hit carries the generation", func(t *testing.T) {
		client, mockRedis := redismock.NewClientMock()
		c := NewRedisBookingCache(client, time.Minute)
		mockRedis.ExpectMGet(key, genKey).SetVal([]interface{}{`{"id":"x"}`, "4"})

		got, err := c.Get(ctx, id)
		require.NoError(t, err)
		assert.True(t, got.Hit)
		assert.Equal(t, int64(4), got.Generation)
		assert.JSONEq(t, `{"id":"x"}`, string(got.Data))
	})

	t.Run("miss is not an error", func(t *testing.T) {
		client, mockRedis := redismock.NewClientMock()
		c := NewRedisBookingCache(client, time.Minute)
		mockRedis.ExpectMGet(key, genKey).SetVal([]interface{}{nil, nil})

		got, err := c.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, shared.CachedBooking{}, got)
	})

	t.Run("connection error", func(t *testing.T) {
		client, mockRedis := redismock.NewClientMock()
		c := NewRedisBookingCache(client, time.Minute)
		mockRedis.ExpectMGet(key, genKey).SetErr(errors.New("i/o timeout"))

		got, err := c.Get(ctx, id)
		assert.Error(t, err)
		assert.False(t, got.Hit)
	})

	t.Run("fill is refused after an invalidation", func(t *testing.T) {
		client, mockRedis := redismock.NewClientMock()
		c := NewRedisBookingCache(client, time.Minute)
		mockRedis.ExpectEval(fillScript, []string{key, genKey}, int64(2), []byte("v"), int64(60000)).SetVal(int64(1))
		mockRedis.ExpectEval(invalidateScript, []string{key, genKey}, int64(120000)).SetVal(int64(1))
		mockRedis.ExpectEval(fillScript, []string{key, genKey}, int64(2), []byte("stale"), int64(60000)).SetVal(int64(0))

		stored, err := c.Set(ctx, id, 2, []byte("v"))
		require.NoError(t, err)
		assert.True(t, stored)

		require.NoError(t, c.Delete(ctx, id))

		stored, err = c.Set(ctx, id, 2, []byte("stale"))
		require.NoError(t, err)
		assert.False(t, stored)
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})
}

func TestRedisBookingCache_CustomerPages(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	key := "carwash:cache:customer:" + customerID.String()

	client, mockRedis := redismock.NewClientMock()
	c := NewRedisBookingCache(client, 5*time.Minute)

	mockRedis.ExpectHSet(key, "page-1", []byte("[]")).SetVal(1)
	mockRedis.ExpectExpire(key, 5*time.Minute).SetVal(true)
	mockRedis.ExpectHGet(key, "page-1").SetVal("[]")
	mockRedis.ExpectDel(key).SetVal(1)
	mockRedis.ExpectHGet(key, "page-1").RedisNil()

	require.NoError(t, c.SetCustomerPage(ctx, customerID, "page-1", []byte("[]")))

	data, ok, err := c.GetCustomerPage(ctx, customerID, "page-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(data))

	require.NoError(t, c.InvalidateCustomer(ctx, customerID))

	_, ok, err = c.GetCustomerPage(ctx, customerID, "page-1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

// Package cache implements the read-side booking cache on Redis.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"carwash-scheduler/internal/pkg/errs"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "carwash:cache:"

// RedisBookingCache stores one string per booking and one hash per customer whose fields are
// list pages, so a single DEL drops every page of the customer.
type RedisBookingCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisBookingCache(client redis.Cmdable, ttl time.Duration) *RedisBookingCache {
	return &RedisBookingCache{client: client, ttl: ttl}
}

var _ shared.BookingCache = (*RedisBookingCache)(nil)

// a fill only lands when the generation is still the one observed before the database read
const fillScript = `local current = redis.call("GET", KEYS[2])
if (current == false and ARGV[1] == "0") or current == ARGV[1] then
	redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
	return 1
end
return 0`

// invalidation drops the view and moves the generation past every in-flight fill
const invalidateScript = `redis.call("DEL", KEYS[1])
redis.call("INCR", KEYS[2])
redis.call("PEXPIRE", KEYS[2], ARGV[1])
return 1`

func bookingKey(id uuid.UUID) string {
	return keyPrefix + "booking:" + id.String()
}

func generationKey(id uuid.UUID) string {
	return keyPrefix + "booking-gen:" + id.String()
}

func customerKey(id uuid.UUID) string {
	return keyPrefix + "customer:" + id.String()
}

func (c *RedisBookingCache) Get(ctx context.Context, id uuid.UUID) (shared.CachedBooking, error) {
	vals, err := c.client.MGet(ctx, bookingKey(id), generationKey(id)).Result()
	if err != nil {
		return shared.CachedBooking{}, errs.Wrap(err, "cache get booking")
	}
	var out shared.CachedBooking
	if gen, ok := vals[1].(string); ok {
		if out.Generation, err = strconv.ParseInt(gen, 10, 64); err != nil {
			return shared.CachedBooking{}, errs.Wrapf(err, "cache generation %q", gen)
		}
	}
	if data, ok := vals[0].(string); ok {
		out.Data, out.Hit = []byte(data), true
	}
	return out, nil
}

func (c *RedisBookingCache) Set(ctx context.Context, id uuid.UUID, generation int64, view []byte) (bool, error) {
	n, err := c.client.Eval(ctx, fillScript, []string{bookingKey(id), generationKey(id)},
		generation, view, c.ttl.Milliseconds()).Int64()
	if err != nil {
		return false, errs.Wrap(err, "cache set booking")
	}
	return n == 1, nil
}

// Delete outlives the view TTL with its generation so a slow fill started before it still loses.
func (c *RedisBookingCache) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.client.Eval(ctx, invalidateScript, []string{bookingKey(id), generationKey(id)},
		(2 * c.ttl).Milliseconds()).Err()
	return errs.Wrap(err, "cache delete booking")
}

func (c *RedisBookingCache) GetCustomerPage(ctx context.Context, customerID uuid.UUID, page string) ([]byte, bool, error) {
	data, err := c.client.HGet(ctx, customerKey(customerID), page).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(err, "cache get customer page")
	}
	return data, true, nil
}

func (c *RedisBookingCache) SetCustomerPage(ctx context.Context, customerID uuid.UUID, page string, data []byte) error {
	key := customerKey(customerID)
	if err := c.client.HSet(ctx, key, page, data).Err(); err != nil {
		return errs.Wrap(err, "cache set customer page")
	}
	// the hash expires as a whole; pages written later extend it
	return errs.Wrap(c.client.Expire(ctx, key, c.ttl).Err(), "cache expire customer pages")
}

func (c *RedisBookingCache) InvalidateCustomer(ctx context.Context, customerID uuid.UUID) error {
	return errs.Wrap(c.client.Del(ctx, customerKey(customerID)).Err(), "cache invalidate customer")
}

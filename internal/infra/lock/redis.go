package lock

import (
	"context"
	"time"

	"carwash-scheduler/internal/pkg/clock"
	"carwash-scheduler/internal/pkg/errs"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// compare-and-delete: only the holder of the token may release
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// compare-and-pexpire: only the holder of the token may extend
const extendScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`

type RedisLocker struct {
	client   redis.Cmdable
	clock    clock.Clock
	newToken func() string
}

func NewRedisLocker(client redis.Cmdable, clk clock.Clock) *RedisLocker {
	return &RedisLocker{client: client, clock: clk, newToken: uuid.NewString}
}

var _ shared.Locker = (*RedisLocker)(nil)

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (shared.Lease, bool, error) {
	token := l.newToken()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return shared.Lease{}, false, errs.Wrapf(err, "redis set %s", key)
	}
	if !ok {
		return shared.Lease{}, false, nil
	}
	return shared.Lease{Key: key, Token: token, ExpiresAt: l.clock.Now().Add(ttl)}, true, nil
}

func (l *RedisLocker) Release(ctx context.Context, lease shared.Lease) (bool, error) {
	n, err := l.client.Eval(ctx, releaseScript, []string{lease.Key}, lease.Token).Int64()
	if err != nil {
		return false, errs.Wrapf(err, "redis release %s", lease.Key)
	}
	return n == 1, nil
}

func (l *RedisLocker) Extend(ctx context.Context, lease shared.Lease, ttl time.Duration) (bool, error) {
	n, err := l.client.Eval(ctx, extendScript, []string{lease.Key}, lease.Token, ttl.Milliseconds()).Int64()
	if err != nil {
		return false, errs.Wrapf(err, "redis extend %s", lease.Key)
	}
	return n == 1, nil
}

package shared

import (
	"context"
	"fmt"
	"time"

	"carwash-scheduler/internal/domain/resource"

	"github.com/google/uuid"
)

// Lease proves ownership of a lock key. Token is unique per acquisition.
type Lease struct {
	Key       string
	Token     string
	ExpiresAt time.Time
}

// Locker is a fail-fast mutual exclusion primitive shared by every instance.
// Release and Extend only act when the caller's token still owns the key.
// Extend resets the remaining lifetime to ttl; it does not add to it.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, bool, error)
	Release(ctx context.Context, lease Lease) (bool, error)
	Extend(ctx context.Context, lease Lease, ttl time.Duration) (bool, error)
}

// SlotLockKey identifies a start time on one resource. Starts are bucketed to the slot granularity.
func SlotLockKey(prefix string, t resource.Type, resourceID uuid.UUID, start time.Time, granularity, duration time.Duration) string {
	bucket := start.Truncate(granularity)
	return fmt.Sprintf("%sslot:%s:%s:%d:%d", prefix, t, resourceID, bucket.Unix(), int(duration/time.Minute))
}

func BookingLockKey(prefix string, id uuid.UUID) string {
	return prefix + "booking:" + id.String()
}

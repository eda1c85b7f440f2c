// Package lock provides the distributed locks that serialize slot and booking mutations.
package lock

import (
	"carwash-scheduler/internal/pkg/clock"
	"carwash-scheduler/internal/pkg/config"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const BackendMemory = "memory"

func NewLocker(cfg config.LockConfig, client redis.UniversalClient, clk clock.Clock, logger *zap.Logger) shared.Locker {
	if cfg.Backend == BackendMemory {
		logger.Warn("using in-process lock backend; locks are not shared between instances")
		return NewMemoryLocker(clk)
	}
	return NewRedisLocker(client, clk)
}

package bootstrap

import (
	"carwash-scheduler/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Module is everything both the API server and the worker need.
var Module = fx.Options(
	FxLogger,
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	components.PersistenceModule,
	components.IntegrationModule,
	components.UseCaseModule,
)

package components

import (
	"carwash-scheduler/internal/infra/pgquery"
	"carwash-scheduler/internal/infra/readstore"
	"carwash-scheduler/internal/infra/uow"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Customer
		func(q *pgquery.Queries) readstore.CustomerReadQueries { return q },
		fx.Annotate(
			readstore.NewCustomerReadStore,
			fx.As(new(shared.CustomerValidator)),
		),
		// Vehicle
		func(q *pgquery.Queries) readstore.VehicleReadQueries { return q },
		fx.Annotate(
			readstore.NewVehicleReadStore,
			fx.As(new(shared.VehicleValidator)),
		),
		// Service catalog
		func(q *pgquery.Queries) readstore.ServiceReadQueries { return q },
		fx.Annotate(
			readstore.NewServiceReadStore,
			fx.As(new(shared.ServiceCatalog)),
		),
	),
)

// Repositories are built per transaction inside the unit of work.
var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *pgquery.Queries {
	return pgquery.New()
}

func NewDBTX(pool *pgxpool.Pool) pgquery.DBTX {
	return pool
}

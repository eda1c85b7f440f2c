package components

import (
	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/pkg/clock"
	"carwash-scheduler/internal/pkg/config"
	"carwash-scheduler/internal/usecase/commands"
	"carwash-scheduler/internal/usecase/queries"
	"carwash-scheduler/internal/usecase/shared"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	scheduling.NewEngine,
	NewPolicy,
	commands.NewSettings,
	queries.NewSearchSettings,
	func(uow shared.UnitOfWork, cfg config.Config, logger *zap.Logger) *shared.SideEffectRecorder {
		return shared.NewSideEffectRecorder(uow, logger, !cfg.Scheduling.SideEffectLogDisabled)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewConstraintsUseCase,
		commands.NewResourceUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
		queries.NewReferenceQueries,
	),
)

// NewPolicy overlays the configured timing and overtime knobs on the default business rules.
func NewPolicy(cfg config.Config) (booking.Policy, error) {
	p := booking.DefaultPolicy()
	p.GracePeriod = cfg.Scheduling.GracePeriod
	p.MinRescheduleNotice = cfg.Scheduling.MinRescheduleNotice
	p.OvertimeRate = booking.NewMoney(cfg.Scheduling.OvertimeCentsPerMin)
	if err := p.Validate(); err != nil {
		return booking.Policy{}, err
	}
	return p, nil
}

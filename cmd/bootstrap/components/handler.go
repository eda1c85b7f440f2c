package components

import (
	"carwash-scheduler/internal/handler"
	"carwash-scheduler/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewAvailabilityHandler,
		api.NewAdminHandler,
		func(b *api.BookingHandler, a *api.AvailabilityHandler, ad *api.AdminHandler) handler.Handlers {
			return handler.Handlers{Bookings: b, Availability: a, Admin: ad}
		},
	),
	fx.Invoke(handler.NewRouter),
)

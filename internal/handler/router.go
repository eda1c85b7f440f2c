package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"carwash-scheduler/internal/handler/api"
	"carwash-scheduler/internal/handler/middleware"
	"carwash-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Bookings     *api.BookingHandler
	Availability *api.AvailabilityHandler
	Admin        *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *zap.Logger, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *zap.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.RateLimitMiddleware(cfg.RateLimit, logger))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler(cfg.Scheduling.ContentionRetryAfter))
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Bookings.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Bookings.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Bookings.Update},
				{Method: http.MethodPost, Path: "/:id/reschedule", Handler: h.Bookings.Reschedule},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Bookings.Cancel},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Bookings.Confirm},
				{Method: http.MethodPost, Path: "/:id/start", Handler: h.Bookings.Start},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Bookings.Complete},
				{Method: http.MethodPost, Path: "/:id/no-show", Handler: h.Bookings.MarkNoShow},
				{Method: http.MethodPost, Path: "/:id/rating", Handler: h.Bookings.Rate},
				{Method: http.MethodPost, Path: "/:id/services", Handler: h.Bookings.AddService},
				{Method: http.MethodDelete, Path: "/:id/services/:serviceId", Handler: h.Bookings.RemoveService},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/customers/:id/bookings", Handler: h.Bookings.ListByCustomer},
			{Method: http.MethodPost, Path: "/availability/search", Handler: h.Availability.Search},
			{Method: http.MethodGet, Path: "/scheduling/constraints", Handler: h.Admin.GetConstraints},
			{Method: http.MethodGet, Path: "/resources", Handler: h.Admin.ListResources},
		})

		admin := apiGroup.Group("/admin")
		{
			addRoutes(admin, []route{
				{Method: http.MethodPut, Path: "/scheduling/constraints", Handler: h.Admin.ReplaceConstraints},
				{Method: http.MethodPost, Path: "/wash-bays", Handler: h.Admin.CreateWashBay},
				{Method: http.MethodPost, Path: "/mobile-teams", Handler: h.Admin.CreateMobileTeam},
				{Method: http.MethodPut, Path: "/resources/:type/:id/status", Handler: h.Admin.SetResourceStatus},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

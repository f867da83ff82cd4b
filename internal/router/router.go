package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

// Dependencies are the collaborators the HTTP surface is built from.
// Nil limiters disable rate limiting.
type Dependencies struct {
	DB                  *gorm.DB
	AuthService         service.IAuthService
	RecipeService       service.IRecipeService
	CreationLimiter     *middleware.RateLimiter
	ModificationLimiter *middleware.RateLimiter
	AllowedOrigins      []string
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.Metrics(),
		middleware.CORS(deps.AllowedOrigins),
	)
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	// Operational endpoints, no auth
	router.GET("/health", api.HealthCheck(deps.DB))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(deps.AuthService))

	api.NewRecipeHandler(deps.RecipeService, deps.CreationLimiter, deps.ModificationLimiter).RegisterRoutes(v1)
	api.NewDashboardHandler(deps.RecipeService).RegisterRoutes(v1)
	api.NewRateLimitHandler(deps.CreationLimiter, deps.ModificationLimiter).RegisterRoutes(v1)

	return router
}

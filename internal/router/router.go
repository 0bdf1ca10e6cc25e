package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/venuekit/seatmap-designer/internal/config"
	"github.com/venuekit/seatmap-designer/internal/handler"    // import the handlers that implement business logic
	"github.com/venuekit/seatmap-designer/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The health endpoint can be used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterEditor registers the owner-scoped editor endpoints.  All routes
// live under /v1 behind JWT verification and an OWNER role gate: the editor
// mutates the venue's seating inventory, which only owners may do.  The
// venue lookup additionally goes through the Redis response cache (rdb may
// be nil, which disables caching).
func RegisterEditor(e *echo.Echo, h *handler.EditorHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	v1 := e.Group("/v1")
	// Verify the bearer token issued by the surrounding product's auth
	// service and expose user_id/role to the handlers.
	v1.Use(middleware.JWTAuth(jwtSecret))
	// Only owners manage seat maps; customers never reach this service.
	v1.Use(middleware.RequireRole("OWNER"))

	// Layout documents: the persistence boundary of the editor.
	v1.GET("/layouts", h.ListLayouts)
	v1.POST("/layouts", h.CreateLayout)
	v1.GET("/layouts/:id", h.GetLayout)
	v1.PUT("/layouts/:id", h.SaveLayout)
	v1.POST("/layouts/:id/autolabel", h.AutoLabelLayout)
	v1.DELETE("/layouts/:id", h.DeleteLayout)

	// Read-only venue header info, cached since it changes rarely.
	v1.GET("/venues/:id", h.GetVenue, middleware.NewRedisCache(cacheCfg, rdb))
}

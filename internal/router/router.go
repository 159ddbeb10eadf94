package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"                       // import the Echo web framework to handle routing
    echomw "github.com/labstack/echo/v4/middleware"     // echo's built-in middleware (logger, recover, CORS)
    "github.com/redis/go-redis/v9"                      // redis client shared by the cache and rate limiter

    "github.com/arthur-gotoblink/transport-booking-console/internal/config"     // cache and rate-limit settings
    "github.com/arthur-gotoblink/transport-booking-console/internal/handler"    // handlers implementing the console's endpoints
    "github.com/arthur-gotoblink/transport-booking-console/internal/middleware" // bearer auth, cache and rate-limit middleware
)

// Register wires every route of the console onto the provided Echo
// instance.  The login exchange and the health check are the only
// unauthenticated routes; everything else requires a bearer token and runs
// behind BearerAuth.  The booking list additionally sits behind the Redis
// response cache, and login behind the token-bucket limiter.  With a nil
// Redis client both degrade to pass-throughs.
func Register(e *echo.Echo, corsOrigin string, rdb *redis.Client,
    auth *handler.AuthHandler, bookings *handler.BookingHandler,
    workflows *handler.WorkflowHandler, comments *handler.CommentHandler) {

    e.Use(echomw.Logger())
    e.Use(echomw.Recover())
    e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
        AllowOrigins: []string{corsOrigin},
        AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
    }))

    // Health check for load balancers and monitoring.
    e.GET("/healthz", handler.Health)

    // Login is unauthenticated but rate limited.
    e.POST("/api/login", auth.Login, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    // Everything under /api/bookings and /api/team requires a bearer token.
    api := e.Group("/api")
    api.Use(middleware.BearerAuth())

    api.GET("/bookings", bookings.ListBookings, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
    api.GET("/bookings/:id", bookings.GetBooking)
    api.GET("/bookings/:id/comments", bookings.BookingComments)
    api.GET("/team", bookings.Team)

    api.POST("/bookings/:id/allocate", workflows.Allocate)
    api.POST("/bookings/:id/accept", workflows.Accept)
    api.POST("/bookings/:id/reject", workflows.Reject)
    api.POST("/bookings/:id/negotiate", workflows.Negotiate)

    api.POST("/bookings/:id/comments", comments.AddComment)
    api.PUT("/bookings/:id/comments/:commentId", comments.EditComment)
    api.DELETE("/bookings/:id/comments/:commentId", comments.RemoveComment)
}

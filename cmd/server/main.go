package main // Entry point package

import (
    "log" // Logging library
    "os"

    "github.com/joho/godotenv"    // .env loader for local development
    "github.com/labstack/echo/v4" // Echo web framework
    "go.uber.org/zap"

    appcfg "github.com/arthur-gotoblink/transport-booking-console/internal/config"
    "github.com/arthur-gotoblink/transport-booking-console/internal/handler"
    "github.com/arthur-gotoblink/transport-booking-console/internal/logger"
    "github.com/arthur-gotoblink/transport-booking-console/internal/queue"
    "github.com/arthur-gotoblink/transport-booking-console/internal/repository"
    "github.com/arthur-gotoblink/transport-booking-console/internal/router"
    "github.com/arthur-gotoblink/transport-booking-console/internal/upstream"
)

func main() {
    _ = godotenv.Load() // .env is optional; real deployments set the environment directly

    cfg := appcfg.Load()
    zlog := logger.New(cfg.Env, "booking-console")
    defer func() { _ = zlog.Sync() }()

    // Redis backs the response cache and the login rate limiter.  A nil
    // client disables both.
    rdb := appcfg.NewRedisClient()
    if rdb == nil {
        zlog.Warn("redis unavailable, caching and rate limiting disabled")
    }

    // Audit events flow to RabbitMQ only when a broker is configured.
    audit := os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != ""
    if audit {
        go func() {
            if err := queue.StartAuditConsumer(); err != nil {
                zlog.Error("audit consumer stopped", zap.Error(err))
            }
        }()
    }

    stores := repository.NewSessionStores()
    live := upstream.NewClient(cfg.UpstreamBase, zlog)
    fallback := upstream.NewStaticSource()

    e := echo.New()
    router.Register(e, cfg.CORSOrigin, rdb,
        handler.NewAuthHandler(cfg, zlog),
        handler.NewBookingHandler(live, fallback, stores, zlog),
        handler.NewWorkflowHandler(stores, audit, zlog),
        handler.NewCommentHandler(stores),
    )

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}

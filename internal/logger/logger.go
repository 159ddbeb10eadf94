// Package logger builds the application's zap logger.  Development mode
// produces human-readable console output; any other environment produces
// production JSON logs.
package logger

import (
    "go.uber.org/zap"
)

// New returns a zap logger configured for the given environment.  The
// namespace appears as an initial field on every entry.
func New(env, namespace string) *zap.Logger {
    var cfg zap.Config
    if env == "dev" {
        cfg = zap.NewDevelopmentConfig()
    } else {
        cfg = zap.NewProductionConfig()
    }
    cfg.OutputPaths = []string{"stdout"}
    cfg.InitialFields = map[string]interface{}{
        "namespace": namespace,
    }

    log, err := cfg.Build()
    if err != nil {
        panic(err)
    }
    return log
}

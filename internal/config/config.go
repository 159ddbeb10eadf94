package config // package config loads application configuration from environment variables

import (
    "log" // log is used to report configuration errors and halt execution
    "os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The console owns no credentials: it forwards
// the caller's bearer token to the upstream API and brokers the login
// exchange with the identity provider using only public client parameters.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    UpstreamBase string // base URL of the logistics API (e.g. https://api.example.com/v3)
    AuthTokenURL string // identity provider OAuth token endpoint
    AuthClientID string // public client id for the password grant
    AuthAudience string // audience parameter sent with the grant (optional)
    CORSOrigin   string // allowed browser origin, "*" by default
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:          getenv("APP_ENV", "dev"),
        Port:         must("APP_PORT"),
        UpstreamBase: must("UPSTREAM_API_BASE"),
        AuthTokenURL: must("AUTH_TOKEN_URL"),
        AuthClientID: must("AUTH_CLIENT_ID"),
        AuthAudience: os.Getenv("AUTH_AUDIENCE"),
        CORSOrigin:   getenv("CORS_ORIGIN", "*"),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

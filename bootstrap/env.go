package bootstrap

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Env is the process configuration, read once at startup.
//
// The two database values are the hard requirements: without an endpoint and
// an access key there is nothing to serve, so their absence kills the process
// before the server binds. Everything else has a workable default or is
// checked by the component that owns it (bootstrap.InitClerk for the Clerk
// secret).
type Env struct {
	// DatabaseURL is the hosted-Postgres endpoint, e.g.
	// postgres://postgres@db.example.supabase.co:5432/postgres?sslmode=require
	DatabaseURL string `env:"DATABASE_URL,required"`

	// DatabaseAPIKey is the access key for the hosted database. It becomes
	// the connection password when the DSN is composed.
	DatabaseAPIKey string `env:"DATABASE_API_KEY,required"`

	// ClerkSecretKey authenticates this backend against the Clerk API.
	ClerkSecretKey string `env:"CLERK_SECRET_KEY"`

	// WebhookSecret verifies Clerk webhook signatures. Empty skips
	// verification (development only).
	WebhookSecret string `env:"CLERK_WEBHOOK_SECRET"`

	// Port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// CORSAllowedOrigins lists the browser origins allowed to call the API.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
}

// LoadEnv reads a .env file when present, then parses the process
// environment. A missing required value is a fatal startup condition, never
// a per-request error.
func LoadEnv() *Env {
	// Production deployments usually have no .env file; that is fine.
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using process environment")
	}

	cfg, err := parseEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration is incomplete")
	}

	log.Info().Str("port", cfg.Port).Msg("environment loaded")
	return cfg
}

func parseEnv() (*Env, error) {
	cfg := &Env{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// DSN composes the database connection string from the endpoint URL and the
// access key. Hosted Postgres providers hand out an endpoint plus a key; the
// key travels as the connection password.
func (e *Env) DSN() (string, error) {
	u, err := url.Parse(e.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
	}

	username := "postgres"
	if u.User != nil && u.User.Username() != "" {
		username = u.User.Username()
	}
	u.User = url.UserPassword(username, e.DatabaseAPIKey)

	return u.String(), nil
}

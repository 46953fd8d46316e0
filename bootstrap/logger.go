package bootstrap

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger builds the service-wide structured logger and installs it as the
// global zerolog logger so package-level log calls carry the same fields.
func NewLogger(service string) zerolog.Logger {
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	log.Logger = logger
	return logger
}

package bootstrap

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/rs/zerolog/log"
)

// InitClerk registers the Clerk secret key with the SDK. The key is required
// for session verification, so an empty value stops the process at startup.
func InitClerk(secretKey string) {
	if secretKey == "" {
		log.Fatal().Msg("CLERK_SECRET_KEY is not set")
	}
	clerk.SetKey(secretKey)

	log.Info().Msg("clerk initialized")
}

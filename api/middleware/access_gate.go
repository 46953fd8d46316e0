package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SessionVerifier checks a session token and returns the Clerk user ID it
// belongs to. Tests substitute it to avoid real key material.
type SessionVerifier func(ctx context.Context, token string) (string, error)

// GateConfig declares which paths the access gate leaves open.
type GateConfig struct {
	// PublicRoutes lists patterns reachable without a session. A valid
	// session is still honored when present so public handlers can
	// personalize their response.
	PublicRoutes []string

	// SkipRoutes lists patterns the gate ignores entirely. Static assets
	// never carry a session worth verifying.
	SkipRoutes []string

	// Verify validates a session token. Nil selects Clerk JWT verification.
	Verify SessionVerifier
}

// AccessGate intercepts every request and classifies its path as skipped,
// public, or protected. Protected paths require a verified Clerk session;
// anything else is rejected with a plain 401 before any handler runs.
func AccessGate(cfg GateConfig) gin.HandlerFunc {
	public := NewRouteMatcher(cfg.PublicRoutes)
	skip := NewRouteMatcher(cfg.SkipRoutes)

	verify := cfg.Verify
	if verify == nil {
		verify = verifyClerkSession
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if skip.Match(path) {
			c.Next()
			return
		}

		token := sessionToken(c)

		if public.Match(path) {
			if token != "" {
				if userID, err := verify(c.Request.Context(), token); err == nil {
					c.Set(ContextKeyUserID, userID)
				}
			}
			c.Next()
			return
		}

		// Missing or stale sessions are everyday traffic, not faults.
		if token == "" {
			zerolog.Ctx(c.Request.Context()).Debug().
				Str("path", path).
				Msg("protected path requested without session")
			reject(c)
			return
		}

		userID, err := verify(c.Request.Context(), token)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Debug().
				Err(err).
				Str("path", path).
				Msg("session verification failed")
			reject(c)
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

func reject(c *gin.Context) {
	c.String(http.StatusUnauthorized, "Unauthorized")
	c.Abort()
}

// sessionToken pulls the Clerk session token from the Authorization header,
// falling back to the __session cookie set by Clerk's frontend SDK.
func sessionToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("__session"); err == nil {
		return cookie
	}
	return ""
}

func verifyClerkSession(ctx context.Context, token string) (string, error) {
	claims, err := jwt.Verify(ctx, &jwt.VerifyParams{Token: token})
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

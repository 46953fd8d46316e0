package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"userbase-go-server/domain/entity"
	domainErrors "userbase-go-server/domain/errors"
	domainRepo "userbase-go-server/domain/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	svix "github.com/svix/svix-webhooks/go"
)

// WebhookController keeps the users table in sync with Clerk. Clerk delivers
// lifecycle events (user.created, user.updated, user.deleted) through svix;
// each event maps onto one gateway operation.
type WebhookController struct {
	userRepo      domainRepo.UserRepository
	webhookSecret string
}

func NewWebhookController(userRepo domainRepo.UserRepository, webhookSecret string) *WebhookController {
	return &WebhookController{
		userRepo:      userRepo,
		webhookSecret: webhookSecret,
	}
}

// clerkWebhookPayload is the envelope Clerk posts for every event.
type clerkWebhookPayload struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// clerkUserData is the slice of Clerk's user object this service stores.
type clerkUserData struct {
	ID             string `json:"id"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// HandleClerkWebhook processes Clerk lifecycle events.
// POST /webhook/clerk
func (wc *WebhookController) HandleClerkWebhook(c *gin.Context) {
	logger := zerolog.Ctx(c.Request.Context())

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.Error().Err(err).Msg("webhook body unreadable")
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read request body"})
		return
	}

	if wc.webhookSecret != "" {
		wh, err := svix.NewWebhook(wc.webhookSecret)
		if err != nil {
			logger.Error().Err(err).Msg("webhook verifier init failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook misconfigured"})
			return
		}

		headers := http.Header{}
		headers.Set("svix-id", c.GetHeader("svix-id"))
		headers.Set("svix-timestamp", c.GetHeader("svix-timestamp"))
		headers.Set("svix-signature", c.GetHeader("svix-signature"))

		if err := wh.Verify(body, headers); err != nil {
			logger.Warn().Err(err).Msg("webhook signature rejected")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "signature verification failed"})
			return
		}
	} else {
		logger.Warn().Msg("CLERK_WEBHOOK_SECRET not set, skipping signature verification (development only)")
	}

	var payload clerkWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Error().Err(err).Msg("webhook payload is not valid JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}

	logger.Info().Str("event", payload.Type).Msg("webhook event received")

	switch payload.Type {
	case "user.created":
		wc.handleUserCreated(c, payload.Data)
	case "user.updated":
		wc.handleUserUpdated(c, payload.Data)
	case "user.deleted":
		wc.handleUserDeleted(c, payload.Data)
	default:
		logger.Info().Str("event", payload.Type).Msg("webhook event ignored")
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (wc *WebhookController) handleUserCreated(c *gin.Context, data json.RawMessage) {
	logger := zerolog.Ctx(c.Request.Context())

	var userData clerkUserData
	if err := json.Unmarshal(data, &userData); err != nil {
		logger.Error().Err(err).Msg("user.created data unparseable")
		return
	}

	user := &entity.User{
		ClerkID: userData.ID,
		Email:   firstEmail(userData),
		Name:    combinedName(userData),
	}

	if _, err := wc.userRepo.Create(c.Request.Context(), user); err != nil {
		// Svix redelivers; a second created event for the same user is
		// expected traffic.
		if errors.Is(err, domainErrors.ErrUserAlreadyExists) {
			logger.Info().Str("clerk_id", userData.ID).Msg("user already synced")
			return
		}
		logger.Error().Err(err).Str("clerk_id", userData.ID).Msg("user sync failed")
		return
	}

	logger.Info().Str("clerk_id", userData.ID).Msg("user created from webhook")
}

func (wc *WebhookController) handleUserUpdated(c *gin.Context, data json.RawMessage) {
	logger := zerolog.Ctx(c.Request.Context())

	var userData clerkUserData
	if err := json.Unmarshal(data, &userData); err != nil {
		logger.Error().Err(err).Msg("user.updated data unparseable")
		return
	}

	email := firstEmail(userData)
	update := entity.UserUpdate{
		Email: &email,
		Name:  combinedName(userData),
	}

	if _, err := wc.userRepo.Update(c.Request.Context(), userData.ID, update); err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			logger.Warn().Str("clerk_id", userData.ID).Msg("update event for unknown user")
			return
		}
		logger.Error().Err(err).Str("clerk_id", userData.ID).Msg("user update sync failed")
		return
	}

	logger.Info().Str("clerk_id", userData.ID).Msg("user updated from webhook")
}

func (wc *WebhookController) handleUserDeleted(c *gin.Context, data json.RawMessage) {
	logger := zerolog.Ctx(c.Request.Context())

	var userData struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &userData); err != nil {
		logger.Error().Err(err).Msg("user.deleted data unparseable")
		return
	}

	deleted, err := wc.userRepo.Delete(c.Request.Context(), userData.ID)
	if err != nil {
		logger.Error().Err(err).Str("clerk_id", userData.ID).Msg("user delete sync failed")
		return
	}

	logger.Info().Str("clerk_id", userData.ID).Int64("deleted", deleted).Msg("user deleted from webhook")
}

func firstEmail(data clerkUserData) string {
	if len(data.EmailAddresses) > 0 {
		return data.EmailAddresses[0].EmailAddress
	}
	return ""
}

// combinedName joins first and last name, nil when Clerk has neither.
func combinedName(data clerkUserData) *string {
	name := data.FirstName
	if data.LastName != "" {
		if name != "" {
			name += " "
		}
		name += data.LastName
	}
	if name == "" {
		return nil
	}
	return &name
}

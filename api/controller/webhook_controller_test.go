package controller

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"userbase-go-server/domain/entity"
	domainErrors "userbase-go-server/domain/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newWebhookRouter(repo *MockUserRepository, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	wc := NewWebhookController(repo, secret)
	router.POST("/webhook/clerk", wc.HandleClerkWebhook)
	return router
}

func performWithHeaders(router *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/clerk", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const createdPayload = `{
	"type": "user.created",
	"data": {
		"id": "user_123",
		"email_addresses": [{"email_address": "john@example.com"}],
		"first_name": "John",
		"last_name": "Doe"
	}
}`

func TestWebhookController_UserCreated(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.ClerkID == "user_123" &&
			u.Email == "john@example.com" &&
			u.Name != nil && *u.Name == "John Doe"
	})).Return(&entity.User{ClerkID: "user_123"}, nil).Once()

	w := perform(newWebhookRouter(repo, ""), http.MethodPost, "/webhook/clerk", createdPayload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received": true}`, w.Body.String())
	repo.AssertExpectations(t)
}

func TestWebhookController_UserCreated_NoName(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.ClerkID == "user_456" && u.Name == nil
	})).Return(&entity.User{ClerkID: "user_456"}, nil).Once()

	payload := `{"type": "user.created", "data": {"id": "user_456", "email_addresses": []}}`
	w := perform(newWebhookRouter(repo, ""), http.MethodPost, "/webhook/clerk", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

// Svix redelivers events, so a duplicate created event must not fail the
// webhook response.
func TestWebhookController_UserCreated_AlreadySynced(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, domainErrors.ErrUserAlreadyExists).Once()

	w := perform(newWebhookRouter(repo, ""), http.MethodPost, "/webhook/clerk", createdPayload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received": true}`, w.Body.String())
}

func TestWebhookController_UserUpdated(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Update", mock.Anything, "user_123", mock.MatchedBy(func(up entity.UserUpdate) bool {
		return up.Email != nil && *up.Email == "new@example.com" &&
			up.Name != nil && *up.Name == "John Doe"
	})).Return(&entity.User{ClerkID: "user_123"}, nil).Once()

	payload := `{
		"type": "user.updated",
		"data": {
			"id": "user_123",
			"email_addresses": [{"email_address": "new@example.com"}],
			"first_name": "John",
			"last_name": "Doe"
		}
	}`
	w := perform(newWebhookRouter(repo, ""), http.MethodPost, "/webhook/clerk", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestWebhookController_UserUpdated_UnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Update", mock.Anything, "user_999", mock.Anything).Return(nil, domainErrors.ErrUserNotFound).Once()

	payload := `{"type": "user.updated", "data": {"id": "user_999", "email_addresses": []}}`
	w := perform(newWebhookRouter(repo, ""), http.MethodPost, "/webhook/clerk", payload)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookController_UserDeleted(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Delete", mock.Anything, "user_123").Return(int64(1), nil).Once()

	payload := `{"type": "user.deleted", "data": {"id": "user_123", "deleted": true}}`
	w := perform(newWebhookRouter(repo, ""), http.MethodPost, "/webhook/clerk", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received": true}`, w.Body.String())
	repo.AssertExpectations(t)
}

func TestWebhookController_IgnoresUnknownEvent(t *testing.T) {
	repo := new(MockUserRepository)

	payload := `{"type": "session.created", "data": {"id": "sess_123"}}`
	w := perform(newWebhookRouter(repo, ""), http.MethodPost, "/webhook/clerk", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestWebhookController_InvalidJSON(t *testing.T) {
	repo := new(MockUserRepository)

	w := perform(newWebhookRouter(repo, ""), http.MethodPost, "/webhook/clerk", `{"type": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookController_RejectsBadSignature(t *testing.T) {
	rawKey := []byte("0123456789abcdef0123456789abcdef")
	secret := "whsec_" + base64.StdEncoding.EncodeToString(rawKey)

	repo := new(MockUserRepository)
	router := newWebhookRouter(repo, secret)

	w := performWithHeaders(router, createdPayload, map[string]string{
		"svix-id":        "msg_123",
		"svix-timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"svix-signature": "v1,bm90LWEtcmVhbC1zaWduYXR1cmU=",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWebhookController_AcceptsValidSignature(t *testing.T) {
	rawKey := []byte("0123456789abcdef0123456789abcdef")
	secret := "whsec_" + base64.StdEncoding.EncodeToString(rawKey)

	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(&entity.User{ClerkID: "user_123"}, nil).Once()
	router := newWebhookRouter(repo, secret)

	msgID := "msg_123"
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	// Signed content is "{id}.{timestamp}.{payload}" per the svix scheme.
	mac := hmac.New(sha256.New, rawKey)
	mac.Write([]byte(msgID + "." + timestamp + "." + createdPayload))
	signature := "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))

	w := performWithHeaders(router, createdPayload, map[string]string{
		"svix-id":        msgID,
		"svix-timestamp": timestamp,
		"svix-signature": signature,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received": true}`, w.Body.String())
	repo.AssertExpectations(t)
}

package controller

import (
	"errors"
	"net/http"

	"userbase-go-server/api/middleware"
	"userbase-go-server/domain/entity"
	domainErrors "userbase-go-server/domain/errors"
	domainRepo "userbase-go-server/domain/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorResponse is the JSON body for request-shape failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UserController exposes the users table over HTTP. Identity always comes
// from the session the access gate verified, never from the request body or
// URL, so a caller can only ever read and write their own row.
type UserController struct {
	userRepo domainRepo.UserRepository
}

func NewUserController(userRepo domainRepo.UserRepository) *UserController {
	return &UserController{userRepo: userRepo}
}

// CreateUserRequest carries the caller-supplied fields for a new row.
type CreateUserRequest struct {
	Email string  `json:"email" binding:"required"`
	Name  *string `json:"name"`
}

// UpdateUserRequest carries a partial update. Absent fields stay unchanged.
type UpdateUserRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

// ListUsers returns every stored user row.
// GET /api/users
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.userRepo.List(c.Request.Context())
	if err != nil {
		failGateway(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetMe returns the caller's own row.
// GET /api/users/me
func (uc *UserController) GetMe(c *gin.Context) {
	clerkID, ok := sessionSubject(c)
	if !ok {
		rejectUnauthorized(c)
		return
	}

	user, err := uc.userRepo.GetByClerkID(c.Request.Context(), clerkID)
	if err != nil {
		failGateway(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateMe inserts a row for the caller's Clerk identity.
// POST /api/users
func (uc *UserController) CreateMe(c *gin.Context) {
	clerkID, ok := sessionSubject(c)
	if !ok {
		rejectUnauthorized(c)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email is required"})
		return
	}

	user := &entity.User{
		ClerkID: clerkID,
		Email:   req.Email,
		Name:    req.Name,
	}

	created, err := uc.userRepo.Create(c.Request.Context(), user)
	if err != nil {
		failGateway(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateMe applies a partial update to the caller's row. A body with no
// fields set changes nothing and returns the current row.
// PATCH /api/users/me
func (uc *UserController) UpdateMe(c *gin.Context) {
	clerkID, ok := sessionSubject(c)
	if !ok {
		rejectUnauthorized(c)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := uc.userRepo.Update(c.Request.Context(), clerkID, entity.UserUpdate{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		failGateway(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteMe removes the caller's row and reports how many rows went away,
// which is how a caller distinguishes a real deletion (1) from a no-op (0).
// DELETE /api/users/me
func (uc *UserController) DeleteMe(c *gin.Context) {
	clerkID, ok := sessionSubject(c)
	if !ok {
		rejectUnauthorized(c)
		return
	}

	deleted, err := uc.userRepo.Delete(c.Request.Context(), clerkID)
	if err != nil {
		failGateway(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// sessionSubject returns the Clerk user ID the access gate attached.
func sessionSubject(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func rejectUnauthorized(c *gin.Context) {
	c.String(http.StatusUnauthorized, "Unauthorized")
}

// failGateway logs a database failure and collapses it to the generic
// response. The kinds stay distinguishable in logs and tests, but callers
// only ever see the one opaque failure.
func failGateway(c *gin.Context, err error) {
	logger := zerolog.Ctx(c.Request.Context())
	switch {
	case errors.Is(err, domainErrors.ErrUserNotFound),
		errors.Is(err, domainErrors.ErrUserAlreadyExists),
		errors.Is(err, domainErrors.ErrInvalidUserRecord):
		logger.Warn().Err(err).Msg("user gateway rejected operation")
	default:
		logger.Error().Err(err).Msg("user gateway failure")
	}
	c.String(http.StatusInternalServerError, "Internal Server Error")
}

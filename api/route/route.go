package route

import (
	"net/http"

	"userbase-go-server/api/controller"

	"github.com/gin-gonic/gin"
)

// DefaultPublicRoutes are the paths reachable without a session. The
// wildcard entries cover the hosted sign-in and sign-up flows and everything
// under them; the webhook authenticates itself by signature instead.
var DefaultPublicRoutes = []string{
	"/",
	"/health",
	"/sign-in(.*)",
	"/sign-up(.*)",
	"/webhook/clerk",
}

// DefaultSkipRoutes are the paths the access gate never inspects. Static
// assets carry no session worth verifying.
var DefaultSkipRoutes = []string{
	"/static(.*)",
	"/assets(.*)",
	"/favicon.ico",
}

// Dependencies carries the controllers Setup wires into the router.
type Dependencies struct {
	UserController    *controller.UserController
	WebhookController *controller.WebhookController
}

// Setup registers every route. Access control lives in the gate middleware
// installed on the engine, so handlers assume identity is already settled.
func Setup(router *gin.Engine, deps *Dependencies) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "userbase-go-server",
		})
	})

	router.POST("/webhook/clerk", deps.WebhookController.HandleClerkWebhook)

	api := router.Group("/api")
	{
		api.GET("/users", deps.UserController.ListUsers)
		api.POST("/users", deps.UserController.CreateMe)
		api.GET("/users/me", deps.UserController.GetMe)
		api.PATCH("/users/me", deps.UserController.UpdateMe)
		api.DELETE("/users/me", deps.UserController.DeleteMe)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"userbase-go-server/api/controller"
	"userbase-go-server/api/middleware"
	"userbase-go-server/api/route"
	"userbase-go-server/bootstrap"
	"userbase-go-server/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	logger := bootstrap.NewLogger("userbase-go-server")
	logger.Info().Msg("starting")

	env := bootstrap.LoadEnv()

	bootstrap.InitClerk(env.ClerkSecretKey)

	dsn, err := env.DSN()
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot compose database DSN")
	}
	db := bootstrap.NewDatabase(dsn)

	userRepo := repository.NewUserRepository(db)

	userController := controller.NewUserController(userRepo)
	webhookController := controller.NewWebhookController(userRepo, env.WebhookSecret)

	router := gin.New()

	router.Use(middleware.RequestID(logger))
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Every route passes the gate; the allowlists decide who needs a session.
	router.Use(middleware.AccessGate(middleware.GateConfig{
		PublicRoutes: route.DefaultPublicRoutes,
		SkipRoutes:   route.DefaultSkipRoutes,
	}))

	route.Setup(router, &route.Dependencies{
		UserController:    userController,
		WebhookController: webhookController,
	})

	srv := &http.Server{
		Addr:    ":" + env.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("server stopped")
}

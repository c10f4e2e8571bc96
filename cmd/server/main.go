package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	_ "usermgmt/docs" // swagger docs

	"usermgmt/internal/auth"
	"usermgmt/internal/config"
	"usermgmt/internal/db"
	"usermgmt/internal/handler"
	"usermgmt/internal/model"
	"usermgmt/internal/notify"
	"usermgmt/internal/repository"
	"usermgmt/internal/router"
	"usermgmt/internal/service"
)

// @title User Management API
// @version 1.0
// @description Account registration, email confirmation, session tokens and administrative bulk actions.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Mail outbox; best effort end to end, a dead redis degrades to direct
	// sends rather than failing registrations.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	mailer := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	dispatcher := notify.NewDispatcher(rdb, mailer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatcher.Run(ctx)

	// Initialize repositories and auth components
	userRepo := repository.NewUserRepository(gormDB)
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize services
	userService := service.NewUserService(userRepo, dispatcher, cfg.AppURL)

	// Initialize handlers
	debug := !cfg.Production()
	authHandler := handler.NewAuthHandler(userService, tokenService, cfg.FrontendURL, debug)
	userHandler := handler.NewUserHandler(userService, debug)

	// Register routes
	router.Register(e, cfg, userRepo, authHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

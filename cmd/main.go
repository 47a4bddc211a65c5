package main

import (
	"log"
	"net/http"
	"time"

	"gigbud/database"
	"gigbud/internal/cache"
	"gigbud/internal/config"
	"gigbud/internal/controllers"
	"gigbud/internal/middleware"
	"gigbud/internal/repository"
	"gigbud/internal/services"
	"gigbud/internal/storage"
	"gigbud/internal/token"
	"gigbud/internal/utils"
	"gigbud/routes"

	"github.com/gin-gonic/gin"
)

// @title GigBud API
// @version 1.0
// @description Hyperlocal gig-marketplace REST backend.
func main() {
	cfg := config.Load()

	if cfg.JWTAccessSecret == "" || cfg.JWTRefreshSecret == "" {
		log.Fatal("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorConnections(db)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	blacklistRepo := repository.NewBlacklistRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Collaborators
	tokens := token.NewManager(cfg)
	mailer := utils.NewSMTPMailer(cfg)
	googleVerifier := services.NewTokeninfoVerifier(cfg.GoogleClientID)

	queryCache, err := cache.NewQueryCache(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, query caching disabled: %v", err)
		queryCache = nil
	} else {
		defer queryCache.Close()
	}

	var objectStore storage.ObjectStore
	minioStore, err := storage.NewMinioStore(cfg)
	if err != nil {
		log.Printf("Warning: object storage unavailable, attachments disabled: %v", err)
	} else {
		objectStore = minioStore
	}

	notificationWorker, err := services.NewNotificationWorker(cfg.RabbitMQURL, notificationRepo, mailer, 3)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	if err := notificationWorker.Start(); err != nil {
		log.Fatalf("Failed to start notification worker: %v", err)
	}
	defer notificationWorker.Stop()

	// Services
	authService := services.NewAuthService(userRepo, blacklistRepo, tokens, mailer, googleVerifier, cfg)
	taskService := services.NewTaskService(taskRepo, objectStore, queryCache)

	// Controllers
	userController := controllers.NewUserController(authService, userRepo)
	oauthController := controllers.NewOauthController(authService)
	taskController := controllers.NewTaskController(taskService)
	reviewController := controllers.NewReviewController(reviewRepo, userRepo)
	locationController := controllers.NewLocationController(locationRepo, userRepo, taskService, queryCache)
	notificationController := controllers.NewNotificationController(notificationWorker, notificationRepo, userRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigin))

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "GigBud API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	auth := middleware.AuthMiddleware(tokens, blacklistRepo, userRepo)

	routes.RegisterAuthRoutes(router, userController, oauthController, auth)
	routes.RegisterUserRoutes(router, userController, auth)
	routes.RegisterTaskRoutes(router, taskController, auth)
	routes.RegisterReviewRoutes(router, reviewController, auth)
	routes.RegisterLocationRoutes(router, locationController, auth)
	routes.RegisterNotificationRoutes(router, notificationController, auth)
	routes.RegisterSwaggerRoutes(router)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("GigBud API server starting on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

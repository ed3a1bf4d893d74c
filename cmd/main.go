package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"pettouch/internal/caching"
	"pettouch/internal/handlers"
	"pettouch/internal/jobs/background"
	"pettouch/internal/middleware"
	"pettouch/internal/repositories"
	"pettouch/internal/services"
	"pettouch/pkg/database"
)

const version = "1.0.0"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	ctx := context.Background()

	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret, tokens will not survive a restart")
	}
	accessTTL := envIntOr("JWT_ACCESS_TTL_SECONDS", 3600)
	refreshTTL := envIntOr("JWT_REFRESH_TTL_SECONDS", 30*24*3600)

	// Redis configuration
	redisAddr := envOr("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := envIntOr("REDIS_DB", 0)

	// MinIO configuration
	minioEndpoint := envOr("MINIO_ENDPOINT", "localhost:9000")
	minioAccessKey := envOr("MINIO_ACCESS_KEY", "minioadmin")
	minioSecretKey := envOr("MINIO_SECRET_KEY", "minioadmin")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(ctx, services.PetImageBucket); err != nil {
		log.Printf("WARN: could not ensure image bucket exists: %v", err)
	}

	// Repositories
	profileRepo := repositories.NewProfileRepo(pool)
	petRepo := repositories.NewPetRepo(pool)

	// Cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Services
	authSvc := services.NewAuthService(cacheSvc, jwtSecret, accessTTL, refreshTTL)
	sessionSvc := services.NewSessionService(profileRepo, cacheSvc)
	petSvc := services.NewPetService(petRepo, minioSvc, cacheSvc)
	scanSvc := services.NewScanService(petRepo, cacheSvc, services.DefaultScanTimeout)
	planSvc := services.NewPlanService(profileRepo, sessionSvc)
	adminSvc := services.NewAdminService(profileRepo, petRepo, cacheSvc)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, sessionSvc, profileRepo, cacheSvc)
	petHandlers := handlers.NewPetHandlers(petSvc, sessionSvc)
	tagHandlers := handlers.NewTagHandlers(scanSvc)
	planHandlers := handlers.NewPlanHandlers(planSvc, sessionSvc)
	adminHandlers := handlers.NewAdminHandlers(adminSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Middleware
	jwtConfig := middleware.JWTConfig(authSvc, cacheSvc)
	optionalJWTConfig := middleware.OptionalJWTConfig(authSvc, cacheSvc)
	adminMiddleware := middleware.NewAdminMiddleware(sessionSvc)

	// Background jobs
	scheduler := background.NewJobScheduler(adminSvc, cacheSvc)
	if err := scheduler.Start(); err != nil {
		log.Printf("WARN: failed to start job scheduler: %v", err)
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("WARN: failed to stop job scheduler: %v", err)
		}
	}()

	// Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Public routes
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)
	e.GET("/tag/:id", tagHandlers.ScanTag)
	e.GET("/plans", planHandlers.ListPlans, echojwt.WithConfig(optionalJWTConfig))

	auth := e.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/reset-password", authHandlers.ResetPassword)

	// Protected routes
	protected := e.Group("")
	protected.Use(echojwt.WithConfig(jwtConfig))

	protected.GET("/me", authHandlers.Me)
	protected.POST("/auth/logout", authHandlers.Logout)
	protected.POST("/account/plan", planHandlers.ChangePlan)

	protected.GET("/pets", petHandlers.ListPets)
	protected.POST("/pets", petHandlers.CreatePet)
	protected.GET("/pets/:id", petHandlers.GetPet)
	protected.PUT("/pets/:id", petHandlers.UpdatePet)
	protected.DELETE("/pets/:id", petHandlers.DeletePet)

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(adminMiddleware.RequireAdmin())
	admin.GET("/stats", adminHandlers.Stats)
	admin.GET("/users", adminHandlers.RecentUsers)
	admin.GET("/pets", adminHandlers.RecentPets)

	// Start server
	port := envIntOr("PORT", 8080)

	e.Server.ReadHeaderTimeout = 10 * time.Second

	log.Printf("PetTouch server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}

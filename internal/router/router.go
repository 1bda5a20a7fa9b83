package router

import (
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stackmoneyup/backend/internal/handlers"
	"github.com/stackmoneyup/backend/internal/middleware"
	"github.com/stackmoneyup/backend/internal/models"
	"github.com/stackmoneyup/backend/internal/repositories"
	"github.com/stackmoneyup/backend/internal/service"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, mongoDatabase string, firebaseAuthClient *auth.Client, logger *zap.Logger) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Profile{},
		&models.Post{},
		&models.Tag{},
		&models.Comment{},
		&models.Bookmark{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	tagRepo := repositories.NewPostgresTagRepository(pgdb)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(pgdb)
	analyticsRepo := repositories.NewMongoAnalyticsRepository(mgClient.Database(mongoDatabase))

	// --- Services ---
	commentService := service.NewCommentService(commentRepo, logger)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	userHandler := handlers.NewUserHandler(userRepo)
	postHandler := handlers.NewPostHandler(postRepo, tagRepo, analyticsRepo)
	commentHandler := handlers.NewCommentHandler(commentService, postRepo)
	tagHandler := handlers.NewTagHandler(tagRepo, postRepo)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkRepo, postRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(postRepo, bookmarkRepo, analyticsRepo, commentService)

	// Rate limit auth attempts harder than regular traffic.
	authLimiter := middleware.NewRateLimiter(15*time.Minute, 10)
	apiLimiter := middleware.NewRateLimiter(time.Minute, 120)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authGroup.Use(authLimiter.Middleware())
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public read routes (no credentials required) ---
	public := e.Group("/api/v1")
	public.Use(apiLimiter.Middleware())
	postHandler.RegisterPublicPostRoutes(public)
	commentHandler.RegisterPublicCommentRoutes(public)
	tagHandler.RegisterPublicTagRoutes(public)
	log.Println("Public routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(apiLimiter.Middleware())
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler.RegisterUserRoutes(api)
	postHandler.RegisterPostRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	tagHandler.RegisterTagRoutes(api)
	bookmarkHandler.RegisterBookmarkRoutes(api)
	analyticsHandler.RegisterAnalyticsRoutes(api)
	log.Println("All routes configured.")
}

package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/stackmoneyup/backend/internal/router"
	"github.com/stackmoneyup/backend/pkg/config"
	"github.com/stackmoneyup/backend/pkg/firebase"
	"github.com/stackmoneyup/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg.MongoDatabase, firebaseApp.AuthClient, zlog)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

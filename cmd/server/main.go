package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/finchwork/finch/backend/internal/cache"
	"github.com/finchwork/finch/backend/internal/router"
	"github.com/finchwork/finch/backend/pkg/config"
	"github.com/finchwork/finch/backend/pkg/firebase"
	"github.com/finchwork/finch/backend/pkg/media"
	"github.com/finchwork/finch/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Redis (feed cache); the server runs without it
	cache.InitRedis(cfg.RedisAddr)

	// Initialize the media host; uploads are rejected until it is configured
	var mediaHost media.Host
	if cfg.CloudinaryURL != "" {
		host, err := media.NewCloudinaryHost(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			log.Fatalf("Failed to initialize media host: %v", err)
		}
		mediaHost = host
	} else {
		log.Println("CLOUDINARY_URL not set; media uploads disabled.")
	}

	// Initialize Firebase only when credentials are provided
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseApp.AuthClient
	} else {
		log.Println("Firebase credentials not set; firebase-login disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, mediaHost, firebaseAuthClient)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

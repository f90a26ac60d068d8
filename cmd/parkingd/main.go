package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"parking-backend/config"
	"parking-backend/internal/api"
	"parking-backend/internal/db"
	"parking-backend/internal/service"
	"parking-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "parking-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded from %s", configPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the spot store
	var (
		spotStore   store.Store
		mongoClient *mongo.Client
	)
	if cfg.Database.URI != "" {
		mongoClient, err = db.Connect(ctx, &cfg.Database)
		if err != nil {
			logger.Fatalf("failed to initialize database: %v", err)
		}
		spotStore = store.NewMongoStore(db.Collection(mongoClient, &cfg.Database))
		logger.Printf("connected to MongoDB database %q", cfg.Database.Name)
	} else {
		spotStore = store.NewMemoryStore()
		logger.Println("no MongoDB URI configured; using in-memory store (data will not survive restarts)")
	}

	parkingSvc := service.NewParkingService(spotStore)

	// Initialize router
	router := api.NewRouter(parkingSvc, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			logger.Printf("MongoDB disconnect: %v", err)
		}
	}

	logger.Println("Server gracefully stopped")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schoolreports/backend/internal/gateway"
	"schoolreports/backend/internal/shared"
	"schoolreports/backend/internal/store"
)

func main() {
	log.Println("INFO: Starting Reports Service...")

	// 1. Configuration
	shared.LoadEnv("")
	cfg, err := shared.LoadServiceConfig("reports-service")
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Connect to the stores
	client, db, err := shared.ConnectMongoDB(&cfg.MongoDB)
	if err != nil {
		log.Fatalf("FATAL: Failed to connect to MongoDB: %v", err)
	}
	defer shared.DisconnectMongoDB(client)

	mongoStore := store.NewMongo(db)

	// 3. Build services and routes
	services := gateway.NewServices(mongoStore, mongoStore, mongoStore)
	router := gateway.SetupRoutes(services, cfg)

	// 4. Configure server
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Start server in a goroutine
	go func() {
		log.Printf("INFO: Reports service listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: HTTP server error: %v", err)
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("INFO: Shutting down Reports Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server shutdown error: %v", err)
	}

	log.Println("INFO: Reports Service stopped.")
}

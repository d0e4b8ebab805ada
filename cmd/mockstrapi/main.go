package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nderose7/shiptrack-app/mockstrapi"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	_ = godotenv.Load()
	port := os.Getenv("MOCKSTRAPI_PORT")
	if port == "" {
		port = "1337"
	}
	secret := os.Getenv("MOCKSTRAPI_JWT_SECRET")
	if secret == "" {
		secret = "mockstrapi-dev-secret"
	}

	server := mockstrapi.New([]byte(secret), logger)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: server.Router(),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Mock Strapi backend started", zap.String("port", port))
	<-quit
	logger.Info("Shutting down mock backend...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}

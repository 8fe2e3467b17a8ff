package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/pos-checkout/internal/config"
	"github.com/Lixing-Zhang/pos-checkout/internal/handlers"
	"github.com/Lixing-Zhang/pos-checkout/internal/repository"
	"github.com/Lixing-Zhang/pos-checkout/internal/service"
	"github.com/Lixing-Zhang/pos-checkout/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting pos checkout server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"registers", cfg.Registers.Count,
	)

	// Initialize repositories
	registerRepo := repository.NewInMemoryRegisterRepository(cfg.Registers.Count, cfg.Registers.InUse)
	seedRepo := repository.NewInMemorySeedRepository()

	// Initialize services
	registerService := service.NewRegisterService(registerRepo)
	checkoutService := service.NewCheckoutService(registerService, seedRepo, log)
	loginService := service.NewLoginService(cfg.Login.PasswordMinLength, log)

	r := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: 60 * time.Second,
	}, handlers.Services{
		Registers: registerService,
		Checkout:  checkoutService,
		Login:     loginService,
	}, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

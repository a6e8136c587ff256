package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"wahabot/botcmd"
	"wahabot/clients/waha"
	"wahabot/config"
	"wahabot/dispatch"
	"wahabot/events"
	"wahabot/handlers"
	"wahabot/middleware"
	"wahabot/seentracker"
	"wahabot/services/messenger"
	"wahabot/typing"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.AlertConfig.SlackWebhookURL,
		Environment: cfg.Environment,
		AppName:     "wahabot",
	})

	// Initialize gateway client and outbound services
	gateway := waha.NewWAHAClient(
		cfg.GatewayConfig.BaseURL,
		cfg.GatewayConfig.APIKey,
		cfg.GatewayConfig.Session,
		time.Duration(cfg.GatewayConfig.TimeoutSeconds)*time.Second,
	)
	simulator := typing.NewSimulator(
		cfg.TypingConfig.WPM,
		cfg.TypingConfig.MinSeconds,
		cfg.TypingConfig.MaxSeconds,
		cfg.TypingConfig.JitterFraction,
	)
	tracker := seentracker.NewService(gateway)
	messengerService := messenger.NewService(gateway, simulator, tracker, cfg.AdminRecipients)

	// Build the handler registry before the server starts serving
	registry := dispatch.NewRegistry()
	botcmd.RegisterBuiltins(registry)

	router := dispatch.NewRouter(registry, gateway, messengerService)
	normalizer := events.NewNormalizer()

	webhookHandler := handlers.NewWebhookHandler(normalizer, router, tracker, alertMiddleware, cfg.IgnoredEvents)
	restHandler := handlers.NewRESTHandler(messengerService)
	authMiddleware := middleware.NewAPIKeyAuthMiddleware(cfg.GatewayConfig.APIKey)

	// Create a new router
	muxRouter := mux.NewRouter()
	webhookHandler.SetupEndpoints(muxRouter)
	restHandler.SetupEndpoints(muxRouter, authMiddleware)

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Api-Key"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(muxRouter)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/avant-atelier/backend/config"
	httpDelivery "github.com/avant-atelier/backend/internal/delivery/http"
	"github.com/avant-atelier/backend/internal/domain"
	"github.com/avant-atelier/backend/internal/infrastructure/cache"
	"github.com/avant-atelier/backend/internal/infrastructure/catalog"
	"github.com/avant-atelier/backend/internal/infrastructure/gemini"
	"github.com/avant-atelier/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Avant Atelier Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog sources: %d (base: %s)", len(cfg.Catalog.Sources), cfg.Catalog.BaseURL)

	// Initialize infrastructure dependencies
	replyCache := cache.NewMemoryCache()
	log.Printf("Chat reply cache TTL: %s", cfg.Cache.TTL)

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL)

	var generative domain.GenerativeClient
	if cfg.Gemini.APIKey != "" {
		geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)

		// Enable debug mode in development environment
		if cfg.Server.Environment == "development" {
			catalogClient.SetDebug(true)
			geminiClient.SetDebug(true)
			log.Printf("Client debug mode enabled")
		}

		generative = geminiClient
		log.Printf("Gemini API configured: %s (model: %s)", cfg.Gemini.BaseURL, cfg.Gemini.Model)
	} else {
		if cfg.Server.Environment == "development" {
			catalogClient.SetDebug(true)
		}
		log.Printf("WARNING: Gemini API key not configured - assistant will answer from the catalog only")
	}

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(catalogClient, cfg.Catalog.Sources)

	sessionManager := usecase.NewSessionManager(
		catalogService,
		cfg.Search.PreviewLimit,
		cfg.Search.SessionTTL,
	)

	chatService := usecase.NewChatService(
		catalogService,
		generative,
		replyCache,
		usecase.ChatServiceConfig{
			ContextSize: cfg.Search.ChatContextSize,
			CacheTTL:    cfg.Cache.TTL,
		},
	)

	log.Printf("Search: preview=%d, chat context=%d",
		cfg.Search.PreviewLimit,
		cfg.Search.ChatContextSize)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(sessionManager, chatService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)
	if cfg.Server.ServeStatic {
		log.Printf("Static: on (%s)", cfg.Server.StaticDir)
	} else {
		log.Printf("Static: off")
	}

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}

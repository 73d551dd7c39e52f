package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pokedex/internal/achievements"
	"pokedex/internal/cache"
	"pokedex/internal/config"
	"pokedex/internal/database"
	"pokedex/internal/handlers"
	"pokedex/internal/pokeapi"
	"pokedex/internal/repository"
	"pokedex/internal/security"
	"pokedex/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.EmailDebug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.SessionDuration)
	authService := service.NewAuthService(userRepo, tokens, emailService)

	engine := achievements.NewEngine(achievements.DefaultCatalog(), statsRepo, badgeRepo)
	catalog := pokeapi.NewClient(cfg.PokeAPIBaseURL, cfg.PokeAPITimeout)
	recents := cache.NewRecencyCache(documentRepo, cfg.RecentsCapacity)

	searchService := service.NewSearchService(catalog, recents, engine, cfg.SuggestionLimit)
	collectionService := service.NewCollectionService(documentRepo, engine)
	trainerService := service.NewTrainerService(documentRepo)

	// Initialize handlers
	rateLimiter := security.NewRateLimiter(20, time.Minute)
	middleware := handlers.NewMiddleware(authService, rateLimiter)
	authHandler := handlers.NewAuthHandler(authService)
	pokemonHandler := handlers.NewPokemonHandler(searchService, emailService)
	collectionHandler := handlers.NewCollectionHandler(collectionService, emailService)
	trainerHandler := handlers.NewTrainerHandler(trainerService, engine)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /api/suggest", pokemonHandler.Suggest)

	// Protected routes
	mux.HandleFunc("POST /api/auth/logout", middleware.RequireAuth(authHandler.Logout))
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))

	mux.HandleFunc("GET /api/pokemon/random", middleware.RequireAuth(pokemonHandler.Random))
	mux.HandleFunc("GET /api/pokemon/{term}", middleware.RequireAuth(pokemonHandler.Search))
	mux.HandleFunc("GET /api/recents", middleware.RequireAuth(pokemonHandler.Recents))
	mux.HandleFunc("DELETE /api/recents", middleware.RequireAuth(pokemonHandler.ClearRecents))

	mux.HandleFunc("GET /api/favorites", middleware.RequireAuth(collectionHandler.Favorites))
	mux.HandleFunc("POST /api/favorites/toggle", middleware.RequireAuth(collectionHandler.ToggleFavorite))
	mux.HandleFunc("POST /api/catch", middleware.RequireAuth(collectionHandler.Catch))
	mux.HandleFunc("GET /api/storage", middleware.RequireAuth(collectionHandler.Storage))
	mux.HandleFunc("DELETE /api/storage/{caughtID}", middleware.RequireAuth(collectionHandler.Release))
	mux.HandleFunc("DELETE /api/storage", middleware.RequireAuth(collectionHandler.ReleaseAll))

	mux.HandleFunc("GET /api/trainer/profile", middleware.RequireAuth(trainerHandler.GetProfile))
	mux.HandleFunc("POST /api/trainer/profile", middleware.RequireAuth(trainerHandler.CreateProfile))
	mux.HandleFunc("PATCH /api/trainer/profile", middleware.RequireAuth(trainerHandler.UpdateProfile))
	mux.HandleFunc("DELETE /api/trainer/profile", middleware.RequireAuth(trainerHandler.DeleteProfile))
	mux.HandleFunc("GET /api/trainer/badges", middleware.RequireAuth(trainerHandler.Badges))
	mux.HandleFunc("GET /api/trainer/stats", middleware.RequireAuth(trainerHandler.Stats))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	go authService.StartSessionCleanup(cleanupCtx, time.Hour)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

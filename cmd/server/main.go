package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/questforge/grimoire/api/internal/config"
	"github.com/questforge/grimoire/api/internal/database"
	"github.com/questforge/grimoire/api/internal/handler"
	"github.com/questforge/grimoire/api/internal/middleware"
	"github.com/questforge/grimoire/api/internal/repository"
	"github.com/questforge/grimoire/api/internal/service"
	"github.com/questforge/grimoire/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	characterRepo := repository.NewCharacterRepository(db)
	gameRepo := repository.NewGameRepository(db)

	// Initialize services
	credentialService := service.NewCredentialService(jwtService)
	relationships := service.NewRelationshipMaintainer(userRepo)

	userService := service.NewUserService(service.UserServiceConfig{
		UserRepo:    userRepo,
		Credentials: credentialService,
	})

	classService := service.NewClassService(service.ClassServiceConfig{
		ClassRepo: classRepo,
	})

	characterService := service.NewCharacterService(service.CharacterServiceConfig{
		CharacterRepo: characterRepo,
		UserRepo:      userRepo,
		ClassRepo:     classRepo,
		Relationships: relationships,
	})

	gameService := service.NewGameService(service.GameServiceConfig{
		GameRepo: gameRepo,
		UserRepo: userRepo,
	})

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	classHandler := handler.NewClassHandler(classService)
	characterHandler := handler.NewCharacterHandler(characterService)
	gameHandler := handler.NewGameHandler(gameService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)

	authMiddleware := middleware.Auth(credentialService)

	// User endpoints
	mux.Handle("GET /v1/users", authMiddleware(http.HandlerFunc(userHandler.List)))
	mux.Handle("GET /v1/users/{userId}", authMiddleware(http.HandlerFunc(userHandler.Get)))
	mux.Handle("PATCH /v1/users/{userId}", authMiddleware(http.HandlerFunc(userHandler.Update)))
	mux.Handle("DELETE /v1/users/{userId}", authMiddleware(http.HandlerFunc(userHandler.Delete)))

	// Class endpoints
	mux.Handle("GET /v1/classes", authMiddleware(http.HandlerFunc(classHandler.List)))
	mux.Handle("POST /v1/classes", authMiddleware(http.HandlerFunc(classHandler.Create)))
	mux.Handle("GET /v1/classes/{classId}", authMiddleware(http.HandlerFunc(classHandler.Get)))
	mux.Handle("PATCH /v1/classes/{classId}", authMiddleware(http.HandlerFunc(classHandler.Update)))
	mux.Handle("DELETE /v1/classes/{classId}", authMiddleware(http.HandlerFunc(classHandler.Delete)))

	// Character endpoints
	mux.Handle("GET /v1/characters", authMiddleware(http.HandlerFunc(characterHandler.List)))
	mux.Handle("POST /v1/characters", authMiddleware(http.HandlerFunc(characterHandler.Create)))
	mux.Handle("GET /v1/characters/{characterId}", authMiddleware(http.HandlerFunc(characterHandler.Get)))
	mux.Handle("PATCH /v1/characters/{characterId}", authMiddleware(http.HandlerFunc(characterHandler.Update)))
	mux.Handle("DELETE /v1/characters/{characterId}", authMiddleware(http.HandlerFunc(characterHandler.Delete)))

	// Game endpoints
	mux.Handle("GET /v1/games", authMiddleware(http.HandlerFunc(gameHandler.List)))
	mux.Handle("POST /v1/games", authMiddleware(http.HandlerFunc(gameHandler.Create)))
	mux.Handle("GET /v1/games/{gameId}", authMiddleware(http.HandlerFunc(gameHandler.Get)))
	mux.Handle("PATCH /v1/games/{gameId}", authMiddleware(http.HandlerFunc(gameHandler.Update)))
	mux.Handle("DELETE /v1/games/{gameId}", authMiddleware(http.HandlerFunc(gameHandler.Delete)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

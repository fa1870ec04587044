package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-portal-backend/internal/config"
	"campus-portal-backend/internal/database"
	"campus-portal-backend/internal/handlers"
	"campus-portal-backend/internal/logger"
	"campus-portal-backend/internal/middleware"
	"campus-portal-backend/internal/repository"
	"campus-portal-backend/internal/router"
	"campus-portal-backend/internal/services"
	"campus-portal-backend/internal/websocket"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("✗ %v", err)
	}

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	appLogger.Info("starting campus portal backend", slog.String("env", cfg.Env))

	// ──── Step 2: Session Store ────
	var sessions services.SessionStore
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			appLogger.Error("redis connection failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer redisClient.Close()
		sessions = services.NewRedisSessionStore(redisClient)
		appLogger.Info("redis connected, refresh tokens stored in redis")
	} else {
		sessions = services.NewMemorySessionStore(nil)
		appLogger.Info("REDIS_URL not set, refresh tokens kept in memory")
	}

	// ──── Step 3: Completion Provider ────
	var provider services.CompletionProvider
	switch cfg.ChatProvider {
	case "gemini":
		gemini, err := services.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, cfg.ChatModelName())
		if err != nil {
			appLogger.Error("gemini client initialization failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer gemini.Close()
		provider = gemini
	default:
		provider = services.NewGroqProvider(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.ChatModelName())
	}
	appLogger.Info("completion provider ready",
		slog.String("provider", provider.Name()),
		slog.String("model", cfg.ChatModelName()),
	)

	gateway := services.NewCompletionGateway(provider, services.CompletionGatewayConfig{
		MaxTokens:          cfg.ChatMaxTokens,
		Timeout:            cfg.ChatTimeout,
		ConcurrentRequests: cfg.ChatConcurrentRequests,
	}, appLogger)

	// ──── Initialize Repositories ────
	roomRepo := repository.NewRoomRepo()
	issueRepo := repository.NewIssueRepo(nil)
	lostFoundRepo := repository.NewLostFoundRepo(nil)
	noteRepo := repository.NewNoteRepo(nil)
	dashboardRepo := repository.NewDashboardRepo(nil)
	realtimeRepo := repository.NewRealtimeRepo(nil, nil)

	// ──── Initialize Services ────
	creds, err := services.NewCredentialStore(services.DefaultCredentials(), cfg.BcryptCost)
	if err != nil {
		appLogger.Error("credential store initialization failed", slog.Any("error", err))
		os.Exit(1)
	}
	ids := services.NewIDGenerator(nil)
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret, cfg.AccessTokenTTL)
	authService := services.NewAuthService(creds, sessions, ids, jwtAuth, cfg.RefreshTokenTTL)
	campusService := services.NewCampusService(
		ids,
		services.NewUploadInspector(cfg.UploadMaxBytes),
	)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(gateway)
	campusHandler := handlers.NewCampusHandler(handlers.CampusRepos{
		Rooms:     roomRepo,
		Issues:    issueRepo,
		LostFound: lostFoundRepo,
		Notes:     noteRepo,
		Dashboard: dashboardRepo,
		Realtime:  realtimeRepo,
	}, campusService, cfg.UploadMaxBytes)

	// ──── Step 4: Start WebSocket Hub ────
	wsHub := websocket.NewHub(realtimeRepo, cfg.RealtimeInterval, middleware.SplitOrigins(cfg.FrontendURL), appLogger)

	// Rate limiters (per IP, per minute)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	chatLimiter := middleware.NewRateLimiter(cfg.ChatRateLimit, time.Minute)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(
		appLogger,
		jwtAuth,
		authLimiter,
		chatLimiter,
		authHandler,
		chatHandler,
		campusHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15*time.Second + cfg.ChatTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		appLogger.Info("shutting down")
		wsHub.Close()
		authLimiter.Stop()
		chatLimiter.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			appLogger.Error("graceful shutdown failed", slog.Any("error", err))
		}
	}()

	appLogger.Info("campus portal backend ready",
		slog.String("api", fmt.Sprintf("http://localhost:%s/api", cfg.Port)),
		slog.String("ws", fmt.Sprintf("ws://localhost:%s/api/realtime/ws", cfg.Port)),
	)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		appLogger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	<-done
}

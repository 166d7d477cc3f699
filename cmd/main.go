package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"nori/internal/config"
	"nori/internal/handlers"
	"nori/internal/jobs"
	"nori/internal/middleware"
	"nori/internal/repository"
	"nori/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...", slog.String("app", config.Cfg.App.Name))

	// Database (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// Dependency Injection
	userRepo := repository.NewGormUserRepository()
	tokenRepo := repository.NewGormTokenRepository()
	wordRepo := repository.NewGormWordRepository()
	favRepo := repository.NewGormFavoriteRepository()
	progressRepo := repository.NewGormProgressRepository()
	sessionRepo := repository.NewGormSessionRepository()

	mailer := service.NewMailer(&config.Cfg)

	authService := service.NewAuthService(db, userRepo, tokenRepo, mailer, &config.Cfg)
	wordService := service.NewWordService(db, wordRepo, favRepo)
	favoriteService := service.NewFavoriteService(db, favRepo, wordRepo)
	deckService := service.NewDeckService(db, wordRepo, favRepo, progressRepo, sessionRepo)
	studyService := service.NewStudyService(db, wordRepo, favRepo, progressRepo, sessionRepo)
	progressService := service.NewProgressService(db, progressRepo, sessionRepo)
	sessionService := service.NewSessionService(db, sessionRepo)

	authHandler := handlers.NewAuthHandler(authService, &config.Cfg)
	wordHandler := handlers.NewWordHandler(wordService, logger)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, logger)
	studyHandler := handlers.NewStudyHandler(deckService, studyService, logger)
	progressHandler := handlers.NewProgressHandler(progressService, logger)
	sessionHandler := handlers.NewSessionHandler(sessionService, logger)

	// 期限切れトークンの掃除ジョブ
	scheduler := jobs.NewScheduler(db, tokenRepo, logger)
	scheduler.Start()
	defer scheduler.Stop()

	// Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Get("/register", authHandler.CheckUsername)
			r.Get("/verify", authHandler.VerifyAccount)
			r.Post("/resend-verification", authHandler.ResendVerification)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/forgot-password", authHandler.RequestPasswordReset)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuthMiddleware(&config.Cfg))

			r.Get("/user", authHandler.GetMe)

			r.Route("/words", func(r chi.Router) {
				r.Get("/", wordHandler.GetWords)
				r.Post("/", wordHandler.PostWord)
				r.Get("/{word_id}", wordHandler.GetWord)
				r.Put("/{word_id}", wordHandler.PutWord)
				r.Delete("/{word_id}", wordHandler.DeleteWord)
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", favoriteHandler.GetFavorites)
				r.Post("/{word_id}", favoriteHandler.ToggleFavorite)
			})

			r.Route("/study", func(r chi.Router) {
				r.Get("/deck", studyHandler.GetDeck)
				r.Post("/answers", studyHandler.PostAnswer)
				r.Post("/cycle", studyHandler.PostCycle)
			})

			r.Route("/progress", func(r chi.Router) {
				r.Get("/", progressHandler.GetProgress)
				r.Post("/", progressHandler.PostProgress)
				r.Post("/reset", progressHandler.PostReset)
			})

			r.Route("/review-session", func(r chi.Router) {
				r.Get("/", sessionHandler.GetSession)
				r.Post("/", sessionHandler.PostSession)
				r.Delete("/", sessionHandler.DeleteSession)
			})
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Stewz00/rpmwiki-auth/internal/config"
	"github.com/Stewz00/rpmwiki-auth/internal/credential"
	"github.com/Stewz00/rpmwiki-auth/internal/database"
	"github.com/Stewz00/rpmwiki-auth/internal/handler"
	"github.com/Stewz00/rpmwiki-auth/internal/logger"
	"github.com/Stewz00/rpmwiki-auth/internal/ratelimit"
	"github.com/Stewz00/rpmwiki-auth/internal/repository"
	"github.com/Stewz00/rpmwiki-auth/internal/server"
	"github.com/Stewz00/rpmwiki-auth/internal/service"
	"github.com/Stewz00/rpmwiki-auth/internal/token"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	log := logger.New(cfg.LogLevel, os.Stdout)

	issuer, err := token.NewIssuer(cfg.TokenPrivateKey)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize database
	db, err := database.New(context.Background(), cfg.DbURL, database.PoolLimits{
		MaxConns: int32(cfg.DbMaxConns),
		MinConns: int32(cfg.DbMinConns),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Connected to database")

	userRepo := repository.NewUserRepository(db.Pool, database.NewMigrator(cfg.DbURL))
	if err := userRepo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	limiter := ratelimit.New(cfg.RateLimit)
	go limiter.Run(ctx, cfg.SweepInterval)

	registrationService := service.NewRegistrationService(
		userRepo,
		credential.NewTransformer(credential.DefaultParams),
		issuer,
		log,
		cfg.RegisterTimeout,
	)
	authHandler := handler.NewAuthHandler(registrationService, log)

	r := server.NewRouter(server.Deps{
		AuthHandler:    authHandler,
		Limiter:        limiter,
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustProxy:     cfg.TrustProxy,
	})

	// Create server with timeouts
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("RPMWiki auth server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited properly")
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vibecraft/vibecraft-backend/internal/adapter/postgres"
	activityrepo "github.com/vibecraft/vibecraft-backend/internal/adapter/postgres/activity"
	viberepo "github.com/vibecraft/vibecraft-backend/internal/adapter/postgres/vibe"
	"github.com/vibecraft/vibecraft-backend/internal/adapter/provider/gemini"
	"github.com/vibecraft/vibecraft-backend/internal/adapter/provider/qloo"
	"github.com/vibecraft/vibecraft-backend/internal/adapter/provider/spotify"
	"github.com/vibecraft/vibecraft-backend/internal/adapter/provider/unsplash"
	"github.com/vibecraft/vibecraft-backend/internal/auth"
	"github.com/vibecraft/vibecraft-backend/internal/config"
	"github.com/vibecraft/vibecraft-backend/internal/service/vibe"
	"github.com/vibecraft/vibecraft-backend/internal/transport/middleware"
	"github.com/vibecraft/vibecraft-backend/internal/transport/rest"
)

const accessTokenTTL = 24 * time.Hour

// Run is the application entry point. It loads configuration, wires the
// providers, services, and HTTP transport, and serves until the context
// is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	qlooProvider := qloo.NewProvider(cfg.Providers.Qloo.APIKey, logger)
	if cfg.Providers.Qloo.BaseURL != "" {
		qlooProvider = qloo.NewProviderWithURL(cfg.Providers.Qloo.BaseURL, cfg.Providers.Qloo.APIKey, logger)
	}
	geminiProvider := gemini.NewProvider(cfg.Providers.Gemini.APIKey, cfg.Providers.Gemini.Model, logger)
	unsplashProvider := unsplash.NewProvider(cfg.Providers.Unsplash.APIKey, logger)
	spotifyProvider := spotify.NewProvider(cfg.Providers.Spotify.ClientID, cfg.Providers.Spotify.ClientSecret, logger)

	vibeService := vibe.NewService(
		logger,
		qlooProvider,
		qlooProvider,
		geminiProvider,
		unsplashProvider,
		spotifyProvider,
		viberepo.New(pool),
		activityrepo.New(pool),
		postgres.NewTxManager(pool),
	)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, accessTokenTTL)

	vibeHandler := rest.NewVibeHandler(vibeService, cfg.Frontend.BaseURL, logger)
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())

	router := rest.NewRouter(vibeHandler, healthHandler,
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		logger.Info("server exited")
		return nil
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

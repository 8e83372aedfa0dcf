// Package opportunityboard собирает основное HTTP-приложение доски объявлений:
// хранилище, кеш, сервисы и маршруты.
package opportunityboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/opportunity-board/internal/cache"
	"github.com/magabrotheeeer/opportunity-board/internal/config"
	"github.com/magabrotheeeer/opportunity-board/internal/lib/jwt"
	"github.com/magabrotheeeer/opportunity-board/internal/lib/smtp"
	"github.com/magabrotheeeer/opportunity-board/internal/migrations"
	accountservice "github.com/magabrotheeeer/opportunity-board/internal/services/account"
	opportunityservice "github.com/magabrotheeeer/opportunity-board/internal/services/opportunity"
	senderservice "github.com/magabrotheeeer/opportunity-board/internal/services/sender"
	verificationservice "github.com/magabrotheeeer/opportunity-board/internal/services/verification"
	"github.com/magabrotheeeer/opportunity-board/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New собирает приложение: подключает PostgreSQL и redis, применяет миграции,
// создает сервисы и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	transport := smtp.NewTransport(cfg, logger)

	senderService := senderservice.NewSenderService(transport, logger)
	verificationService := verificationservice.NewVerificationService(
		cacheRedis, senderService, cfg.CodeTTL, logger)
	accountService := accountservice.NewAccountService(db, cacheRedis, jwtMaker, logger)
	opportunityService := opportunityservice.NewOpportunityService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, opportunityService, accountService, verificationService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}

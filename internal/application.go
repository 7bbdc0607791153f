package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/config"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/rocketscienceinc/arcade-backend/internal/repository"
	"github.com/rocketscienceinc/arcade-backend/internal/repository/storage"
	"github.com/rocketscienceinc/arcade-backend/internal/repository/storage/migrations"
	"github.com/rocketscienceinc/arcade-backend/internal/service"
	"github.com/rocketscienceinc/arcade-backend/internal/tictactoe"
	"github.com/rocketscienceinc/arcade-backend/transport/rest"
	"github.com/rocketscienceinc/arcade-backend/transport/websocket"
)

const shutdownTimeout = 10 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	dsn := conf.Postgres.DSN()

	if err = migrate(logger, dsn); err != nil {
		return err
	}

	postgresStorage, err := storage.NewPostgresStorage(ctx, dsn)
	if err != nil {
		return fmt.Errorf("could not connect to postgres storage: %w", err)
	}

	defer func() {
		if err = postgresStorage.Close(); err != nil {
			log.Error("could not close postgres storage", "error", err)
		}
	}()

	policy, err := tictactoe.ParseRoundPolicy(conf.Game.RoundPolicy)
	if err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}

	userRepo := repository.NewUserRepository(postgresStorage.Connection)
	scoreRepo := repository.NewScoreRepository(postgresStorage.Connection)
	sessionRepo := repository.NewSessionRepository(redisStorage.Connection)

	authService := service.NewAuthService(logger, userRepo, sessionRepo, conf.Auth.TokenTTL)
	scoreService := service.NewScoreService(
		scoreRepo,
		entity.NewRankingPolicy(conf.Scores.LowScoreGames),
		conf.Scores.LeaderboardSize,
	)

	hub := websocket.NewHub(logger)
	defer hub.Close()

	gameRouter := tictactoe.NewRouter(logger, tictactoe.NewRegistry(), tictactoe.NewSessions(), hub, policy)
	wsServer := websocket.New(logger, hub, gameRouter, conf.Game.SendBuffer)

	httpServer := rest.New(logger, conf.HTTPPort, rest.NewRouter(logger, authService, scoreService, gameRouter, wsServer))

	// run HTTP server, websocket upgrades are served on /ws
	httpErrCh := make(chan error, 1)
	go func() {
		if httpErr := httpServer.Start(); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not shut down HTTP server: %w", err)
	}

	return nil
}

func migrate(logger *slog.Logger, dsn string) error {
	migrator, err := migrations.New(logger, dsn)
	if err != nil {
		return fmt.Errorf("could not prepare migrations: %w", err)
	}

	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			logger.Error("could not close migrator", "error", closeErr)
		}
	}()

	if err = migrator.Up(); err != nil {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	return nil
}

package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/undercover-backend/internal/config"
	"github.com/rocketscienceinc/undercover-backend/internal/repository"
	"github.com/rocketscienceinc/undercover-backend/internal/repository/storage"
	"github.com/rocketscienceinc/undercover-backend/internal/service"
	"github.com/rocketscienceinc/undercover-backend/internal/usecase"
	"github.com/rocketscienceinc/undercover-backend/transport/rest"
	"github.com/rocketscienceinc/undercover-backend/transport/websocket"
)

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

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr(), conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(ctx, conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Migrate(ctx); err != nil {
		return fmt.Errorf("could not migrate sqlite storage: %w", err)
	}

	playerRepo := repository.NewPlayerRepository(redisStorage)
	roomRepo := repository.NewRoomRepository(redisStorage)
	gameRepo := repository.NewGameRepository(redisStorage)
	wordRepo := repository.NewWordRepository(sqliteStorage.Connection)
	auditRepo := repository.NewAuditRepository(sqliteStorage.Connection)

	playerService := service.NewPlayerService(playerRepo)
	roomService := service.NewRoomService(roomRepo)
	gameService := service.NewGameService(gameRepo)
	presence := service.NewPresenceStore()
	sessions := service.NewSessionStore()

	playerUseCase := usecase.NewPlayerUseCase(playerService)
	roomUseCase := usecase.NewRoomUseCase(logger, playerService, roomService, presence, auditRepo)
	gameUseCase := usecase.NewGameUseCase(logger, presence, sessions, wordRepo, auditRepo, gameService, service.DefaultRandomizer)
	wordUseCase := usecase.NewWordUseCase(wordRepo)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		handlers := rest.NewHandlers(logger, roomUseCase, gameUseCase, wordUseCase)
		if httpErr := rest.Start(ctx, logger, conf.HTTPPort, handlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		hub := websocket.NewHub(logger, presence)
		wsServer := websocket.New(logger, conf.Websocket, hub, playerUseCase, roomUseCase, gameUseCase)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/config"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
	"github.com/rocketscienceinc/undercover-backend/internal/event"
	"github.com/rocketscienceinc/undercover-backend/internal/pkg"
	"github.com/rocketscienceinc/undercover-backend/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type playerUseCase interface {
	Connect(ctx context.Context, playerID, username, connID string) (*entity.Player, []event.Outbound, error)
}

type roomUseCase interface {
	CreateRoom(ctx context.Context, ownerID, connID, status, password string) (entity.RoomSnapshot, []event.Outbound, error)
	JoinRoom(ctx context.Context, userID, connID, publicID, password string) (entity.RoomSnapshot, []event.Outbound, error)
	LeaveRoom(ctx context.Context, roomID, userID string) (entity.RoomSnapshot, []event.Outbound, error)
	Disconnect(ctx context.Context, playerID string) ([]event.Outbound, error)
}

type gameUseCase interface {
	StartGame(ctx context.Context, roomID, userID string) (*entity.Game, []event.Outbound, error)
	StartNewTurn(ctx context.Context, roomID, gameID, userID string) ([]event.Outbound, error)
	Vote(ctx context.Context, vote usecase.Vote) ([]event.Outbound, error)
}

// handlerFunc serves one action and returns the events it produced.
type handlerFunc func(ctx context.Context, client *Client, payload json.RawMessage) ([]event.Outbound, error)

type Server struct {
	logger *slog.Logger
	conf   config.Websocket
	hub    *Hub

	players playerUseCase
	rooms   roomUseCase
	games   gameUseCase

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, conf config.Websocket, hub *Hub, players playerUseCase, rooms roomUseCase, games gameUseCase) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		conf:    conf,
		hub:     hub,
		players: players,
		rooms:   rooms,
		games:   games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		actionConnect:      server.handleConnect,
		actionCreateRoom:   server.handleCreateRoom,
		actionJoinRoom:     server.handleJoinRoom,
		actionLeaveRoom:    server.handleLeaveRoom,
		actionStartGame:    server.handleStartGame,
		actionStartNewTurn: server.handleStartNewTurn,
		actionVote:         server.handleVote,
	}

	return server
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWebSocket(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWebSocket")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newClient(pkg.GenerateID(), conn, rate.NewLimiter(rate.Limit(that.conf.RateLimit), that.conf.RateBurst))
	that.hub.Register(client)

	log.Info("WebSocket connection established", "conn_id", client.id)

	go client.writePump()

	client.readPump(that.conf.ReadLimit, func(data []byte) {
		that.handleMessage(ctx, client, data)
	})

	that.disconnect(ctx, client)
}

// handleMessage decodes one client message and runs the matching action through the error middleware.
func (that *Server) handleMessage(ctx context.Context, client *Client, data []byte) {
	if !client.limiter.Allow() {
		that.hub.Dispatch([]event.Outbound{errorEvent(client, apperror.ErrTooManyRequests)})
		return
	}

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		that.hub.Dispatch([]event.Outbound{errorEvent(client, apperror.ErrInvalidPayload)})
		return
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		handler = unknownAction
	}

	that.withErrors(message.Action, handler)(ctx, client, message.Payload)
}

func (that *Server) disconnect(ctx context.Context, client *Client) {
	log := that.logger.With("method", "disconnect")

	that.hub.Unregister(client)

	if playerID := client.PlayerID(); playerID != "" {
		outbound, err := that.rooms.Disconnect(ctx, playerID)
		if err != nil {
			log.Error("failed to remove disconnected player from room", "player_id", playerID, "error", err)
		}

		that.hub.Dispatch(outbound)
	}

	log.Info("WebSocket connection closed", "conn_id", client.id)
}

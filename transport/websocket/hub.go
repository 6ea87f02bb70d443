package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/undercover-backend/internal/entity"
	"github.com/rocketscienceinc/undercover-backend/internal/event"
)

type rosterSource interface {
	Snapshot(roomID string) (entity.RoomSnapshot, error)
}

// Hub delivers events to single connections, to every connection joined to a room, or to the
// latest connection of each addressed player.
type Hub struct {
	logger *slog.Logger
	roster rosterSource

	mu      sync.RWMutex
	clients map[string]*Client
	// players maps a player id to the connection it most recently connected from.
	players map[string]*Client
}

func NewHub(logger *slog.Logger, roster rosterSource) *Hub {
	return &Hub{
		logger:  logger.With("component", "hub"),
		roster:  roster,
		clients: make(map[string]*Client),
		players: make(map[string]*Client),
	}
}

func (that *Hub) Register(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[client.id] = client
}

// Bind records that client speaks for playerID. A later connection of the same player takes over.
func (that *Hub) Bind(client *Client, playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	client.setPlayerID(playerID)
	that.players[playerID] = client
}

func (that *Hub) Unregister(client *Client) {
	that.mu.Lock()
	if current, ok := that.clients[client.id]; ok && current == client {
		delete(that.clients, client.id)
	}
	if playerID := client.PlayerID(); playerID != "" && that.players[playerID] == client {
		delete(that.players, playerID)
	}
	that.mu.Unlock()

	client.close()
}

// Dispatch sends every outbound event in order. Room targets are resolved against the
// roster at the time of delivery, player targets against the latest connection of each player.
func (that *Hub) Dispatch(outbound []event.Outbound) {
	log := that.logger.With("method", "Dispatch")

	for _, out := range outbound {
		data, err := encode(out.Event)
		if err != nil {
			log.Error("failed to encode event", "event", out.Event.Name(), "error", err)
			continue
		}

		switch out.Target.Kind {
		case event.TargetConn:
			that.send(out.Target.ID, data)
		case event.TargetRoom:
			snapshot, err := that.roster.Snapshot(out.Target.ID)
			if err != nil {
				log.Error("failed to resolve room", "room_id", out.Target.ID, "error", err)
				continue
			}

			for _, player := range snapshot.Players {
				that.send(player.ConnID, data)
			}
		case event.TargetPlayers:
			for _, playerID := range out.Target.PlayerIDs {
				that.sendToPlayer(playerID, data)
			}
		default:
			log.Error("unknown event target", "event", out.Event.Name(), "kind", out.Target.Kind)
		}
	}
}

func (that *Hub) send(connID string, data []byte) {
	log := that.logger.With("method", "send")

	that.mu.RLock()
	client, ok := that.clients[connID]
	that.mu.RUnlock()

	if !ok {
		log.Debug("connection not found", "conn_id", connID)
		return
	}

	if !client.enqueue(data) {
		log.Warn("dropped message for slow or closed connection", "conn_id", connID)
	}
}

func (that *Hub) sendToPlayer(playerID string, data []byte) {
	that.mu.RLock()
	client, ok := that.players[playerID]
	that.mu.RUnlock()

	if !ok {
		that.logger.Debug("player not connected", "method", "sendToPlayer", "player_id", playerID)
		return
	}

	if !client.enqueue(data) {
		that.logger.Warn("dropped message for slow or closed connection", "method", "sendToPlayer", "player_id", playerID)
	}
}

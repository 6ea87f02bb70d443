package service

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
)

type roster struct {
	// gate serialises membership changes of this room with WithRoster. It is taken before the store lock.
	gate sync.Mutex

	publicID string
	ownerID  string
	active   bool
	players  []entity.Player
}

func (that *roster) snapshot(roomID string) entity.RoomSnapshot {
	return entity.RoomSnapshot{
		RoomID:   roomID,
		PublicID: that.publicID,
		OwnerID:  that.ownerID,
		Active:   that.active,
		Players:  slices.Clone(that.players),
	}
}

// PresenceStore tracks which players are joined to which room. A player is in at most one room.
// The store lock only guards the maps and is never held across a callback.
type PresenceStore struct {
	mu         sync.Mutex
	rooms      map[string]*roster
	playerRoom map[string]string
}

func NewPresenceStore() *PresenceStore {
	return &PresenceStore{
		rooms:      make(map[string]*roster),
		playerRoom: make(map[string]string),
	}
}

// Open registers a new active room with its owner as the first player.
func (that *PresenceStore) Open(room *entity.Room, owner entity.Player) (entity.RoomSnapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if current, ok := that.playerRoom[owner.ID]; ok {
		return entity.RoomSnapshot{}, fmt.Errorf("%w: player %s is in room %s", apperror.ErrAlreadyInRoom, owner.ID, current)
	}

	r := &roster{
		publicID: room.PublicID,
		ownerID:  room.OwnerID,
		active:   true,
		players:  []entity.Player{owner},
	}

	that.rooms[room.ID] = r
	that.playerRoom[owner.ID] = room.ID

	return r.snapshot(room.ID), nil
}

// Track makes a durable room known to the store without any player in it.
func (that *PresenceStore) Track(room *entity.Room) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[room.ID]; ok {
		return
	}

	that.rooms[room.ID] = &roster{
		publicID: room.PublicID,
		ownerID:  room.OwnerID,
		active:   room.IsActive(),
	}
}

func (that *PresenceStore) Join(roomID string, player entity.Player) (entity.RoomSnapshot, error) {
	r, err := that.lockRoster(roomID)
	if err != nil {
		return entity.RoomSnapshot{}, err
	}
	defer r.gate.Unlock()

	that.mu.Lock()
	defer that.mu.Unlock()

	if !r.active {
		return entity.RoomSnapshot{}, fmt.Errorf("%w: %s", apperror.ErrRoomInactive, roomID)
	}

	if current, ok := that.playerRoom[player.ID]; ok {
		return entity.RoomSnapshot{}, fmt.Errorf("%w: player %s is in room %s", apperror.ErrAlreadyInRoom, player.ID, current)
	}

	r.players = append(r.players, player)
	that.playerRoom[player.ID] = roomID

	return r.snapshot(roomID), nil
}

// Leave removes a player from a room. The returned snapshot no longer holds the player.
func (that *PresenceStore) Leave(roomID, playerID string) (entity.RoomSnapshot, entity.Player, error) {
	r, err := that.lockRoster(roomID)
	if err != nil {
		return entity.RoomSnapshot{}, entity.Player{}, err
	}
	defer r.gate.Unlock()

	that.mu.Lock()
	defer that.mu.Unlock()

	idx := slices.IndexFunc(r.players, func(p entity.Player) bool { return p.ID == playerID })
	if idx < 0 {
		return entity.RoomSnapshot{}, entity.Player{}, fmt.Errorf("%w: player %s, room %s", apperror.ErrNotInRoom, playerID, roomID)
	}

	player := r.players[idx]
	r.players = slices.Delete(r.players, idx, idx+1)
	delete(that.playerRoom, playerID)

	return r.snapshot(roomID), player, nil
}

// Close deactivates a room and empties its roster. The returned snapshot lists the players that were removed.
func (that *PresenceStore) Close(roomID string) (entity.RoomSnapshot, error) {
	r, err := that.lockRoster(roomID)
	if err != nil {
		return entity.RoomSnapshot{}, err
	}
	defer r.gate.Unlock()

	that.mu.Lock()
	defer that.mu.Unlock()

	r.active = false
	snapshot := r.snapshot(roomID)

	for _, player := range r.players {
		delete(that.playerRoom, player.ID)
	}
	r.players = nil

	return snapshot, nil
}

func (that *PresenceStore) Snapshot(roomID string) (entity.RoomSnapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	r, ok := that.rooms[roomID]
	if !ok {
		return entity.RoomSnapshot{}, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	return r.snapshot(roomID), nil
}

// RoomOf returns the room a player is joined to.
func (that *PresenceStore) RoomOf(playerID string) (string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID, ok := that.playerRoom[playerID]

	return roomID, ok
}

// WithRoster runs fn with the room's roster while holding that room's gate, so no join or leave
// of the room can interleave until fn returns. Other rooms are unaffected.
func (that *PresenceStore) WithRoster(roomID string, fn func(entity.RoomSnapshot) error) error {
	r, err := that.lockRoster(roomID)
	if err != nil {
		return err
	}
	defer r.gate.Unlock()

	that.mu.Lock()
	active, snapshot := r.active, r.snapshot(roomID)
	that.mu.Unlock()

	if !active {
		return fmt.Errorf("%w: %s", apperror.ErrRoomInactive, roomID)
	}

	return fn(snapshot)
}

// lockRoster finds a room and takes its gate.
func (that *PresenceStore) lockRoster(roomID string) (*roster, error) {
	that.mu.Lock()
	r, ok := that.rooms[roomID]
	that.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	r.gate.Lock()

	return r, nil
}

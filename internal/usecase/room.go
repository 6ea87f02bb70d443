package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
	"github.com/rocketscienceinc/undercover-backend/internal/event"
	"github.com/rocketscienceinc/undercover-backend/internal/repository"
)

type RoomUseCase interface {
	CreateRoom(ctx context.Context, ownerID, connID, status, password string) (entity.RoomSnapshot, []event.Outbound, error)
	JoinRoom(ctx context.Context, userID, connID, publicID, password string) (entity.RoomSnapshot, []event.Outbound, error)
	LeaveRoom(ctx context.Context, roomID, userID string) (entity.RoomSnapshot, []event.Outbound, error)
	// Disconnect removes a player whose connection went away from the room they are in, if any.
	Disconnect(ctx context.Context, playerID string) ([]event.Outbound, error)
	GetRoom(ctx context.Context, publicID string) (entity.RoomSnapshot, error)
}

type roomService interface {
	CreateRoom(ctx context.Context, ownerID, status, password string) (*entity.Room, error)
	GetRoomByID(ctx context.Context, id string) (*entity.Room, error)
	GetRoomByPublicID(ctx context.Context, publicID string) (*entity.Room, error)
	CloseRoom(ctx context.Context, room *entity.Room) error
}

type presenceStore interface {
	Open(room *entity.Room, owner entity.Player) (entity.RoomSnapshot, error)
	Track(room *entity.Room)
	Join(roomID string, player entity.Player) (entity.RoomSnapshot, error)
	Leave(roomID, playerID string) (entity.RoomSnapshot, entity.Player, error)
	Close(roomID string) (entity.RoomSnapshot, error)
	Snapshot(roomID string) (entity.RoomSnapshot, error)
	RoomOf(playerID string) (string, bool)
}

type activityRecorder interface {
	RecordActivity(ctx context.Context, activity entity.Activity) error
}

type roomUseCase struct {
	logger *slog.Logger

	playerService playerService
	roomService   roomService
	presence      presenceStore
	activities    activityRecorder
}

func NewRoomUseCase(
	logger *slog.Logger,
	playerService playerService,
	roomService roomService,
	presence presenceStore,
	activities activityRecorder,
) RoomUseCase {
	return &roomUseCase{
		logger:        logger.With("component", "room_usecase"),
		playerService: playerService,
		roomService:   roomService,
		presence:      presence,
		activities:    activities,
	}
}

func (that *roomUseCase) CreateRoom(ctx context.Context, ownerID, connID, status, password string) (entity.RoomSnapshot, []event.Outbound, error) {
	owner, err := that.playerService.GetByID(ctx, ownerID)
	if err != nil {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("failed to get room owner: %w", err)
	}

	if current, ok := that.presence.RoomOf(ownerID); ok {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("%w: player %s is in room %s", apperror.ErrAlreadyInRoom, ownerID, current)
	}

	room, err := that.roomService.CreateRoom(ctx, ownerID, status, password)
	if err != nil {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("failed to create room: %w", err)
	}

	owner.ConnID = connID

	snapshot, err := that.presence.Open(room, *owner)
	if err != nil {
		that.closeRoom(ctx, room)
		return entity.RoomSnapshot{}, nil, fmt.Errorf("failed to open room: %w", err)
	}

	that.recordActivity(ctx, repository.ActivityJoinRoom, room.ID, ownerID)

	return snapshot, []event.Outbound{
		{Target: event.ToConn(connID), Event: event.RoomCreated{Room: event.ViewOf(snapshot), Password: room.Password}},
	}, nil
}

func (that *roomUseCase) JoinRoom(ctx context.Context, userID, connID, publicID, password string) (entity.RoomSnapshot, []event.Outbound, error) {
	player, err := that.playerService.GetByID(ctx, userID)
	if err != nil {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("failed to get player: %w", err)
	}

	room, err := that.roomService.GetRoomByPublicID(ctx, publicID)
	if err != nil {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("failed to find room: %w", err)
	}

	if !room.IsActive() {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("%w: %s", apperror.ErrRoomInactive, publicID)
	}

	if err = room.CheckPassword(password); err != nil {
		return entity.RoomSnapshot{}, nil, err
	}

	player.ConnID = connID

	that.presence.Track(room)

	snapshot, err := that.presence.Join(room.ID, *player)
	if err != nil {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("failed to join room: %w", err)
	}

	that.recordActivity(ctx, repository.ActivityJoinRoom, room.ID, userID)

	view := event.ViewOf(snapshot)

	return snapshot, []event.Outbound{
		{Target: event.ToConn(connID), Event: event.RoomStatus{Room: view}},
		{Target: event.ToRoom(room.ID), Event: event.UserJoined{RoomID: room.ID, User: event.RefOf(*player)}},
	}, nil
}

func (that *roomUseCase) LeaveRoom(ctx context.Context, roomID, userID string) (entity.RoomSnapshot, []event.Outbound, error) {
	current, err := that.presence.Snapshot(roomID)
	if err != nil {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("failed to get room: %w", err)
	}

	if !current.Has(userID) {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("%w: player %s, room %s", apperror.ErrNotInRoom, userID, roomID)
	}

	if current.OwnerID == userID {
		return that.ownerLeave(ctx, roomID, userID)
	}

	snapshot, player, err := that.presence.Leave(roomID, userID)
	if err != nil {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("failed to leave room: %w", err)
	}

	that.recordActivity(ctx, repository.ActivityLeaveRoom, roomID, userID)

	return snapshot, []event.Outbound{
		{Target: event.ToConn(player.ConnID), Event: event.YouLeft{RoomID: roomID}},
		{Target: event.ToRoom(roomID), Event: event.UserLeft{RoomID: roomID, User: event.RefOf(player)}},
	}, nil
}

// ownerLeave closes the room: the durable record goes inactive first, then every player is removed.
func (that *roomUseCase) ownerLeave(ctx context.Context, roomID, ownerID string) (entity.RoomSnapshot, []event.Outbound, error) {
	room, err := that.roomService.GetRoomByID(ctx, roomID)
	if err != nil {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("failed to get room: %w", err)
	}

	if err = that.roomService.CloseRoom(ctx, room); err != nil {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("failed to close room: %w", err)
	}

	_, owner, err := that.presence.Leave(roomID, ownerID)
	if err != nil {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("failed to leave room: %w", err)
	}

	closed, err := that.presence.Close(roomID)
	if err != nil {
		return entity.RoomSnapshot{}, nil, fmt.Errorf("failed to close room: %w", err)
	}

	that.recordActivity(ctx, repository.ActivityLeaveRoom, roomID, ownerID)

	outbound := make([]event.Outbound, 0, len(closed.Players)+2)
	outbound = append(outbound,
		event.Outbound{Target: event.ToConn(owner.ConnID), Event: event.YouLeft{RoomID: roomID}},
		event.Outbound{Target: event.ToConn(owner.ConnID), Event: event.RoomClosed{RoomID: roomID}},
	)

	for _, player := range closed.Players {
		outbound = append(outbound, event.Outbound{Target: event.ToConn(player.ConnID), Event: event.RoomClosed{RoomID: roomID}})
	}

	closed.Players = nil

	return closed, outbound, nil
}

func (that *roomUseCase) Disconnect(ctx context.Context, playerID string) ([]event.Outbound, error) {
	roomID, ok := that.presence.RoomOf(playerID)
	if !ok {
		return nil, nil
	}

	_, outbound, err := that.LeaveRoom(ctx, roomID, playerID)
	if err != nil {
		return nil, err
	}

	return outbound, nil
}

func (that *roomUseCase) GetRoom(ctx context.Context, publicID string) (entity.RoomSnapshot, error) {
	room, err := that.roomService.GetRoomByPublicID(ctx, publicID)
	if err != nil {
		return entity.RoomSnapshot{}, fmt.Errorf("failed to find room: %w", err)
	}

	that.presence.Track(room)

	snapshot, err := that.presence.Snapshot(room.ID)
	if err != nil {
		return entity.RoomSnapshot{}, fmt.Errorf("failed to get room roster: %w", err)
	}

	return snapshot, nil
}

func (that *roomUseCase) closeRoom(ctx context.Context, room *entity.Room) {
	log := that.logger.With("method", "closeRoom")

	if err := that.roomService.CloseRoom(ctx, room); err != nil {
		log.Error("failed to close room", "room_id", room.ID, "error", err)
	}
}

func (that *roomUseCase) recordActivity(ctx context.Context, name, roomID, userID string) {
	log := that.logger.With("method", "recordActivity")

	err := that.activities.RecordActivity(ctx, entity.Activity{
		Name:      name,
		RoomID:    roomID,
		UserID:    userID,
		Data:      map[string]any{},
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Error("failed to record room activity", "activity", name, "room_id", roomID, "error", err)
	}
}

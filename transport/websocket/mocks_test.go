package websocket

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
	"github.com/rocketscienceinc/undercover-backend/internal/event"
	"github.com/rocketscienceinc/undercover-backend/internal/usecase"
)

// --- rosterSource ---

type fakeRoster map[string]entity.RoomSnapshot

func (that fakeRoster) Snapshot(roomID string) (entity.RoomSnapshot, error) {
	snapshot, ok := that[roomID]
	if !ok {
		return entity.RoomSnapshot{}, apperror.ErrRoomNotFound
	}

	return snapshot, nil
}

// --- playerUseCase ---

type MockPlayerUseCase struct {
	mock.Mock
}

func (m *MockPlayerUseCase) Connect(ctx context.Context, playerID, username, connID string) (*entity.Player, []event.Outbound, error) {
	args := m.Called(ctx, playerID, username, connID)
	player, _ := args.Get(0).(*entity.Player)
	outbound, _ := args.Get(1).([]event.Outbound)
	return player, outbound, args.Error(2)
}

// --- roomUseCase ---

type MockRoomUseCase struct {
	mock.Mock
}

func (m *MockRoomUseCase) CreateRoom(ctx context.Context, ownerID, connID, status, password string) (entity.RoomSnapshot, []event.Outbound, error) {
	args := m.Called(ctx, ownerID, connID, status, password)
	outbound, _ := args.Get(1).([]event.Outbound)
	return args.Get(0).(entity.RoomSnapshot), outbound, args.Error(2)
}

func (m *MockRoomUseCase) JoinRoom(ctx context.Context, userID, connID, publicID, password string) (entity.RoomSnapshot, []event.Outbound, error) {
	args := m.Called(ctx, userID, connID, publicID, password)
	outbound, _ := args.Get(1).([]event.Outbound)
	return args.Get(0).(entity.RoomSnapshot), outbound, args.Error(2)
}

func (m *MockRoomUseCase) LeaveRoom(ctx context.Context, roomID, userID string) (entity.RoomSnapshot, []event.Outbound, error) {
	args := m.Called(ctx, roomID, userID)
	outbound, _ := args.Get(1).([]event.Outbound)
	return args.Get(0).(entity.RoomSnapshot), outbound, args.Error(2)
}

func (m *MockRoomUseCase) Disconnect(ctx context.Context, playerID string) ([]event.Outbound, error) {
	args := m.Called(ctx, playerID)
	outbound, _ := args.Get(0).([]event.Outbound)
	return outbound, args.Error(1)
}

// --- gameUseCase ---

type MockGameUseCase struct {
	mock.Mock
}

func (m *MockGameUseCase) StartGame(ctx context.Context, roomID, userID string) (*entity.Game, []event.Outbound, error) {
	args := m.Called(ctx, roomID, userID)
	game, _ := args.Get(0).(*entity.Game)
	outbound, _ := args.Get(1).([]event.Outbound)
	return game, outbound, args.Error(2)
}

func (m *MockGameUseCase) StartNewTurn(ctx context.Context, roomID, gameID, userID string) ([]event.Outbound, error) {
	args := m.Called(ctx, roomID, gameID, userID)
	outbound, _ := args.Get(0).([]event.Outbound)
	return outbound, args.Error(1)
}

func (m *MockGameUseCase) Vote(ctx context.Context, vote usecase.Vote) ([]event.Outbound, error) {
	args := m.Called(ctx, vote)
	outbound, _ := args.Get(0).([]event.Outbound)
	return outbound, args.Error(1)
}

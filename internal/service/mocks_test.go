package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/undercover-backend/internal/entity"
)

// --- playerRepo ---

type MockPlayerRepo struct {
	mock.Mock
}

func (m *MockPlayerRepo) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepo) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	args := m.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

// --- roomRepo ---

type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) CreateOrUpdate(ctx context.Context, room *entity.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepo) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	args := m.Called(ctx, id)
	room, _ := args.Get(0).(*entity.Room)
	return room, args.Error(1)
}

func (m *MockRoomRepo) GetByPublicID(ctx context.Context, publicID string) (*entity.Room, error) {
	args := m.Called(ctx, publicID)
	room, _ := args.Get(0).(*entity.Room)
	return room, args.Error(1)
}

func (m *MockRoomRepo) ReservePublicID(ctx context.Context, publicID, roomID string) (bool, error) {
	args := m.Called(ctx, publicID, roomID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoomRepo) ReleasePublicID(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

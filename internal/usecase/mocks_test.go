package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/undercover-backend/internal/entity"
)

// --- playerService ---

type MockPlayerService struct {
	mock.Mock
}

func (m *MockPlayerService) GetOrCreatePlayer(ctx context.Context, id, username string) (*entity.Player, error) {
	args := m.Called(ctx, id, username)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

func (m *MockPlayerService) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	args := m.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

// --- roomService ---

type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) CreateRoom(ctx context.Context, ownerID, status, password string) (*entity.Room, error) {
	args := m.Called(ctx, ownerID, status, password)
	room, _ := args.Get(0).(*entity.Room)
	return room, args.Error(1)
}

func (m *MockRoomService) GetRoomByID(ctx context.Context, id string) (*entity.Room, error) {
	args := m.Called(ctx, id)
	room, _ := args.Get(0).(*entity.Room)
	return room, args.Error(1)
}

func (m *MockRoomService) GetRoomByPublicID(ctx context.Context, publicID string) (*entity.Room, error) {
	args := m.Called(ctx, publicID)
	room, _ := args.Get(0).(*entity.Room)
	return room, args.Error(1)
}

func (m *MockRoomService) CloseRoom(ctx context.Context, room *entity.Room) error {
	args := m.Called(ctx, room)
	if args.Error(0) == nil {
		room.Deactivate()
	}
	return args.Error(0)
}

// --- activityRecorder ---

type MockActivityRecorder struct {
	mock.Mock
}

func (m *MockActivityRecorder) RecordActivity(ctx context.Context, activity entity.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

// --- wordCatalogue ---

type MockWordCatalogue struct {
	mock.Mock
}

func (m *MockWordCatalogue) GetRandomPair(ctx context.Context) (entity.WordPair, error) {
	args := m.Called(ctx)
	return args.Get(0).(entity.WordPair), args.Error(1)
}

// --- wordStore ---

type MockWordStore struct {
	mock.Mock
}

func (m *MockWordStore) GetWord(ctx context.Context, word string) (*entity.Word, error) {
	args := m.Called(ctx, word)
	found, _ := args.Get(0).(*entity.Word)
	return found, args.Error(1)
}

func (m *MockWordStore) CreatePair(ctx context.Context, first, second entity.Word) (entity.WordPair, error) {
	args := m.Called(ctx, first, second)
	return args.Get(0).(entity.WordPair), args.Error(1)
}

// --- auditLog ---

type MockAuditLog struct {
	mock.Mock
}

func (m *MockAuditLog) CreateGame(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockAuditLog) CreateTurn(ctx context.Context, gameID string, turn *entity.Turn) error {
	args := m.Called(ctx, gameID, turn)
	return args.Error(0)
}

func (m *MockAuditLog) RecordEvent(ctx context.Context, event entity.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditLog) FinishGame(ctx context.Context, gameID string, winner entity.Role) error {
	args := m.Called(ctx, gameID, winner)
	return args.Error(0)
}

func (m *MockAuditLog) ListEvents(ctx context.Context, gameID string) ([]entity.AuditEvent, error) {
	args := m.Called(ctx, gameID)
	events, _ := args.Get(0).([]entity.AuditEvent)
	return events, args.Error(1)
}

// --- gameService ---

type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) SaveGame(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

// fixedRand deals roles in order and always picks the first index.
type fixedRand struct{}

func (fixedRand) IntN(int) int { return 0 }

func (fixedRand) Shuffle(int, func(i, j int)) {}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
)

type RoomRepository interface {
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	GetByPublicID(ctx context.Context, publicID string) (*entity.Room, error)
	// ReservePublicID binds publicID to roomID unless another room already holds it.
	ReservePublicID(ctx context.Context, publicID, roomID string) (bool, error)
	ReleasePublicID(ctx context.Context, publicID string) error
}

type dbRoom struct {
	client *redis.Client
}

func NewRoomRepository(client *redis.Client) RoomRepository {
	return &dbRoom{
		client: client,
	}
}

func roomKey(id string) string {
	return "room:" + id
}

func publicIDKey(publicID string) string {
	return "room:public:" + publicID
}

func (that *dbRoom) CreateOrUpdate(ctx context.Context, room *entity.Room) error {
	roomJSON, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	if err = that.client.Set(ctx, roomKey(room.ID), roomJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	return nil
}

func (that *dbRoom) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	response, err := that.client.Get(ctx, roomKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get room by ID: %w", err)
	}

	var room entity.Room
	if err = json.Unmarshal([]byte(response), &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &room, nil
}

func (that *dbRoom) GetByPublicID(ctx context.Context, publicID string) (*entity.Room, error) {
	roomID, err := that.client.Get(ctx, publicIDKey(publicID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, publicID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to resolve public room ID: %w", err)
	}

	return that.GetByID(ctx, roomID)
}

func (that *dbRoom) ReservePublicID(ctx context.Context, publicID, roomID string) (bool, error) {
	ok, err := that.client.SetNX(ctx, publicIDKey(publicID), roomID, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve public room ID: %w", err)
	}

	return ok, nil
}

func (that *dbRoom) ReleasePublicID(ctx context.Context, publicID string) error {
	if err := that.client.Del(ctx, publicIDKey(publicID)).Err(); err != nil {
		return fmt.Errorf("failed to release public room ID: %w", err)
	}

	return nil
}

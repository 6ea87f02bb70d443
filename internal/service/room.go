package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/undercover-backend/internal/entity"
	"github.com/rocketscienceinc/undercover-backend/internal/pkg"
)

const maxPublicIDAttempts = 10

var ErrPublicIDExhausted = errors.New("could not find a free public room ID")

type RoomService interface {
	CreateRoom(ctx context.Context, ownerID, status, password string) (*entity.Room, error)
	GetRoomByID(ctx context.Context, id string) (*entity.Room, error)
	GetRoomByPublicID(ctx context.Context, publicID string) (*entity.Room, error)
	// CloseRoom marks the room inactive and frees its public ID.
	CloseRoom(ctx context.Context, room *entity.Room) error
}

type roomRepo interface {
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	GetByPublicID(ctx context.Context, publicID string) (*entity.Room, error)
	ReservePublicID(ctx context.Context, publicID, roomID string) (bool, error)
	ReleasePublicID(ctx context.Context, publicID string) error
}

type roomService struct {
	roomRepo roomRepo
}

func NewRoomService(roomRepo roomRepo) RoomService {
	return &roomService{
		roomRepo: roomRepo,
	}
}

func (that *roomService) CreateRoom(ctx context.Context, ownerID, status, password string) (*entity.Room, error) {
	if err := entity.ValidatePassword(password); err != nil {
		return nil, err
	}

	if err := entity.ValidateRoomStatus(status); err != nil {
		return nil, err
	}

	roomID := pkg.GenerateID()

	publicID, err := that.reservePublicID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	room := entity.NewRoom(roomID, publicID, ownerID, status, password)
	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		if releaseErr := that.roomRepo.ReleasePublicID(ctx, publicID); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}

		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	return room, nil
}

func (that *roomService) reservePublicID(ctx context.Context, roomID string) (string, error) {
	for range maxPublicIDAttempts {
		publicID, err := pkg.GeneratePublicID()
		if err != nil {
			return "", err
		}

		ok, err := that.roomRepo.ReservePublicID(ctx, publicID, roomID)
		if err != nil {
			return "", fmt.Errorf("failed to reserve public ID: %w", err)
		}

		if ok {
			return publicID, nil
		}
	}

	return "", ErrPublicIDExhausted
}

func (that *roomService) GetRoomByID(ctx context.Context, id string) (*entity.Room, error) {
	room, err := that.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

func (that *roomService) GetRoomByPublicID(ctx context.Context, publicID string) (*entity.Room, error) {
	room, err := that.roomRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room by public ID: %w", err)
	}

	return room, nil
}

func (that *roomService) CloseRoom(ctx context.Context, room *entity.Room) error {
	room.Deactivate()

	if err := that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return fmt.Errorf("failed to deactivate room: %w", err)
	}

	if err := that.roomRepo.ReleasePublicID(ctx, room.PublicID); err != nil {
		return fmt.Errorf("failed to release public ID: %w", err)
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
	"github.com/rocketscienceinc/undercover-backend/internal/pkg"
)

type PlayerService interface {
	// GetOrCreatePlayer restores the identity stored under id, or registers a new one when id is empty or unknown.
	GetOrCreatePlayer(ctx context.Context, id, username string) (*entity.Player, error)
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type playerService struct {
	playerRepo playerRepo
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

func NewPlayerService(playerRepo playerRepo) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
	}
}

func (that *playerService) GetOrCreatePlayer(ctx context.Context, id, username string) (*entity.Player, error) {
	if id != "" {
		existingPlayer, err := that.playerRepo.GetByID(ctx, id)
		switch {
		case err == nil:
			if username == "" || username == existingPlayer.Username {
				return existingPlayer, nil
			}

			existingPlayer.Username = username
			if err = that.playerRepo.CreateOrUpdate(ctx, existingPlayer); err != nil {
				return nil, fmt.Errorf("rename player: %w", err)
			}

			return existingPlayer, nil
		case !errors.Is(err, apperror.ErrPlayerNotFound):
			return nil, fmt.Errorf("get player by id: %w", err)
		}
	} else {
		id = pkg.GenerateID()
	}

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperror.ErrInvalidPayload)
	}

	player := &entity.Player{ID: id, Username: username}
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}

	return player, nil
}

func (that *playerService) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	existingPlayer, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get player by id: %w", err)
	}

	return existingPlayer, nil
}

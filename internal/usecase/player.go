package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/undercover-backend/internal/entity"
	"github.com/rocketscienceinc/undercover-backend/internal/event"
)

type PlayerUseCase interface {
	// Connect registers or restores the identity behind a connection.
	Connect(ctx context.Context, playerID, username, connID string) (*entity.Player, []event.Outbound, error)
}

type playerService interface {
	GetOrCreatePlayer(ctx context.Context, id, username string) (*entity.Player, error)
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type playerUseCase struct {
	playerService playerService
}

func NewPlayerUseCase(playerService playerService) PlayerUseCase {
	return &playerUseCase{
		playerService: playerService,
	}
}

func (that *playerUseCase) Connect(ctx context.Context, playerID, username, connID string) (*entity.Player, []event.Outbound, error) {
	player, err := that.playerService.GetOrCreatePlayer(ctx, playerID, username)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect player: %w", err)
	}

	player.ConnID = connID

	return player, []event.Outbound{
		{Target: event.ToConn(connID), Event: event.Connected{Player: event.RefOf(*player)}},
	}, nil
}

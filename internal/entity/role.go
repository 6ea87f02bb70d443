package entity

import (
	"fmt"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
)

type Role string

const (
	RoleUndercover Role = "undercover"
	RoleCivilian   Role = "civilian"
	RoleMrWhite    Role = "mr_white"
)

const MinPlayers = 3

// Randomizer is the part of *math/rand/v2.Rand used to deal roles and words.
type Randomizer interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

type RoleCounts struct {
	Undercover int
	Civilian   int
	MrWhite    int
}

func (that RoleCounts) Total() int {
	return that.Undercover + that.Civilian + that.MrWhite
}

// CountRoles returns how many of each role a game of n players gets.
func CountRoles(n int) (RoleCounts, error) {
	if n < MinPlayers {
		return RoleCounts{}, fmt.Errorf("%w: %d players, at least %d required", apperror.ErrInsufficientPlayers, n, MinPlayers)
	}

	mrWhite := 1
	switch {
	case n > 15:
		mrWhite = 3
	case n >= 10:
		mrWhite = 2
	}

	undercover := max(2, n/4)

	civilian := n - mrWhite - undercover
	if civilian < 0 {
		return RoleCounts{}, fmt.Errorf("%w: %d players", apperror.ErrInsufficientPlayers, n)
	}

	return RoleCounts{Undercover: undercover, Civilian: civilian, MrWhite: mrWhite}, nil
}

// AssignRoles deals a shuffled role to every player in roster order and designates one moderator.
func AssignRoles(players []Player, rnd Randomizer) ([]*GamePlayer, error) {
	counts, err := CountRoles(len(players))
	if err != nil {
		return nil, err
	}

	roles := make([]Role, 0, len(players))
	for range counts.Undercover {
		roles = append(roles, RoleUndercover)
	}
	for range counts.Civilian {
		roles = append(roles, RoleCivilian)
	}
	for range counts.MrWhite {
		roles = append(roles, RoleMrWhite)
	}

	rnd.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})

	gamePlayers := make([]*GamePlayer, len(players))
	for i, player := range players {
		gamePlayers[i] = &GamePlayer{
			ID:       player.ID,
			Username: player.Username,
			ConnID:   player.ConnID,
			Role:     roles[i],
			Alive:    true,
		}
	}

	gamePlayers[rnd.IntN(len(gamePlayers))].Moderator = true

	return gamePlayers, nil
}

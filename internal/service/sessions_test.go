package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
)

func newSession(t *testing.T, gameID, roomID string, players int) *entity.Game {
	t.Helper()

	roster := make([]entity.Player, players)
	for i := range roster {
		roster[i] = entity.Player{ID: fmt.Sprintf("p%d", i+1), Username: fmt.Sprintf("player %d", i+1)}
	}

	game, err := entity.NewGame(gameID, roomID, roster, entity.WordPair{First: "cat", Second: "dog"}, DefaultRandomizer)
	require.NoError(t, err)

	turn, err := game.NextTurn("turn-1")
	require.NoError(t, err)
	game.AddTurn(turn)

	return game
}

func TestSessionStore(t *testing.T) {
	t.Run("One unfinished game per room", func(t *testing.T) {
		store := NewSessionStore()

		require.NoError(t, store.Register(newSession(t, "game-1", "room-1", 4)))

		err := store.Register(newSession(t, "game-2", "room-1", 4))
		require.ErrorIs(t, err, apperror.ErrGameInProgress)
		require.ErrorIs(t, store.EnsureIdle("room-1"), apperror.ErrGameInProgress)
		require.NoError(t, store.EnsureIdle("room-2"))
	})

	t.Run("Finishing a game frees the room", func(t *testing.T) {
		store := NewSessionStore()
		require.NoError(t, store.Register(newSession(t, "game-1", "room-1", 4)))

		err := store.Update("game-1", func(game *entity.Game) error {
			game.Status = entity.GameStatusFinished
			return nil
		})
		require.NoError(t, err)

		require.NoError(t, store.EnsureIdle("room-1"))
		require.NoError(t, store.Register(newSession(t, "game-2", "room-1", 4)))
	})

	t.Run("Unknown game", func(t *testing.T) {
		store := NewSessionStore()

		err := store.Update("missing", func(*entity.Game) error { return nil })

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Concurrent last votes eliminate exactly once", func(t *testing.T) {
		for range 20 {
			store := NewSessionStore()
			game := newSession(t, "game-1", "room-1", 8)
			require.NoError(t, store.Register(game))

			// every player votes for the next one, all at the same time
			var (
				wg          sync.WaitGroup
				mu          sync.Mutex
				tallies     int
				eliminated  []string
				voteFailure error
			)

			for i, voter := range game.Players {
				target := game.Players[(i+1)%len(game.Players)]

				wg.Add(1)
				go func() {
					defer wg.Done()

					err := store.Update("game-1", func(game *entity.Game) error {
						result, err := game.CastVote(voter.ID, target.ID)
						if err != nil {
							return err
						}

						if result.Tallied {
							mu.Lock()
							tallies++
							eliminated = append(eliminated, result.Eliminated.ID)
							mu.Unlock()
						}

						return nil
					})
					if err != nil {
						mu.Lock()
						voteFailure = err
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			require.NoError(t, voteFailure)
			assert.Equal(t, 1, tallies)
			assert.Len(t, eliminated, 1)

			dead := 0
			for _, player := range game.Players {
				if !player.Alive {
					dead++
				}
			}
			assert.Equal(t, 1, dead)
		}
	})
}

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
	"github.com/rocketscienceinc/undercover-backend/testing/suite"
)

func newTestGame(t *testing.T) *entity.Game {
	t.Helper()

	roster := []entity.Player{{ID: "p1", Username: "a"}, {ID: "p2", Username: "b"}, {ID: "p3", Username: "c"}}

	game, err := entity.NewGame("game-1", "room-1", roster, entity.WordPair{First: "cat", Second: "dog"}, firstPick{})
	require.NoError(t, err)

	game.AddTurn(entity.NewTurn("turn-1", 1))

	return game
}

// firstPick is a deterministic entity.Randomizer.
type firstPick struct{}

func (firstPick) IntN(int) int { return 0 }

func (firstPick) Shuffle(int, func(i, j int)) {}

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// When: CreateOrUpdate is called with a started game
	err := gameRepo.CreateOrUpdate(ctx, newTestGame(t))

	// Then: no error should be returned, and game is stored
	require.NoError(t, err)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game
		game := newTestGame(t)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the snapshot matches the saved game
		require.NoError(t, err)
		assert.Equal(t, game.ID, retrievedGame.ID)
		assert.Equal(t, game.Status, retrievedGame.Status)
		assert.Len(t, retrievedGame.Players, 3)
		assert.Len(t, retrievedGame.Turns, 1)
		assert.Equal(t, game.Moderator().ID, retrievedGame.Moderator().ID)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: a not found error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

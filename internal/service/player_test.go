package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
)

var errRedisDown = errors.New("redis down")

func TestPlayerService_GetOrCreatePlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a new player when id is empty", func(t *testing.T) {
		// Given: an empty repository
		repo := new(MockPlayerRepo)
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Player")).Return(nil).Once()

		// When: connecting without an id
		player, err := NewPlayerService(repo).GetOrCreatePlayer(ctx, "", "alice")

		// Then: a fresh identity is stored
		require.NoError(t, err)
		assert.NotEmpty(t, player.ID)
		assert.Equal(t, "alice", player.Username)
		repo.AssertExpectations(t)
	})

	t.Run("Returns the stored player", func(t *testing.T) {
		repo := new(MockPlayerRepo)
		existing := &entity.Player{ID: "p1", Username: "alice"}
		repo.On("GetByID", mock.Anything, "p1").Return(existing, nil).Once()

		player, err := NewPlayerService(repo).GetOrCreatePlayer(ctx, "p1", "")

		require.NoError(t, err)
		assert.Equal(t, existing, player)
		repo.AssertExpectations(t)
	})

	t.Run("Renames a stored player", func(t *testing.T) {
		repo := new(MockPlayerRepo)
		repo.On("GetByID", mock.Anything, "p1").Return(&entity.Player{ID: "p1", Username: "alice"}, nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, &entity.Player{ID: "p1", Username: "bob"}).Return(nil).Once()

		player, err := NewPlayerService(repo).GetOrCreatePlayer(ctx, "p1", "bob")

		require.NoError(t, err)
		assert.Equal(t, "bob", player.Username)
		repo.AssertExpectations(t)
	})

	t.Run("Registers an unknown id", func(t *testing.T) {
		repo := new(MockPlayerRepo)
		repo.On("GetByID", mock.Anything, "p9").Return(nil, apperror.ErrPlayerNotFound).Once()
		repo.On("CreateOrUpdate", mock.Anything, &entity.Player{ID: "p9", Username: "zoe"}).Return(nil).Once()

		player, err := NewPlayerService(repo).GetOrCreatePlayer(ctx, "p9", "zoe")

		require.NoError(t, err)
		assert.Equal(t, "p9", player.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Requires a username for new players", func(t *testing.T) {
		repo := new(MockPlayerRepo)

		_, err := NewPlayerService(repo).GetOrCreatePlayer(ctx, "", "")

		require.ErrorIs(t, err, apperror.ErrInvalidPayload)
	})

	t.Run("Propagates storage failures", func(t *testing.T) {
		repo := new(MockPlayerRepo)
		repo.On("GetByID", mock.Anything, "p1").Return(nil, errRedisDown).Once()

		_, err := NewPlayerService(repo).GetOrCreatePlayer(ctx, "p1", "alice")

		require.ErrorIs(t, err, errRedisDown)
	})
}

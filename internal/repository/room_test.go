package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
	"github.com/rocketscienceinc/undercover-backend/testing/suite"
)

func TestRoomRepository(t *testing.T) {
	t.Run("Stores and finds a room by both ids", func(t *testing.T) {
		ctx, st := suite.New(t)

		roomRepo := NewRoomRepository(st.Storage)

		// Given: a stored room with a reserved public id
		room := entity.NewRoom("room-1", "AB12C", "p1", entity.RoomStatusOnline, "1234")
		require.NoError(t, roomRepo.CreateOrUpdate(ctx, room))

		ok, err := roomRepo.ReservePublicID(ctx, room.PublicID, room.ID)
		require.NoError(t, err)
		require.True(t, ok)

		// When: looking it up
		byID, err := roomRepo.GetByID(ctx, room.ID)
		require.NoError(t, err)

		byPublicID, err := roomRepo.GetByPublicID(ctx, room.PublicID)
		require.NoError(t, err)

		// Then: both lookups return the same room
		assert.Equal(t, room.OwnerID, byID.OwnerID)
		assert.Equal(t, room.ID, byPublicID.ID)
		assert.True(t, byPublicID.IsActive())
	})

	t.Run("Public id can only be reserved once", func(t *testing.T) {
		ctx, st := suite.New(t)

		roomRepo := NewRoomRepository(st.Storage)

		ok, err := roomRepo.ReservePublicID(ctx, "AB12C", "room-1")
		require.NoError(t, err)
		require.True(t, ok)

		// When: a second room asks for the same code
		ok, err = roomRepo.ReservePublicID(ctx, "AB12C", "room-2")

		// Then: the reservation is refused
		require.NoError(t, err)
		assert.False(t, ok)

		// And: releasing it frees the code
		require.NoError(t, roomRepo.ReleasePublicID(ctx, "AB12C"))

		ok, err = roomRepo.ReservePublicID(ctx, "AB12C", "room-2")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Unknown rooms are not found", func(t *testing.T) {
		ctx, st := suite.New(t)

		roomRepo := NewRoomRepository(st.Storage)

		_, err := roomRepo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)

		_, err = roomRepo.GetByPublicID(ctx, "ZZZZZ")
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
	"github.com/rocketscienceinc/undercover-backend/testing/suite"
)

func TestWordRepository_GetRandomPair(t *testing.T) {
	t.Run("Returns a seeded pair of two different words", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		wordRepo := NewWordRepository(db.Connection)

		// When: asking for a random pair
		pair, err := wordRepo.GetRandomPair(ctx)

		// Then: the pair is valid
		require.NoError(t, err)
		require.NoError(t, pair.Validate())
		assert.NotEmpty(t, pair.ID)
	})

	t.Run("Empty catalogue", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		// Given: a catalogue without pairs
		_, err := db.Connection.ExecContext(ctx, `DELETE FROM term_pairs`)
		require.NoError(t, err)

		wordRepo := NewWordRepository(db.Connection)

		// When: asking for a random pair
		_, err = wordRepo.GetRandomPair(ctx)

		// Then: the catalogue reports it is empty
		require.ErrorIs(t, err, apperror.ErrEmptyCatalogue)
	})
}

func TestWordRepository_CreatePair(t *testing.T) {
	t.Run("Stores new words and reuses existing ones", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		wordRepo := NewWordRepository(db.Connection)

		// When: pairing a seeded word with a new one
		pair, err := wordRepo.CreatePair(ctx,
			entity.Word{Word: "cat"},
			entity.Word{Word: "tiger", Category: "animals", ShortDescription: "A large striped cat"})

		// Then: the pair is stored and the new word can be found
		require.NoError(t, err)
		assert.Equal(t, "cat", pair.First)
		assert.Equal(t, "tiger", pair.Second)

		word, err := wordRepo.GetWord(ctx, "tiger")
		require.NoError(t, err)
		assert.Equal(t, "animals", word.Category)
	})

	t.Run("Rejects identical words", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		wordRepo := NewWordRepository(db.Connection)

		_, err := wordRepo.CreatePair(ctx, entity.Word{Word: "cat"}, entity.Word{Word: "cat"})

		require.ErrorIs(t, err, apperror.ErrInvalidPayload)
	})

	t.Run("Unknown word", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		_, err := NewWordRepository(db.Connection).GetWord(ctx, "nope")

		require.ErrorIs(t, err, apperror.ErrWordNotFound)
	})
}

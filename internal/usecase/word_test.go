package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
)

func TestWordUseCase_GetWord(t *testing.T) {
	t.Run("Looks words up in their stored form", func(t *testing.T) {
		words := new(MockWordStore)
		words.On("GetWord", mock.Anything, "cat").Return(&entity.Word{ID: "1", Word: "cat", Category: "animals"}, nil).Once()

		word, err := NewWordUseCase(words).GetWord(context.Background(), "  Cat ")

		require.NoError(t, err)
		assert.Equal(t, "animals", word.Category)
		words.AssertExpectations(t)
	})

	t.Run("Unknown words are not found", func(t *testing.T) {
		words := new(MockWordStore)
		words.On("GetWord", mock.Anything, "unicorn").Return(nil, apperror.ErrWordNotFound).Once()

		_, err := NewWordUseCase(words).GetWord(context.Background(), "unicorn")

		require.ErrorIs(t, err, apperror.ErrWordNotFound)
	})
}

func TestWordUseCase_AddPair(t *testing.T) {
	t.Run("Stores a normalized pair", func(t *testing.T) {
		// Given: an empty store that accepts the pair
		words := new(MockWordStore)
		words.On("CreatePair", mock.Anything, entity.Word{Word: "lion", Category: "animals"}, entity.Word{Word: "tiger"}).
			Return(entity.WordPair{ID: "8", First: "lion", Second: "tiger"}, nil).Once()

		// When: adding words with stray case and spaces
		pair, err := NewWordUseCase(words).AddPair(context.Background(),
			entity.Word{Word: " Lion", Category: "animals"}, entity.Word{Word: "TIGER "})

		// Then: the pair is stored in lower case
		require.NoError(t, err)
		assert.Equal(t, "8", pair.ID)
		words.AssertExpectations(t)
	})

	t.Run("Rejects identical or empty words", func(t *testing.T) {
		words := new(MockWordStore)
		useCase := NewWordUseCase(words)

		_, err := useCase.AddPair(context.Background(), entity.Word{Word: "Cat"}, entity.Word{Word: "cat "})
		require.ErrorIs(t, err, apperror.ErrInvalidPayload)

		_, err = useCase.AddPair(context.Background(), entity.Word{Word: ""}, entity.Word{Word: "dog"})
		require.ErrorIs(t, err, apperror.ErrInvalidPayload)

		words.AssertNotCalled(t, "CreatePair", mock.Anything, mock.Anything, mock.Anything)
	})
}

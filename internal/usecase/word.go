package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
)

type WordUseCase interface {
	GetWord(ctx context.Context, word string) (*entity.Word, error)
	// AddPair extends the catalogue with a new civilian/undercover pair. Known words are reused as stored.
	AddPair(ctx context.Context, first, second entity.Word) (entity.WordPair, error)
}

type wordStore interface {
	GetWord(ctx context.Context, word string) (*entity.Word, error)
	CreatePair(ctx context.Context, first, second entity.Word) (entity.WordPair, error)
}

type wordUseCase struct {
	words wordStore
}

func NewWordUseCase(words wordStore) WordUseCase {
	return &wordUseCase{
		words: words,
	}
}

func (that *wordUseCase) GetWord(ctx context.Context, word string) (*entity.Word, error) {
	found, err := that.words.GetWord(ctx, normalizeWord(word))
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}

	return found, nil
}

func (that *wordUseCase) AddPair(ctx context.Context, first, second entity.Word) (entity.WordPair, error) {
	first.Word, second.Word = normalizeWord(first.Word), normalizeWord(second.Word)

	if err := (entity.WordPair{First: first.Word, Second: second.Word}).Validate(); err != nil {
		return entity.WordPair{}, fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	pair, err := that.words.CreatePair(ctx, first, second)
	if err != nil {
		return entity.WordPair{}, fmt.Errorf("failed to add word pair: %w", err)
	}

	return pair, nil
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

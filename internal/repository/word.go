package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
)

// WordRepository is the catalogue of words and civilian/undercover term pairs.
type WordRepository interface {
	GetRandomPair(ctx context.Context) (entity.WordPair, error)
	GetWord(ctx context.Context, word string) (*entity.Word, error)
	CreatePair(ctx context.Context, first, second entity.Word) (entity.WordPair, error)
}

type wordRepository struct {
	conn *sql.DB
}

func NewWordRepository(conn *sql.DB) WordRepository {
	return &wordRepository{
		conn: conn,
	}
}

func (that *wordRepository) GetRandomPair(ctx context.Context) (entity.WordPair, error) {
	query := `
		SELECT p.id, f.word, s.word
		FROM term_pairs p
		JOIN words f ON f.id = p.first_word_id
		JOIN words s ON s.id = p.second_word_id
		ORDER BY RANDOM()
		LIMIT 1`

	var (
		pairID int64
		pair   entity.WordPair
	)

	err := that.conn.QueryRowContext(ctx, query).Scan(&pairID, &pair.First, &pair.Second)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.WordPair{}, apperror.ErrEmptyCatalogue
	}
	if err != nil {
		return entity.WordPair{}, fmt.Errorf("can't get random term pair: %w", err)
	}

	pair.ID = strconv.FormatInt(pairID, 10)

	return pair, nil
}

func (that *wordRepository) GetWord(ctx context.Context, word string) (*entity.Word, error) {
	query := `SELECT id, word, category, short_description, long_description FROM words WHERE word = ?`

	var (
		id     int64
		result entity.Word
	)

	err := that.conn.QueryRowContext(ctx, query, word).
		Scan(&id, &result.Word, &result.Category, &result.ShortDescription, &result.LongDescription)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrWordNotFound, word)
	}
	if err != nil {
		return nil, fmt.Errorf("can't find word: %w", err)
	}

	result.ID = strconv.FormatInt(id, 10)

	return &result, nil
}

// CreatePair stores both words if missing and links them as a new term pair.
func (that *wordRepository) CreatePair(ctx context.Context, first, second entity.Word) (entity.WordPair, error) {
	pair := entity.WordPair{First: first.Word, Second: second.Word}
	if err := pair.Validate(); err != nil {
		return entity.WordPair{}, fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return entity.WordPair{}, fmt.Errorf("can't begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	firstID, err := upsertWord(ctx, tx, first)
	if err != nil {
		return entity.WordPair{}, err
	}

	secondID, err := upsertWord(ctx, tx, second)
	if err != nil {
		return entity.WordPair{}, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO term_pairs (first_word_id, second_word_id) VALUES (?, ?)`, firstID, secondID)
	if err != nil {
		return entity.WordPair{}, fmt.Errorf("can't save term pair: %w", err)
	}

	pairID, err := res.LastInsertId()
	if err != nil {
		return entity.WordPair{}, fmt.Errorf("can't read term pair id: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return entity.WordPair{}, fmt.Errorf("can't commit term pair: %w", err)
	}

	pair.ID = strconv.FormatInt(pairID, 10)

	return pair, nil
}

func upsertWord(ctx context.Context, tx *sql.Tx, word entity.Word) (int64, error) {
	query := `
		INSERT INTO words (word, category, short_description, long_description) VALUES (?, ?, ?, ?)
		ON CONFLICT (word) DO NOTHING`

	if _, err := tx.ExecContext(ctx, query, word.Word, word.Category, word.ShortDescription, word.LongDescription); err != nil {
		return 0, fmt.Errorf("can't save word %q: %w", word.Word, err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM words WHERE word = ?`, word.Word).Scan(&id); err != nil {
		return 0, fmt.Errorf("can't find word %q: %w", word.Word, err)
	}

	return id, nil
}

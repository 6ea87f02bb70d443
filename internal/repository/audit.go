package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/undercover-backend/internal/entity"
)

const (
	EventStartTurn        = "start_turn"
	EventPlayerVoted      = "player_voted"
	EventPlayerEliminated = "player_eliminated"

	ActivityJoinRoom  = "join_room"
	ActivityLeaveRoom = "leave_room"
)

// AuditRepository is the append-only log of games, turns, turn events and room activities.
type AuditRepository interface {
	// CreateGame stores the game record together with its turns, each with a start_turn event.
	CreateGame(ctx context.Context, game *entity.Game) error
	CreateTurn(ctx context.Context, gameID string, turn *entity.Turn) error
	RecordEvent(ctx context.Context, event entity.AuditEvent) error
	RecordActivity(ctx context.Context, activity entity.Activity) error
	FinishGame(ctx context.Context, gameID string, winner entity.Role) error
	ListEvents(ctx context.Context, gameID string) ([]entity.AuditEvent, error)
}

type auditRepository struct {
	conn *sql.DB
}

func NewAuditRepository(conn *sql.DB) AuditRepository {
	return &auditRepository{
		conn: conn,
	}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (that *auditRepository) CreateGame(ctx context.Context, game *entity.Game) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO games (id, room_id, civilian_word, undercover_word, player_count, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, query,
		game.ID, game.RoomID, game.CivilianWord, game.UndercoverWord, len(game.Players), game.Status, game.CreatedAt)
	if err != nil {
		return fmt.Errorf("can't save game %s: %w", game.ID, err)
	}

	for _, turn := range game.Turns {
		if err = insertTurn(ctx, tx, game.ID, turn); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit game %s: %w", game.ID, err)
	}

	return nil
}

func (that *auditRepository) CreateTurn(ctx context.Context, gameID string, turn *entity.Turn) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err = insertTurn(ctx, tx, gameID, turn); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit turn %s: %w", turn.ID, err)
	}

	return nil
}

func insertTurn(ctx context.Context, tx execer, gameID string, turn *entity.Turn) error {
	query := `INSERT INTO turns (id, game_id, number, created_at) VALUES (?, ?, ?, ?)`

	if _, err := tx.ExecContext(ctx, query, turn.ID, gameID, turn.Number, turn.CreatedAt); err != nil {
		return fmt.Errorf("can't save turn %d of game %s: %w", turn.Number, gameID, err)
	}

	return insertEvent(ctx, tx, entity.AuditEvent{
		Name:      EventStartTurn,
		GameID:    gameID,
		TurnID:    turn.ID,
		Data:      map[string]any{"number": turn.Number},
		Timestamp: turn.CreatedAt,
	})
}

func (that *auditRepository) RecordEvent(ctx context.Context, event entity.AuditEvent) error {
	return insertEvent(ctx, that.conn, event)
}

func insertEvent(ctx context.Context, tx execer, event entity.AuditEvent) error {
	data, err := marshalData(event.Data)
	if err != nil {
		return err
	}

	var turnID sql.NullString
	if event.TurnID != "" {
		turnID = sql.NullString{String: event.TurnID, Valid: true}
	}

	query := `INSERT INTO events (name, game_id, turn_id, user_id, data, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	if _, err = tx.ExecContext(ctx, query, event.Name, event.GameID, turnID, event.UserID, data, stamp(event.Timestamp)); err != nil {
		return fmt.Errorf("can't save %s event of game %s: %w", event.Name, event.GameID, err)
	}

	return nil
}

func (that *auditRepository) RecordActivity(ctx context.Context, activity entity.Activity) error {
	data, err := marshalData(activity.Data)
	if err != nil {
		return err
	}

	query := `INSERT INTO activities (name, room_id, user_id, data, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err = that.conn.ExecContext(ctx, query,
		activity.Name, activity.RoomID, activity.UserID, data, stamp(activity.Timestamp))
	if err != nil {
		return fmt.Errorf("can't save %s activity of room %s: %w", activity.Name, activity.RoomID, err)
	}

	return nil
}

func (that *auditRepository) FinishGame(ctx context.Context, gameID string, winner entity.Role) error {
	query := `UPDATE games SET status = ?, winner = ?, finished_at = ? WHERE id = ?`

	if _, err := that.conn.ExecContext(ctx, query, entity.GameStatusFinished, winner, time.Now().UTC(), gameID); err != nil {
		return fmt.Errorf("can't finish game %s: %w", gameID, err)
	}

	return nil
}

func (that *auditRepository) ListEvents(ctx context.Context, gameID string) ([]entity.AuditEvent, error) {
	query := `
		SELECT name, game_id, COALESCE(turn_id, ''), user_id, data, created_at
		FROM events WHERE game_id = ? ORDER BY id`

	rows, err := that.conn.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("can't list events of game %s: %w", gameID, err)
	}
	defer rows.Close()

	var events []entity.AuditEvent
	for rows.Next() {
		var (
			event entity.AuditEvent
			data  string
		)

		if err = rows.Scan(&event.Name, &event.GameID, &event.TurnID, &event.UserID, &data, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("can't scan event: %w", err)
		}

		if err = json.Unmarshal([]byte(data), &event.Data); err != nil {
			return nil, fmt.Errorf("can't decode event data: %w", err)
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate events: %w", err)
	}

	return events, nil
}

func marshalData(data map[string]any) (string, error) {
	if data == nil {
		return "{}", nil
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("can't encode audit data: %w", err)
	}

	return string(encoded), nil
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}

	return t
}

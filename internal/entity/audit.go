package entity

import "time"

// AuditEvent is one append-only record about a game, optionally tied to a turn.
type AuditEvent struct {
	Name      string         `json:"name"`
	GameID    string         `json:"game_id"`
	TurnID    string         `json:"turn_id,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

// Activity is one append-only record about a room.
type Activity struct {
	Name      string         `json:"name"`
	RoomID    string         `json:"room_id"`
	UserID    string         `json:"user_id"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/undercover-backend/internal/event"
)

const (
	actionConnect      = "connect"
	actionCreateRoom   = "create_room"
	actionJoinRoom     = "join_room"
	actionLeaveRoom    = "leave_room"
	actionStartGame    = "start_undercover_game"
	actionStartNewTurn = "start_new_turn"
	actionVote         = "vote_for_a_player"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type connectPayload struct {
	Player *struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"player"`
}

type createRoomPayload struct {
	OwnerID  string `json:"owner_id"`
	Status   string `json:"status"`
	Password string `json:"password"`
}

type joinRoomPayload struct {
	UserID       string `json:"user_id"`
	PublicRoomID string `json:"public_room_id"`
	Password     string `json:"password"`
}

type leaveRoomPayload struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id"`
}

type startGamePayload struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id"`
}

type startNewTurnPayload struct {
	RoomID string `json:"room_id"`
	GameID string `json:"game_id"`
	UserID string `json:"user_id"`
}

type votePayload struct {
	RoomID      string `json:"room_id"`
	GameID      string `json:"game_id"`
	UserID      string `json:"user_id"`
	VotedUserID string `json:"voted_user_id"`
}

// encode wraps an event into the wire message named after it.
func encode(ev event.Event) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", ev.Name(), err)
	}

	data, err := json.Marshal(Message{Action: ev.Name(), Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s message: %w", ev.Name(), err)
	}

	return data, nil
}

package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
)

const (
	RoomStatusOnline  = "online"
	RoomStatusOffline = "offline"

	RoomTypeActive   = "active"
	RoomTypeInactive = "inactive"

	roomPasswordLength = 4
)

type Room struct {
	ID        string    `json:"id"`
	PublicID  string    `json:"public_id"`
	OwnerID   string    `json:"owner_id"`
	Password  string    `json:"password"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRoom(id, publicID, ownerID, status, password string) *Room {
	return &Room{
		ID:        id,
		PublicID:  publicID,
		OwnerID:   ownerID,
		Password:  password,
		Status:    status,
		Type:      RoomTypeActive,
		CreatedAt: time.Now().UTC(),
	}
}

func (that *Room) IsActive() bool {
	return that.Type == RoomTypeActive
}

func (that *Room) IsOwner(playerID string) bool {
	return that.OwnerID == playerID
}

func (that *Room) Deactivate() {
	that.Type = RoomTypeInactive
}

func (that *Room) CheckPassword(password string) error {
	if that.Password != password {
		return fmt.Errorf("%w: room %s", apperror.ErrWrongPassword, that.PublicID)
	}

	return nil
}

// ValidatePassword checks the room password format: exactly four digits.
func ValidatePassword(password string) error {
	if len(password) != roomPasswordLength {
		return apperror.ErrInvalidPassword
	}

	for _, r := range password {
		if r < '0' || r > '9' {
			return apperror.ErrInvalidPassword
		}
	}

	return nil
}

func ValidateRoomStatus(status string) error {
	switch status {
	case RoomStatusOnline, RoomStatusOffline:
		return nil
	default:
		return fmt.Errorf("%w: unknown room status %q", apperror.ErrInvalidPayload, status)
	}
}

// RoomSnapshot is a copy of the players currently joined to a room.
type RoomSnapshot struct {
	RoomID   string   `json:"room_id"`
	PublicID string   `json:"public_id"`
	OwnerID  string   `json:"owner_id"`
	Active   bool     `json:"active"`
	Players  []Player `json:"players"`
}

func (that RoomSnapshot) Has(playerID string) bool {
	for _, player := range that.Players {
		if player.ID == playerID {
			return true
		}
	}

	return false
}

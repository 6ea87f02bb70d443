package entity

type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	// ConnID identifies the live connection of the player; it is never persisted.
	ConnID string `json:"-"`
}

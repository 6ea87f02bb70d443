package service

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
)

type session struct {
	mu   sync.Mutex
	game *entity.Game
}

// SessionStore holds every live game session. Each session has its own lock; mutations of one
// game never wait on another.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	// unfinished maps a room id to the id of its game that is not finished yet.
	unfinished map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions:   make(map[string]*session),
		unfinished: make(map[string]string),
	}
}

// EnsureIdle fails when the room already has a game that is not finished.
func (that *SessionStore) EnsureIdle(roomID string) error {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if gameID, ok := that.unfinished[roomID]; ok {
		return fmt.Errorf("%w: game %s in room %s", apperror.ErrGameInProgress, gameID, roomID)
	}

	return nil
}

func (that *SessionStore) Register(game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if gameID, ok := that.unfinished[game.RoomID]; ok {
		return fmt.Errorf("%w: game %s in room %s", apperror.ErrGameInProgress, gameID, game.RoomID)
	}

	that.sessions[game.ID] = &session{game: game}
	if !game.IsFinished() {
		that.unfinished[game.RoomID] = game.ID
	}

	return nil
}

func (that *SessionStore) get(gameID string) (*session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	s, ok := that.sessions[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, gameID)
	}

	return s, nil
}

// Update runs fn under the session lock. A game that fn leaves finished frees its room for a new one.
func (that *SessionStore) Update(gameID string, fn func(*entity.Game) error) error {
	s, err := that.get(gameID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = fn(s.game)

	if s.game.IsFinished() {
		that.mu.Lock()
		if that.unfinished[s.game.RoomID] == s.game.ID {
			delete(that.unfinished, s.game.RoomID)
		}
		that.mu.Unlock()
	}

	return err
}

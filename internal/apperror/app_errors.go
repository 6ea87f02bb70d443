package apperror

import (
	"errors"
	"net/http"
)

// Kind groups application errors by how a client should react to them.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindPrecondition Kind = "precondition"
	KindCapacity     Kind = "capacity"
	KindValidation   Kind = "validation"
	KindInternal     Kind = "internal"
)

// Error is a recoverable application error reported back to the client that triggered it.
// Sentinels are compared by Name, so they may be wrapped freely with fmt.Errorf("%w").
type Error struct {
	Kind    Kind
	Name    string
	Message string
}

func New(kind Kind, name, message string) *Error {
	return &Error{Kind: kind, Name: name, Message: message}
}

func (that *Error) Error() string {
	return that.Message
}

func (that *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}

	return other.Name == that.Name
}

// StatusCode maps the error kind onto the closest HTTP status.
func (that *Error) StatusCode() int {
	switch that.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindPrecondition:
		return http.StatusForbidden
	case KindCapacity:
		return http.StatusConflict
	case KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrRoomNotFound   = New(KindNotFound, "RoomNotFoundError", "room not found")
	ErrGameNotFound   = New(KindNotFound, "GameNotFoundError", "game not found")
	ErrPlayerNotFound = New(KindNotFound, "UserNotFoundError", "player not found")
	ErrWordNotFound   = New(KindNotFound, "WordNotFoundError", "word not found")
	ErrEmptyCatalogue = New(KindNotFound, "TermPairNotFoundError", "no term pair available")
	ErrNoTurn         = New(KindNotFound, "NoTurnInsideGameError", "no turn inside game")

	ErrWrongPassword   = New(KindPrecondition, "WrongRoomPasswordError", "room password is incorrect")
	ErrAlreadyInRoom   = New(KindPrecondition, "UserAlreadyInRoomError", "player is already in a room")
	ErrNotInRoom       = New(KindPrecondition, "UserNotInRoomError", "player is not in the room")
	ErrRoomInactive    = New(KindPrecondition, "ErrorRoomIsNotActive", "room is not active")
	ErrDeadVoter       = New(KindPrecondition, "CantVoteBecauseYoureDeadError", "dead players can't vote")
	ErrDeadTarget      = New(KindPrecondition, "CantVoteForDeadPersonError", "can't vote for a dead player")
	ErrSelfVote        = New(KindPrecondition, "CantVoteForYourselfError", "can't vote for yourself")
	ErrPlayerNotInGame = New(KindPrecondition, "PlayerNotInGameError", "player is not part of the game")
	ErrGameFinished    = New(KindPrecondition, "GameFinishedError", "game is already finished")
	ErrGameInProgress  = New(KindPrecondition, "GameInProgressError", "a game is already in progress in this room")
	ErrGameNotFinished = New(KindPrecondition, "GameNotFinishedError", "game history is available once the game is over")
	ErrTurnSealed      = New(KindPrecondition, "TurnSealedError", "votes for this turn are closed")
	ErrTurnInProgress  = New(KindPrecondition, "TurnInProgressError", "current turn has not been tallied yet")
	ErrNotConnected    = New(KindPrecondition, "UserNotConnectedError", "connect before sending other actions")
	ErrForeignPlayer   = New(KindPrecondition, "ForeignPlayerError", "a connection can only act for its own player")

	ErrInsufficientPlayers = New(KindCapacity, "InsufficientPlayersError", "not enough players to assign roles")
	ErrTooManyRequests     = New(KindCapacity, "TooManyRequestsError", "too many requests")

	ErrInvalidPayload  = New(KindValidation, "ValidationError", "invalid payload")
	ErrInvalidPassword = New(KindValidation, "PasswordValidationError", "password must be exactly 4 digits")
	ErrUnknownAction   = New(KindValidation, "UnknownActionError", "unknown action")

	ErrInternal = New(KindInternal, "InternalError", "internal error")
)

// From extracts the application error carried by err. Anything that is not an *Error is reported as ErrInternal.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return ErrInternal, false
}

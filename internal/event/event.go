package event

import (
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
)

// Event is a server to client message. Name is the action sent on the wire.
type Event interface {
	Name() string
}

const (
	NameConnected         = "connected"
	NameRoomCreated       = "new_room_created"
	NameRoomStatus        = "room_status"
	NameUserJoined        = "new_user_joined"
	NameYouLeft           = "you_left"
	NameUserLeft          = "user_left"
	NameRoomClosed        = "room_closed"
	NameRoleAssigned      = "role_assigned"
	NameGameStarted       = "game_started"
	NameTurnStarted       = "turn_started"
	NameVoteCasted        = "vote_casted"
	NameWaitingOtherVotes = "waiting_other_votes"
	NamePlayerEliminated  = "player_eliminated"
	NameYouDied           = "you_died"
	NameGameOver          = "game_over"
	NameError             = "error"
)

type TargetKind int

const (
	TargetConn TargetKind = iota + 1
	TargetRoom
	TargetPlayers
)

// Target addresses one connection, every connection joined to a room, or the live connections
// of a fixed set of players.
type Target struct {
	Kind TargetKind
	ID   string
	// PlayerIDs is set for TargetPlayers.
	PlayerIDs []string
}

func ToConn(connID string) Target {
	return Target{Kind: TargetConn, ID: connID}
}

func ToRoom(roomID string) Target {
	return Target{Kind: TargetRoom, ID: roomID}
}

func ToPlayers(playerIDs ...string) Target {
	return Target{Kind: TargetPlayers, PlayerIDs: playerIDs}
}

// ToGame addresses every participant of a game, eliminated or not, whether or not they are still in the room.
func ToGame(game *entity.Game) Target {
	ids := make([]string, 0, len(game.Players))
	for _, player := range game.Players {
		ids = append(ids, player.ID)
	}

	return ToPlayers(ids...)
}

// Outbound is an event together with its recipients.
type Outbound struct {
	Target Target
	Event  Event
}

// PlayerRef is the public view of a player: never a role or a word.
type PlayerRef struct {
	ID       string `json:"user_id"`
	Username string `json:"username"`
}

func RefOf(player entity.Player) PlayerRef {
	return PlayerRef{ID: player.ID, Username: player.Username}
}

func RefOfGamePlayer(player *entity.GamePlayer) PlayerRef {
	return PlayerRef{ID: player.ID, Username: player.Username}
}

// RoomView is a room as shown to the players in it. The password is never included.
type RoomView struct {
	ID       string      `json:"id"`
	PublicID string      `json:"public_id"`
	OwnerID  string      `json:"owner_id"`
	Active   bool        `json:"is_active"`
	Players  []PlayerRef `json:"players"`
}

func ViewOf(snapshot entity.RoomSnapshot) RoomView {
	players := make([]PlayerRef, 0, len(snapshot.Players))
	for _, player := range snapshot.Players {
		players = append(players, RefOf(player))
	}

	return RoomView{
		ID:       snapshot.RoomID,
		PublicID: snapshot.PublicID,
		OwnerID:  snapshot.OwnerID,
		Active:   snapshot.Active,
		Players:  players,
	}
}

type Connected struct {
	Player PlayerRef `json:"player"`
}

func (Connected) Name() string { return NameConnected }

type RoomCreated struct {
	Room     RoomView `json:"room"`
	Password string   `json:"password"`
}

func (RoomCreated) Name() string { return NameRoomCreated }

type RoomStatus struct {
	Room RoomView `json:"room"`
}

func (RoomStatus) Name() string { return NameRoomStatus }

type UserJoined struct {
	RoomID string    `json:"room_id"`
	User   PlayerRef `json:"user"`
}

func (UserJoined) Name() string { return NameUserJoined }

type YouLeft struct {
	RoomID string `json:"room_id"`
}

func (YouLeft) Name() string { return NameYouLeft }

type UserLeft struct {
	RoomID string    `json:"room_id"`
	User   PlayerRef `json:"user"`
}

func (UserLeft) Name() string { return NameUserLeft }

type RoomClosed struct {
	RoomID string `json:"room_id"`
}

func (RoomClosed) Name() string { return NameRoomClosed }

// RoleAssigned is sent privately to each participant. Mr. White gets no word and MustGuess set.
type RoleAssigned struct {
	GameID    string      `json:"game_id"`
	Role      entity.Role `json:"role"`
	Word      string      `json:"word,omitempty"`
	MustGuess bool        `json:"must_guess,omitempty"`
	Message   string      `json:"message"`
}

func (RoleAssigned) Name() string { return NameRoleAssigned }

type GameStarted struct {
	GameID    string      `json:"game_id"`
	RoomID    string      `json:"room_id"`
	TurnID    string      `json:"turn_id"`
	Message   string      `json:"message"`
	Players   []PlayerRef `json:"players"`
	Moderator PlayerRef   `json:"moderator"`
}

func (GameStarted) Name() string { return NameGameStarted }

type TurnStarted struct {
	GameID string `json:"game_id"`
	TurnID string `json:"turn_id"`
	Number int    `json:"number"`
}

func (TurnStarted) Name() string { return NameTurnStarted }

type VoteCasted struct {
	GameID      string `json:"game_id"`
	VotedUserID string `json:"voted_user_id"`
	Message     string `json:"message"`
}

func (VoteCasted) Name() string { return NameVoteCasted }

type WaitingOtherVotes struct {
	GameID           string      `json:"game_id"`
	PlayersThatVoted []PlayerRef `json:"players_that_voted"`
}

func (WaitingOtherVotes) Name() string { return NameWaitingOtherVotes }

type PlayerEliminated struct {
	GameID string      `json:"game_id"`
	Player PlayerRef   `json:"eliminated_player"`
	Role   entity.Role `json:"role"`
	Votes  int         `json:"votes"`
}

func (PlayerEliminated) Name() string { return NamePlayerEliminated }

type YouDied struct {
	GameID  string `json:"game_id"`
	Message string `json:"message"`
}

func (YouDied) Name() string { return NameYouDied }

type GameOver struct {
	GameID string      `json:"game_id"`
	Winner entity.Role `json:"winner"`
	// CivilianWord and UndercoverWord are revealed once the game ends.
	CivilianWord   string `json:"civilian_word"`
	UndercoverWord string `json:"undercover_word"`
}

func (GameOver) Name() string { return NameGameOver }

type Error struct {
	ErrorName  string `json:"name"`
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func (Error) Name() string { return NameError }

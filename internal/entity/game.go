package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
)

const (
	GameStatusForming    = "forming"
	GameStatusInProgress = "in_progress"
	GameStatusFinished   = "finished"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// GamePlayer is the role entry of one participant for the lifetime of a game.
type GamePlayer struct {
	ID        string `json:"user_id"`
	Username  string `json:"username"`
	ConnID    string `json:"-"`
	Role      Role   `json:"role"`
	Alive     bool   `json:"is_alive"`
	Moderator bool   `json:"is_moderator"`
}

type Turn struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	// Votes maps voter id to voted-for id.
	Votes map[string]string `json:"votes"`
	// Voters keeps the order in which players first voted.
	Voters             []string  `json:"users_that_voted"`
	EliminatedPlayerID string    `json:"eliminated_player,omitempty"`
	Sealed             bool      `json:"sealed"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewTurn(id string, number int) *Turn {
	return &Turn{
		ID:        id,
		Number:    number,
		Votes:     make(map[string]string),
		CreatedAt: time.Now().UTC(),
	}
}

type Game struct {
	ID                string        `json:"id"`
	RoomID            string        `json:"room_id"`
	CivilianWord      string        `json:"civilian_word"`
	UndercoverWord    string        `json:"undercover_word"`
	Players           []*GamePlayer `json:"players"`
	Turns             []*Turn       `json:"turns"`
	EliminatedPlayers []*GamePlayer `json:"eliminated_players"`
	Status            string        `json:"status"`
	Winner            Role          `json:"winner,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
}

// NewGame deals roles and words to a frozen copy of the roster. The game stays forming until its first turn is added.
func NewGame(id, roomID string, roster []Player, pair WordPair, rnd Randomizer) (*Game, error) {
	if err := pair.Validate(); err != nil {
		return nil, fmt.Errorf("invalid word pair %s: %w", pair.ID, err)
	}

	players, err := AssignRoles(roster, rnd)
	if err != nil {
		return nil, err
	}

	civilianWord, undercoverWord := pair.Split(rnd)

	return &Game{
		ID:             id,
		RoomID:         roomID,
		CivilianWord:   civilianWord,
		UndercoverWord: undercoverWord,
		Players:        players,
		Status:         GameStatusForming,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func (that *Game) IsForming() bool {
	return that.Status == GameStatusForming
}

func (that *Game) IsInProgress() bool {
	return that.Status == GameStatusInProgress
}

func (that *Game) IsFinished() bool {
	return that.Status == GameStatusFinished
}

func (that *Game) ConfirmInProgress() error {
	switch {
	case that.IsInProgress():
		return nil
	case that.IsFinished():
		return fmt.Errorf("%w: game %s", apperror.ErrGameFinished, that.ID)
	case that.IsForming():
		return fmt.Errorf("%w: game %s", apperror.ErrNoTurn, that.ID)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) Player(id string) (*GamePlayer, error) {
	for _, player := range that.Players {
		if player.ID == id {
			return player, nil
		}
	}

	return nil, fmt.Errorf("%w: player %s in game %s", apperror.ErrPlayerNotInGame, id, that.ID)
}

func (that *Game) Moderator() *GamePlayer {
	for _, player := range that.Players {
		if player.Moderator {
			return player
		}
	}

	return nil
}

// WordFor returns the secret word of a player; Mr. White has none.
func (that *Game) WordFor(player *GamePlayer) string {
	switch player.Role {
	case RoleCivilian:
		return that.CivilianWord
	case RoleUndercover:
		return that.UndercoverWord
	default:
		return ""
	}
}

func (that *Game) AlivePlayers() []*GamePlayer {
	alive := make([]*GamePlayer, 0, len(that.Players))
	for _, player := range that.Players {
		if player.Alive {
			alive = append(alive, player)
		}
	}

	return alive
}

func (that *Game) CountAlive(role Role) int {
	count := 0
	for _, player := range that.Players {
		if player.Alive && player.Role == role {
			count++
		}
	}

	return count
}

func (that *Game) CurrentTurn() (*Turn, error) {
	if len(that.Turns) == 0 {
		return nil, fmt.Errorf("%w: game %s", apperror.ErrNoTurn, that.ID)
	}

	return that.Turns[len(that.Turns)-1], nil
}

// NextTurn builds the turn that AddTurn would append, without touching the game.
func (that *Game) NextTurn(id string) (*Turn, error) {
	if that.IsFinished() {
		return nil, fmt.Errorf("%w: game %s", apperror.ErrGameFinished, that.ID)
	}

	if len(that.Turns) > 0 {
		if current := that.Turns[len(that.Turns)-1]; !current.Sealed {
			return nil, fmt.Errorf("%w: turn %d of game %s", apperror.ErrTurnInProgress, current.Number, that.ID)
		}
	}

	return NewTurn(id, len(that.Turns)+1), nil
}

// AddTurn appends a turn built by NextTurn. Adding the first turn moves the game in progress.
func (that *Game) AddTurn(turn *Turn) {
	that.Turns = append(that.Turns, turn)

	if that.IsForming() {
		that.Status = GameStatusInProgress
	}
}

// VoteResult describes what a single vote caused.
type VoteResult struct {
	Turn   *Turn
	Voter  *GamePlayer
	Target *GamePlayer
	// Tallied is set when the vote completed the turn and an elimination ran.
	Tallied      bool
	Eliminated   *GamePlayer
	VotesAgainst int
	Winner       Role
}

// CastVote records voterID's vote against targetID on the current turn, and runs the
// elimination once every alive player has voted.
func (that *Game) CastVote(voterID, targetID string) (*VoteResult, error) {
	voter, err := that.Player(voterID)
	if err != nil {
		return nil, err
	}

	if !voter.Alive {
		return nil, fmt.Errorf("%w: player %s", apperror.ErrDeadVoter, voterID)
	}

	target, err := that.Player(targetID)
	if err != nil {
		return nil, err
	}

	if !target.Alive {
		return nil, fmt.Errorf("%w: player %s voted for %s", apperror.ErrDeadTarget, voterID, targetID)
	}

	if voter.ID == target.ID {
		return nil, fmt.Errorf("%w: player %s", apperror.ErrSelfVote, voterID)
	}

	if err = that.ConfirmInProgress(); err != nil {
		return nil, err
	}

	turn, err := that.CurrentTurn()
	if err != nil {
		return nil, err
	}

	if turn.Sealed {
		return nil, fmt.Errorf("%w: turn %d of game %s", apperror.ErrTurnSealed, turn.Number, that.ID)
	}

	if _, voted := turn.Votes[voter.ID]; !voted {
		turn.Voters = append(turn.Voters, voter.ID)
	}
	turn.Votes[voter.ID] = target.ID

	result := &VoteResult{Turn: turn, Voter: voter, Target: target}

	if len(turn.Votes) < len(that.AlivePlayers()) {
		return result, nil
	}

	eliminated, votes := that.eliminate(turn)

	result.Tallied = true
	result.Eliminated = eliminated
	result.VotesAgainst = votes
	result.Winner = that.UpdateGameState()

	return result, nil
}

// eliminate seals the turn and kills the most voted alive player.
func (that *Game) eliminate(turn *Turn) (*GamePlayer, int) {
	turn.Sealed = true

	alive := that.AlivePlayers()

	counts := make(map[string]int, len(alive))
	for _, target := range turn.Votes {
		counts[target]++
	}

	maxVotes := 0
	for _, player := range alive {
		maxVotes = max(maxVotes, counts[player.ID])
	}

	candidates := make([]*GamePlayer, 0, len(alive))
	for _, player := range alive {
		if counts[player.ID] == maxVotes {
			candidates = append(candidates, player)
		}
	}

	eliminated := candidates[0]

	// on a tie the moderator's vote decides, otherwise the first candidate in roster order goes
	if len(candidates) > 1 {
		if moderator := that.Moderator(); moderator != nil {
			if choice, voted := turn.Votes[moderator.ID]; voted {
				for _, candidate := range candidates {
					if candidate.ID == choice {
						eliminated = candidate
						break
					}
				}
			}
		}
	}

	eliminated.Alive = false
	turn.EliminatedPlayerID = eliminated.ID
	that.EliminatedPlayers = append(that.EliminatedPlayers, eliminated)

	return eliminated, counts[eliminated.ID]
}

// DetermineWinner returns the winning side, or an empty role while the game goes on.
// Losing the last Mr. White hands the win to the undercovers even with civilians alive.
func (that *Game) DetermineWinner() Role {
	undercovers := that.CountAlive(RoleUndercover)
	civilians := that.CountAlive(RoleCivilian)
	mrWhites := that.CountAlive(RoleMrWhite)

	if undercovers == 0 && mrWhites == 0 {
		return RoleCivilian
	}

	if civilians == 0 || mrWhites == 0 {
		return RoleUndercover
	}

	return ""
}

func (that *Game) UpdateGameState() Role {
	winner := that.DetermineWinner()
	if winner != "" {
		that.Winner = winner
		that.Status = GameStatusFinished
	}

	return winner
}

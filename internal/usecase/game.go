package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
	"github.com/rocketscienceinc/undercover-backend/internal/event"
	"github.com/rocketscienceinc/undercover-backend/internal/pkg"
	"github.com/rocketscienceinc/undercover-backend/internal/repository"
)

const mrWhiteMessage = "You are Mr. White. You have to guess the word."

type GameUseCase interface {
	StartGame(ctx context.Context, roomID, userID string) (*entity.Game, []event.Outbound, error)
	// StartNewTurn opens the next turn. userID must be one of the game's players.
	StartNewTurn(ctx context.Context, roomID, gameID, userID string) ([]event.Outbound, error)
	Vote(ctx context.Context, vote Vote) ([]event.Outbound, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	// GetGameEvents returns the recorded history of a finished game.
	GetGameEvents(ctx context.Context, gameID string) ([]entity.AuditEvent, error)
}

// Vote is one vote_for_a_player request. ConnID receives the acknowledgement.
type Vote struct {
	RoomID   string
	GameID   string
	VoterID  string
	TargetID string
	ConnID   string
}

type rosterLocker interface {
	Snapshot(roomID string) (entity.RoomSnapshot, error)
	WithRoster(roomID string, fn func(entity.RoomSnapshot) error) error
}

type sessionStore interface {
	EnsureIdle(roomID string) error
	Register(game *entity.Game) error
	Update(gameID string, fn func(*entity.Game) error) error
}

type wordCatalogue interface {
	GetRandomPair(ctx context.Context) (entity.WordPair, error)
}

type auditLog interface {
	CreateGame(ctx context.Context, game *entity.Game) error
	CreateTurn(ctx context.Context, gameID string, turn *entity.Turn) error
	RecordEvent(ctx context.Context, event entity.AuditEvent) error
	FinishGame(ctx context.Context, gameID string, winner entity.Role) error
	ListEvents(ctx context.Context, gameID string) ([]entity.AuditEvent, error)
}

type gameService interface {
	SaveGame(ctx context.Context, game *entity.Game) error
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
}

type gameUseCase struct {
	logger *slog.Logger

	presence    rosterLocker
	sessions    sessionStore
	words       wordCatalogue
	audit       auditLog
	gameService gameService
	rnd         entity.Randomizer
}

func NewGameUseCase(
	logger *slog.Logger,
	presence rosterLocker,
	sessions sessionStore,
	words wordCatalogue,
	audit auditLog,
	gameService gameService,
	rnd entity.Randomizer,
) GameUseCase {
	return &gameUseCase{
		logger:      logger.With("component", "game_usecase"),
		presence:    presence,
		sessions:    sessions,
		words:       words,
		audit:       audit,
		gameService: gameService,
		rnd:         rnd,
	}
}

// StartGame deals roles and words to the room's current roster and opens the first turn.
// The room's roster cannot change until the session is registered.
func (that *gameUseCase) StartGame(ctx context.Context, roomID, userID string) (*entity.Game, []event.Outbound, error) {
	current, err := that.presence.Snapshot(roomID)
	if err != nil {
		return nil, nil, err
	}

	// rejected requests never reach the word catalogue. The checks run again under the room lock.
	if err = that.checkStart(current, roomID, userID); err != nil {
		return nil, nil, err
	}

	pair, err := that.words.GetRandomPair(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get word pair: %w", err)
	}

	var (
		game *entity.Game
		turn *entity.Turn
	)

	err = that.presence.WithRoster(roomID, func(snapshot entity.RoomSnapshot) error {
		err := that.checkStart(snapshot, roomID, userID)
		if err != nil {
			return err
		}

		game, err = entity.NewGame(pkg.GenerateID(), roomID, snapshot.Players, pair, that.rnd)
		if err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}

		turn, err = game.NextTurn(pkg.GenerateID())
		if err != nil {
			return fmt.Errorf("failed to open first turn: %w", err)
		}
		game.AddTurn(turn)

		if err = that.audit.CreateGame(ctx, game); err != nil {
			return fmt.Errorf("failed to record game: %w", err)
		}

		if err = that.sessions.Register(game); err != nil {
			return fmt.Errorf("failed to register game: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	that.saveSnapshot(ctx, game)

	return game, startEvents(game, turn), nil
}

func (that *gameUseCase) checkStart(snapshot entity.RoomSnapshot, roomID, userID string) error {
	if !snapshot.Active {
		return fmt.Errorf("%w: %s", apperror.ErrRoomInactive, roomID)
	}

	if !snapshot.Has(userID) {
		return fmt.Errorf("%w: player %s, room %s", apperror.ErrNotInRoom, userID, roomID)
	}

	if err := that.sessions.EnsureIdle(roomID); err != nil {
		return err
	}

	if _, err := entity.CountRoles(len(snapshot.Players)); err != nil {
		return err
	}

	return nil
}

func startEvents(game *entity.Game, turn *entity.Turn) []event.Outbound {
	outbound := make([]event.Outbound, 0, len(game.Players)+1)
	players := make([]event.PlayerRef, 0, len(game.Players))

	for _, player := range game.Players {
		players = append(players, event.RefOfGamePlayer(player))

		assigned := event.RoleAssigned{GameID: game.ID, Role: player.Role}
		if player.Role == entity.RoleMrWhite {
			assigned.MustGuess = true
			assigned.Message = mrWhiteMessage
		} else {
			assigned.Word = game.WordFor(player)
			assigned.Message = fmt.Sprintf("Your secret word is %s.", assigned.Word)
		}

		outbound = append(outbound, event.Outbound{Target: event.ToConn(player.ConnID), Event: assigned})
	}

	moderator := event.RefOfGamePlayer(game.Moderator())

	return append(outbound, event.Outbound{
		Target: event.ToGame(game),
		Event: event.GameStarted{
			GameID:    game.ID,
			RoomID:    game.RoomID,
			TurnID:    turn.ID,
			Message:   fmt.Sprintf("Game started. %s is the moderator.", moderator.Username),
			Players:   players,
			Moderator: moderator,
		},
	})
}

func (that *gameUseCase) StartNewTurn(ctx context.Context, roomID, gameID, userID string) ([]event.Outbound, error) {
	var outbound []event.Outbound

	err := that.sessions.Update(gameID, func(game *entity.Game) error {
		if game.RoomID != roomID {
			return fmt.Errorf("%w: game %s is not in room %s", apperror.ErrGameNotFound, gameID, roomID)
		}

		if _, err := game.Player(userID); err != nil {
			return err
		}

		turn, err := game.NextTurn(pkg.GenerateID())
		if err != nil {
			return err
		}

		if err = that.audit.CreateTurn(ctx, game.ID, turn); err != nil {
			return fmt.Errorf("failed to record turn: %w", err)
		}

		game.AddTurn(turn)
		that.saveSnapshot(ctx, game)

		outbound = []event.Outbound{{
			Target: event.ToGame(game),
			Event:  event.TurnStarted{GameID: game.ID, TurnID: turn.ID, Number: turn.Number},
		}}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return outbound, nil
}

// Vote records a vote and, when it completes the turn, tallies it, eliminates one player
// and checks for a winner. Audit writes after the vote is accepted never undo it.
func (that *gameUseCase) Vote(ctx context.Context, vote Vote) ([]event.Outbound, error) {
	var outbound []event.Outbound

	err := that.sessions.Update(vote.GameID, func(game *entity.Game) error {
		if vote.RoomID != "" && game.RoomID != vote.RoomID {
			return fmt.Errorf("%w: game %s is not in room %s", apperror.ErrGameNotFound, vote.GameID, vote.RoomID)
		}

		result, err := game.CastVote(vote.VoterID, vote.TargetID)
		if err != nil {
			return err
		}

		that.recordEvent(ctx, entity.AuditEvent{
			Name:   repository.EventPlayerVoted,
			GameID: game.ID,
			TurnID: result.Turn.ID,
			UserID: vote.VoterID,
			Data:   map[string]any{"voted_user_id": vote.TargetID},
		})

		replyTo := vote.ConnID
		if replyTo == "" {
			replyTo = result.Voter.ConnID
		}

		outbound = append(outbound, event.Outbound{
			Target: event.ToConn(replyTo),
			Event: event.VoteCasted{
				GameID:      game.ID,
				VotedUserID: result.Target.ID,
				Message:     fmt.Sprintf("You voted for %s.", result.Target.Username),
			},
		})

		if !result.Tallied {
			outbound = append(outbound, event.Outbound{
				Target: event.ToConn(replyTo),
				Event:  event.WaitingOtherVotes{GameID: game.ID, PlayersThatVoted: votersOf(game, result.Turn)},
			})
			that.saveSnapshot(ctx, game)

			return nil
		}

		outbound = append(outbound, that.eliminationEvents(ctx, game, result)...)
		that.saveSnapshot(ctx, game)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return outbound, nil
}

func (that *gameUseCase) eliminationEvents(ctx context.Context, game *entity.Game, result *entity.VoteResult) []event.Outbound {
	eliminated := result.Eliminated

	that.recordEvent(ctx, entity.AuditEvent{
		Name:   repository.EventPlayerEliminated,
		GameID: game.ID,
		TurnID: result.Turn.ID,
		UserID: eliminated.ID,
		Data:   map[string]any{"role": eliminated.Role, "votes": result.VotesAgainst},
	})

	outbound := []event.Outbound{
		{
			Target: event.ToGame(game),
			Event: event.PlayerEliminated{
				GameID: game.ID,
				Player: event.RefOfGamePlayer(eliminated),
				Role:   eliminated.Role,
				Votes:  result.VotesAgainst,
			},
		},
		{
			Target: event.ToPlayers(eliminated.ID),
			Event:  event.YouDied{GameID: game.ID, Message: "You have been eliminated."},
		},
	}

	if result.Winner == "" {
		return outbound
	}

	that.finishGame(ctx, game.ID, result.Winner)

	return append(outbound, event.Outbound{
		Target: event.ToGame(game),
		Event: event.GameOver{
			GameID:         game.ID,
			Winner:         result.Winner,
			CivilianWord:   game.CivilianWord,
			UndercoverWord: game.UndercoverWord,
		},
	})
}

func votersOf(game *entity.Game, turn *entity.Turn) []event.PlayerRef {
	voters := make([]event.PlayerRef, 0, len(turn.Voters))
	for _, id := range turn.Voters {
		if player, err := game.Player(id); err == nil {
			voters = append(voters, event.RefOfGamePlayer(player))
		}
	}

	return voters
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) GetGameEvents(ctx context.Context, gameID string) ([]entity.AuditEvent, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	// votes and roles stay private while the game runs
	if !game.IsFinished() {
		return nil, fmt.Errorf("%w: game %s", apperror.ErrGameNotFinished, gameID)
	}

	events, err := that.audit.ListEvents(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game events: %w", err)
	}

	return events, nil
}

func (that *gameUseCase) saveSnapshot(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "saveSnapshot")

	if err := that.gameService.SaveGame(ctx, game); err != nil {
		log.Error("failed to save game snapshot", "game_id", game.ID, "error", err)
	}
}

func (that *gameUseCase) recordEvent(ctx context.Context, auditEvent entity.AuditEvent) {
	log := that.logger.With("method", "recordEvent")

	auditEvent.Timestamp = time.Now().UTC()
	if err := that.audit.RecordEvent(ctx, auditEvent); err != nil {
		log.Error("failed to record game event", "event", auditEvent.Name, "game_id", auditEvent.GameID, "error", err)
	}
}

func (that *gameUseCase) finishGame(ctx context.Context, gameID string, winner entity.Role) {
	log := that.logger.With("method", "finishGame")

	if err := that.audit.FinishGame(ctx, gameID, winner); err != nil {
		log.Error("failed to record game result", "game_id", gameID, "winner", winner, "error", err)
	}
}

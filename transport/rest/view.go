package rest

import "github.com/rocketscienceinc/undercover-backend/internal/entity"

type gamePlayerView struct {
	ID        string      `json:"user_id"`
	Username  string      `json:"username"`
	Alive     bool        `json:"is_alive"`
	Moderator bool        `json:"is_moderator"`
	Role      entity.Role `json:"role,omitempty"`
}

type turnView struct {
	ID                 string   `json:"id"`
	Number             int      `json:"number"`
	Voters             []string `json:"users_that_voted"`
	Sealed             bool     `json:"sealed"`
	EliminatedPlayerID string   `json:"eliminated_player,omitempty"`
}

// gameView is what any client may see of a game. Roles and words stay hidden until it is finished,
// except for players already eliminated, whose role was announced.
type gameView struct {
	ID             string           `json:"id"`
	RoomID         string           `json:"room_id"`
	Status         string           `json:"status"`
	Winner         entity.Role      `json:"winner,omitempty"`
	CivilianWord   string           `json:"civilian_word,omitempty"`
	UndercoverWord string           `json:"undercover_word,omitempty"`
	Players        []gamePlayerView `json:"players"`
	Turns          []turnView       `json:"turns"`
}

func viewOfGame(game *entity.Game) gameView {
	finished := game.IsFinished()

	view := gameView{
		ID:      game.ID,
		RoomID:  game.RoomID,
		Status:  game.Status,
		Winner:  game.Winner,
		Players: make([]gamePlayerView, len(game.Players)),
		Turns:   make([]turnView, len(game.Turns)),
	}

	if finished {
		view.CivilianWord = game.CivilianWord
		view.UndercoverWord = game.UndercoverWord
	}

	for i, player := range game.Players {
		view.Players[i] = gamePlayerView{
			ID:        player.ID,
			Username:  player.Username,
			Alive:     player.Alive,
			Moderator: player.Moderator,
		}

		if finished || !player.Alive {
			view.Players[i].Role = player.Role
		}
	}

	for i, turn := range game.Turns {
		view.Turns[i] = turnView{
			ID:                 turn.ID,
			Number:             turn.Number,
			Voters:             append([]string{}, turn.Voters...),
			Sealed:             turn.Sealed,
			EliminatedPlayerID: turn.EliminatedPlayerID,
		}
	}

	return view
}

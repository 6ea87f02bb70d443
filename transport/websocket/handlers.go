package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/event"
	"github.com/rocketscienceinc/undercover-backend/internal/usecase"
)

func (that *Server) handleConnect(ctx context.Context, client *Client, payload json.RawMessage) ([]event.Outbound, error) {
	var req connectPayload
	if err := decode(payload, &req); err != nil {
		return nil, err
	}

	if req.Player == nil {
		return nil, fmt.Errorf("%w: player is required", apperror.ErrInvalidPayload)
	}

	if current := client.PlayerID(); current != "" && req.Player.ID != current {
		return nil, fmt.Errorf("%w: connection already bound to %s", apperror.ErrForeignPlayer, current)
	}

	player, outbound, err := that.players.Connect(ctx, req.Player.ID, req.Player.Username, client.id)
	if err != nil {
		return nil, fmt.Errorf("failed to connect player: %w", err)
	}

	that.hub.Bind(client, player.ID)

	return outbound, nil
}

func (that *Server) handleCreateRoom(ctx context.Context, client *Client, payload json.RawMessage) ([]event.Outbound, error) {
	var req createRoomPayload
	if err := decode(payload, &req); err != nil {
		return nil, err
	}

	ownerID, err := actingPlayer(client, req.OwnerID)
	if err != nil {
		return nil, err
	}

	_, outbound, err := that.rooms.CreateRoom(ctx, ownerID, client.id, req.Status, req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return outbound, nil
}

func (that *Server) handleJoinRoom(ctx context.Context, client *Client, payload json.RawMessage) ([]event.Outbound, error) {
	var req joinRoomPayload
	if err := decode(payload, &req); err != nil {
		return nil, err
	}

	userID, err := actingPlayer(client, req.UserID)
	if err != nil {
		return nil, err
	}

	_, outbound, err := that.rooms.JoinRoom(ctx, userID, client.id, req.PublicRoomID, req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	return outbound, nil
}

func (that *Server) handleLeaveRoom(ctx context.Context, client *Client, payload json.RawMessage) ([]event.Outbound, error) {
	var req leaveRoomPayload
	if err := decode(payload, &req); err != nil {
		return nil, err
	}

	userID, err := actingPlayer(client, req.UserID)
	if err != nil {
		return nil, err
	}

	_, outbound, err := that.rooms.LeaveRoom(ctx, req.RoomID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to leave room: %w", err)
	}

	return outbound, nil
}

func (that *Server) handleStartGame(ctx context.Context, client *Client, payload json.RawMessage) ([]event.Outbound, error) {
	var req startGamePayload
	if err := decode(payload, &req); err != nil {
		return nil, err
	}

	userID, err := actingPlayer(client, req.UserID)
	if err != nil {
		return nil, err
	}

	_, outbound, err := that.games.StartGame(ctx, req.RoomID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	return outbound, nil
}

func (that *Server) handleStartNewTurn(ctx context.Context, client *Client, payload json.RawMessage) ([]event.Outbound, error) {
	var req startNewTurnPayload
	if err := decode(payload, &req); err != nil {
		return nil, err
	}

	userID, err := actingPlayer(client, req.UserID)
	if err != nil {
		return nil, err
	}

	outbound, err := that.games.StartNewTurn(ctx, req.RoomID, req.GameID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to start new turn: %w", err)
	}

	return outbound, nil
}

func (that *Server) handleVote(ctx context.Context, client *Client, payload json.RawMessage) ([]event.Outbound, error) {
	var req votePayload
	if err := decode(payload, &req); err != nil {
		return nil, err
	}

	voterID, err := actingPlayer(client, req.UserID)
	if err != nil {
		return nil, err
	}

	outbound, err := that.games.Vote(ctx, usecase.Vote{
		RoomID:   req.RoomID,
		GameID:   req.GameID,
		VoterID:  voterID,
		TargetID: req.VotedUserID,
		ConnID:   client.id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to vote: %w", err)
	}

	return outbound, nil
}

// actingPlayer resolves who an action runs for. An empty claimed id falls back to the connected player.
func actingPlayer(client *Client, claimed string) (string, error) {
	playerID := client.PlayerID()
	if playerID == "" {
		return "", apperror.ErrNotConnected
	}

	if claimed != "" && claimed != playerID {
		return "", fmt.Errorf("%w: %s", apperror.ErrForeignPlayer, claimed)
	}

	return playerID, nil
}

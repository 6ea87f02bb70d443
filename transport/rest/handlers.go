package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/entity"
	"github.com/rocketscienceinc/undercover-backend/internal/event"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	GetRoomHandler(w http.ResponseWriter, r *http.Request)
	GetGameHandler(w http.ResponseWriter, r *http.Request)
	GetGameEventsHandler(w http.ResponseWriter, r *http.Request)

	GetWordHandler(w http.ResponseWriter, r *http.Request)
	CreatePairHandler(w http.ResponseWriter, r *http.Request)
}

type roomReader interface {
	GetRoom(ctx context.Context, publicID string) (entity.RoomSnapshot, error)
}

type gameReader interface {
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	GetGameEvents(ctx context.Context, gameID string) ([]entity.AuditEvent, error)
}

type wordCatalogue interface {
	GetWord(ctx context.Context, word string) (*entity.Word, error)
	AddPair(ctx context.Context, first, second entity.Word) (entity.WordPair, error)
}

type createPairRequest struct {
	First  entity.Word `json:"first"`
	Second entity.Word `json:"second"`
}

type handlers struct {
	logger *slog.Logger
	rooms  roomReader
	games  gameReader
	words  wordCatalogue
}

func NewHandlers(logger *slog.Logger, rooms roomReader, games gameReader, words wordCatalogue) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		rooms:  rooms,
		games:  games,
		words:  words,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.rooms.GetRoom(r.Context(), chi.URLParam(r, "publicID"))
	if err != nil {
		that.writeError(w, "GetRoomHandler", err)
		return
	}

	that.write(w, "GetRoomHandler", event.ViewOf(snapshot))
}

func (that *handlers) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.writeError(w, "GetGameHandler", err)
		return
	}

	that.write(w, "GetGameHandler", viewOfGame(game))
}

func (that *handlers) GetGameEventsHandler(w http.ResponseWriter, r *http.Request) {
	events, err := that.games.GetGameEvents(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.writeError(w, "GetGameEventsHandler", err)
		return
	}

	that.write(w, "GetGameEventsHandler", events)
}

func (that *handlers) GetWordHandler(w http.ResponseWriter, r *http.Request) {
	word, err := that.words.GetWord(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		that.writeError(w, "GetWordHandler", err)
		return
	}

	that.write(w, "GetWordHandler", word)
}

func (that *handlers) CreatePairHandler(w http.ResponseWriter, r *http.Request) {
	var req createPairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, "CreatePairHandler", apperror.ErrInvalidPayload)
		return
	}

	pair, err := that.words.AddPair(r.Context(), req.First, req.Second)
	if err != nil {
		that.writeError(w, "CreatePairHandler", err)
		return
	}

	if err = writeJSON(w, http.StatusCreated, pair, false, ""); err != nil {
		that.logger.Error("failed to write response", "method", "CreatePairHandler", "error", err)
	}
}

func (that *handlers) write(w http.ResponseWriter, method string, data any) {
	if err := writeJSON(w, http.StatusOK, data, false, ""); err != nil {
		that.logger.Error("failed to write response", "method", method, "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	log := that.logger.With("method", method)

	appErr, ok := apperror.From(err)
	if !ok {
		log.Error("request failed", "error", err)
	}

	if err = writeJSON(w, appErr.StatusCode(), nil, true, appErr.Message); err != nil {
		log.Error("failed to write response", "error", err)
	}
}

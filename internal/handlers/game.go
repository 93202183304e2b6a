package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

var (
	errGameOver     = errors.New("game is over")
	errUnauthorized = errors.New("missing or foreign session token")
)

type GameHandler struct {
	logger       *slog.Logger
	store        *session.Store
	tokens       *config.SessionTokens
	ws           *config.WebSocket
	maxBoardSize int
}

func NewGameHandler(
	logger *slog.Logger,
	store *session.Store,
	tokens *config.SessionTokens,
	ws *config.WebSocket,
	maxBoardSize int,
) *GameHandler {
	return &GameHandler{
		logger:       logger,
		store:        store,
		tokens:       tokens,
		ws:           ws,
		maxBoardSize: maxBoardSize,
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	if dto.Size > g.maxBoardSize {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, fmt.Errorf(
			"board size %d exceeds maximum of %d", dto.Size, g.maxBoardSize,
		))
		return
	}

	mineCount := config.ClampMineCount(dto.Size, dto.MineCount)
	s, err := g.store.Create(dto.Size, mineCount)
	if errors.Is(err, mines.ErrInvalidConfig) {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", slog.Any("error", err))
		return
	}

	token, err := g.tokens.Sign(s.ID)
	if err != nil {
		g.store.Delete(s.ID)
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to sign session token", slog.Any("error", err))
		return
	}

	var res *GameSessionDTO
	s.Do(func(b *mines.Board) {
		res = NewGameSessionDTO(s, b)
	})
	res.Token = token

	SendJSONOrLog(w, g.logger, http.StatusOK, res)
}

// lookup resolves the {id} path value, writing 404 when it is unknown.
func (g GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := g.store.Get(r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		SendErrorOrLog(w, g.logger, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch game session", slog.Any("error", err))
		return nil, false
	}
	return s, true
}

func authorized(r *http.Request, s *session.Session) bool {
	claims, ok := middleware.SessionClaims(r.Context())
	return ok && claims.SessionID == s.ID
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	var res *GameSessionDTO
	s.Do(func(b *mines.Board) {
		res = NewGameSessionDTO(s, b)
	})

	SendJSONOrLog(w, g.logger, http.StatusOK, res)
}

// reveal applies one reveal to the session's board and returns the
// resulting state. It refuses to touch a finished game.
func (g GameHandler) reveal(s *session.Session, pos PositionDTO) (*GameSessionDTO, error) {
	var (
		res *GameSessionDTO
		err error
	)
	s.Do(func(b *mines.Board) {
		if b.Status().Over() {
			err = errGameOver
			return
		}
		outcome := b.Reveal(pos.Row, pos.Col)
		status := b.Status()
		if status.Over() {
			g.logger.Info("game over",
				slog.String("id", s.ID),
				slog.String("status", status.String()),
			)
		}
		res = NewGameSessionDTO(s, b)
		res.Outcome = outcome.String()
	})
	return res, err
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	if !authorized(r, s) {
		SendErrorOrLog(w, g.logger, http.StatusUnauthorized, errUnauthorized)
		return
	}

	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	res, err := g.reveal(s, pos)
	if errors.Is(err, errGameOver) {
		SendErrorOrLog(w, g.logger, http.StatusConflict, err)
		return
	}

	SendJSONOrLog(w, g.logger, http.StatusOK, res)
}

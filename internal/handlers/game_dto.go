package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type NewGameDTO struct {
	Size      int `schema:"size,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// PositionDTO addresses a cell with 0-based row and column.
type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var pos PositionDTO
	err := decoder.Decode(&pos, src)
	return pos, err
}

type GameSessionDTO struct {
	GameSessionID string     `json:"game_session_id"`
	Grid          mines.Grid `json:"grid"`
	Size          int        `json:"size"`
	MineCount     int        `json:"mine_count"`
	Hidden        int        `json:"hidden"`
	Status        string     `json:"status"`
	Outcome       string     `json:"outcome,omitempty"`
	Token         string     `json:"token,omitempty"`
	StartedAt     int64      `json:"started_at"`
}

// NewGameSessionDTO must be called while holding the session's board.
func NewGameSessionDTO(s *session.Session, b *mines.Board) *GameSessionDTO {
	return &GameSessionDTO{
		GameSessionID: s.ID,
		Grid:          b.Grid(),
		Size:          b.Size(),
		MineCount:     b.MineCount(),
		Hidden:        b.Hidden(),
		Status:        b.Status().String(),
		StartedAt:     s.CreatedAt.UnixMilli(),
	}
}

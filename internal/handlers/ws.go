package handlers

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseRowCol(args []string) (pos PositionDTO, err error) {
	if pos.Row, err = strconv.Atoi(args[0]); err != nil {
		return pos, fmt.Errorf("row must be an int")
	}
	if pos.Col, err = strconv.Atoi(args[1]); err != nil {
		return pos, fmt.Errorf("col must be an int")
	}
	return pos, nil
}

var commandNargs = map[string]int{
	"g": 0, // get
	"o": 2, // open <row> <col>
}

// runCommand executes one websocket command line against the session.
func (g GameHandler) runCommand(s *session.Session, line string) (*GameSessionDTO, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return nil, fmt.Errorf("invalid number of arguments")
	}

	switch parts[0] {
	case "o":
		pos, err := parseRowCol(parts[1:])
		if err != nil {
			return nil, err
		}
		return g.reveal(s, pos)
	default:
		var res *GameSessionDTO
		s.Do(func(b *mines.Board) {
			res = NewGameSessionDTO(s, b)
		})
		return res, nil
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	if !authorized(r, s) {
		SendErrorOrLog(w, g.logger, http.StatusUnauthorized, errUnauthorized)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	// The hijacked conn keeps the server's request read deadline.
	c.SetReadDeadline(time.Time{})
	c.SetReadLimit(g.ws.MaxMessageSize)

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		text := strings.TrimSpace(string(message))
		g.logger.Debug("ws command", slog.String("id", s.ID), slog.String("text", text))

		// Get keeps the session from being swept while the socket is in use.
		if _, err := g.store.Get(s.ID); err != nil {
			g.writeReply(c, wrapError(err))
			return
		}

		var (
			reply  any
			cmdErr error
		)
		for _, line := range iterBySep(text, "\n") {
			res, err := g.runCommand(s, line)
			if err != nil {
				cmdErr = err
				break
			}
			reply = res
		}
		if cmdErr != nil {
			reply = wrapError(cmdErr)
		}

		if !g.writeReply(c, reply) {
			return
		}
	}
}

func (g GameHandler) writeReply(c *websocket.Conn, reply any) bool {
	c.SetWriteDeadline(time.Now().Add(g.ws.WriteWait))
	if err := c.WriteJSON(reply); err != nil {
		if !errors.Is(err, websocket.ErrCloseSent) {
			g.logger.Error("unable to write json", slog.Any("error", err))
		}
		return false
	}
	return true
}

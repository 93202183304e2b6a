package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv, _ := newTestServerWithTTL(t, time.Minute)
	return srv
}

func newTestServerWithTTL(t *testing.T, ttl time.Duration) (*httptest.Server, *session.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewStore(logger, rand.New(rand.NewPCG(1, 2)), ttl)
	tokens := config.NewSessionTokensWithSecret([]byte("test"), time.Hour)
	ws, err := config.NewWebSocket()
	require.NoError(t, err)

	game := NewGameHandler(logger, store, tokens, ws, 16)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /game", game.NewGame)
	mux.HandleFunc("GET /game/{id}", game.Fetch)
	mux.HandleFunc("POST /game/{id}/reveal", game.Reveal)
	mux.HandleFunc("GET /game/{id}/connect", game.ConnectWS)

	srv := httptest.NewServer(middleware.Wrap(mux, middleware.Auth(logger, tokens)))
	t.Cleanup(srv.Close)
	return srv, store
}

func dialGame(t *testing.T, srv *httptest.Server, id, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + id + "/connect?token=" + token
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func do(t *testing.T, method, url, token string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return res.StatusCode, body
}

func createGame(t *testing.T, srv *httptest.Server, query string) (id, token string) {
	t.Helper()
	status, body := do(t, http.MethodPost, srv.URL+"/game?"+query, "")
	require.Equal(t, http.StatusOK, status, body)
	return body["game_session_id"].(string), body["token"].(string)
}

func TestNewGame(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, http.MethodPost, srv.URL+"/game?size=4&mine_count=10", "")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "1", body["game_session_id"])
	assert.Equal(t, float64(4), body["size"])
	assert.Equal(t, float64(5), body["mine_count"], "mine count is clamped to 35%")
	assert.Equal(t, float64(16), body["hidden"])
	assert.Equal(t, "in_progress", body["status"])
	assert.NotEmpty(t, body["token"])
	assert.Len(t, body["grid"], 16)
	assert.NotContains(t, body, "outcome")
}

func TestNewGameBadRequest(t *testing.T) {
	srv := newTestServer(t)

	for _, query := range []string{
		"",
		"size=4",
		"size=x&mine_count=1",
		"size=0&mine_count=0",
		"size=17&mine_count=1",
	} {
		status, body := do(t, http.MethodPost, srv.URL+"/game?"+query, "")
		assert.Equal(t, http.StatusBadRequest, status, query)
		assert.Contains(t, body, "error", query)
	}
}

func TestRevealWinsEmptyBoard(t *testing.T) {
	srv := newTestServer(t)
	id, token := createGame(t, srv, "size=3&mine_count=0")

	status, body := do(t, http.MethodPost, srv.URL+"/game/"+id+"/reveal?row=0&col=0", token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "revealed", body["outcome"])
	assert.Equal(t, "won", body["status"])
	assert.Equal(t, float64(0), body["hidden"])

	status, body = do(t, http.MethodPost, srv.URL+"/game/"+id+"/reveal?row=1&col=1", token)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "game is over", body["error"])

	status, body = do(t, http.MethodGet, srv.URL+"/game/"+id, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "won", body["status"])
}

func TestRevealOutOfBoundsIsNoOp(t *testing.T) {
	srv := newTestServer(t)
	id, token := createGame(t, srv, "size=3&mine_count=0")

	status, body := do(t, http.MethodPost, srv.URL+"/game/"+id+"/reveal?row=5&col=-1", token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "noop", body["outcome"])
	assert.Equal(t, "in_progress", body["status"])
	assert.Equal(t, float64(9), body["hidden"])
}

func TestRevealRequiresOwnToken(t *testing.T) {
	srv := newTestServer(t)
	id, _ := createGame(t, srv, "size=3&mine_count=1")
	_, other := createGame(t, srv, "size=3&mine_count=1")

	status, _ := do(t, http.MethodPost, srv.URL+"/game/"+id+"/reveal?row=0&col=0", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, http.MethodPost, srv.URL+"/game/"+id+"/reveal?row=0&col=0", other)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUnknownGame(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, http.MethodGet, srv.URL+"/game/99", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, session.ErrNotFound.Error(), body["error"])
}

func TestConnectWS(t *testing.T) {
	srv := newTestServer(t)
	id, token := createGame(t, srv, "size=3&mine_count=0")

	c := dialGame(t, srv, id, token)

	var reply map[string]any

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("g")))
	require.NoError(t, c.ReadJSON(&reply))
	assert.Equal(t, "in_progress", reply["status"])

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("x 1")))
	reply = nil
	require.NoError(t, c.ReadJSON(&reply))
	assert.Contains(t, reply, "error")

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("o 1 1\ng")))
	reply = nil
	require.NoError(t, c.ReadJSON(&reply))
	assert.Equal(t, "won", reply["status"])

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("o 0 0")))
	reply = nil
	require.NoError(t, c.ReadJSON(&reply))
	assert.Equal(t, "game is over", reply["error"])
}

func TestConnectWSRequiresToken(t *testing.T) {
	srv := newTestServer(t)
	id, _ := createGame(t, srv, "size=3&mine_count=0")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + id + "/connect"
	_, res, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestConnectWSKeepsSessionAlive(t *testing.T) {
	const ttl = 300 * time.Millisecond
	srv, store := newTestServerWithTTL(t, ttl)
	id, token := createGame(t, srv, "size=3&mine_count=1")
	c := dialGame(t, srv, id, token)

	time.Sleep(400 * time.Millisecond)

	var reply map[string]any
	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("g")))
	require.NoError(t, c.ReadJSON(&reply))
	assert.Equal(t, "in_progress", reply["status"])

	assert.Zero(t, store.Sweep(time.Now().Add(ttl/3)), "session used over websocket was evicted")
	assert.Equal(t, 1, store.Len())
}

func TestConnectWSSessionEvicted(t *testing.T) {
	srv, store := newTestServerWithTTL(t, time.Minute)
	id, token := createGame(t, srv, "size=3&mine_count=1")
	c := dialGame(t, srv, id, token)

	store.Delete(id)

	var reply map[string]any
	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("g")))
	require.NoError(t, c.ReadJSON(&reply))
	assert.Equal(t, session.ErrNotFound.Error(), reply["error"])

	_, _, err := c.ReadMessage()
	assert.Error(t, err)
}

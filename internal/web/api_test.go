package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func apiRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type apiCoord struct{ Row, Col int }

type apiGame struct {
	ID     string `json:"id"`
	Result string `json:"result"`
	Error  string `json:"error"`
	Game   struct {
		Board       [][]string `json:"board"`
		Turn        string     `json:"turn"`
		Outcome     string     `json:"outcome"`
		Winner      string     `json:"winner"`
		Moves       int        `json:"moves"`
		Status      string     `json:"status"`
		History     []apiCoord `json:"history"`
		WinningLine []apiCoord `json:"winning_line"`
		LastMove    *apiCoord  `json:"last_move"`
	} `json:"game"`
}

func decodeGame(t *testing.T, rr *httptest.ResponseRecorder) apiGame {
	t.Helper()
	var out apiGame
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func apiCreate(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := apiRequest(h, "POST", "/api/games", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	g := decodeGame(t, rr)
	require.Equal(t, "/api/games/"+g.ID, rr.Header().Get("Location"))
	return g.ID
}

func TestAPICreateAndGet(t *testing.T) {
	_, h := newTestServer(t)
	id := apiCreate(t, h)

	rr := apiRequest(h, "GET", "/api/games/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	g := decodeGame(t, rr)
	require.Equal(t, id, g.ID)
	require.Equal(t, "black", g.Game.Turn)
	require.Equal(t, "in_progress", g.Game.Outcome)
	require.Equal(t, "Black to move", g.Game.Status)
	require.Len(t, g.Game.Board, 15)
	require.Len(t, g.Game.Board[0], 15)
	require.Equal(t, "empty", g.Game.Board[7][7])
	require.NotNil(t, g.Game.History)
	require.Nil(t, g.Game.LastMove)
}

func TestAPIMovesAndErrors(t *testing.T) {
	_, h := newTestServer(t)
	id := apiCreate(t, h)

	rr := apiRequest(h, "POST", "/api/games/"+id+"/moves", `{"row": 7, "col": 8}`)
	require.Equal(t, http.StatusOK, rr.Code)
	g := decodeGame(t, rr)
	require.Equal(t, "placed", g.Result)
	require.Equal(t, "black", g.Game.Board[7][8])
	require.Equal(t, "white", g.Game.Turn)
	require.NotNil(t, g.Game.LastMove)
	require.Equal(t, 8, g.Game.LastMove.Col)

	rr = apiRequest(h, "POST", "/api/games/"+id+"/moves", `{"row": 7, "col": 8}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	g = decodeGame(t, rr)
	require.Equal(t, "cell_occupied", g.Result)
	require.Equal(t, "cell occupied", g.Error)
	require.Equal(t, 1, g.Game.Moves)

	rr = apiRequest(h, "POST", "/api/games/"+id+"/moves", `{"row": -1, "col": 0}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "out_of_bounds", decodeGame(t, rr).Result)

	rr = apiRequest(h, "POST", "/api/games/"+id+"/moves", `{"row": 1}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = apiRequest(h, "POST", "/api/games/"+id+"/moves", `not json`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = apiRequest(h, "POST", "/api/games/missing/moves", `{"row": 0, "col": 0}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPIWinUndoReset(t *testing.T) {
	_, h := newTestServer(t)
	id := apiCreate(t, h)

	rr := apiRequest(h, "POST", "/api/games/"+id+"/undo", "")
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, "nothing_to_undo", decodeGame(t, rr).Result)

	moves := []string{
		`{"row":0,"col":0}`, `{"row":0,"col":14}`,
		`{"row":1,"col":1}`, `{"row":1,"col":14}`,
		`{"row":2,"col":2}`, `{"row":2,"col":14}`,
		`{"row":3,"col":3}`, `{"row":3,"col":13}`,
	}
	for _, m := range moves {
		rr = apiRequest(h, "POST", "/api/games/"+id+"/moves", m)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "placed", decodeGame(t, rr).Result)
	}

	rr = apiRequest(h, "POST", "/api/games/"+id+"/undo", "")
	require.Equal(t, http.StatusOK, rr.Code)
	g := decodeGame(t, rr)
	require.Equal(t, "undone", g.Result)
	require.Equal(t, "white", g.Game.Turn)
	rr = apiRequest(h, "POST", "/api/games/"+id+"/moves", `{"row":3,"col":13}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = apiRequest(h, "POST", "/api/games/"+id+"/moves", `{"row":4,"col":4}`)
	require.Equal(t, http.StatusOK, rr.Code)
	g = decodeGame(t, rr)
	require.Equal(t, "win", g.Result)
	require.Equal(t, "win", g.Game.Outcome)
	require.Equal(t, "black", g.Game.Winner)
	require.Equal(t, "Black wins", g.Game.Status)
	require.Len(t, g.Game.WinningLine, 5)

	rr = apiRequest(h, "POST", "/api/games/"+id+"/undo", "")
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, "game_already_over", decodeGame(t, rr).Result)

	rr = apiRequest(h, "POST", "/api/games/"+id+"/reset", "")
	require.Equal(t, http.StatusOK, rr.Code)
	g = decodeGame(t, rr)
	require.Equal(t, "in_progress", g.Game.Outcome)
	require.Zero(t, g.Game.Moves)
	require.Empty(t, g.Game.WinningLine)
}

func TestAPIDelete(t *testing.T) {
	svc, h := newTestServer(t)
	id := apiCreate(t, h)

	rr := apiRequest(h, "DELETE", "/api/games/"+id, "")
	require.Equal(t, http.StatusNoContent, rr.Code)
	_, ok := svc.Get(id)
	require.False(t, ok)

	rr = apiRequest(h, "DELETE", "/api/games/"+id, "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	rr = apiRequest(h, "GET", "/api/games/"+id, "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

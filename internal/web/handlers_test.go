package web

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jaminalder/codex-gomoku/internal/app"
	"github.com/jaminalder/codex-gomoku/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*app.Service, http.Handler) {
	t.Helper()
	log, _ := test.NewNullLogger()
	s := app.NewService(app.WithLogger(log))
	h := NewServer(s, WithLogger(log), WithHeartbeat(time.Hour))
	return s, h
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func play(h http.Handler, id string, r, c string) *httptest.ResponseRecorder {
	return postForm(h, "/game/"+id+"/play", url.Values{"r": {r}, "c": {c}})
}

func TestIndexPage(t *testing.T) {
	_, h := newTestServer(t)
	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, "<form")
	require.Contains(t, body, `action="/game"`)
	require.Contains(t, body, "<!doctype html>")
}

func TestCreateRedirectsToGame(t *testing.T) {
	svc, h := newTestServer(t)
	req := httptest.NewRequest("POST", "/game", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	loc := rr.Result().Header.Get("Location")
	require.True(t, strings.HasPrefix(loc, "/game/"), "location %q", loc)
	_, ok := svc.Get(strings.TrimPrefix(loc, "/game/"))
	require.True(t, ok)
}

func TestGamePageRendersBoardAndSSE(t *testing.T) {
	svc, h := newTestServer(t)
	gs, _ := svc.CreateGame()

	req := httptest.NewRequest("GET", "/game/"+url.PathEscape(gs.ID), nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, `hx-ext="sse"`)
	require.Contains(t, body, "/game/"+gs.ID+"/events")
	require.Contains(t, body, `id="board"`)
	require.Contains(t, body, "Black to move")
	require.Equal(t, domain.Size*domain.Size, strings.Count(body, `name="r"`))
	require.Equal(t, len(domain.StarPoints), strings.Count(body, "cell star"))
}

func TestGamePageNotFound(t *testing.T) {
	_, h := newTestServer(t)
	req := httptest.NewRequest("GET", "/game/missing", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = play(h, "missing", "0", "0")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPlayEndpointUpdatesStateAndReturnsFragment(t *testing.T) {
	svc, h := newTestServer(t)
	gs, _ := svc.CreateGame()

	rr := play(h, gs.ID, "7", "7")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, `id="board"`)
	require.Contains(t, body, "White to move")
	require.Contains(t, body, "cell black star last")
	require.NotContains(t, body, `class="alert"`)

	latest, _ := svc.Get(gs.ID)
	require.Equal(t, 1, latest.Game.Moves())
	require.Equal(t, domain.Black, latest.Game.Board[7][7])
}

func TestPlayEndpointShowsErrorsInline(t *testing.T) {
	svc, h := newTestServer(t)
	gs, _ := svc.CreateGame()
	play(h, gs.ID, "0", "0")

	cases := map[string][2]string{
		"Cell is occupied": {"0", "0"},
		"Out of bounds":    {"15", "0"},
	}
	for msg, m := range cases {
		rr := play(h, gs.ID, m[0], m[1])
		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), msg)
	}
	rr := play(h, gs.ID, "x", "")
	require.Contains(t, rr.Body.String(), "Out of bounds")

	latest, _ := svc.Get(gs.ID)
	require.Equal(t, 1, latest.Game.Moves())
	require.Equal(t, domain.White, latest.Game.Turn)
}

func TestUndoAndResetEndpoints(t *testing.T) {
	svc, h := newTestServer(t)
	gs, _ := svc.CreateGame()

	rr := postForm(h, "/game/"+gs.ID+"/undo", nil)
	require.Contains(t, rr.Body.String(), "Nothing to undo")

	play(h, gs.ID, "3", "3")
	rr = postForm(h, "/game/"+gs.ID+"/undo", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Black to move")
	latest, _ := svc.Get(gs.ID)
	require.Zero(t, latest.Game.Moves())

	// Black wins on column 0
	for i := 0; i < 4; i++ {
		play(h, gs.ID, itoa(i), "0")
		play(h, gs.ID, itoa(i), "5")
	}
	rr = play(h, gs.ID, "4", "0")
	body := rr.Body.String()
	require.Contains(t, body, "Black wins")
	require.Equal(t, 5, strings.Count(body, " win\""))
	require.Contains(t, body, "disabled")

	rr = postForm(h, "/game/"+gs.ID+"/undo", nil)
	require.Contains(t, rr.Body.String(), "Game is over")
	rr = play(h, gs.ID, "10", "10")
	require.Contains(t, rr.Body.String(), "Game is over")

	rr = postForm(h, "/game/"+gs.ID+"/reset", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Black to move")
	latest, _ = svc.Get(gs.ID)
	require.Equal(t, domain.InProgress, latest.Game.Outcome)
	require.Zero(t, latest.Game.Moves())
}

func itoa(i int) string { return string(rune('0' + i)) }

func TestEventsEndpointSSEHeaders(t *testing.T) {
	_, h := newTestServer(t)
	reqCreate := httptest.NewRequest("POST", "/game", nil)
	rrCreate := httptest.NewRecorder()
	h.ServeHTTP(rrCreate, reqCreate)
	loc := rrCreate.Result().Header.Get("Location")
	require.NotEmpty(t, loc)

	req := httptest.NewRequest("GET", loc+"/events", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, strings.HasPrefix(rr.Result().Header.Get("Content-Type"), "text/event-stream"))
}

func TestEventsStreamBoardUpdates(t *testing.T) {
	svc, h := newTestServer(t)
	gs, _ := svc.CreateGame()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/game/"+gs.ID+"/events", nil).WithContext(ctx)
	req.Header.Set("Accept", "text/event-stream")
	rr := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(rr, req)
	}()

	// give the handler time to subscribe, then move
	time.Sleep(100 * time.Millisecond)
	_, _, err := svc.Play(gs.ID, 7, 7)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	body := rr.Body.String()
	require.Contains(t, body, "event: board")
	require.Contains(t, body, "data: ")
	require.Contains(t, body, "White to move")
}

func TestWriteEventPrefixesEveryLine(t *testing.T) {
	var buf bytes.Buffer
	writeEvent(&buf, "board", []byte("<div>\n<p>x</p>\n</div>"))
	require.Equal(t, "event: board\ndata: <div>\ndata: <p>x</p>\ndata: </div>\n\n", buf.String())
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	s := app.NewService(app.WithLogger(log))
	h := NewServer(s, WithLogger(log))

	req := httptest.NewRequest("GET", "/game/missing", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, "request", entry.Message)
	require.Equal(t, http.StatusNotFound, entry.Data["status"])
	require.Equal(t, "/game/missing", entry.Data["path"])
}

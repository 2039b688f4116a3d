package web

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/jaminalder/codex-gomoku/internal/app"
	"github.com/jaminalder/codex-gomoku/internal/domain"
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

// cellView is one intersection as the board template draws it.
type cellView struct {
	R, C  int
	Empty bool
	Class string
}

// boardView is the data behind the board fragment.
type boardView struct {
	ID     string
	Rows   [][]cellView
	Status string
	Over   bool
	Moves  int
	Error  string
}

func newBoardView(gs app.GameState, errMsg string) boardView {
	snap := gs.Snapshot()
	v := boardView{
		ID:     gs.ID,
		Status: snap.Status,
		Over:   snap.Outcome != domain.InProgress,
		Moves:  snap.Moves,
		Error:  errMsg,
		Rows:   make([][]cellView, domain.Size),
	}
	for r := 0; r < domain.Size; r++ {
		v.Rows[r] = make([]cellView, domain.Size)
		for c := 0; c < domain.Size; c++ {
			cell := snap.Board[r][c]
			classes := []string{"cell"}
			switch cell {
			case domain.Black:
				classes = append(classes, "black")
			case domain.White:
				classes = append(classes, "white")
			}
			if domain.IsStarPoint(r, c) {
				classes = append(classes, "star")
			}
			if snap.IsLastMove(r, c) {
				classes = append(classes, "last")
			}
			if snap.InWinningLine(r, c) {
				classes = append(classes, "win")
			}
			v.Rows[r][c] = cellView{R: r, C: c, Empty: cell == domain.Empty, Class: strings.Join(classes, " ")}
		}
	}
	return v
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Gomoku</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
.row{display:flex}
.cell{width:32px;height:32px;border:0;padding:0;background:#deb887;border-radius:0}
.cell.star{background:radial-gradient(circle,#000 3px,#deb887 4px)}
.cell.black{background:radial-gradient(circle at 35% 35%,#777,#000 60%);border-radius:50%}
.cell.white{background:radial-gradient(circle at 35% 35%,#fff,#bbb 70%);border-radius:50%}
.cell.last{outline:2px solid #c00}
.cell.win{box-shadow:0 0 0 3px #0a0 inset}
</style>
</head><body>{{template "content" .}}</body></html>`))
	// Define the board template within the same set so game can include it
	template.Must(base.New("board").Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Gomoku</h1><form action="/game" method="post"><button>New game</button></form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<h1>Gomoku</h1>
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div sse-swap="board" hx-target="#board" hx-swap="outerHTML">{{.BoardHTML}}</div>
</div>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

const boardTemplate = `
<div id="board" data-moves="{{.Moves}}">
  <p class="status">{{.Status}}</p>
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{range .Rows}}
  <div class="row">
    {{range .}}
      {{if and .Empty (not $.Over)}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post" action="/game/{{$.ID}}/play">
        <input type="hidden" name="r" value="{{.R}}">
        <input type="hidden" name="c" value="{{.C}}">
        <button type="submit" class="{{.Class}}"></button>
      </form>
      {{else}}
      <span class="{{.Class}}"></span>
      {{end}}
    {{end}}
  </div>
  {{end}}
  <div class="controls">
    <button hx-post="/game/{{.ID}}/undo" hx-target="#board" hx-swap="outerHTML"{{if .Over}} disabled{{end}}>Undo</button>
    <button hx-post="/game/{{.ID}}/reset" hx-target="#board" hx-swap="outerHTML" hx-confirm="Start a new game?">Restart</button>
  </div>
</div>
`

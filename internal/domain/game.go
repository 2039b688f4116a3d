package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Size is the number of rows and columns on the board.
	Size = 15
	// WinLength is the minimum run of stones that wins. Overlines count.
	WinLength = 5
)

// Cell represents a board cell state. Black and White double as stone colors.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

func (c Cell) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Empty"
	}
}

// MarshalText encodes the cell as "empty", "black" or "white".
func (c Cell) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(c.String())), nil
}

// Opponent returns the other stone color. Empty maps to Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// Board is a fixed Size x Size grid indexed [row][col].
type Board [Size][Size]Cell

// Stones counts the non-empty cells.
func (b *Board) Stones() int {
	n := 0
	for r := range b {
		for c := range b[r] {
			if b[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// Move is a single stone placement.
type Move struct {
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	Color Cell `json:"color"`
}

// Outcome classifies a game as running or finished.
type Outcome uint8

const (
	InProgress Outcome = iota
	Won
	Drawn
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "win"
	case Drawn:
		return "draw"
	default:
		return "in_progress"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Game holds the current state of a match. The fields are exported for
// reading; only Play, Undo and Reset may change them, which keeps History
// equal to the stones on Board. Front ends work on Clone or Snapshot copies.
type Game struct {
	Board   Board
	Turn    Cell
	Outcome Outcome
	Winner  Cell
	// History is every accepted move in placement order.
	History []Move
	// WinningLine is the run that ended the game, empty otherwise.
	WinningLine []Move
}

// Errors returned by domain operations.
var (
	ErrOutOfBounds   = errors.New("out of bounds")
	ErrOccupied      = errors.New("cell occupied")
	ErrGameOver      = errors.New("game over")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// New returns a new game with Black to move.
func New() Game {
	return Game{Turn: Black}
}

// Over reports whether the game has reached a terminal outcome.
func (g *Game) Over() bool { return g.Outcome != InProgress }

// Moves returns the number of stones placed.
func (g *Game) Moves() int { return len(g.History) }

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (Move, bool) {
	if len(g.History) == 0 {
		return Move{}, false
	}
	return g.History[len(g.History)-1], true
}

// Play attempts to place the current turn's stone at row r, column c.
// On failure the game is left untouched and the error is one of
// ErrGameOver, ErrOutOfBounds or ErrOccupied.
func (g *Game) Play(r, c int) (MoveResult, error) {
	if g.Over() {
		return g.reject(GameAlreadyOver), ErrGameOver
	}
	if !InBounds(r, c) {
		return g.reject(OutOfBounds), ErrOutOfBounds
	}
	if g.Board[r][c] != Empty {
		return g.reject(CellOccupied), ErrOccupied
	}

	// Place the stone
	m := Move{Row: r, Col: c, Color: g.Turn}
	g.Board[r][c] = m.Color
	g.History = append(g.History, m)

	// Check for a win
	if line := winningLine(&g.Board, r, c); line != nil {
		g.Outcome = Won
		g.Winner = m.Color
		g.WinningLine = line
		return MoveResult{Status: Win, Move: m, Turn: g.Turn, Winner: m.Color}, nil
	}

	// Check for draw
	if len(g.History) == Size*Size {
		g.Outcome = Drawn
		return MoveResult{Status: Draw, Move: m, Turn: g.Turn}, nil
	}

	g.Turn = g.Turn.Opponent()
	return MoveResult{Status: Placed, Move: m, Turn: g.Turn}, nil
}

// Undo takes back the most recent move of a game still in progress.
func (g *Game) Undo() (UndoResult, error) {
	if len(g.History) == 0 {
		return UndoResult{Status: NothingToUndo, Turn: g.Turn}, ErrNothingToUndo
	}
	if g.Over() {
		return UndoResult{Status: GameAlreadyOver, Turn: g.Turn}, ErrGameOver
	}

	last := g.History[len(g.History)-1]
	g.History = g.History[:len(g.History)-1]
	g.Board[last.Row][last.Col] = Empty
	g.Turn = last.Color
	return UndoResult{Status: Undone, Move: last, Turn: g.Turn}, nil
}

// Reset discards the game and starts a fresh one.
func (g *Game) Reset() {
	*g = New()
}

// Clone returns a deep copy that shares no slices with g.
func (g *Game) Clone() Game {
	cp := *g
	cp.History = append([]Move(nil), g.History...)
	cp.WinningLine = append([]Move(nil), g.WinningLine...)
	return cp
}

// Replay applies moves in order to a new game. Each move's color must match
// the side to move; replaying a game's History reproduces its Board.
func Replay(moves []Move) (Game, error) {
	g := New()
	for i, m := range moves {
		if !g.Over() && m.Color != g.Turn {
			return g, fmt.Errorf("move %d: %v played out of turn", i, m.Color)
		}
		if _, err := g.Play(m.Row, m.Col); err != nil {
			return g, fmt.Errorf("move %d (%d,%d): %w", i, m.Row, m.Col, err)
		}
	}
	return g, nil
}

func (g *Game) reject(s Status) MoveResult {
	return MoveResult{Status: s, Turn: g.Turn, Winner: g.Winner}
}

// InBounds reports whether (r, c) lies on the board.
func InBounds(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

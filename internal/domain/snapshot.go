package domain

// StarPoints are the marked intersections drawn on a 15x15 board.
var StarPoints = [5][2]int{{3, 3}, {3, 11}, {7, 7}, {11, 3}, {11, 11}}

// IsStarPoint reports whether (r, c) is one of StarPoints.
func IsStarPoint(r, c int) bool {
	for _, p := range StarPoints {
		if p[0] == r && p[1] == c {
			return true
		}
	}
	return false
}

// Snapshot is a read-only copy of a game for rendering.
type Snapshot struct {
	Board       Board   `json:"board"`
	Turn        Cell    `json:"turn"`
	Outcome     Outcome `json:"outcome"`
	Winner      Cell    `json:"winner"`
	Moves       int     `json:"moves"`
	LastMove    *Move   `json:"last_move,omitempty"`
	History     []Move  `json:"history"`
	WinningLine []Move  `json:"winning_line,omitempty"`
	Status      string  `json:"status"`
}

// Snapshot captures the current state. It shares nothing with g.
func (g *Game) Snapshot() Snapshot {
	cp := g.Clone()
	s := Snapshot{
		Board:       cp.Board,
		Turn:        cp.Turn,
		Outcome:     cp.Outcome,
		Winner:      cp.Winner,
		Moves:       len(cp.History),
		History:     cp.History,
		WinningLine: cp.WinningLine,
		Status:      g.StatusText(),
	}
	if s.History == nil {
		s.History = []Move{}
	}
	if m, ok := cp.LastMove(); ok {
		s.LastMove = &m
	}
	return s
}

// StatusText is the one-line description shown under the board.
func (g *Game) StatusText() string {
	switch g.Outcome {
	case Won:
		return g.Winner.String() + " wins"
	case Drawn:
		return "Draw"
	default:
		return g.Turn.String() + " to move"
	}
}

// IsLastMove reports whether (r, c) holds the most recent stone.
func (s Snapshot) IsLastMove(r, c int) bool {
	return s.LastMove != nil && s.LastMove.Row == r && s.LastMove.Col == c
}

// InWinningLine reports whether (r, c) is part of the winning run.
func (s Snapshot) InWinningLine(r, c int) bool {
	for _, m := range s.WinningLine {
		if m.Row == r && m.Col == c {
			return true
		}
	}
	return false
}

package domain

// directions are the four line axes as (dRow, dCol): horizontal, vertical,
// diagonal and anti-diagonal.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// winningLine returns the run through (r, c) that reaches WinLength, ordered
// from one end to the other, or nil when the stone at (r, c) does not win.
func winningLine(b *Board, r, c int) []Move {
	mark := b[r][c]
	if mark == Empty {
		return nil
	}
	for _, d := range directions {
		back := countDirection(b, r, c, -d[0], -d[1], mark)
		fwd := countDirection(b, r, c, d[0], d[1], mark)
		if 1+back+fwd < WinLength {
			continue
		}
		line := make([]Move, 0, 1+back+fwd)
		for i := -back; i <= fwd; i++ {
			line = append(line, Move{Row: r + i*d[0], Col: c + i*d[1], Color: mark})
		}
		return line
	}
	return nil
}

// countDirection counts contiguous stones of mark starting one step from
// (r, c) along (dr, dc), stopping at the first other cell or the edge.
func countDirection(b *Board, r, c, dr, dc int, mark Cell) int {
	n := 0
	for r, c = r+dr, c+dc; InBounds(r, c) && b[r][c] == mark; r, c = r+dr, c+dc {
		n++
	}
	return n
}

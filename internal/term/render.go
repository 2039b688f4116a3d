package term

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jaminalder/codex-gomoku/internal/domain"
)

const columns = "abcdefghijklmno"

var (
	lastColor = color.New(color.FgRed, color.Bold)
	winColor  = color.New(color.FgGreen, color.Bold)
)

// BoardLines returns the ASCII art lines for the snapshot: a header with
// column letters, one line per row and a footer.
func BoardLines(s domain.Snapshot) []string {
	lines := make([]string, 0, domain.Size+2)

	var header strings.Builder
	header.WriteString("   ")
	for c := 0; c < domain.Size; c++ {
		header.WriteByte(' ')
		header.WriteByte(columns[c])
	}
	lines = append(lines, header.String())

	for r := 0; r < domain.Size; r++ {
		var line strings.Builder
		fmt.Fprintf(&line, "%2d ", r+1)
		for c := 0; c < domain.Size; c++ {
			line.WriteByte(' ')
			line.WriteString(cellSymbol(s, r, c))
		}
		lines = append(lines, line.String())
	}

	lines = append(lines, s.Status)
	return lines
}

func cellSymbol(s domain.Snapshot, r, c int) string {
	var sym string
	switch s.Board[r][c] {
	case domain.Black:
		sym = "●"
	case domain.White:
		sym = "○"
	default:
		if domain.IsStarPoint(r, c) {
			return "+"
		}
		return "·"
	}
	switch {
	case s.InWinningLine(r, c):
		return winColor.Sprint(sym)
	case s.IsLastMove(r, c):
		return lastColor.Sprint(sym)
	}
	return sym
}

// Render writes the board and status line to w.
func Render(w io.Writer, s domain.Snapshot) error {
	for _, line := range BoardLines(s) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// ParseCoord reads either "row col" as 0-based numbers or a letter-number
// coordinate such as "h8" (column h, row 8 counted from 1).
func ParseCoord(fields []string) (int, int, error) {
	switch len(fields) {
	case 1:
		f := strings.ToLower(fields[0])
		if len(f) < 2 {
			return 0, 0, fmt.Errorf("invalid coordinate %q", fields[0])
		}
		col := strings.IndexByte(columns, f[0])
		if col < 0 {
			return 0, 0, fmt.Errorf("invalid column %q", f[:1])
		}
		row, err := strconv.Atoi(f[1:])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid row %q", f[1:])
		}
		return row - 1, col, nil
	case 2:
		r, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid row %q", fields[0])
		}
		c, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid column %q", fields[1])
		}
		return r, c, nil
	default:
		return 0, 0, fmt.Errorf("expected a coordinate, got %q", strings.Join(fields, " "))
	}
}

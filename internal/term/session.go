package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jaminalder/codex-gomoku/internal/domain"
	"github.com/sirupsen/logrus"
)

const helpText = `Commands:
  <row> <col>   place a stone, 0-based (e.g. "7 7")
  <a-o><1-15>   place a stone by coordinate (e.g. "h8")
  undo          take back the last move
  reset         start a new game
  board         show the board
  help          show this help
  quit          leave
`

// Session is a hot-seat game played over a line-oriented terminal.
type Session struct {
	game domain.Game
	in   *bufio.Scanner
	out  io.Writer
	log  logrus.FieldLogger
}

// NewSession returns a session reading commands from in and writing to out.
func NewSession(in io.Reader, out io.Writer, log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{game: domain.New(), in: bufio.NewScanner(in), out: out, log: log}
}

// Snapshot returns the current game for inspection.
func (s *Session) Snapshot() domain.Snapshot { return s.game.Snapshot() }

// Run plays until quit or end of input.
func (s *Session) Run() error {
	if err := s.showBoard(); err != nil {
		return err
	}
	for {
		fmt.Fprintf(s.out, "%s> ", s.game.Turn)
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		quit, err := s.handle(line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (s *Session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) showBoard() error {
	return Render(s.out, s.game.Snapshot())
}

// handle executes one command line; it reports whether the session should end.
func (s *Session) handle(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		_, err := io.WriteString(s.out, helpText)
		return false, err
	case "board":
		return false, s.showBoard()
	case "undo":
		res, err := s.game.Undo()
		if err != nil {
			s.log.WithField("status", res.Status).Debug("undo rejected")
			fmt.Fprintln(s.out, message(err))
			return false, nil
		}
		return false, s.showBoard()
	case "reset", "restart":
		fmt.Fprint(s.out, "Start a new game? [y/N] ")
		answer, ok := s.readLine()
		if !ok || !strings.HasPrefix(strings.ToLower(answer), "y") {
			fmt.Fprintln(s.out, "Keeping the current game")
			return false, nil
		}
		s.game.Reset()
		return false, s.showBoard()
	}

	r, c, err := ParseCoord(fields)
	if err != nil {
		fmt.Fprintf(s.out, "%v (type help for commands)\n", err)
		return false, nil
	}
	res, err := s.game.Play(r, c)
	entry := s.log.WithFields(logrus.Fields{"row": r, "col": c, "status": res.Status})
	if err != nil {
		entry.Debug("move rejected")
		fmt.Fprintln(s.out, message(err))
		return false, nil
	}
	entry.Debug("stone placed")
	return false, s.showBoard()
}

// message is the text shown for a rejected engine call.
func message(err error) string {
	switch {
	case errors.Is(err, domain.ErrOccupied):
		return "That cell is occupied"
	case errors.Is(err, domain.ErrOutOfBounds):
		return "That cell is off the board"
	case errors.Is(err, domain.ErrGameOver):
		return "The game is over; type reset to play again"
	case errors.Is(err, domain.ErrNothingToUndo):
		return "Nothing to undo"
	default:
		return err.Error()
	}
}

package domain

// Status reports what an engine call did.
type Status uint8

const (
	// Unknown is the zero value; no engine call produces it.
	Unknown Status = iota
	Placed
	Win
	Draw
	CellOccupied
	GameAlreadyOver
	OutOfBounds
	Undone
	NothingToUndo
)

func (s Status) String() string {
	switch s {
	case Placed:
		return "placed"
	case Win:
		return "win"
	case Draw:
		return "draw"
	case CellOccupied:
		return "cell_occupied"
	case GameAlreadyOver:
		return "game_already_over"
	case OutOfBounds:
		return "out_of_bounds"
	case Undone:
		return "undone"
	case NothingToUndo:
		return "nothing_to_undo"
	default:
		return "unknown"
	}
}

// Rejected reports whether the call left the game unchanged.
func (s Status) Rejected() bool {
	switch s {
	case CellOccupied, GameAlreadyOver, OutOfBounds, NothingToUndo:
		return true
	}
	return false
}

// MoveResult is returned by Play. Turn is the side to move afterwards; after a
// win it stays on the winner.
type MoveResult struct {
	Status Status
	Move   Move
	Turn   Cell
	Winner Cell
}

// UndoResult is returned by Undo. Move is the placement that was taken back.
type UndoResult struct {
	Status Status
	Move   Move
	Turn   Cell
}

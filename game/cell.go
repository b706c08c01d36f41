package game

import (
	"fmt"
	"strconv"
)

// Cell is one grid position. Outside this package a Cell is a read-only copy;
// its state only moves through the transitions below.
type Cell struct {
	idx      int
	numMines int
	isMine   bool

	state CellState
}

func (cell Cell) String() string {
	return fmt.Sprintf("Cell(%d, %s)", cell.idx, cell.state)
}

func (cell Cell) Index() int {
	return cell.idx
}

func (cell Cell) IsMine() bool {
	return cell.isMine
}

// NumMines is the number of neighbouring mines. It is always 0 for a mine cell.
func (cell Cell) NumMines() int {
	return cell.numMines
}

func (cell Cell) State() CellState {
	return cell.state
}

// IsNumbered reports whether the cell shows a count a chord can be played on.
func (cell Cell) IsNumbered() bool {
	return cell.state == Revealed && !cell.isMine
}

// DisplayValue is the label underneath the cell: the mine glyph, an empty
// string for a zero count, or the count itself. Whether it is shown depends on
// the state and is up to the renderer.
func (cell Cell) DisplayValue() string {
	switch {
	case cell.isMine:
		return MineGlyph
	case cell.numMines == 0:
		return ""
	default:
		return strconv.Itoa(cell.numMines)
	}
}

func (cell *Cell) reveal() error {
	if cell.state != Hidden {
		return transitionError(ErrCannotReveal, cell)
	}

	if cell.isMine {
		cell.state = DetonatedMine
	} else {
		cell.state = Revealed
	}
	return nil
}

func (cell *Cell) toggleFlag() error {
	switch cell.state {
	case Hidden:
		cell.state = Flagged
	case Flagged:
		cell.state = Hidden
	default:
		return transitionError(ErrCannotFlag, cell)
	}
	return nil
}

// exposeMine shows a mine after the game is lost, flagged or not.
func (cell *Cell) exposeMine() bool {
	if !cell.isMine || cell.state == DetonatedMine || cell.state == Revealed {
		return false
	}
	cell.state = Revealed
	return true
}

func (cell *Cell) markWon() bool {
	if cell.state != Flagged {
		return false
	}
	cell.state = FlaggedAtWin
	return true
}

func (cell *Cell) layoutChar() byte {
	switch cell.state {
	case DetonatedMine:
		return '*'
	case Flagged, FlaggedAtWin:
		if cell.isMine {
			return 'F'
		}
		return 'f'
	case Revealed:
		if cell.isMine {
			return 'M'
		}
		return '.'
	default:
		if cell.isMine {
			return 'O'
		}
		return '#'
	}
}

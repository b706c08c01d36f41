package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// Board is the cell array of one game plus the counters the engine keeps in
// step with it. Mine placement and mine counts never change after creation.
type Board struct {
	Geometry

	mineDensity int
	numMines    int
	cells       []Cell

	numHidden int
	numFlags  int
}

// MineCount is the number of mines a board of numCells cells holds at the
// given density, rounded half up.
func MineCount(numCells, mineDensity int) int {
	return (numCells*mineDensity + 50) / 100
}

func createBoard(geom Geometry, mineDensity int, rng *rand.Rand) *Board {
	// Store cell indexes, to shuffle later and fill mines
	cellIndexes := make([]int, geom.NumCells())
	for i := range cellIndexes {
		cellIndexes[i] = i
	}

	rng.Shuffle(len(cellIndexes), func(i, j int) {
		cellIndexes[i], cellIndexes[j] = cellIndexes[j], cellIndexes[i]
	})

	board := createBoardWithMines(geom, cellIndexes[:MineCount(geom.NumCells(), mineDensity)])
	board.mineDensity = mineDensity
	return board
}

func createBoardWithMines(geom Geometry, mines []int) *Board {
	board := &Board{
		Geometry:  geom,
		cells:     make([]Cell, geom.NumCells()),
		numHidden: geom.NumCells(),
	}

	for idx := range board.cells {
		board.cells[idx] = Cell{idx: idx, state: Hidden}
	}

	for _, idx := range mines {
		geom.mustContain(idx)

		cell := &board.cells[idx]
		if cell.isMine {
			continue
		}
		cell.isMine = true
		board.numMines++
	}

	board.fillMineCounts()

	if geom.NumCells() > 0 {
		board.mineDensity = board.numMines * 100 / geom.NumCells()
	}
	return board
}

func (board *Board) fillMineCounts() {
	for idx := range board.cells {
		cell := &board.cells[idx]
		if cell.isMine {
			continue
		}

		cell.numMines = 0
		board.EachNeighbor(idx, func(neighbor int) {
			if board.cells[neighbor].isMine {
				cell.numMines++
			}
		})
	}
}

func (board *Board) cellAt(idx int) *Cell {
	board.mustContain(idx)
	return &board.cells[idx]
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) MineDensity() int {
	return board.mineDensity
}

// reveal moves a Hidden cell out of Hidden and keeps the counters in step.
func (board *Board) reveal(cell *Cell) error {
	if err := cell.reveal(); err != nil {
		return err
	}
	board.numHidden--
	return nil
}

func (board *Board) toggleFlag(cell *Cell) error {
	if err := cell.toggleFlag(); err != nil {
		return err
	}

	if cell.state == Flagged {
		board.numHidden--
		board.numFlags++
	} else {
		board.numHidden++
		board.numFlags--
	}
	return nil
}

func (board *Board) exposeMine(cell *Cell) bool {
	wasState := cell.state
	if !cell.exposeMine() {
		return false
	}

	switch wasState {
	case Hidden:
		board.numHidden--
	case Flagged:
		board.numFlags--
	}
	return true
}

// allCleared reports whether no cell is left Hidden.
func (board *Board) allCleared() bool {
	return board.numHidden == 0
}

func (board *Board) flaggedNeighbors(idx int) int {
	numFlagged := 0
	board.EachNeighbor(idx, func(neighbor int) {
		if board.cells[neighbor].state == Flagged {
			numFlagged++
		}
	})
	return numFlagged
}

// Layout renders the board one text row per grid row, for logs.
func (board *Board) Layout() string {
	builder := strings.Builder{}
	builder.Grow(board.NumCells() + board.height)

	for y := 0; y < board.height; y++ {
		if y > 0 {
			builder.WriteByte('\n')
		}
		for x := 0; x < board.width; x++ {
			builder.WriteByte(board.cells[board.Index(x, y)].layoutChar())
		}
	}
	return builder.String()
}

func (board *Board) String() string {
	return fmt.Sprintf("Board(%dx%d, %d mines)", board.width, board.height, board.numMines)
}

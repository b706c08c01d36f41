package random

import (
	"github.com/they4kman/swept/game"
)

// Director reveals a random Hidden cell each time it acts.
type Director struct {
	game *game.Game
}

func (director *Director) Init(g *game.Game) {
	director.game = g
}

func (director *Director) Act() (game.CellAction, bool) {
	if director.game == nil || director.game.Status() != game.InProgress {
		return game.CellAction{}, false
	}

	hiddenCells := make([]int, 0, director.game.NumCells())
	for _, cell := range director.game.Cells() {
		if cell.State() == game.Hidden {
			hiddenCells = append(hiddenCells, cell.Index())
		}
	}

	if len(hiddenCells) == 0 {
		return game.CellAction{}, false
	}

	idx := hiddenCells[director.game.Rand().Intn(len(hiddenCells))]
	return game.CellAction{Index: idx, Kind: game.ActionReveal}, true
}

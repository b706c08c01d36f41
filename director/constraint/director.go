package constraint

import (
	"fmt"
	"math"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/they4kman/swept/director/random"
	"github.com/they4kman/swept/game"
	"github.com/they4kman/swept/util/collections"
)

// Director plays by deduction from the revealed numbers, and guesses only
// when no deduction is left.
type Director struct {
	game     *game.Game
	fallback random.Director
}

// Observation states that exactly numMines of cells are mines.
type Observation struct {
	// Revealed cell the observation was read from, or -1 when derived from others
	origin   int
	numMines int
	cells    collections.Set[int]
}

func (observation Observation) String() string {
	var cellsRepr strings.Builder
	for i, idx := range observation.cells.Sorted() {
		if i > 0 {
			cellsRepr.WriteString(", ")
		}
		cellsRepr.WriteString(fmt.Sprint(idx))
	}

	originRepr := "?"
	if observation.origin >= 0 {
		originRepr = fmt.Sprint(observation.origin)
	}

	return fmt.Sprintf("Obs[%4s, %d ε %s]", originRepr, observation.numMines, cellsRepr.String())
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func (director *Director) Init(g *game.Game) {
	director.game = g
	director.fallback.Init(g)
}

func (director *Director) Act() (game.CellAction, bool) {
	if director.game == nil || director.game.Status() != game.InProgress {
		return game.CellAction{}, false
	}

	observations := director.observe()

	actors := []func([]*Observation) (game.CellAction, bool){
		director.actChord,
		director.actDeliberate,
		director.actSubsets,
		director.actLowestProbability,
	}

	for _, actor := range actors {
		if action, found := actor(observations); found {
			log.WithField("action", action).Debug("director deduced action")
			return action, true
		}
	}

	return director.fallback.Act()
}

// observe reads one observation off every revealed number that still borders
// Hidden cells. Flags are taken at face value.
func (director *Director) observe() []*Observation {
	cells := director.game.Cells()
	observations := make([]*Observation, 0)

	for _, cell := range cells {
		if !cell.IsNumbered() || cell.NumMines() == 0 {
			continue
		}

		observation := &Observation{
			origin:   cell.Index(),
			numMines: cell.NumMines(),
			cells:    collections.NewSet[int](),
		}

		for _, neighbor := range director.game.Neighbors(cell.Index()) {
			switch cells[neighbor].State() {
			case game.Flagged:
				observation.numMines--
			case game.Hidden:
				observation.cells.Add(neighbor)
			}
		}

		if observation.cells.Len() > 0 {
			observations = append(observations, observation)
		}
	}

	return observations
}

func (director *Director) actChord(observations []*Observation) (game.CellAction, bool) {
	for _, observation := range observations {
		if observation.numMines == 0 {
			return game.CellAction{Index: observation.origin, Kind: game.ActionChord}, true
		}
	}
	return game.CellAction{}, false
}

func (director *Director) actDeliberate(observations []*Observation) (game.CellAction, bool) {
	for _, observation := range observations {
		if observation.numMines == observation.cells.Len() {
			return game.CellAction{Index: observation.cells.Sorted()[0], Kind: game.ActionToggleFlag}, true
		}
	}
	return game.CellAction{}, false
}

// actSubsets applies the subset rule: when A's cells all lie in B, the cells
// of B outside A hold the difference of their mine counts.
func (director *Director) actSubsets(observations []*Observation) (game.CellAction, bool) {
	for _, small := range observations {
		for _, large := range observations {
			if small == large || small.cells.Len() >= large.cells.Len() || !small.cells.IsSubsetOf(large.cells) {
				continue
			}

			split := Observation{
				origin:   -1,
				numMines: large.numMines - small.numMines,
				cells:    large.cells.Difference(small.cells),
			}

			switch split.numMines {
			case 0:
				log.WithField("observation", split).Debug("split observation is safe")
				return game.CellAction{Index: split.cells.Sorted()[0], Kind: game.ActionReveal}, true
			case split.cells.Len():
				log.WithField("observation", split).Debug("split observation is all mines")
				return game.CellAction{Index: split.cells.Sorted()[0], Kind: game.ActionToggleFlag}, true
			}
		}
	}
	return game.CellAction{}, false
}

// actLowestProbability guesses the bordering cell least likely to be a mine,
// provided that beats a blind guess.
func (director *Director) actLowestProbability(observations []*Observation) (game.CellAction, bool) {
	cellProbabilities := make(map[int]float64)
	for _, observation := range observations {
		probability := observation.MineProbability()
		for idx := range observation.cells {
			if pastProbability, ok := cellProbabilities[idx]; !ok || probability > pastProbability {
				cellProbabilities[idx] = probability
			}
		}
	}

	if len(cellProbabilities) == 0 {
		return game.CellAction{}, false
	}

	lowestProbability := math.Inf(1)
	lowestProbabilityCells := make([]int, 0)
	for idx, probability := range cellProbabilities {
		switch {
		case probability < lowestProbability:
			lowestProbability = probability
			lowestProbabilityCells = append(lowestProbabilityCells[:0], idx)
		case probability == lowestProbability:
			lowestProbabilityCells = append(lowestProbabilityCells, idx)
		}
	}

	if lowestProbability >= director.blindProbability() {
		return game.CellAction{}, false
	}

	sort.Ints(lowestProbabilityCells)
	idx := lowestProbabilityCells[director.game.Rand().Intn(len(lowestProbabilityCells))]
	return game.CellAction{Index: idx, Kind: game.ActionReveal}, true
}

// blindProbability is the chance that an arbitrary Hidden cell is a mine.
func (director *Director) blindProbability() float64 {
	numHidden := 0
	for _, cell := range director.game.Cells() {
		if cell.State() == game.Hidden {
			numHidden++
		}
	}
	if numHidden == 0 {
		return 1
	}
	return float64(director.game.MinesLeft()) / float64(numHidden)
}

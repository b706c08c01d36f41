package game

import "fmt"

// Geometry answers adjacency questions for a width x height grid whose cells
// are addressed row-major by a linear index. It holds no mutable state.
type Geometry struct {
	width, height int // in number of cells
}

func NewGeometry(width, height int) Geometry {
	return Geometry{width: width, height: height}
}

func (geom Geometry) Width() int {
	return geom.width
}

func (geom Geometry) Height() int {
	return geom.height
}

func (geom Geometry) NumCells() int {
	return geom.width * geom.height
}

func (geom Geometry) Contains(idx int) bool {
	return idx >= 0 && idx < geom.NumCells()
}

func (geom Geometry) Index(x, y int) int {
	return y*geom.width + x
}

func (geom Geometry) Coords(idx int) (x, y int) {
	return idx % geom.width, idx / geom.width
}

// Neighbors returns the indexes of the up to 8 cells touching idx.
func (geom Geometry) Neighbors(idx int) []int {
	neighbors := make([]int, 0, 8)
	geom.EachNeighbor(idx, func(neighbor int) {
		neighbors = append(neighbors, neighbor)
	})
	return neighbors
}

// EachNeighbor calls fn with every cell touching idx, edges and corners included.
func (geom Geometry) EachNeighbor(idx int, fn func(neighbor int)) {
	geom.mustContain(idx)

	x, y := geom.Coords(idx)
	isAtTopBorder := y < 1
	isAtBottomBorder := y >= geom.height-1

	if x >= 1 {
		fn(idx - 1)

		if !isAtTopBorder {
			fn(idx - geom.width - 1)
		}
		if !isAtBottomBorder {
			fn(idx + geom.width - 1)
		}
	}

	if x < geom.width-1 {
		fn(idx + 1)

		if !isAtTopBorder {
			fn(idx - geom.width + 1)
		}
		if !isAtBottomBorder {
			fn(idx + geom.width + 1)
		}
	}

	if !isAtTopBorder {
		fn(idx - geom.width)
	}
	if !isAtBottomBorder {
		fn(idx + geom.width)
	}
}

// mustContain panics on an index the client could not have derived from the board.
func (geom Geometry) mustContain(idx int) {
	if !geom.Contains(idx) {
		panic(fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, idx, geom.NumCells()))
	}
}

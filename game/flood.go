package game

import "github.com/gammazero/deque"

// Visitor handles one cell taken off the worklist and reports whether the
// flood should continue into its neighbours.
type Visitor func(idx int) (expand bool)

// NeighborGetter feeds every neighbour of idx to fn.
type NeighborGetter func(idx int, fn func(neighbor int))

// flood walks depth-first from starts. Cells are visited once per push; the
// visitor is responsible for ignoring cells it has already handled, which is
// what bounds the walk.
func flood(starts []int, visit Visitor, getNeighbors NeighborGetter) {
	visitStack := deque.New[int]()
	for _, idx := range starts {
		visitStack.PushBack(idx)
	}

	for visitStack.Len() > 0 {
		idx := visitStack.PopBack()
		if !visit(idx) {
			continue
		}

		getNeighbors(idx, func(neighbor int) {
			visitStack.PushBack(neighbor)
		})
	}
}

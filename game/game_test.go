package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFixedGame builds a 4x4 board with mines at 0 and 5:
//
//	O 2 1 0
//	2 O 1 0
//	1 1 1 0
//	0 0 0 0
func newFixedGame(t *testing.T) *Game {
	t.Helper()

	g, err := NewWithMines(GameConfig{Width: 4, Height: 4}, []int{0, 5})
	require.NoError(t, err)
	return g
}

func states(g *Game) []CellState {
	out := make([]CellState, g.NumCells())
	for idx, cell := range g.Cells() {
		out[idx] = cell.State()
	}
	return out
}

func revealedIndexes(g *Game) []int {
	out := make([]int, 0)
	for _, cell := range g.Cells() {
		if cell.State() == Revealed {
			out = append(out, cell.Index())
		}
	}
	return out
}

func TestNew(t *testing.T) {
	g, err := New(GameConfig{Width: 30, Height: 16, MineDensity: 20, Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, InProgress, g.Status())
	assert.Equal(t, 480, g.NumCells())
	assert.Equal(t, 96, g.NumMines())
	assert.Equal(t, int64(7), g.Seed())

	numMines := 0
	for _, cell := range g.Cells() {
		assert.Equal(t, Hidden, cell.State())
		if cell.IsMine() {
			numMines++
		}
	}
	assert.Equal(t, 96, numMines)
}

func TestNewSameSeedSameBoard(t *testing.T) {
	config := GameConfig{Width: 9, Height: 9, MineDensity: 15, Seed: 1234}

	first, err := New(config)
	require.NoError(t, err)
	second, err := New(config)
	require.NoError(t, err)

	assert.Equal(t, first.Layout(), second.Layout())
}

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config GameConfig
	}{
		{name: "zero width", config: GameConfig{Width: 0, Height: 5, MineDensity: 10}},
		{name: "negative height", config: GameConfig{Width: 5, Height: -1, MineDensity: 10}},
		{name: "negative density", config: GameConfig{Width: 5, Height: 5, MineDensity: -1}},
		{name: "density over 100", config: GameConfig{Width: 5, Height: 5, MineDensity: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := NewWithMines(GameConfig{Width: 2, Height: 2}, []int{4})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRevealFloodFill(t *testing.T) {
	g := newFixedGame(t)

	update := g.Reveal(15)

	expected := []int{2, 3, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	assert.ElementsMatch(t, expected, update.Changed)
	assert.ElementsMatch(t, expected, revealedIndexes(g))
	assert.Equal(t, Hidden, g.Cell(0).State())
	assert.Equal(t, Hidden, g.Cell(5).State())
	assert.Equal(t, Hidden, g.Cell(1).State())
	assert.Equal(t, Hidden, g.Cell(4).State())
	assert.Equal(t, InProgress, g.Status())
	assert.False(t, update.StatusChanged)
}

func TestRevealNumberDoesNotFlood(t *testing.T) {
	g := newFixedGame(t)

	update := g.Reveal(6)

	assert.Equal(t, []int{6}, update.Changed)
	assert.Equal(t, "1", g.Cell(6).DisplayValue())
}

func TestRevealIsIdempotent(t *testing.T) {
	g := newFixedGame(t)

	g.Reveal(15)
	once := states(g)

	update := g.Reveal(15)
	assert.Empty(t, update.Changed)
	assert.Equal(t, once, states(g))
}

func TestRevealFlaggedIsNoop(t *testing.T) {
	g := newFixedGame(t)

	g.ToggleFlag(12)
	update := g.Reveal(12)

	assert.Empty(t, update.Changed)
	assert.Equal(t, Flagged, g.Cell(12).State())
}

func TestFloodFillSkipsFlags(t *testing.T) {
	g := newFixedGame(t)

	g.ToggleFlag(3)
	g.Reveal(15)

	assert.Equal(t, Flagged, g.Cell(3).State())
	assert.Equal(t, Revealed, g.Cell(7).State())
}

func TestRevealAllZeroBoard(t *testing.T) {
	g, err := New(GameConfig{Width: 40, Height: 40, MineDensity: 0, Seed: 3})
	require.NoError(t, err)

	update := g.Reveal(820)

	assert.Len(t, update.Changed, 1600)
	assert.Equal(t, Won, g.Status())
	assert.True(t, update.StatusChanged)
	for _, cell := range g.Cells() {
		assert.Equal(t, Revealed, cell.State())
		assert.Equal(t, "", cell.DisplayValue())
	}
}

func TestToggleFlag(t *testing.T) {
	g := newFixedGame(t)

	update := g.ToggleFlag(5)
	assert.Equal(t, []int{5}, update.Changed)
	assert.Equal(t, Flagged, g.Cell(5).State())
	assert.Equal(t, 1, g.NumFlags())
	assert.Equal(t, 1, g.MinesLeft())

	g.ToggleFlag(5)
	assert.Equal(t, Hidden, g.Cell(5).State())
	assert.Equal(t, 0, g.NumFlags())
}

func TestToggleFlagOnRevealedIsNoop(t *testing.T) {
	g := newFixedGame(t)

	g.Reveal(6)
	update := g.ToggleFlag(6)

	assert.Empty(t, update.Changed)
	assert.Equal(t, Revealed, g.Cell(6).State())
	assert.Equal(t, 0, g.NumFlags())
}

func TestCellTransitionErrors(t *testing.T) {
	cell := Cell{idx: 3, state: Revealed}

	assert.ErrorIs(t, cell.reveal(), ErrCannotReveal)
	assert.ErrorIs(t, cell.toggleFlag(), ErrCannotFlag)
	assert.Equal(t, Revealed, cell.state)

	detonated := Cell{idx: 4, isMine: true, state: DetonatedMine}
	assert.ErrorIs(t, detonated.toggleFlag(), ErrCannotFlag)

	flagged := Cell{idx: 5, state: Flagged}
	err := flagged.reveal()
	assert.ErrorIs(t, err, ErrCannotReveal)
	assert.EqualError(t, err, "cannot reveal cell: cell 5 is flagged")
}

func TestChordReveal(t *testing.T) {
	tests := []struct {
		name         string
		flags        []int
		expectReveal bool
	}{
		{name: "correct flags", flags: []int{5}, expectReveal: true},
		{name: "too few flags", flags: nil},
		{name: "too many flags", flags: []int{5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFixedGame(t)
			g.Reveal(15)
			for _, idx := range tt.flags {
				g.ToggleFlag(idx)
			}
			before := states(g)

			update := g.ChordReveal(6)

			if tt.expectReveal {
				assert.Equal(t, []int{1}, update.Changed)
				assert.Equal(t, Revealed, g.Cell(1).State())
				assert.Equal(t, Flagged, g.Cell(5).State())
			} else {
				assert.Empty(t, update.Changed)
				assert.Equal(t, before, states(g))
			}
			assert.Equal(t, InProgress, g.Status())
		})
	}
}

func TestChordRevealFloodsThroughZeros(t *testing.T) {
	g, err := NewWithMines(GameConfig{Width: 4, Height: 4}, []int{0})
	require.NoError(t, err)

	g.Reveal(1)
	g.ToggleFlag(0)
	update := g.ChordReveal(1)

	// 4 and 5 are numbered, 2 is zero and floods the rest of the board
	assert.Len(t, update.Changed, 14+1)
	assert.Equal(t, Won, g.Status())
	assert.Equal(t, FlaggedAtWin, g.Cell(0).State())
}

func TestChordRevealIneligibleCells(t *testing.T) {
	g := newFixedGame(t)

	assert.Empty(t, g.ChordReveal(6).Changed, "hidden cell")

	g.ToggleFlag(5)
	assert.Empty(t, g.ChordReveal(5).Changed, "flagged cell")

	g.Reveal(15)
	assert.Empty(t, g.ChordReveal(15).Changed, "zero cell with no hidden neighbours")
}

func TestChordRevealWrongFlagDetonates(t *testing.T) {
	g := newFixedGame(t)
	g.Reveal(15)

	// 2 borders one mine, at 5; the flag is on the wrong neighbour
	g.ToggleFlag(1)
	update := g.ChordReveal(2)

	assert.Equal(t, Lost, g.Status())
	assert.True(t, update.StatusChanged)
	assert.Equal(t, DetonatedMine, g.Cell(5).State())
	assert.Equal(t, Revealed, g.Cell(0).State())
	assert.Equal(t, Flagged, g.Cell(1).State())
}

func TestRevealMineLoses(t *testing.T) {
	g := newFixedGame(t)
	g.ToggleFlag(5)

	update := g.Reveal(0)

	assert.Equal(t, Lost, g.Status())
	assert.Equal(t, Lost, update.Status)
	assert.True(t, update.StatusChanged)
	assert.Equal(t, []int{0, 5}, update.Changed)

	assert.Equal(t, DetonatedMine, g.Cell(0).State())
	assert.Equal(t, Revealed, g.Cell(5).State(), "flagged mines are exposed too")
	assert.Equal(t, MineGlyph, g.Cell(5).DisplayValue())
	assert.Equal(t, 0, g.NumFlags())

	for _, idx := range []int{1, 2, 3, 4, 6, 15} {
		assert.Equal(t, Hidden, g.Cell(idx).State())
	}
}

func TestActionsAfterGameOverAreNoops(t *testing.T) {
	g := newFixedGame(t)
	g.Reveal(0)
	require.Equal(t, Lost, g.Status())
	before := states(g)

	assert.Empty(t, g.Reveal(15).Changed)
	assert.Empty(t, g.ToggleFlag(15).Changed)
	assert.Empty(t, g.ChordReveal(15).Changed)
	assert.Equal(t, before, states(g))
	assert.Equal(t, Lost, g.Status())
}

func TestWinByRevealingAndFlagging(t *testing.T) {
	g := newFixedGame(t)

	g.Reveal(15)
	g.Reveal(1)
	g.Reveal(4)
	assert.Equal(t, InProgress, g.Status(), "mines are still hidden")

	g.ToggleFlag(0)
	assert.Equal(t, InProgress, g.Status())

	update := g.ToggleFlag(5)
	assert.Equal(t, Won, g.Status())
	assert.True(t, update.StatusChanged)
	assert.Equal(t, []int{5, 0, 5}, update.Changed)
	assert.Equal(t, FlaggedAtWin, g.Cell(0).State())
	assert.Equal(t, FlaggedAtWin, g.Cell(5).State())
}

func TestWinIgnoresFlagCorrectness(t *testing.T) {
	g, err := NewWithMines(GameConfig{Width: 2, Height: 2}, []int{0})
	require.NoError(t, err)

	for idx := 0; idx < 4; idx++ {
		g.ToggleFlag(idx)
	}

	assert.Equal(t, Won, g.Status())
	for _, cell := range g.Cells() {
		assert.Equal(t, FlaggedAtWin, cell.State())
	}
}

func TestReset(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Game)
		from  GameStatus
	}{
		{name: "in progress", setup: func(g *Game) { g.Reveal(15); g.ToggleFlag(5) }, from: InProgress},
		{name: "lost", setup: func(g *Game) { g.Reveal(0) }, from: Lost},
		{name: "won", setup: func(g *Game) {
			g.Reveal(15)
			g.Reveal(1)
			g.Reveal(4)
			g.ToggleFlag(0)
			g.ToggleFlag(5)
		}, from: Won},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFixedGame(t)
			tt.setup(g)
			require.Equal(t, tt.from, g.Status())

			update := g.Reset()

			assert.True(t, update.Reset)
			assert.Len(t, update.Changed, 16)
			assert.Equal(t, InProgress, g.Status())
			assert.Equal(t, 0, g.NumFlags())
			for _, cell := range g.Cells() {
				assert.Equal(t, Hidden, cell.State())
			}
		})
	}
}

func TestResetRegeneratesMines(t *testing.T) {
	g, err := New(GameConfig{Width: 30, Height: 16, MineDensity: 20, Seed: 99})
	require.NoError(t, err)

	before := g.Layout()
	g.Reset()

	assert.NotEqual(t, before, g.Layout())
	assert.Equal(t, 96, g.NumMines())
}

func TestListenerCalledOncePerAction(t *testing.T) {
	g := newFixedGame(t)

	updates := make([]Update, 0)
	g.SetListener(func(update Update) {
		updates = append(updates, update)
	})

	returned := g.Reveal(15)
	g.Reveal(15) // no-op, no notification
	g.Reveal(0)

	require.Len(t, updates, 2)
	assert.Equal(t, returned, updates[0])
	assert.Equal(t, Lost, updates[1].Status)
	assert.True(t, updates[1].StatusChanged)

	g.Reset()
	require.Len(t, updates, 3)
	assert.True(t, updates[2].Reset)
}

func TestApply(t *testing.T) {
	g := newFixedGame(t)

	g.Apply(CellAction{Index: 15, Kind: ActionReveal})
	g.Apply(CellAction{Index: 5, Kind: ActionToggleFlag})
	g.Apply(CellAction{Index: 6, Kind: ActionChord})

	assert.Equal(t, Revealed, g.Cell(15).State())
	assert.Equal(t, Flagged, g.Cell(5).State())
	assert.Equal(t, Revealed, g.Cell(1).State())
}

func TestActionIndexOutOfRange(t *testing.T) {
	g := newFixedGame(t)

	assert.Panics(t, func() { g.Reveal(16) })
	assert.Panics(t, func() { g.ToggleFlag(-1) })
	assert.Panics(t, func() { g.ChordReveal(100) })
	assert.Panics(t, func() { g.Cell(16) })
}

func TestDisplayValue(t *testing.T) {
	g := newFixedGame(t)

	assert.Equal(t, MineGlyph, g.Cell(0).DisplayValue())
	assert.Equal(t, "2", g.Cell(1).DisplayValue())
	assert.Equal(t, "1", g.Cell(2).DisplayValue())
	assert.Equal(t, "", g.Cell(15).DisplayValue())
}

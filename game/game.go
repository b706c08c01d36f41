package game

import (
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
)

type GameConfig struct {
	Width, Height int
	// Percentage of cells seeded with mines, 0-100
	MineDensity int

	// Seed for mine placement; 0 picks one from the clock
	Seed int64
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		MineDensity: DefaultMineDensity,
	}
}

func (config GameConfig) Validate() error {
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, config.Width, config.Height)
	}
	if config.MineDensity < 0 || config.MineDensity > 100 {
		return fmt.Errorf("%w: mine density must be between 0 and 100, got %d", ErrInvalidConfig, config.MineDensity)
	}
	return nil
}

// CellAction is one player move: what to do, and to which cell.
type CellAction struct {
	Index int
	Kind  ActionKind
}

func (action CellAction) String() string {
	return fmt.Sprintf("%s(%d)", action.Kind, action.Index)
}

// Update describes what a single engine call changed.
type Update struct {
	// Indexes of cells whose state changed, in the order they changed
	Changed []int

	Status        GameStatus
	StatusChanged bool

	// Set when the whole board was regenerated
	Reset bool
}

// Listener is notified once after every engine call that changed something.
type Listener func(Update)

// Game owns the board and the game status of one game at a time. It is not
// safe for concurrent use; every call runs to completion before returning.
type Game struct {
	config GameConfig
	geom   Geometry
	fixed  []int

	board  *Board
	status GameStatus

	seed int64
	rand *rand.Rand

	listener Listener
	update   *Update
}

// New creates a game with randomly placed mines.
func New(config GameConfig) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game := &Game{
		config: config,
		geom:   NewGeometry(config.Width, config.Height),
		seed:   seed,
		rand:   rand.New(rand.NewSource(seed)),
	}
	game.newBoard()
	return game, nil
}

// NewWithMines creates a game whose mines sit exactly at the given indexes.
// Reset keeps the same placement. MineDensity and Seed are ignored.
func NewWithMines(config GameConfig, mines []int) (*Game, error) {
	config.MineDensity = 0
	if err := config.Validate(); err != nil {
		return nil, err
	}

	geom := NewGeometry(config.Width, config.Height)
	for _, idx := range mines {
		if !geom.Contains(idx) {
			return nil, fmt.Errorf("%w: mine %d not in [0, %d)", ErrInvalidConfig, idx, geom.NumCells())
		}
	}

	game := &Game{
		config: config,
		geom:   geom,
		fixed:  append([]int(nil), mines...),
	}
	game.newBoard()
	return game, nil
}

func (game *Game) newBoard() {
	if game.fixed != nil {
		game.board = createBoardWithMines(game.geom, game.fixed)
	} else {
		game.board = createBoard(game.geom, game.config.MineDensity, game.rand)
	}
	game.status = InProgress

	log.WithFields(log.Fields{
		"width":  game.geom.Width(),
		"height": game.geom.Height(),
		"mines":  game.board.NumMines(),
		"seed":   game.seed,
	}).Info("new game")
}

func (game *Game) SetListener(listener Listener) {
	game.listener = listener
}

// Reset regenerates the board and starts over, whatever the current status.
func (game *Game) Reset() Update {
	game.newBoard()

	update := Update{
		Changed:       make([]int, game.geom.NumCells()),
		Status:        game.status,
		StatusChanged: true,
		Reset:         true,
	}
	for idx := range update.Changed {
		update.Changed[idx] = idx
	}

	game.notify(update)
	return update
}

// Reveal uncovers a Hidden cell, flood-filling through cells with no
// neighbouring mines. Anything else is a no-op.
func (game *Game) Reveal(idx int) Update {
	return game.act(CellAction{Index: idx, Kind: ActionReveal}, func() {
		if cell := game.board.cellAt(idx); cell.state != Hidden {
			log.WithError(transitionError(ErrCannotReveal, cell)).Debug("ignoring reveal")
			return
		}
		game.reveal([]int{idx})
	})
}

// ToggleFlag flags a Hidden cell or unflags a Flagged one.
func (game *Game) ToggleFlag(idx int) Update {
	return game.act(CellAction{Index: idx, Kind: ActionToggleFlag}, func() {
		cell := game.board.cellAt(idx)
		if err := game.board.toggleFlag(cell); err != nil {
			log.WithError(err).Debug("ignoring flag")
			return
		}
		game.markChanged(idx)
	})
}

// ChordReveal reveals every neighbour of a revealed number once the number
// of flags around it matches the number.
func (game *Game) ChordReveal(idx int) Update {
	return game.act(CellAction{Index: idx, Kind: ActionChord}, func() {
		cell := game.board.cellAt(idx)
		if !cell.IsNumbered() {
			return
		}

		numFlagged := game.board.flaggedNeighbors(idx)
		if numFlagged != cell.numMines {
			log.WithFields(log.Fields{
				"cell":    idx,
				"flagged": numFlagged,
				"mines":   cell.numMines,
			}).Debug("ignoring chord")
			return
		}

		game.reveal(game.geom.Neighbors(idx))
	})
}

// Apply dispatches a CellAction to the matching engine call.
func (game *Game) Apply(action CellAction) Update {
	switch action.Kind {
	case ActionReveal:
		return game.Reveal(action.Index)
	case ActionToggleFlag:
		return game.ToggleFlag(action.Index)
	case ActionChord:
		return game.ChordReveal(action.Index)
	default:
		panic(fmt.Sprintf("unknown action kind %d", action.Kind))
	}
}

func (game *Game) act(action CellAction, perform func()) Update {
	game.geom.mustContain(action.Index)

	log.WithField("action", action).Debug("player action")

	update := Update{Status: game.status}
	if !game.canPlay() {
		return update
	}

	game.update = &update
	defer func() {
		game.update = nil
	}()

	perform()

	if len(update.Changed) > 0 {
		game.evaluate()
		game.notify(update)
	}
	return update
}

func (game *Game) canPlay() bool {
	return game.status == InProgress
}

// reveal flood-fills from starts. It does not touch the game status; the
// caller evaluates win and loss once the whole fill is done.
func (game *Game) reveal(starts []int) {
	flood(
		starts,
		func(idx int) bool {
			cell := &game.board.cells[idx]
			if err := game.board.reveal(cell); err != nil {
				return false
			}
			game.markChanged(idx)

			return cell.state == Revealed && cell.numMines == 0
		},
		game.geom.EachNeighbor,
	)
}

// evaluate settles the game status after an action. The loss check comes first:
// exposing the remaining mines also clears the last Hidden cells.
func (game *Game) evaluate() {
	for _, idx := range game.update.Changed {
		if game.board.cells[idx].state == DetonatedMine {
			game.lose()
			return
		}
	}

	if game.board.allCleared() {
		game.win()
	}
}

func (game *Game) win() {
	game.setStatus(Won)

	for idx := range game.board.cells {
		if game.board.cells[idx].markWon() {
			game.markChanged(idx)
		}
	}
	game.endGame()
}

func (game *Game) lose() {
	game.setStatus(Lost)

	for idx := range game.board.cells {
		if game.board.exposeMine(&game.board.cells[idx]) {
			game.markChanged(idx)
		}
	}
	game.endGame()
}

func (game *Game) setStatus(status GameStatus) {
	game.status = status
	game.update.Status = status
	game.update.StatusChanged = true
}

func (game *Game) endGame() {
	entry := log.WithFields(log.Fields{
		"status": game.status,
		"seed":   game.seed,
		"flags":  game.board.numFlags,
	})
	entry.Info("game over")
	if log.IsLevelEnabled(log.DebugLevel) {
		entry.Debugf("final board:\n%s", game.board.Layout())
	}
}

func (game *Game) markChanged(idx int) {
	game.update.Changed = append(game.update.Changed, idx)
}

func (game *Game) notify(update Update) {
	if game.listener != nil {
		game.listener(update)
	}
}

func (game *Game) Status() GameStatus {
	return game.status
}

func (game *Game) Cell(idx int) Cell {
	return *game.board.cellAt(idx)
}

// Cells returns a copy of every cell, indexed like the board.
func (game *Game) Cells() []Cell {
	return append([]Cell(nil), game.board.cells...)
}

func (game *Game) Geometry() Geometry {
	return game.geom
}

func (game *Game) Width() int {
	return game.geom.Width()
}

func (game *Game) Height() int {
	return game.geom.Height()
}

func (game *Game) NumCells() int {
	return game.geom.NumCells()
}

func (game *Game) Neighbors(idx int) []int {
	return game.geom.Neighbors(idx)
}

func (game *Game) NumMines() int {
	return game.board.NumMines()
}

func (game *Game) NumFlags() int {
	return game.board.numFlags
}

// MinesLeft is the mine count minus the flags placed; it goes negative when
// the player over-flags.
func (game *Game) MinesLeft() int {
	return game.board.NumMines() - game.board.numFlags
}

func (game *Game) Seed() int64 {
	return game.seed
}

// Rand is the game's random source, shared with directors so a seeded game
// plays back the same way.
func (game *Game) Rand() *rand.Rand {
	if game.rand == nil {
		game.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return game.rand
}

func (game *Game) Layout() string {
	return game.board.Layout()
}

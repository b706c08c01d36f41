package game

type CellState int
type GameStatus int

const (
	Hidden CellState = iota
	Flagged
	Revealed
	DetonatedMine
	// FlaggedAtWin is set by the engine on every Flagged cell once the game is won
	FlaggedAtWin
)

func (state CellState) String() string {
	switch state {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	case DetonatedMine:
		return "detonated"
	case FlaggedAtWin:
		return "flagged-at-win"
	default:
		return "unknown"
	}
}

const (
	InProgress GameStatus = iota
	Won
	Lost
)

func (status GameStatus) String() string {
	switch status {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

type ActionKind int

const (
	ActionReveal ActionKind = iota
	ActionToggleFlag
	ActionChord
)

func (kind ActionKind) String() string {
	switch kind {
	case ActionReveal:
		return "reveal"
	case ActionToggleFlag:
		return "toggle-flag"
	case ActionChord:
		return "chord"
	default:
		return "unknown"
	}
}

const (
	MineGlyph = "*"

	DefaultWidth       = 16
	DefaultHeight      = 16
	DefaultMineDensity = 15
)

package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/they4kman/swept/game"
)

const FlagGlyph = "⚑"

var (
	slateGray = tcell.NewRGBColor(112, 128, 144)
	nearBlack = tcell.NewRGBColor(16, 16, 16)

	hiddenStyle       = tcell.StyleDefault.Foreground(slateGray).Background(slateGray)
	flaggedStyle      = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(slateGray)
	revealedStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(nearBlack)
	detonatedStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
	flaggedAtWinStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorGreen)

	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	helpStyle   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

var statusFaces = map[game.GameStatus]string{
	game.InProgress: ":)",
	game.Won:        "B)",
	game.Lost:       "X(",
}

// Appearance maps a cell's state and display value to the label and style it
// is drawn with.
func Appearance(state game.CellState, value string) (string, tcell.Style) {
	switch state {
	case game.Flagged:
		return FlagGlyph, flaggedStyle
	case game.Revealed:
		return value, revealedStyle
	case game.DetonatedMine:
		return value, detonatedStyle
	case game.FlaggedAtWin:
		return FlagGlyph, flaggedAtWinStyle
	default:
		return "", hiddenStyle
	}
}

func statusLine(status game.GameStatus, minesLeft int) string {
	return fmt.Sprintf("%s  %03d", statusFaces[status], minesLeft)
}

var helpLines = []string{
	"Help",
	"",
	"Left click on the cells to uncover what's underneath.",
	"Cells with numbers show how many mines are adjacent.",
	"Right click on a cell to mark that there's a mine underneath.",
	"Middle click on a number whose mines are all flagged",
	"  to uncover the rest of its neighbours.",
	"Game is won when all cells are uncovered or flagged.",
	"Game is lost when you uncover a mine and it explodes.",
	"",
	"# Shortcuts",
	"arrows  move cursor",
	"space   uncover",
	"f       flag",
	"c       chord",
	"h       let the computer make one move",
	"a       toggle computer autoplay",
	"r       restart game (or click the face)",
	"q       quit game",
}

package tui

import "github.com/they4kman/swept/game"

const (
	cellWidth = 3
	cellGap   = 1

	gutter       = 2
	statusHeight = 3
)

// layout places the status bar, the grid and the help panel on screen.
type layout struct {
	geom game.Geometry

	gridX, gridY int
	helpX        int
}

func newLayout(geom game.Geometry) layout {
	gridX := gutter
	return layout{
		geom:  geom,
		gridX: gridX,
		gridY: statusHeight + 1,
		helpX: gridX + geom.Width()*(cellWidth+cellGap) + gutter,
	}
}

func (l layout) gridWidth() int {
	return l.geom.Width()*(cellWidth+cellGap) - cellGap
}

// cellOrigin is the screen position of the leftmost column of a cell.
func (l layout) cellOrigin(idx int) (int, int) {
	x, y := l.geom.Coords(idx)
	return l.gridX + x*(cellWidth+cellGap), l.gridY + y
}

// cellAt returns the cell under a screen position; gaps between cells miss.
func (l layout) cellAt(screenX, screenY int) (int, bool) {
	relX, relY := screenX-l.gridX, screenY-l.gridY
	if relX < 0 || relY < 0 {
		return 0, false
	}
	if relX%(cellWidth+cellGap) >= cellWidth {
		return 0, false
	}

	x, y := relX/(cellWidth+cellGap), relY
	if x >= l.geom.Width() || y >= l.geom.Height() {
		return 0, false
	}
	return l.geom.Index(x, y), true
}

func (l layout) inStatusBar(screenX, screenY int) bool {
	return screenY >= 0 && screenY < statusHeight &&
		screenX >= l.gridX && screenX < l.gridX+max(l.gridWidth(), minStatusWidth)
}

const minStatusWidth = 12

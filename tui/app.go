package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"github.com/they4kman/swept/game"
)

type Options struct {
	// Computer player for the hint and autoplay keys; nil disables both
	Director game.Director

	Autoplay         bool
	AutoplayInterval time.Duration
}

// App renders a game on a terminal screen and turns input into engine calls.
// All engine calls happen on the goroutine running Run.
type App struct {
	screen tcell.Screen
	game   *game.Game
	layout layout

	director         game.Director
	autoplay         bool
	autoplayInterval time.Duration

	cursor        int
	cursorVisible bool
	buttons       tcell.ButtonMask
}

type autoplayTick struct{}

func New(screen tcell.Screen, g *game.Game, opts Options) *App {
	app := &App{
		screen:           screen,
		game:             g,
		layout:           newLayout(g.Geometry()),
		director:         opts.Director,
		autoplay:         opts.Autoplay && opts.Director != nil,
		autoplayInterval: opts.AutoplayInterval,
	}

	if app.director != nil {
		app.director.Init(g)
	}
	g.SetListener(app.onUpdate)
	return app
}

// Run draws the game and handles events until the player quits. The screen
// must already be initialised; Run finalises it before returning.
func (app *App) Run() error {
	defer app.screen.Fini()

	app.screen.EnableMouse()
	app.screen.HideCursor()
	app.draw()

	done := make(chan struct{})
	defer close(done)
	if app.director != nil && app.autoplayInterval > 0 {
		go app.tick(done)
	}

	for {
		ev := app.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if quit := app.handleEvent(ev); quit {
			return nil
		}
		app.screen.Show()
	}
}

// tick posts autoplay events; the event loop decides whether to act on them.
func (app *App) tick(done <-chan struct{}) {
	ticker := time.NewTicker(app.autoplayInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			// A full queue just drops this tick
			_ = app.screen.PostEvent(tcell.NewEventInterrupt(autoplayTick{}))
		}
	}
}

func (app *App) handleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
		app.draw()
	case *tcell.EventKey:
		return app.handleKey(ev)
	case *tcell.EventMouse:
		app.handleMouse(ev)
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(autoplayTick); ok && app.autoplay {
			app.step()
		}
	}
	return false
}

func (app *App) handleKey(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		app.moveCursor(0, -1)
	case tcell.KeyDown:
		app.moveCursor(0, 1)
	case tcell.KeyLeft:
		app.moveCursor(-1, 0)
	case tcell.KeyRight:
		app.moveCursor(1, 0)
	case tcell.KeyEnter:
		app.game.Reveal(app.cursor)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'r', 'R':
			app.game.Reset()
		case ' ':
			app.game.Reveal(app.cursor)
		case 'f', 'F':
			app.game.ToggleFlag(app.cursor)
		case 'c', 'C':
			app.game.ChordReveal(app.cursor)
		case 'h', 'H':
			app.step()
		case 'a', 'A':
			app.autoplay = !app.autoplay && app.director != nil
			log.WithField("autoplay", app.autoplay).Info("toggled autoplay")
		}
	}
	return false
}

// handleMouse acts on button presses only; holding or releasing a button
// does nothing.
func (app *App) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons &^ app.buttons
	app.buttons = buttons

	if pressed == tcell.ButtonNone {
		return
	}

	x, y := ev.Position()
	if app.layout.inStatusBar(x, y) {
		if pressed&tcell.Button1 != 0 {
			app.game.Reset()
		}
		return
	}

	idx, ok := app.layout.cellAt(x, y)
	if !ok {
		return
	}

	switch {
	case pressed&tcell.Button1 != 0:
		app.game.Reveal(idx)
	case pressed&tcell.Button2 != 0:
		app.game.ToggleFlag(idx)
	case pressed&tcell.Button3 != 0:
		app.game.ChordReveal(idx)
	}
}

func (app *App) moveCursor(dx, dy int) {
	geom := app.game.Geometry()
	x, y := geom.Coords(app.cursor)
	x = min(max(x+dx, 0), geom.Width()-1)
	y = min(max(y+dy, 0), geom.Height()-1)

	previous := app.cursor
	app.cursor = geom.Index(x, y)
	app.cursorVisible = true

	app.drawCell(previous)
	app.drawCell(app.cursor)
}

// step applies one move from the director.
func (app *App) step() {
	if app.director == nil {
		return
	}

	action, ok := app.director.Act()
	if !ok {
		return
	}
	app.game.Apply(action)
}

func (app *App) onUpdate(update game.Update) {
	if update.Reset && app.director != nil {
		app.director.Init(app.game)
	}

	for _, idx := range update.Changed {
		app.drawCell(idx)
	}
	app.drawStatus()
}

func (app *App) draw() {
	app.screen.Clear()

	app.drawStatus()
	for idx := 0; idx < app.game.NumCells(); idx++ {
		app.drawCell(idx)
	}
	app.drawHelp()

	app.screen.Show()
}

func (app *App) drawCell(idx int) {
	cell := app.game.Cell(idx)
	label, style := Appearance(cell.State(), cell.DisplayValue())
	if app.cursorVisible && idx == app.cursor {
		style = style.Reverse(true)
	}

	x, y := app.layout.cellOrigin(idx)
	runes := []rune(label)
	for col := 0; col < cellWidth; col++ {
		r := ' '
		// Labels are at most one glyph wide; centre it
		if labelCol := col - (cellWidth-len(runes))/2; labelCol >= 0 && labelCol < len(runes) {
			r = runes[labelCol]
		}
		app.screen.SetContent(x+col, y, r, nil, style)
	}
}

func (app *App) drawStatus() {
	width := max(app.layout.gridWidth(), minStatusWidth)
	line := statusLine(app.game.Status(), app.game.MinesLeft())

	for row := 0; row < statusHeight; row++ {
		for col := 0; col < width; col++ {
			app.screen.SetContent(app.layout.gridX+col, row, ' ', nil, statusStyle)
		}
	}
	drawText(app.screen, app.layout.gridX+(width-len(line))/2, statusHeight/2, line, statusStyle)
}

func (app *App) drawHelp() {
	for row, line := range helpLines {
		drawText(app.screen, app.layout.helpX, app.layout.gridY+row, line, helpStyle)
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

package game

// Director plays the game on the player's behalf. It only reads the game;
// whoever drives it applies the returned action through Game.Apply.
type Director interface {
	/**
	 * Attach the director to a game; called again after every reset
	 */
	Init(*Game)

	/**
	 * Decide the next action, or report false when there is nothing to do
	 */
	Act() (CellAction, bool)
}

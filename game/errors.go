package game

import (
	"errors"
	"fmt"
)

var (
	// ErrCannotReveal is returned when revealing a cell that is not Hidden.
	ErrCannotReveal = errors.New("cannot reveal cell")
	// ErrCannotFlag is returned when toggling the flag of a cell that is neither Hidden nor Flagged.
	ErrCannotFlag = errors.New("cannot toggle flag")

	ErrInvalidConfig   = errors.New("invalid game config")
	ErrIndexOutOfRange = errors.New("cell index out of range")
)

func transitionError(err error, cell *Cell) error {
	return fmt.Errorf("%w: cell %d is %s", err, cell.idx, cell.state)
}

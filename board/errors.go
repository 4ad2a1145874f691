package board

import "errors"

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrOccupied is returned when placing onto a cell that already holds a color.
	ErrOccupied = errors.New("cell occupied")
	// ErrInvalidConfig is returned by New when the configuration cannot produce a playable board.
	ErrInvalidConfig = errors.New("invalid board config")
	// ErrSpawnBlocked is returned by the tick in which the next pair could not enter the grid.
	ErrSpawnBlocked = errors.New("spawn blocked")
	// ErrGameOver is returned by every tick after the board has ended.
	ErrGameOver = errors.New("game over")
)

package errors

import "errors"

var (
	ErrInvalidSize      = errors.New("board extent must be positive")
	ErrOutOfBounds      = errors.New("position is outside the lattice")
	ErrOccupiedPosition = errors.New("position is already occupied")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrKoViolation      = errors.New("recapture forbidden by ko")
	ErrSuicideMove      = errors.New("move would leave own group without liberties")
	ErrEmptyPosition    = errors.New("position is empty")
	ErrInvalidColor     = errors.New("invalid stone color")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrGameNotFound     = errors.New("game not found")
	ErrSessionClosed    = errors.New("game session closed")
	ErrInternal         = errors.New("internal error")
)

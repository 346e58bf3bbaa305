package rules

import (
	"fmt"

	"cubego/internal/domain/board"
)

// MoveError is returned for every rejected move. Err is one of the sentinel errors from
// cubego/internal/errors, so callers match it with errors.Is.
type MoveError struct {
	Pos   board.Position
	Color board.Color
	Err   error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s at %s rejected: %v", e.Color, e.Pos, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

func reject(pos board.Position, c board.Color, err error) error {
	return &MoveError{Pos: pos, Color: c, Err: err}
}

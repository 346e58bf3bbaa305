package rules

import (
	"cubego/internal/domain/board"
	errs "cubego/internal/errors"
)

// snapshot is the engine state before an accepted move or pass.
type snapshot struct {
	board     *board.Board
	turn      board.Color
	ko        board.Position
	hasKo     bool
	prisoners [3]int
}

func (e *Engine) snapshot(b *board.Board) snapshot {
	return snapshot{
		board:     b,
		turn:      e.turn,
		ko:        e.ko,
		hasKo:     e.hasKo,
		prisoners: e.prisoners,
	}
}

func (e *Engine) CanUndo() bool {
	return len(e.history) > 0
}

// Undo takes back the last accepted move or pass.
func (e *Engine) Undo() error {
	if len(e.history) == 0 {
		return errs.ErrNothingToUndo
	}
	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]

	e.board = last.board
	e.turn = last.turn
	e.ko = last.ko
	e.hasKo = last.hasKo
	e.prisoners = last.prisoners
	return nil
}

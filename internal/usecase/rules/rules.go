// Package rules applies the Go rules on top of a 3D lattice board. An Engine is the only
// mutator of its board and is not safe for concurrent use; serialize calls or go through
// usecase/game sessions.
package rules

import (
	"fmt"

	"cubego/internal/domain/board"
	errs "cubego/internal/errors"
)

// MoveResult is what a committed move reports back to rendering and UI layers.
type MoveResult struct {
	Captured []board.Position `json:"captured"`
	NextTurn board.Color      `json:"next_turn"`
}

type Engine struct {
	board     *board.Board
	turn      board.Color
	ko        board.Position
	hasKo     bool
	prisoners [3]int
	history   []snapshot
}

func NewEngine(size int) (*Engine, error) {
	b, err := board.New(size)
	if err != nil {
		return nil, err
	}
	return &Engine{board: b, turn: board.Black}, nil
}

func (e *Engine) Size() int {
	return e.board.Size()
}

func (e *Engine) Turn() board.Color {
	return e.turn
}

// Ko returns the position the player to move may not play at, if any.
func (e *Engine) Ko() (board.Position, bool) {
	return e.ko, e.hasKo
}

// Prisoners returns how many stones of color c have been captured.
func (e *Engine) Prisoners(c board.Color) int {
	if !c.IsStone() {
		return 0
	}
	return e.prisoners[c]
}

// MoveNumber counts accepted moves and passes.
func (e *Engine) MoveNumber() int {
	return len(e.history)
}

func (e *Engine) Get(pos board.Position) (board.Color, error) {
	return e.board.Get(pos)
}

func (e *Engine) Stones() []board.Stone {
	return e.board.Stones()
}

// AttemptMove plays color at pos. It either commits the move completely or returns a
// *MoveError and leaves board, turn and ko untouched.
func (e *Engine) AttemptMove(pos board.Position, color board.Color) (MoveResult, error) {
	if err := e.precheck(pos, color); err != nil {
		return MoveResult{}, err
	}

	sim, err := e.simulate(pos, color)
	if err != nil {
		return MoveResult{}, err
	}

	prev := e.board.Clone()
	sim.journal.rollback(prev)
	e.history = append(e.history, e.snapshot(prev))

	e.prisoners[color.Opposite()] += len(sim.captured)
	e.ko, e.hasKo = koPoint(sim)
	e.turn = color.Opposite()

	return MoveResult{Captured: sim.captured, NextTurn: e.turn}, nil
}

// IsLegal runs every AttemptMove check without changing anything.
func (e *Engine) IsLegal(pos board.Position, color board.Color) error {
	if err := e.precheck(pos, color); err != nil {
		return err
	}
	sim, err := e.simulate(pos, color)
	if err != nil {
		return err
	}
	sim.journal.rollback(e.board)
	return nil
}

// Pass gives the turn away. It is always legal for the player to move and clears ko.
func (e *Engine) Pass(color board.Color) error {
	if color != e.turn {
		return fmt.Errorf("%w: %s passed on %s's turn", errs.ErrNotYourTurn, color, e.turn)
	}
	e.history = append(e.history, e.snapshot(e.board.Clone()))
	e.hasKo = false
	e.ko = board.Position{}
	e.turn = color.Opposite()
	return nil
}

// Reset empties the board and starts over with Black to move.
func (e *Engine) Reset() {
	b, _ := board.New(e.board.Size())
	*e = Engine{board: b, turn: board.Black}
}

func (e *Engine) precheck(pos board.Position, color board.Color) error {
	if color != e.turn {
		return reject(pos, color, errs.ErrNotYourTurn)
	}
	occupant, err := e.board.Get(pos)
	if err != nil {
		return reject(pos, color, errs.ErrOutOfBounds)
	}
	if occupant != board.Empty {
		return reject(pos, color, errs.ErrOccupiedPosition)
	}
	if e.hasKo && e.ko == pos {
		return reject(pos, color, errs.ErrKoViolation)
	}
	return nil
}

type simulation struct {
	pos      board.Position
	captured []board.Position
	own      board.Group
	journal  journal
}

// simulate places the stone and removes dead opposing groups directly on the board. On
// success the board holds the post-move position and the journal can undo it; on a suicide
// the journal has already been rolled back.
func (e *Engine) simulate(pos board.Position, color board.Color) (*simulation, error) {
	sim := &simulation{pos: pos}
	if err := sim.journal.place(e.board, pos, color); err != nil {
		return nil, reject(pos, color, err)
	}

	opponent := color.Opposite()
	for n := range e.board.Neighbors(pos) {
		// an earlier neighbor may already have taken this group off the board
		if c, _ := e.board.Get(n); c != opponent {
			continue
		}
		g, err := e.board.GroupAndLiberties(n)
		if err != nil {
			sim.journal.rollback(e.board)
			return nil, reject(pos, color, err)
		}
		if len(g.Liberties) > 0 {
			continue
		}
		for _, p := range g.Stones.Sorted() {
			sim.journal.remove(e.board, p)
			sim.captured = append(sim.captured, p)
		}
	}

	own, err := e.board.GroupAndLiberties(pos)
	if err != nil {
		sim.journal.rollback(e.board)
		return nil, reject(pos, color, err)
	}
	if len(own.Liberties) == 0 {
		sim.journal.rollback(e.board)
		return nil, reject(pos, color, errs.ErrSuicideMove)
	}
	sim.own = own
	return sim, nil
}

// koPoint reports the recapture point of the single-stone ko shape: exactly one stone was
// captured, and the capturing stone stands alone with that point as its only liberty.
func koPoint(sim *simulation) (board.Position, bool) {
	if len(sim.captured) != 1 || len(sim.own.Stones) != 1 || len(sim.own.Liberties) != 1 {
		return board.Position{}, false
	}
	captured := sim.captured[0]
	if !sim.own.Liberties.Has(captured) {
		return board.Position{}, false
	}
	return captured, true
}

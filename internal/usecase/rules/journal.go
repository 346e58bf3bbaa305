package rules

import "cubego/internal/domain/board"

// journalEntry records one board mutation made while a move is being simulated.
type journalEntry struct {
	pos    board.Position
	color  board.Color
	placed bool
}

// journal is an inverse-operation log. Rolling it back restores the board exactly.
type journal []journalEntry

func (j *journal) place(b *board.Board, pos board.Position, c board.Color) error {
	if err := b.Place(pos, c); err != nil {
		return err
	}
	*j = append(*j, journalEntry{pos: pos, color: c, placed: true})
	return nil
}

func (j *journal) remove(b *board.Board, pos board.Position) {
	if c := b.Remove(pos); c != board.Empty {
		*j = append(*j, journalEntry{pos: pos, color: c})
	}
}

func (j journal) rollback(b *board.Board) {
	for i := len(j) - 1; i >= 0; i-- {
		e := j[i]
		if e.placed {
			b.Remove(e.pos)
			continue
		}
		// the cell was emptied by this journal, so re-placing cannot fail
		_ = b.Place(e.pos, e.color)
	}
}

package board

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	errs "cubego/internal/errors"
)

const DefaultSize = 19

// directions in the fixed -x,+x,-y,+y,-z,+z order
var directions = [6]Position{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// PositionSet is an unordered set of lattice positions.
type PositionSet map[Position]struct{}

func (s PositionSet) Has(p Position) bool {
	_, ok := s[p]
	return ok
}

// Sorted returns the members ordered by Position.Less.
func (s PositionSet) Sorted() []Position {
	return slices.SortedFunc(maps.Keys(s), comparePositions)
}

func comparePositions(a, b Position) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}

// Group is a connected same-colored set of stones together with its liberties.
type Group struct {
	Color     Color
	Stones    PositionSet
	Liberties PositionSet
}

// Board is a sparse N×N×N lattice. Only occupied cells are stored.
type Board struct {
	size   int
	stones map[Position]Color
}

func New(size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidSize, size)
	}
	return &Board{
		size:   size,
		stones: make(map[Position]Color),
	}, nil
}

func (b *Board) Size() int {
	return b.size
}

// Len returns the number of stones on the board.
func (b *Board) Len() int {
	return len(b.stones)
}

func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.size &&
		p.Y >= 0 && p.Y < b.size &&
		p.Z >= 0 && p.Z < b.size
}

func (b *Board) Get(p Position) (Color, error) {
	if !b.InBounds(p) {
		return Empty, fmt.Errorf("%w: %s", errs.ErrOutOfBounds, p)
	}
	return b.stones[p], nil
}

// Place records a stone. The rules engine checks bounds and occupancy before calling it, so any
// error returned here points at a caller bug.
func (b *Board) Place(p Position, c Color) error {
	if !c.IsStone() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidColor, int(c))
	}
	if !b.InBounds(p) {
		return fmt.Errorf("%w: %s", errs.ErrOutOfBounds, p)
	}
	if _, ok := b.stones[p]; ok {
		return fmt.Errorf("%w: %s", errs.ErrOccupiedPosition, p)
	}
	b.stones[p] = c
	return nil
}

// Remove deletes the stone at p and returns its color. Removing an empty cell is a no-op.
func (b *Board) Remove(p Position) Color {
	c, ok := b.stones[p]
	if !ok {
		return Empty
	}
	delete(b.stones, p)
	return c
}

// Neighbors yields the in-bounds 6-connected neighbors of p in -x,+x,-y,+y,-z,+z order.
func (b *Board) Neighbors(p Position) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for _, d := range directions {
			n := Position{X: p.X + d.X, Y: p.Y + d.Y, Z: p.Z + d.Z}
			if !b.InBounds(n) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// GroupAndLiberties walks the group containing p breadth-first.
func (b *Board) GroupAndLiberties(p Position) (Group, error) {
	if !b.InBounds(p) {
		return Group{}, fmt.Errorf("%w: %s", errs.ErrOutOfBounds, p)
	}
	color, ok := b.stones[p]
	if !ok {
		return Group{}, fmt.Errorf("%w: %s", errs.ErrEmptyPosition, p)
	}

	g := Group{
		Color:     color,
		Stones:    PositionSet{p: {}},
		Liberties: make(PositionSet),
	}
	queue := []Position{p}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for n := range b.Neighbors(cur) {
			nc, occupied := b.stones[n]
			switch {
			case !occupied:
				g.Liberties[n] = struct{}{}
			case nc == color && !g.Stones.Has(n):
				g.Stones[n] = struct{}{}
				queue = append(queue, n)
			}
		}
	}
	return g, nil
}

// Stones returns every stone ordered by position, for renderers.
func (b *Board) Stones() []Stone {
	out := make([]Stone, 0, len(b.stones))
	for p, c := range b.stones {
		out = append(out, Stone{Position: p, Color: c})
	}
	slices.SortFunc(out, func(s, o Stone) int {
		return comparePositions(s.Position, o.Position)
	})
	return out
}

func (b *Board) Clone() *Board {
	return &Board{
		size:   b.size,
		stones: maps.Clone(b.stones),
	}
}

func (b *Board) Equal(o *Board) bool {
	return b.size == o.size && maps.Equal(b.stones, o.stones)
}

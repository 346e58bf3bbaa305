package board

import (
	"errors"
	"maps"
	"slices"
	"testing"

	errs "cubego/internal/errors"
)

func mustBoard(t *testing.T, size int) *Board {
	t.Helper()
	b, err := New(size)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	return b
}

func mustPlace(t *testing.T, b *Board, c Color, ps ...Position) {
	t.Helper()
	for _, p := range ps {
		if err := b.Place(p, c); err != nil {
			t.Fatalf("place %s %s: %v", c, p, err)
		}
	}
}

func TestNewRejectsNonPositiveExtent(t *testing.T) {
	for _, size := range []int{0, -1, -19} {
		if _, err := New(size); !errors.Is(err, errs.ErrInvalidSize) {
			t.Fatalf("New(%d) error = %v, want ErrInvalidSize", size, err)
		}
	}
	b := mustBoard(t, 1)
	if b.Size() != 1 || b.Len() != 0 {
		t.Fatalf("unexpected 1x1x1 board: size=%d len=%d", b.Size(), b.Len())
	}
}

func TestGetBoundsAndOccupancy(t *testing.T) {
	b := mustBoard(t, 3)
	mustPlace(t, b, White, Pos(1, 1, 1))

	tests := []struct {
		name string
		pos  Position
		want Color
		err  error
	}{
		{name: "occupied", pos: Pos(1, 1, 1), want: White},
		{name: "empty", pos: Pos(0, 2, 1), want: Empty},
		{name: "negative", pos: Pos(-1, 0, 0), err: errs.ErrOutOfBounds},
		{name: "past extent", pos: Pos(0, 0, 3), err: errs.ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Get(tt.pos)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Get(%s) error = %v, want %v", tt.pos, err, tt.err)
			}
			if got != tt.want {
				t.Fatalf("Get(%s) = %s, want %s", tt.pos, got, tt.want)
			}
		})
	}
}

func TestPlaceGuardsProgrammingErrors(t *testing.T) {
	b := mustBoard(t, 2)
	mustPlace(t, b, Black, Pos(0, 0, 0))

	if err := b.Place(Pos(0, 0, 0), White); !errors.Is(err, errs.ErrOccupiedPosition) {
		t.Fatalf("overwrite error = %v", err)
	}
	if err := b.Place(Pos(2, 0, 0), White); !errors.Is(err, errs.ErrOutOfBounds) {
		t.Fatalf("out of bounds error = %v", err)
	}
	if err := b.Place(Pos(1, 0, 0), Empty); !errors.Is(err, errs.ErrInvalidColor) {
		t.Fatalf("empty color error = %v", err)
	}
	if c, _ := b.Get(Pos(0, 0, 0)); c != Black {
		t.Fatalf("stone overwritten: %s", c)
	}
}

func TestRemove(t *testing.T) {
	b := mustBoard(t, 2)
	mustPlace(t, b, White, Pos(1, 1, 1))

	if got := b.Remove(Pos(1, 1, 1)); got != White {
		t.Fatalf("Remove returned %s", got)
	}
	if got := b.Remove(Pos(1, 1, 1)); got != Empty {
		t.Fatalf("second Remove returned %s", got)
	}
	if b.Len() != 0 {
		t.Fatalf("board not empty: %d", b.Len())
	}
}

func TestNeighborsOrderAndBoundary(t *testing.T) {
	b := mustBoard(t, 3)

	got := slices.Collect(b.Neighbors(Pos(1, 1, 1)))
	want := []Position{
		Pos(0, 1, 1), Pos(2, 1, 1),
		Pos(1, 0, 1), Pos(1, 2, 1),
		Pos(1, 1, 0), Pos(1, 1, 2),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("interior neighbors = %v, want %v", got, want)
	}

	corner := slices.Collect(b.Neighbors(Pos(0, 0, 0)))
	if want := []Position{Pos(1, 0, 0), Pos(0, 1, 0), Pos(0, 0, 1)}; !slices.Equal(corner, want) {
		t.Fatalf("corner neighbors = %v, want %v", corner, want)
	}

	// restartable
	again := slices.Collect(b.Neighbors(Pos(0, 0, 0)))
	if !slices.Equal(corner, again) {
		t.Fatalf("second iteration differs: %v vs %v", corner, again)
	}

	one := mustBoard(t, 1)
	if n := slices.Collect(one.Neighbors(Pos(0, 0, 0))); len(n) != 0 {
		t.Fatalf("1x1x1 board has neighbors: %v", n)
	}
}

func TestNeighborsStopsEarly(t *testing.T) {
	b := mustBoard(t, 3)
	count := 0
	for range b.Neighbors(Pos(1, 1, 1)) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("count = %d", count)
	}
}

func TestGroupAndLiberties(t *testing.T) {
	b := mustBoard(t, 3)
	// an L-shaped black chain plus a white stone touching it
	mustPlace(t, b, Black, Pos(0, 0, 0), Pos(1, 0, 0), Pos(1, 1, 0))
	mustPlace(t, b, White, Pos(0, 1, 0))
	mustPlace(t, b, Black, Pos(2, 2, 2))

	g, err := b.GroupAndLiberties(Pos(0, 0, 0))
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if g.Color != Black {
		t.Fatalf("color = %s", g.Color)
	}
	wantStones := []Position{Pos(0, 0, 0), Pos(1, 0, 0), Pos(1, 1, 0)}
	if got := g.Stones.Sorted(); !slices.Equal(got, wantStones) {
		t.Fatalf("stones = %v, want %v", got, wantStones)
	}
	wantLibs := []Position{
		Pos(0, 0, 1),
		Pos(1, 0, 1),
		Pos(1, 1, 1), Pos(1, 2, 0),
		Pos(2, 0, 0),
		Pos(2, 1, 0),
	}
	if got := g.Liberties.Sorted(); !slices.Equal(got, wantLibs) {
		t.Fatalf("liberties = %v, want %v", got, wantLibs)
	}

	w, err := b.GroupAndLiberties(Pos(0, 1, 0))
	if err != nil {
		t.Fatalf("white group: %v", err)
	}
	if len(w.Stones) != 1 || len(w.Liberties) != 2 {
		t.Fatalf("white group = %d stones, %d liberties", len(w.Stones), len(w.Liberties))
	}
}

func TestGroupAndLibertiesErrors(t *testing.T) {
	b := mustBoard(t, 3)
	if _, err := b.GroupAndLiberties(Pos(1, 1, 1)); !errors.Is(err, errs.ErrEmptyPosition) {
		t.Fatalf("empty seed error = %v", err)
	}
	if _, err := b.GroupAndLiberties(Pos(3, 1, 1)); !errors.Is(err, errs.ErrOutOfBounds) {
		t.Fatalf("out of bounds seed error = %v", err)
	}
}

func TestGroupIsTraversalOrderIndependent(t *testing.T) {
	b := mustBoard(t, 5)
	mustPlace(t, b, White,
		Pos(2, 2, 2), Pos(2, 2, 3), Pos(2, 3, 3), Pos(3, 3, 3), Pos(1, 2, 2), Pos(1, 1, 2),
	)
	mustPlace(t, b, Black, Pos(2, 1, 2), Pos(3, 2, 2), Pos(0, 2, 2))

	base, err := b.GroupAndLiberties(Pos(2, 2, 2))
	if err != nil {
		t.Fatalf("group: %v", err)
	}

	saved := directions
	t.Cleanup(func() { directions = saved })

	perms := [][6]int{
		{5, 4, 3, 2, 1, 0},
		{2, 0, 4, 1, 5, 3},
		{3, 5, 1, 4, 0, 2},
	}
	for _, perm := range perms {
		for i, j := range perm {
			directions[i] = saved[j]
		}
		for _, seed := range base.Stones.Sorted() {
			g, err := b.GroupAndLiberties(seed)
			if err != nil {
				t.Fatalf("group from %s: %v", seed, err)
			}
			if !maps.Equal(g.Stones, base.Stones) || !maps.Equal(g.Liberties, base.Liberties) {
				t.Fatalf("perm %v seed %s: group differs", perm, seed)
			}
		}
	}
}

func TestStonesSnapshotIsSortedAndDetached(t *testing.T) {
	b := mustBoard(t, 3)
	mustPlace(t, b, White, Pos(2, 0, 0))
	mustPlace(t, b, Black, Pos(0, 2, 0), Pos(0, 0, 1))

	got := b.Stones()
	want := []Stone{
		{Position: Pos(0, 0, 1), Color: Black},
		{Position: Pos(0, 2, 0), Color: Black},
		{Position: Pos(2, 0, 0), Color: White},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("stones = %v, want %v", got, want)
	}

	clone := b.Clone()
	b.Remove(Pos(2, 0, 0))
	if clone.Len() != 3 || b.Equal(clone) {
		t.Fatalf("clone shares storage with the original")
	}
}

func TestParseColor(t *testing.T) {
	tests := map[string]Color{"black": Black, "B": Black, " white ": White, "w": White}
	for in, want := range tests {
		got, err := ParseColor(in)
		if err != nil || got != want {
			t.Fatalf("ParseColor(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseColor("red"); !errors.Is(err, errs.ErrInvalidColor) {
		t.Fatalf("ParseColor(red) error = %v", err)
	}
	if Black.Opposite() != White || White.Opposite() != Black || Empty.Opposite() != Empty {
		t.Fatalf("Opposite is wrong")
	}
}

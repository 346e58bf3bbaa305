package board

import (
	"encoding/json"
	"fmt"
	"strings"

	errs "cubego/internal/errors"
)

// Color is the color of a stone. Empty is only ever returned by queries, it is never stored.
type Color int

const (
	Empty Color = iota
	Black
	White
)

// Opposite returns the other player's color. Empty stays Empty.
func (c Color) Opposite() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// IsStone reports whether c is a color a stone can have.
func (c Color) IsStone() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// ParseColor accepts "black"/"white" and the SGF-style "b"/"w", case-insensitively.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b":
		return Black, nil
	case "white", "w":
		return White, nil
	}
	return Empty, fmt.Errorf("%w: %q", errs.ErrInvalidColor, s)
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" || s == "empty" {
		*c = Empty
		return nil
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Position is a lattice cell. It is comparable and used directly as a map key.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func Pos(x, y, z int) Position {
	return Position{X: x, Y: y, Z: z}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Less orders positions by x, then y, then z.
func (p Position) Less(o Position) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.Z < o.Z
}

// Stone is an occupied position.
type Stone struct {
	Position Position `json:"position"`
	Color    Color    `json:"color"`
}

package game

import (
	"cubego/internal/domain/board"
)

// EventType tells subscribers what changed the board.
type EventType string

const (
	EventState EventType = "state"
	EventMove  EventType = "move"
	EventPass  EventType = "pass"
	EventUndo  EventType = "undo"
	EventReset EventType = "reset"
)

type Prisoners struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Snapshot is a consistent copy of one game's state, safe to hand to renderers.
type Snapshot struct {
	GameID     string          `json:"game_id"`
	Size       int             `json:"size"`
	Turn       board.Color     `json:"turn"`
	Ko         *board.Position `json:"ko,omitempty"`
	MoveNumber int             `json:"move_number"`
	Prisoners  Prisoners       `json:"prisoners"`
	Stones     []board.Stone   `json:"stones"`
}

type Event struct {
	Type     EventType        `json:"type"`
	Color    board.Color      `json:"color,omitempty"`
	Position *board.Position  `json:"position,omitempty"`
	Captured []board.Position `json:"captured,omitempty"`
	State    Snapshot         `json:"state"`
}

type CreateGameRequest struct {
	Size int `json:"size"`
}

type CreateGameResponse struct {
	GameID string      `json:"game_id"`
	Size   int         `json:"size"`
	Turn   board.Color `json:"turn"`
}

type MoveRequest struct {
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Z     int         `json:"z"`
	Color board.Color `json:"color"`
}

func (m MoveRequest) Position() board.Position {
	return board.Pos(m.X, m.Y, m.Z)
}

type MoveResponse struct {
	Captured []board.Position `json:"captured"`
	NextTurn board.Color      `json:"next_turn"`
}

type PassRequest struct {
	Color board.Color `json:"color"`
}

type LegalityResponse struct {
	Legal  bool   `json:"legal"`
	Reason string `json:"reason,omitempty"`
}

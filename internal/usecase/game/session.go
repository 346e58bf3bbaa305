package game

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"cubego/internal/domain/board"
	"cubego/internal/domain/game"
	errs "cubego/internal/errors"
	"cubego/internal/usecase/rules"
)

// Session serializes every access to one rules.Engine through a single goroutine. Commands
// are queued and executed one at a time, so a move fully commits or rolls back before the
// next command, including snapshot reads, is looked at.
type Session struct {
	id       string
	log      *zap.SugaredLogger
	engine   *rules.Engine
	commands chan func()
	done     chan struct{}
	once     sync.Once
	finished chan struct{}

	// owned by the run goroutine
	subscribers map[chan game.Event]struct{}
	eventBuffer int
}

func NewSession(id string, size, queueSize, eventBuffer int, log *zap.SugaredLogger) (*Session, error) {
	engine, err := rules.NewEngine(size)
	if err != nil {
		return nil, err
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if eventBuffer < 1 {
		eventBuffer = 1
	}
	s := &Session{
		id:          id,
		log:         log.With("game", id),
		engine:      engine,
		commands:    make(chan func(), queueSize),
		done:        make(chan struct{}),
		finished:    make(chan struct{}),
		subscribers: make(map[chan game.Event]struct{}),
		eventBuffer: eventBuffer,
	}
	go s.run()
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) run() {
	defer close(s.finished)
	for {
		select {
		case cmd := <-s.commands:
			cmd()
		case <-s.done:
			for ch := range s.subscribers {
				close(ch)
			}
			s.subscribers = nil
			return
		}
	}
}

// Close stops the session. Queued commands that have not started are dropped and their
// callers get ErrSessionClosed.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
	})
	<-s.finished
}

// do runs fn on the session goroutine and waits for it. Once queued a command always runs to
// completion; ctx only bounds the wait for a free queue slot.
func (s *Session) do(ctx context.Context, fn func(e *rules.Engine)) error {
	executed := make(chan struct{})
	cmd := func() {
		defer close(executed)
		fn(s.engine)
	}

	select {
	case <-s.done:
		return errs.ErrSessionClosed
	default:
	}

	select {
	case s.commands <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return errs.ErrSessionClosed
	}

	select {
	case <-executed:
		return nil
	case <-s.finished:
		// run may have picked the command up right before stopping
		select {
		case <-executed:
			return nil
		default:
			return errs.ErrSessionClosed
		}
	}
}

func (s *Session) Move(ctx context.Context, pos board.Position, color board.Color) (rules.MoveResult, error) {
	var (
		res     rules.MoveResult
		moveErr error
	)
	err := s.do(ctx, func(e *rules.Engine) {
		res, moveErr = e.AttemptMove(pos, color)
		if moveErr != nil {
			s.log.Debugw("move rejected", "color", color, "position", pos, "error", moveErr)
			return
		}
		s.log.Infow("move accepted", "color", color, "position", pos,
			"captured", len(res.Captured), "next_turn", res.NextTurn)
		p := pos
		s.publish(game.Event{Type: game.EventMove, Color: color, Position: &p, Captured: res.Captured})
	})
	if err != nil {
		return rules.MoveResult{}, err
	}
	return res, moveErr
}

func (s *Session) CheckMove(ctx context.Context, pos board.Position, color board.Color) (legality error, err error) {
	err = s.do(ctx, func(e *rules.Engine) {
		legality = e.IsLegal(pos, color)
	})
	return legality, err
}

func (s *Session) Pass(ctx context.Context, color board.Color) error {
	var passErr error
	err := s.do(ctx, func(e *rules.Engine) {
		if passErr = e.Pass(color); passErr != nil {
			s.log.Debugw("pass rejected", "color", color, "error", passErr)
			return
		}
		s.log.Infow("pass", "color", color)
		s.publish(game.Event{Type: game.EventPass, Color: color})
	})
	if err != nil {
		return err
	}
	return passErr
}

func (s *Session) Undo(ctx context.Context) error {
	var undoErr error
	err := s.do(ctx, func(e *rules.Engine) {
		if undoErr = e.Undo(); undoErr != nil {
			return
		}
		s.log.Infow("move undone", "move_number", e.MoveNumber())
		s.publish(game.Event{Type: game.EventUndo})
	})
	if err != nil {
		return err
	}
	return undoErr
}

func (s *Session) Reset(ctx context.Context) error {
	return s.do(ctx, func(e *rules.Engine) {
		e.Reset()
		s.log.Info("board reset")
		s.publish(game.Event{Type: game.EventReset})
	})
}

func (s *Session) Snapshot(ctx context.Context) (game.Snapshot, error) {
	var snap game.Snapshot
	err := s.do(ctx, func(e *rules.Engine) {
		snap = s.snapshot()
	})
	return snap, err
}

// Subscribe returns a channel that first receives the current state and then one event per
// committed change. A slow reader loses intermediate events but always gets the latest one.
// The channel is closed by cancel or when the session stops.
func (s *Session) Subscribe(ctx context.Context) (<-chan game.Event, func(), error) {
	ch := make(chan game.Event, s.eventBuffer)
	err := s.do(ctx, func(e *rules.Engine) {
		s.subscribers[ch] = struct{}{}
		ch <- game.Event{Type: game.EventState, State: s.snapshot()}
	})
	if err != nil {
		return nil, nil, err
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			_ = s.do(context.Background(), func(e *rules.Engine) {
				if _, ok := s.subscribers[ch]; ok {
					delete(s.subscribers, ch)
					close(ch)
				}
			})
		})
	}
	return ch, cancel, nil
}

func (s *Session) snapshot() game.Snapshot {
	snap := game.Snapshot{
		GameID:     s.id,
		Size:       s.engine.Size(),
		Turn:       s.engine.Turn(),
		MoveNumber: s.engine.MoveNumber(),
		Prisoners: game.Prisoners{
			Black: s.engine.Prisoners(board.Black),
			White: s.engine.Prisoners(board.White),
		},
		Stones: s.engine.Stones(),
	}
	if ko, ok := s.engine.Ko(); ok {
		snap.Ko = &ko
	}
	return snap
}

func (s *Session) publish(ev game.Event) {
	if len(s.subscribers) == 0 {
		return
	}
	ev.State = s.snapshot()
	for ch := range s.subscribers {
		select {
		case ch <- ev:
			continue
		default:
		}
		// full: drop the oldest pending event to make room for the newest
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
			s.log.Warnw("subscriber dropped event", "type", ev.Type)
		}
	}
}

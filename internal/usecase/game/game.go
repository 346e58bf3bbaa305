package game

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cubego/internal/bootstrap"
	"cubego/internal/domain/board"
	"cubego/internal/domain/game"
	errs "cubego/internal/errors"
	"cubego/internal/usecase/rules"
)

type GameStore interface {
	GenerateGameKey() string
	PutGame(gameID string, session *Session) error
	GetGame(gameID string) (*Session, error)
	DeleteGame(gameID string) (*Session, error)
	ListGameIDs() []string
}

type GameUseCase struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	store GameStore
}

func NewGameUseCase(cfg bootstrap.Config, log *zap.SugaredLogger, store GameStore) *GameUseCase {
	return &GameUseCase{cfg: cfg, log: log, store: store}
}

// CreateGame starts a new game. A zero size picks the configured default.
func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest) (game.Snapshot, error) {
	size := req.Size
	if size == 0 {
		size = g.cfg.BoardSize
	}
	if size < 1 || size > g.cfg.MaxBoardSize {
		return game.Snapshot{}, fmt.Errorf("%w: %d (allowed 1..%d)", errs.ErrInvalidSize, size, g.cfg.MaxBoardSize)
	}

	gameID := g.store.GenerateGameKey()
	session, err := NewSession(gameID, size, g.cfg.CommandQueueSize, g.cfg.EventBufferSize, g.log)
	if err != nil {
		return game.Snapshot{}, err
	}
	if err := g.store.PutGame(gameID, session); err != nil {
		session.Close()
		return game.Snapshot{}, err
	}

	g.log.Infof("game created: %s (%dx%dx%d)", gameID, size, size, size)
	return session.Snapshot(ctx)
}

func (g *GameUseCase) GetGame(ctx context.Context, gameID string) (game.Snapshot, error) {
	session, err := g.store.GetGame(gameID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return session.Snapshot(ctx)
}

func (g *GameUseCase) ListGames() []string {
	return g.store.ListGameIDs()
}

func (g *GameUseCase) MakeMove(ctx context.Context, gameID string, req game.MoveRequest) (rules.MoveResult, error) {
	session, err := g.store.GetGame(gameID)
	if err != nil {
		return rules.MoveResult{}, err
	}
	return session.Move(ctx, req.Position(), req.Color)
}

// CheckMove reports whether a move would be accepted. The first return value is the
// rejection reason, the second an error reaching the game.
func (g *GameUseCase) CheckMove(ctx context.Context, gameID string, req game.MoveRequest) (error, error) {
	session, err := g.store.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.CheckMove(ctx, req.Position(), req.Color)
}

func (g *GameUseCase) Pass(ctx context.Context, gameID string, color board.Color) error {
	session, err := g.store.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.Pass(ctx, color)
}

func (g *GameUseCase) Undo(ctx context.Context, gameID string) error {
	session, err := g.store.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.Undo(ctx)
}

func (g *GameUseCase) Reset(ctx context.Context, gameID string) error {
	session, err := g.store.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.Reset(ctx)
}

func (g *GameUseCase) Subscribe(ctx context.Context, gameID string) (<-chan game.Event, func(), error) {
	session, err := g.store.GetGame(gameID)
	if err != nil {
		return nil, nil, err
	}
	return session.Subscribe(ctx)
}

func (g *GameUseCase) DeleteGame(gameID string) error {
	session, err := g.store.DeleteGame(gameID)
	if err != nil {
		return err
	}
	session.Close()
	g.log.Infof("game deleted: %s", gameID)
	return nil
}

// Shutdown stops every live game.
func (g *GameUseCase) Shutdown() {
	for _, id := range g.store.ListGameIDs() {
		if err := g.DeleteGame(id); err != nil && !errors.Is(err, errs.ErrGameNotFound) {
			g.log.Errorf("failed to stop game %s: %v", id, err)
		}
	}
}

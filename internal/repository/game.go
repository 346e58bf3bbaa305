package repo

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	errs "cubego/internal/errors"
)

// GameRepository keeps live games in memory, keyed by a generated game id.
type GameRepository[T any] struct {
	log   *zap.SugaredLogger
	mu    sync.RWMutex
	games map[string]T
}

func NewGameRepository[T any](log *zap.SugaredLogger) *GameRepository[T] {
	return &GameRepository[T]{
		log:   log,
		games: make(map[string]T),
	}
}

func (g *GameRepository[T]) GenerateGameKey() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for {
		key := uuid.New().String()
		if _, taken := g.games[key]; !taken {
			return key
		}
	}
}

func (g *GameRepository[T]) PutGame(gameID string, game T) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, taken := g.games[gameID]; taken {
		return fmt.Errorf("game %s already exists", gameID)
	}
	g.games[gameID] = game
	g.log.Debugf("game stored: %s (%d active)", gameID, len(g.games))
	return nil
}

func (g *GameRepository[T]) GetGame(gameID string) (T, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	game, ok := g.games[gameID]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", errs.ErrGameNotFound, gameID)
	}
	return game, nil
}

func (g *GameRepository[T]) DeleteGame(gameID string) (T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	game, ok := g.games[gameID]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", errs.ErrGameNotFound, gameID)
	}
	delete(g.games, gameID)
	g.log.Debugf("game removed: %s (%d active)", gameID, len(g.games))
	return game, nil
}

// ListGameIDs returns the ids of all stored games in lexical order.
func (g *GameRepository[T]) ListGameIDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]string, 0, len(g.games))
	for id := range g.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

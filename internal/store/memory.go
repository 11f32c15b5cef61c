// internal/store/memory.go
//
// In-memory store for active match controllers.
// Matches are single-instance and ephemeral: they live here while being
// played and only their outcome is persisted (games table). State is lost
// on process restart.
//
// Characteristics:
//   - Stores *game.Controller keyed by session ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Errors are returned for missing IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/saebyeokjang/WordChainLeague/internal/game"
)

// ErrNotFound is returned when a match ID is unknown.
var ErrNotFound = errors.New("not found")

// Matches is the registry of live match controllers.
type Matches interface {
	// Save registers or replaces a match.
	Save(ctx context.Context, c *game.Controller) error

	// Get retrieves a match by session ID.
	Get(ctx context.Context, id string) (*game.Controller, error)

	// Delete drops a match from the registry.
	Delete(ctx context.Context, id string)
}

// memory is a map-based Matches implementation.
type memory struct {
	mu      sync.RWMutex
	matches map[string]*game.Controller // keyed by session ID
}

// NewMemoryStore constructs an empty in-memory Matches registry.
func NewMemoryStore() Matches {
	return &memory{matches: make(map[string]*game.Controller)}
}

func (m *memory) Save(ctx context.Context, c *game.Controller) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[c.ID()] = c
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.matches[id]; ok {
		return c, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.matches, id)
}

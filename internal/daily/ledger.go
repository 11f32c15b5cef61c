// internal/daily/ledger.go
//
// Once-per-day flag ledger enforcing idempotency of daily bonuses.
// Flags are keyed (activity, date, player); setting an existing flag is a
// no-op (INSERT OR IGNORE), so awarding code can set unconditionally.

package daily

import (
	"context"
	"database/sql"
	"sync"
)

// Ledger is the boolean flag store for daily idempotency.
// Implementations: Store (SQLite) and MemLedger (tests).
type Ledger interface {
	// Has reports whether the flag is already set.
	Has(ctx context.Context, activity, date, player string) (bool, error)

	// Set records the flag. Setting twice is harmless.
	Set(ctx context.Context, activity, date, player string) error
}

// Store is the SQLite-backed ledger over the daily_flags table.
type Store struct{ db *sql.DB }

// NewStore wraps a DB handle.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Has(ctx context.Context, activity, date, player string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_flags WHERE activity=? AND date=? AND player_id=?",
		activity, date, player,
	).Scan(&cnt)
	return cnt > 0, err
}

func (s *Store) Set(ctx context.Context, activity, date, player string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_flags(activity, date, player_id) VALUES(?,?,?)`,
		activity, date, player,
	)
	return err
}

// MemLedger is an in-memory Ledger for tests and durability-free runs.
type MemLedger struct {
	mu    sync.Mutex
	flags map[[3]string]struct{}
}

// NewMemLedger constructs an empty in-memory ledger.
func NewMemLedger() *MemLedger {
	return &MemLedger{flags: make(map[[3]string]struct{})}
}

func (m *MemLedger) Has(ctx context.Context, activity, date, player string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.flags[[3]string{activity, date, player}]
	return ok, nil
}

func (m *MemLedger) Set(ctx context.Context, activity, date, player string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[[3]string{activity, date, player}] = struct{}{}
	return nil
}

package httpserver

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/saebyeokjang/WordChainLeague/internal/daily"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(`CREATE TABLE games (
		id           TEXT PRIMARY KEY,
		user_id      TEXT,
		anonymous_id TEXT,
		mode         TEXT NOT NULL,
		status       TEXT NOT NULL,
		winner       TEXT,
		word_count   INTEGER NOT NULL DEFAULT 0,
		xp_awarded   INTEGER NOT NULL DEFAULT 0,
		started_at   TEXT NOT NULL,
		finished_at  TEXT
	)`); err != nil {
		t.Fatalf("create games: %v", err)
	}
	return db
}

func insertGame(t *testing.T, db *sql.DB, id, user, status, startedAt string) {
	t.Helper()
	if _, err := db.Exec(
		`INSERT INTO games (id, user_id, mode, status, started_at) VALUES (?,?,?,?,?)`,
		id, user, "single", status, startedAt); err != nil {
		t.Fatalf("insert game %s: %v", id, err)
	}
}

func TestGamesTodayCountsFinishedOnly(t *testing.T) {
	db := testDB(t)
	gs := &gameServer{srv: &Server{db: db}}

	today := daily.DateKey(time.Now()) + "T10:00:00Z"
	yesterday := daily.DateKey(time.Now().AddDate(0, 0, -1)) + "T10:00:00Z"

	insertGame(t, db, "g1", "p1", "finished", today)
	insertGame(t, db, "g2", "p1", "finished", today)
	// Opened but never played out: must not count toward the daily total.
	insertGame(t, db, "g3", "p1", "playing", today)
	insertGame(t, db, "g4", "p1", "cancelled", today)
	// Finished, but not today.
	insertGame(t, db, "g5", "p1", "finished", yesterday)
	// Someone else's game.
	insertGame(t, db, "g6", "p2", "finished", today)

	if got := gs.gamesToday(context.Background(), "p1"); got != 2 {
		t.Fatalf("gamesToday = %d, want 2", got)
	}
}

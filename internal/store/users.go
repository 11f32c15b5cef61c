// internal/store/users.go
//
// SQLite-backed user record store. The progression engine treats User as an
// external mutable record: it reads cumulative experience, mutates it, and
// hands the record back to Put. A persistence failure never invalidates the
// in-memory session that produced the award.

package store

import (
	"context"
	"database/sql"
	"time"
)

// User is the persistent player record. Experience and Level are the
// progression engine's write targets.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	Experience   int
	Level        int
	GamesPlayed  int
	Wins         int
}

// LeaderboardRow is one entry of the experience leaderboard.
type LeaderboardRow struct {
	Username   string `json:"username"`
	Experience int    `json:"experience"`
	Level      int    `json:"level"`
}

// Users is the SQLite user store.
type Users struct{ db *sql.DB }

// NewUsers wraps a DB handle.
func NewUsers(db *sql.DB) *Users { return &Users{db: db} }

// Get loads a user by ID. Returns sql.ErrNoRows when missing.
func (u *Users) Get(ctx context.Context, id string) (*User, error) {
	row := u.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at, experience, level, games_played, wins
		 FROM users WHERE id=?`, id)
	return scanUser(row)
}

// GetByUsername loads a user by name (case-insensitive).
func (u *Users) GetByUsername(ctx context.Context, username string) (*User, error) {
	row := u.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at, experience, level, games_played, wins
		 FROM users WHERE lower(username)=lower(?)`, username)
	return scanUser(row)
}

// Create inserts a new user row.
func (u *Users) Create(ctx context.Context, usr *User) error {
	_, err := u.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at, experience, level)
		 VALUES (?,?,?,?,?,?)`,
		usr.ID, usr.Username, usr.PasswordHash,
		usr.CreatedAt.UTC().Format(time.RFC3339), usr.Experience, usr.Level)
	return err
}

// Put writes back the mutable progression fields and counters.
func (u *Users) Put(ctx context.Context, usr *User) error {
	_, err := u.db.ExecContext(ctx,
		`UPDATE users SET experience=?, level=?, games_played=?, wins=? WHERE id=?`,
		usr.Experience, usr.Level, usr.GamesPlayed, usr.Wins, usr.ID)
	return err
}

// Leaderboard returns the top users by cumulative experience.
func (u *Users) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := u.db.QueryContext(ctx,
		`SELECT username, experience, level
		 FROM users
		 ORDER BY experience DESC, username ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LeaderboardRow, 0, limit)
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.Username, &r.Experience, &r.Level); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// scanUser converts a *sql.Row into a User.
func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created,
		&u.Experience, &u.Level, &u.GamesPlayed, &u.Wins); err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

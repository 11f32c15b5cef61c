// internal/httpserver/routes_game.go
//
// HTTP routes for word-chain matches.
// Exposes four endpoints under /game:
//   - POST /game/new      → start a match (single | multi | ai)
//   - POST /game/word     → submit a word for the caller's turn
//   - GET  /game/state    → poll match state (AI moves / timeouts are async)
//   - POST /game/forfeit  → concede the match
//
// Live matches are held in the in-memory registry; the finished outcome is
// persisted to the games table and settled into the owner's progression
// exactly once (guarded by games.xp_awarded). Guests can play but earn no
// experience.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/saebyeokjang/WordChainLeague/internal/daily"
	"github.com/saebyeokjang/WordChainLeague/internal/game"
	"github.com/saebyeokjang/WordChainLeague/internal/progression"
	"github.com/saebyeokjang/WordChainLeague/internal/words"
)

// gameServer wraps dependencies for /game endpoints.
type gameServer struct {
	srv         *Server
	calc        progression.Calculator
	turnLimit   time.Duration
	closeMargin int
}

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	gs := &gameServer{
		srv:         s,
		calc:        progression.Calculator{Ledger: daily.NewStore(s.db)},
		turnLimit:   15 * time.Second,
		closeMargin: 1,
	}
	if v := getEnv("TURN_SECONDS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			gs.turnLimit = time.Duration(n) * time.Second
		}
	}
	if v := getEnv("CLOSE_DEFEAT_MARGIN", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			gs.closeMargin = n
		}
	}
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", gs.handleNew)
		r.Post("/word", gs.handleWord)
		r.Get("/state", gs.handleState)
		r.Post("/forfeit", gs.handleForfeit)
	})
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (gs *gameServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return gs.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /game/new

// newGameReq is the request payload for /game/new.
type newGameReq struct {
	Mode       string   `json:"mode"`       // "single" | "multi" | "ai"
	Difficulty string   `json:"difficulty"` // AI tier: "easy" | "medium" | "hard"
	Players    []string `json:"players"`    // extra roster entries (multi mode)
}

// newGameRes is the response payload for /game/new.
type newGameRes struct {
	GameID  string   `json:"gameId"`
	Mode    string   `json:"mode"`
	Players []string `json:"players"`
}

// handleNew creates a match, registers it, and persists an owner row.
func (gs *gameServer) handleNew(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	uid := gs.userIDWithAnon(w, r)
	mode := game.ParseMode(req.Mode)
	roster := []string{uid}
	if mode == game.ModeMulti {
		for _, p := range req.Players {
			if p = strings.TrimSpace(p); p != "" && p != uid {
				roster = append(roster, p)
			}
		}
		if len(roster) < 2 {
			http.Error(w, `{"error":"multi mode needs 2+ players"}`, http.StatusBadRequest)
			return
		}
	}

	c := game.NewMatch(gs.srv.dict, mode, roster, words.ParseDifficulty(req.Difficulty), gs.turnLimit)
	// Matches that end on a timer (turn timeout, stuck AI) settle without
	// waiting for a client to poll.
	c.OnFinish(func(snap game.Snapshot) {
		var res wordRes
		gs.settleIfFinished(context.Background(), snap, "", &res)
	})
	c.Begin()
	if err := gs.srv.matches.Save(r.Context(), c); err != nil {
		log.Error().Err(err).Msg("save match")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	// Persist owner row (best effort, non-fatal if it fails).
	snap := c.State()
	now := time.Now().UTC().Format(time.RFC3339)
	ownerCol := "anonymous_id"
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		ownerCol = "user_id"
	}
	if _, err := gs.srv.db.Exec(`INSERT INTO games (id, `+ownerCol+`, mode, status, started_at, word_count, xp_awarded)
	                             VALUES (?,?,?,?,?,0,0)`, snap.ID, uid, string(mode), string(snap.Status), now); err != nil {
		log.Warn().Err(err).Str("gameId", snap.ID).Msg("insert game row")
	}

	_ = json.NewEncoder(w).Encode(newGameRes{GameID: snap.ID, Mode: string(mode), Players: snap.Players})
}

// -----------------------------------------------------------------------------
// /game/word

// wordReq is the request payload for /game/word.
type wordReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// wordRes is the response payload for /game/word and /game/state.
type wordRes struct {
	Accepted   bool                      `json:"accepted"`
	Kind       string                    `json:"kind,omitempty"`   // reject tag
	Reason     string                    `json:"reason,omitempty"` // localized reject reason
	State      game.Snapshot             `json:"state"`
	Settlement *settlement               `json:"settlement,omitempty"`
	LevelUp    *progression.LevelUpEvent `json:"levelUp,omitempty"`
}

// handleWord validates and applies a submission for the caller's turn.
// In AI mode the reply arrives asynchronously after the thinking delay;
// clients observe it via /game/state.
func (gs *gameServer) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	uid := gs.userIDWithAnon(w, r)
	c, err := gs.srv.matches.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	v := c.Submit(strings.TrimSpace(req.Word), uid)
	snap := c.State()
	res := wordRes{Accepted: game.Ok(v), State: snap}
	if !res.Accepted {
		res.Kind = game.Kind(v)
		res.Reason = game.Reason(v)
	}
	gs.settleIfFinished(r.Context(), snap, uid, &res)
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// /game/state

// handleState returns the current snapshot, settling the match if it has
// finished in the background (AI move or turn timeout).
func (gs *gameServer) handleState(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("gameId")
	uid := gs.userIDWithAnon(w, r)
	c, err := gs.srv.matches.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	snap := c.State()
	res := wordRes{Accepted: true, State: snap}
	gs.settleIfFinished(r.Context(), snap, uid, &res)
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// /game/forfeit

// handleForfeit concedes the match for the caller.
func (gs *gameServer) handleForfeit(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	uid := gs.userIDWithAnon(w, r)
	c, err := gs.srv.matches.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	c.Forfeit(uid)
	snap := c.State()
	res := wordRes{Accepted: true, State: snap}
	gs.settleIfFinished(r.Context(), snap, uid, &res)
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// settlement

// settlement is the experience result returned to the requesting player.
type settlement struct {
	Outcome   progression.Outcome   `json:"outcome"`
	Breakdown progression.Breakdown `json:"breakdown"`
	Total     int                   `json:"total"`
}

// settleIfFinished persists the outcome and applies progression exactly once.
// The games.xp_awarded flag is the idempotency guard: the first caller to
// flip it performs the award; later callers only read state.
func (gs *gameServer) settleIfFinished(ctx context.Context, snap game.Snapshot, requester string, res *wordRes) {
	if snap.Status != game.StatusFinished {
		return
	}

	finished := time.Now().UTC().Format(time.RFC3339)
	if !snap.EndedAt.IsZero() {
		finished = snap.EndedAt.UTC().Format(time.RFC3339)
	}
	r, err := gs.srv.db.ExecContext(ctx,
		`UPDATE games SET status=?, winner=?, word_count=?, finished_at=?, xp_awarded=1
		 WHERE id=? AND xp_awarded=0`,
		string(snap.Status), snap.Winner, len(snap.Words), finished, snap.ID)
	if err != nil {
		log.Warn().Err(err).Str("gameId", snap.ID).Msg("finish game row")
		return
	}
	if n, _ := r.RowsAffected(); n == 0 {
		return // already settled
	}

	gs.srv.matches.Delete(ctx, snap.ID)

	for _, player := range snap.Players {
		if player == game.AIPlayer {
			continue
		}
		u, err := gs.srv.users.Get(ctx, player)
		if err != nil {
			continue // guest: no progression record
		}
		outcome := progression.Classify(snap, player, gs.closeMargin)
		bd := gs.calc.Compute(ctx, snap, player, outcome, gs.gamesToday(ctx, player))
		ev := progression.ApplyExperience(u, bd.Total())
		u.GamesPlayed++
		if snap.Winner == player {
			u.Wins++
		}
		if err := gs.srv.users.Put(ctx, u); err != nil {
			// The in-memory result stands; only persistence is degraded.
			log.Warn().Err(err).Str("user", player).Msg("persist progression")
		}
		if ev != nil {
			log.Info().Str("user", player).Int("level", ev.NewLevel).Msg("level up")
		}
		if player == requester {
			res.Settlement = &settlement{Outcome: outcome, Breakdown: bd, Total: bd.Total()}
			res.LevelUp = ev
		}
	}
}

// gamesToday counts the player's finished games started on the current UTC
// day, including the one being settled (its row is flipped to finished before
// this runs). Abandoned and cancelled matches do not count toward the
// five-games bonus.
func (gs *gameServer) gamesToday(ctx context.Context, player string) int {
	date := daily.DateKey(time.Now())
	var cnt int
	err := gs.srv.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM games
		 WHERE (user_id=? OR anonymous_id=?) AND status='finished' AND substr(started_at,1,10)=?`,
		player, player, date).Scan(&cnt)
	if err != nil {
		log.Warn().Err(err).Msg("count games today")
		return 0
	}
	return cnt
}

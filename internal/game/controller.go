// internal/game/controller.go
//
// Match controller: owns one session plus its timers.
// Responsibilities:
//   - Serialize all session mutations behind one mutex (human submission,
//     AI auto-move, turn timeout).
//   - Run the per-turn countdown; expiry forfeits the current player.
//   - Schedule the AI reply with a bounded random thinking delay.
//
// Every timer callback carries the generation it was armed under; a callback
// whose generation is stale does nothing, so a superseded timer can never
// mutate a session it no longer owns. The generation is bumped (and timers
// stopped) on every accepted move and on every path that ends the session.

package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saebyeokjang/WordChainLeague/internal/words"
)

// AIPlayer is the roster name of the AI opponent.
const AIPlayer = "AI"

// Thinking-delay bounds for the AI move.
const (
	thinkMin = 500 * time.Millisecond
	thinkMax = 2 * time.Second
)

// Snapshot is a read-only copy of session state for callers outside the
// controller's lock.
type Snapshot struct {
	ID            string        `json:"id"`
	Mode          Mode          `json:"mode"`
	Status        Status        `json:"status"`
	Players       []string      `json:"players"`
	CurrentPlayer string        `json:"currentPlayer"`
	Words         []GameWord    `json:"words"`
	Required      string        `json:"required,omitempty"`
	Winner        string        `json:"winner,omitempty"`
	Loser         string        `json:"loser,omitempty"`
	EndReason     string        `json:"endReason,omitempty"`
	StartedAt     time.Time     `json:"startedAt"`
	EndedAt       time.Time     `json:"endedAt,omitempty"`
	TurnLimit     time.Duration `json:"-"`
}

// Controller drives one session. Safe for concurrent use.
type Controller struct {
	mu   sync.Mutex
	sess *Session
	dict *words.Dict
	diff words.Difficulty

	onFinish func(Snapshot) // notified when a timer path ends the session

	gen       int // timer generation; bumped whenever pending timers go stale
	turnTimer *time.Timer
	aiTimer   *time.Timer
}

// NewMatch builds a controller for a fresh session.
// AI mode gets roster [human, AI] so the human opens the chain.
func NewMatch(dict *words.Dict, mode Mode, players []string, diff words.Difficulty, turnLimit time.Duration) *Controller {
	roster := append([]string{}, players...)
	if mode == ModeAI {
		roster = append(roster, AIPlayer)
	}
	return &Controller{
		sess: NewSession(dict, mode, roster, turnLimit),
		dict: dict,
		diff: diff,
	}
}

// ID returns the session identifier.
func (c *Controller) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.ID
}

// Begin starts the session and arms the first turn countdown.
func (c *Controller) Begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.sess.Start() {
		return false
	}
	c.armTurnTimer()
	return true
}

// Submit applies a human submission. On acceptance the pending countdown is
// replaced: either the AI reply is scheduled or the next player's countdown
// starts.
func (c *Controller) Submit(text, player string) Verdict {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.sess.Submit(text, player)
	if !Ok(v) {
		return v
	}
	c.stopTimers()
	if c.sess.Mode == ModeAI && c.sess.CurrentPlayer() == AIPlayer {
		c.scheduleAI()
	} else {
		c.armTurnTimer()
	}
	return v
}

// Forfeit ends the game with player losing. Stops all timers.
func (c *Controller) Forfeit(player string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.sess.Forfeit(player, ReasonForfeit) {
		return false
	}
	c.stopTimers()
	return true
}

// Cancel abandons the session (e.g. superseded by a new game).
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.sess.Cancel() {
		return false
	}
	c.stopTimers()
	return true
}

// OnFinish registers a callback invoked, on its own goroutine, when a timer
// path ends the session: a turn timeout or a stuck AI. Endings driven by a
// caller (Forfeit, Cancel) are reported through that caller instead. Register
// before Begin.
func (c *Controller) OnFinish(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFinish = fn
}

// State returns a copy of the current session state.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// snapshotLocked builds the snapshot copy. Caller must hold c.mu.
func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:            c.sess.ID,
		Mode:          c.sess.Mode,
		Status:        c.sess.Status,
		Players:       append([]string{}, c.sess.Players...),
		CurrentPlayer: c.sess.CurrentPlayer(),
		Words:         append([]GameWord{}, c.sess.Words...),
		Winner:        c.sess.Winner,
		Loser:         c.sess.Loser,
		EndReason:     c.sess.EndReason,
		StartedAt:     c.sess.StartedAt,
		EndedAt:       c.sess.EndedAt,
		TurnLimit:     c.sess.TurnLimit,
	}
	if r := c.sess.RequiredRune(); r != 0 {
		snap.Required = string(r)
	}
	return snap
}

// --------------------------- timer internals -------------------------------

// stopTimers invalidates all pending callbacks and stops both timers.
// Caller must hold c.mu.
func (c *Controller) stopTimers() {
	c.gen++
	if c.turnTimer != nil {
		c.turnTimer.Stop()
		c.turnTimer = nil
	}
	if c.aiTimer != nil {
		c.aiTimer.Stop()
		c.aiTimer = nil
	}
}

// armTurnTimer starts the countdown for the current turn.
// Caller must hold c.mu. TurnLimit 0 disables the countdown.
func (c *Controller) armTurnTimer() {
	if c.sess.TurnLimit <= 0 {
		return
	}
	gen := c.gen
	c.turnTimer = time.AfterFunc(c.sess.TurnLimit, func() { c.onTurnExpired(gen) })
}

// onTurnExpired forfeits the player whose countdown ran out.
func (c *Controller) onTurnExpired(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.sess.Status != StatusPlaying {
		return
	}
	loser := c.sess.CurrentPlayer()
	c.sess.Forfeit(loser, ReasonTimeout)
	c.stopTimers()
	log.Info().Str("gameId", c.sess.ID).Str("player", loser).Msg("turn timed out")
	c.notifyFinishLocked()
}

// notifyFinishLocked dispatches the finish callback with a fresh snapshot.
// Caller must hold c.mu.
func (c *Controller) notifyFinishLocked() {
	if c.onFinish == nil {
		return
	}
	snap := c.snapshotLocked()
	go c.onFinish(snap)
}

// scheduleAI arms the AI reply after a bounded random thinking delay.
// Caller must hold c.mu.
func (c *Controller) scheduleAI() {
	gen := c.gen
	delay := thinkMin + time.Duration(rand.Int63n(int64(thinkMax-thinkMin)))
	c.aiTimer = time.AfterFunc(delay, func() { c.aiMove(gen) })
}

// aiMove performs the AI's single guarded state transition: it applies only
// if the session is still the same generation, still playing, and still
// awaiting the AI's turn.
func (c *Controller) aiMove(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.sess.Status != StatusPlaying || c.sess.CurrentPlayer() != AIPlayer {
		return
	}

	text, ok := c.dict.Strategic(c.sess.RequiredRune(), c.diff, c.sess.UsedSet())
	if !ok {
		// Defined terminal condition, not an error: the opponent wins.
		c.sess.End(c.sess.nextDistinct(AIPlayer), ReasonAIStuck)
		c.stopTimers()
		log.Info().Str("gameId", c.sess.ID).Msg("ai found no continuation")
		c.notifyFinishLocked()
		return
	}

	if v := c.sess.Submit(text, AIPlayer); !Ok(v) {
		// Strategic only offers dictionary words honoring the chain, so this
		// indicates a corpus/session inconsistency. Treat it as AI stuck.
		log.Warn().Str("gameId", c.sess.ID).Str("word", text).Str("kind", Kind(v)).Msg("ai word rejected")
		c.sess.End(c.sess.nextDistinct(AIPlayer), ReasonAIStuck)
		c.stopTimers()
		c.notifyFinishLocked()
		return
	}
	c.stopTimers()
	c.armTurnTimer()
}

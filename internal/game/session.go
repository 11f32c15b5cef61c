// internal/game/session.go
//
// Session state machine for a single word-chain game.
// Responsibilities:
//   - Hold the roster, turn index, played words, and lifecycle status.
//   - Validate and apply submissions (validate-then-mutate: a rejected
//     submission leaves the session untouched).
//   - Resolve end-of-game: explicit end, cancel, and forfeit.
//
// Invariants:
//   - Turn index is always a valid roster index.
//   - The word sequence never contains two entries with the same text, and
//     each word opens with the previous word's closing syllable.
//   - Status transitions are monotonic; terminal states are final.

package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/saebyeokjang/WordChainLeague/internal/words"
)

// End reasons recorded on the session.
const (
	ReasonForfeit  = "forfeit"
	ReasonTimeout  = "timeout"
	ReasonAIStuck  = "AI failed to find a word"
	ReasonFinished = "finished"
)

// Session is the mutable aggregate for one game.
// Not safe for concurrent use; the Controller serializes access.
type Session struct {
	ID        string        // stable identifier
	Mode      Mode          // single | multi | ai
	Players   []string      // fixed roster, play order
	Turn      int           // current-turn index into Players
	Words     []GameWord    // append-only, insertion order = play order
	Status    Status        // lifecycle state
	StartedAt time.Time     // set on Start
	EndedAt   time.Time     // set on End/Cancel
	Winner    string        // optional, set on End
	Loser     string        // set by Forfeit: the player who quit or timed out
	EndReason string        // why the game ended
	TurnLimit time.Duration // per-turn countdown; 0 disables

	dict *words.Dict
}

// NewSession constructs a session in the waiting state.
// The roster is fixed at creation and must be non-empty.
func NewSession(dict *words.Dict, mode Mode, players []string, turnLimit time.Duration) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Mode:      mode,
		Players:   append([]string{}, players...),
		Status:    StatusWaiting,
		TurnLimit: turnLimit,
		dict:      dict,
	}
}

// Start moves waiting → playing and resets the start timestamp.
// Returns false for any other state.
func (s *Session) Start() bool {
	if s.Status != StatusWaiting {
		return false
	}
	s.Status = StatusPlaying
	s.StartedAt = time.Now()
	return true
}

// CurrentPlayer returns the player whose turn it is.
func (s *Session) CurrentPlayer() string {
	return s.Players[s.Turn]
}

// RequiredRune returns the syllable the next word must open with,
// or 0 when the chain is empty.
func (s *Session) RequiredRune() rune {
	if len(s.Words) == 0 {
		return 0
	}
	return s.Words[len(s.Words)-1].Word.Last()
}

// UsedSet returns the set of word texts already played.
func (s *Session) UsedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Words))
	for _, gw := range s.Words {
		set[gw.Word.Text] = struct{}{}
	}
	return set
}

// WordsBy returns the words submitted by one player, in play order.
func (s *Session) WordsBy(player string) []GameWord {
	var out []GameWord
	for _, gw := range s.Words {
		if gw.Player == player {
			out = append(out, gw)
		}
	}
	return out
}

// Submit validates a candidate word and, if accepted, appends it and
// advances the turn cyclically. A rejected submission mutates nothing.
//
// Validation order: session playing, submitter's turn, then the word rules
// (length, alphabet, dictionary, unused, chain link) — each failure maps to
// its own Verdict variant.
func (s *Session) Submit(text, player string) Verdict {
	if s.Status != StatusPlaying {
		return NotPlaying{Status: s.Status}
	}
	if cur := s.CurrentPlayer(); cur != player {
		return WrongTurn{Want: cur, Got: player}
	}
	if n := words.RuneLen(text); n < 2 {
		return TooShort{Len: n}
	}
	if !words.IsHangul(text) {
		return BadAlphabet{Text: text}
	}
	if !s.dict.Contains(text) {
		return NotInDictionary{Text: text}
	}
	if _, used := s.UsedSet()[text]; used {
		return AlreadyUsed{Text: text}
	}
	w := Word{Text: text}
	if want := s.RequiredRune(); want != 0 && w.First() != want {
		return ChainMismatch{Want: want, Got: w.First()}
	}

	gw := GameWord{Word: w, Player: player, PlayedAt: time.Now()}
	s.Words = append(s.Words, gw)
	s.Turn = (s.Turn + 1) % len(s.Players)
	return Accepted{Word: gw}
}

// End moves the session to finished, recording the optional winner and a
// reason. Valid from waiting or playing; returns false from terminal states.
func (s *Session) End(winner, reason string) bool {
	if s.Status.Terminal() {
		return false
	}
	s.Status = StatusFinished
	s.EndedAt = time.Now()
	s.Winner = winner
	if reason == "" {
		reason = ReasonFinished
	}
	s.EndReason = reason
	return true
}

// Cancel moves the session to cancelled. Returns false from terminal states.
func (s *Session) Cancel() bool {
	if s.Status.Terminal() {
		return false
	}
	s.Status = StatusCancelled
	s.EndedAt = time.Now()
	return true
}

// Forfeit ends the game with player losing; the winner is the next distinct
// player in the roster (empty when the roster has no other player). Only
// roster members can forfeit.
func (s *Session) Forfeit(player, reason string) bool {
	if s.Status != StatusPlaying {
		return false
	}
	if !s.hasPlayer(player) {
		return false
	}
	if reason == "" {
		reason = ReasonForfeit
	}
	if !s.End(s.nextDistinct(player), reason) {
		return false
	}
	s.Loser = player
	return true
}

// hasPlayer reports whether player is on the roster.
func (s *Session) hasPlayer(player string) bool {
	for _, p := range s.Players {
		if p == player {
			return true
		}
	}
	return false
}

// nextDistinct finds the next roster entry after player that is a different
// player. Returns "" when everyone shares the name (single mode).
func (s *Session) nextDistinct(player string) string {
	start := 0
	for i, p := range s.Players {
		if p == player {
			start = i
			break
		}
	}
	for i := 1; i < len(s.Players); i++ {
		if p := s.Players[(start+i)%len(s.Players)]; p != player {
			return p
		}
	}
	return ""
}

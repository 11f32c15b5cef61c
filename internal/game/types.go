// internal/game/types.go
//
// Core type definitions for the word-chain game engine.
// Defines:
//   - Word / GameWord: immutable word values and played-word records.
//   - Mode / Status: game mode and session lifecycle states.
//   - Verdict: tagged submission outcomes, one variant per reject reason.

package game

import (
	"fmt"
	"time"

	"github.com/saebyeokjang/WordChainLeague/internal/words"
)

// Mode selects how a session is populated and driven.
type Mode string

const (
	ModeSingle Mode = "single" // one player chaining alone
	ModeMulti  Mode = "multi"  // fixed roster of human players
	ModeAI     Mode = "ai"     // human vs AI opponent
)

// ParseMode maps a string to a Mode, defaulting to single.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeMulti, ModeAI:
		return Mode(s)
	default:
		return ModeSingle
	}
}

// Status is the session lifecycle state. Transitions are monotonic:
// waiting → playing → finished | cancelled, and terminal states are final.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusPlaying   Status = "playing"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// Tier classifies a word by syllable count.
type Tier string

const (
	TierBasic  Tier = "basic"  // 2–3 syllables
	TierMedium Tier = "medium" // 4–5 syllables
	TierLong   Tier = "long"   // 6+ syllables
)

// Experience is the per-word experience value for the tier.
func (t Tier) Experience() int {
	switch t {
	case TierMedium:
		return 8
	case TierLong:
		return 12
	}
	return 5
}

// Word is an immutable word value. Identity is by text only.
type Word struct {
	Text string `json:"text"`
}

// First returns the first syllable.
func (w Word) First() rune { return words.FirstRune(w.Text) }

// Last returns the last syllable.
func (w Word) Last() rune { return words.LastRune(w.Text) }

// Len returns the syllable count.
func (w Word) Len() int { return words.RuneLen(w.Text) }

// Tier derives the difficulty tier from syllable count.
func (w Word) Tier() Tier {
	switch n := w.Len(); {
	case n >= 6:
		return TierLong
	case n >= 4:
		return TierMedium
	default:
		return TierBasic
	}
}

// Experience is the word's experience value (5/8/12 by tier).
func (w Word) Experience() int { return w.Tier().Experience() }

// GameWord is a played Word bound to its submitter. Append-only.
type GameWord struct {
	Word     Word      `json:"word"`
	Player   string    `json:"player"`
	PlayedAt time.Time `json:"playedAt"`
}

// ---------------------------- verdicts -------------------------------------

// Verdict is the outcome of a word submission. Exactly one variant per
// reject reason; Accepted is the only success case.
type Verdict interface {
	verdict()
}

// Accepted: the word was appended and the turn advanced.
type Accepted struct {
	Word GameWord
}

// TooShort: fewer than 2 syllables.
type TooShort struct {
	Len int
}

// BadAlphabet: contains characters outside the permitted alphabet.
type BadAlphabet struct {
	Text string
}

// NotInDictionary: word is not in the corpus.
type NotInDictionary struct {
	Text string
}

// AlreadyUsed: word text already appears in this session.
type AlreadyUsed struct {
	Text string
}

// ChainMismatch: first syllable does not match the previous word's last.
type ChainMismatch struct {
	Want rune
	Got  rune
}

// NotPlaying: session is not in the playing state.
type NotPlaying struct {
	Status Status
}

// WrongTurn: submitter is not the current-turn player.
type WrongTurn struct {
	Want string
	Got  string
}

func (Accepted) verdict()        {}
func (TooShort) verdict()        {}
func (BadAlphabet) verdict()     {}
func (NotInDictionary) verdict() {}
func (AlreadyUsed) verdict()     {}
func (ChainMismatch) verdict()   {}
func (NotPlaying) verdict()      {}
func (WrongTurn) verdict()       {}

// Ok reports whether v is an acceptance.
func Ok(v Verdict) bool {
	_, ok := v.(Accepted)
	return ok
}

// Reason renders a user-reportable reason string for a verdict.
// The switch is exhaustive over all variants.
func Reason(v Verdict) string {
	switch x := v.(type) {
	case Accepted:
		return ""
	case TooShort:
		return fmt.Sprintf("단어는 두 글자 이상이어야 합니다 (%d글자)", x.Len)
	case BadAlphabet:
		return "한글 단어만 사용할 수 있습니다"
	case NotInDictionary:
		return fmt.Sprintf("사전에 없는 단어입니다: %s", x.Text)
	case AlreadyUsed:
		return fmt.Sprintf("이미 사용한 단어입니다: %s", x.Text)
	case ChainMismatch:
		return fmt.Sprintf("'%c'(으)로 시작해야 합니다 ('%c' 아님)", x.Want, x.Got)
	case NotPlaying:
		return fmt.Sprintf("게임이 진행 중이 아닙니다 (%s)", x.Status)
	case WrongTurn:
		return fmt.Sprintf("%s의 차례입니다", x.Want)
	}
	return "unknown"
}

// Kind renders a stable machine-readable tag for a verdict.
func Kind(v Verdict) string {
	switch v.(type) {
	case Accepted:
		return "accepted"
	case TooShort:
		return "too_short"
	case BadAlphabet:
		return "bad_alphabet"
	case NotInDictionary:
		return "not_in_dictionary"
	case AlreadyUsed:
		return "already_used"
	case ChainMismatch:
		return "chain_mismatch"
	case NotPlaying:
		return "not_playing"
	case WrongTurn:
		return "wrong_turn"
	}
	return "unknown"
}

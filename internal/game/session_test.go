package game

import (
	"testing"
	"time"

	"github.com/saebyeokjang/WordChainLeague/internal/words"
)

func testDict() *words.Dict {
	return words.New([]string{
		"사과", "과자", "과일", "자두", "두부", "부채", "채소",
		"소금", "금붕어", "어항", "항구", "자동차", "차표",
	})
}

func newPlaying(t *testing.T, players ...string) *Session {
	t.Helper()
	s := NewSession(testDict(), ModeMulti, players, 0)
	if !s.Start() {
		t.Fatal("Start failed from waiting")
	}
	return s
}

func TestChainExample(t *testing.T) {
	s := newPlaying(t, "A", "B")

	if v := s.Submit("사과", "A"); !Ok(v) {
		t.Fatalf("first word rejected: %s", Reason(v))
	}
	if got := s.CurrentPlayer(); got != "B" {
		t.Fatalf("turn = %s, want B", got)
	}
	if v := s.Submit("과자", "B"); !Ok(v) {
		t.Fatalf("chained word rejected: %s", Reason(v))
	}
	if got := s.CurrentPlayer(); got != "A" {
		t.Fatalf("turn = %s, want A", got)
	}
	v := s.Submit("과자", "A")
	if _, ok := v.(AlreadyUsed); !ok {
		t.Fatalf("duplicate verdict = %T, want AlreadyUsed", v)
	}
	if len(s.Words) != 2 {
		t.Fatalf("words = %d, want 2 (rejection must not mutate)", len(s.Words))
	}
}

func TestSubmitRejections(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) *Session
		text   string
		player string
		want   string // verdict kind
	}{
		{
			"not playing",
			func(t *testing.T) *Session { return NewSession(testDict(), ModeMulti, []string{"A", "B"}, 0) },
			"사과", "A", "not_playing",
		},
		{
			"wrong turn",
			func(t *testing.T) *Session { return newPlaying(t, "A", "B") },
			"사과", "B", "wrong_turn",
		},
		{
			"too short",
			func(t *testing.T) *Session { return newPlaying(t, "A", "B") },
			"물", "A", "too_short",
		},
		{
			"bad alphabet",
			func(t *testing.T) *Session { return newPlaying(t, "A", "B") },
			"apple", "A", "bad_alphabet",
		},
		{
			"not in dictionary",
			func(t *testing.T) *Session { return newPlaying(t, "A", "B") },
			"하늘소", "A", "not_in_dictionary",
		},
		{
			"chain mismatch",
			func(t *testing.T) *Session {
				s := newPlaying(t, "A", "B")
				if v := s.Submit("사과", "A"); !Ok(v) {
					t.Fatalf("setup word rejected: %s", Reason(v))
				}
				return s
			},
			"자두", "B", "chain_mismatch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.setup(t)
			before := len(s.Words)
			v := s.Submit(tt.text, tt.player)
			if Ok(v) {
				t.Fatal("expected rejection")
			}
			if got := Kind(v); got != tt.want {
				t.Fatalf("kind = %s, want %s", got, tt.want)
			}
			if len(s.Words) != before {
				t.Fatal("rejected submission mutated the word list")
			}
			if Reason(v) == "" {
				t.Fatal("rejection must carry a reason")
			}
		})
	}
}

func TestTurnCyclesThroughRoster(t *testing.T) {
	s := newPlaying(t, "A", "B", "C")
	moves := []struct{ text, player string }{
		{"사과", "A"}, {"과자", "B"}, {"자두", "C"},
	}
	for _, m := range moves {
		if v := s.Submit(m.text, m.player); !Ok(v) {
			t.Fatalf("%s by %s rejected: %s", m.text, m.player, Reason(v))
		}
	}
	if s.Turn != 0 || s.CurrentPlayer() != "A" {
		t.Fatalf("turn = %d (%s), want wrap to 0 (A)", s.Turn, s.CurrentPlayer())
	}
}

func TestStatusMonotonic(t *testing.T) {
	s := NewSession(testDict(), ModeMulti, []string{"A", "B"}, 0)
	if s.Status != StatusWaiting {
		t.Fatalf("initial status = %s", s.Status)
	}
	if !s.End("A", "") {
		t.Fatal("End from waiting should succeed")
	}
	if s.Start() {
		t.Fatal("Start after finished must fail")
	}
	if s.End("B", "") {
		t.Fatal("End after finished must fail")
	}
	if s.Cancel() {
		t.Fatal("Cancel after finished must fail")
	}
	if s.Winner != "A" {
		t.Fatalf("winner = %s, want A", s.Winner)
	}
}

func TestForfeitWinner(t *testing.T) {
	s := newPlaying(t, "A", "B")
	if !s.Forfeit("A", "") {
		t.Fatal("Forfeit failed while playing")
	}
	if s.Winner != "B" {
		t.Fatalf("winner = %s, want B", s.Winner)
	}
	if s.Status != StatusFinished {
		t.Fatalf("status = %s, want finished", s.Status)
	}
	if s.EndReason != ReasonForfeit {
		t.Fatalf("reason = %s, want %s", s.EndReason, ReasonForfeit)
	}
	if s.Loser != "A" {
		t.Fatalf("loser = %q, want A", s.Loser)
	}
}

func TestForfeitRejectsOutsider(t *testing.T) {
	s := newPlaying(t, "A", "B")
	if s.Forfeit("C", "") {
		t.Fatal("Forfeit by a non-roster player must fail")
	}
	if s.Status != StatusPlaying {
		t.Fatalf("status = %s, outsider forfeit must not end the game", s.Status)
	}
	if s.Winner != "" || s.Loser != "" {
		t.Fatalf("winner=%q loser=%q, want both unset", s.Winner, s.Loser)
	}
}

func TestForfeitBystandersNotMarkedLoser(t *testing.T) {
	s := newPlaying(t, "A", "B", "C")
	if !s.Forfeit("C", ReasonTimeout) {
		t.Fatal("Forfeit failed while playing")
	}
	if s.Loser != "C" {
		t.Fatalf("loser = %q, want C", s.Loser)
	}
	if s.Winner != "A" {
		t.Fatalf("winner = %q, want A (next distinct after C)", s.Winner)
	}
}

func TestForfeitSingleRoster(t *testing.T) {
	s := NewSession(testDict(), ModeSingle, []string{"A"}, 0)
	s.Start()
	if !s.Forfeit("A", "") {
		t.Fatal("Forfeit failed")
	}
	if s.Winner != "" {
		t.Fatalf("winner = %q, want none for single roster", s.Winner)
	}
	if s.Loser != "A" {
		t.Fatalf("loser = %q, want A", s.Loser)
	}
}

func TestWordTiers(t *testing.T) {
	tests := []struct {
		text string
		tier Tier
		xp   int
	}{
		{"사과", TierBasic, 5},
		{"자동차", TierBasic, 5},
		{"고속도로", TierMedium, 8},
		{"미끄럼틀놀이", TierLong, 12},
	}
	for _, tt := range tests {
		w := Word{Text: tt.text}
		if w.Tier() != tt.tier {
			t.Errorf("Tier(%s) = %s, want %s", tt.text, w.Tier(), tt.tier)
		}
		if w.Experience() != tt.xp {
			t.Errorf("Experience(%s) = %d, want %d", tt.text, w.Experience(), tt.xp)
		}
	}
}

func TestRequiredRune(t *testing.T) {
	s := newPlaying(t, "A", "B")
	if s.RequiredRune() != 0 {
		t.Fatal("empty chain must not constrain the first word")
	}
	s.Submit("사과", "A")
	if got := s.RequiredRune(); got != '과' {
		t.Fatalf("required = %c, want 과", got)
	}
}

func TestGameWordTimestamps(t *testing.T) {
	s := newPlaying(t, "A", "B")
	before := time.Now()
	s.Submit("사과", "A")
	if gw := s.Words[0]; gw.PlayedAt.Before(before.Add(-time.Second)) {
		t.Fatalf("PlayedAt = %v, too old", gw.PlayedAt)
	}
}

package progression

import (
	"context"
	"testing"
	"time"

	"github.com/saebyeokjang/WordChainLeague/internal/daily"
	"github.com/saebyeokjang/WordChainLeague/internal/game"
)

func snapWithWords(words []game.GameWord, winner, reason string) game.Snapshot {
	return game.Snapshot{
		ID:        "test",
		Status:    game.StatusFinished,
		Players:   []string{"A", "B"},
		Words:     words,
		Winner:    winner,
		EndReason: reason,
	}
}

func played(text, player string) game.GameWord {
	return game.GameWord{Word: game.Word{Text: text}, Player: player, PlayedAt: time.Now()}
}

func withLoser(s game.Snapshot, loser string) game.Snapshot {
	s.Loser = loser
	return s
}

func TestComputeVictoryBreakdown(t *testing.T) {
	// 4 basic words (5 each) by A, victory, no situational bonuses:
	// 20 completion + 20 words + 50 victory = 90.
	s := snapWithWords([]game.GameWord{
		played("사과", "A"), played("과자", "B"),
		played("자두", "A"), played("두부", "B"),
		played("부채", "A"), played("채소", "B"),
		played("소금", "A"),
	}, "A", "")
	// Keep only A's 4 words plus 3 by B: 7 total (< 10, no long-chain bonus).
	// A's words are all 2 syllables, so no steady-word bonus either.
	c := &Calculator{}
	b := c.Compute(context.Background(), s, "A", Victory, 1)
	if b.Completion != 20 || b.WordXP != 20 || b.WordCount != 4 || b.Outcome != 50 || b.Bonus != 0 {
		t.Fatalf("breakdown = %+v", b)
	}
	if b.Total() != 90 {
		t.Fatalf("total = %d, want 90", b.Total())
	}
}

func TestComputeForfeitSkipsCompletion(t *testing.T) {
	s := snapWithWords([]game.GameWord{played("사과", "A")}, "B", game.ReasonForfeit)
	c := &Calculator{}
	b := c.Compute(context.Background(), s, "A", Forfeit, 1)
	if b.Completion != 0 {
		t.Fatalf("completion = %d, want 0 on forfeit", b.Completion)
	}
	if b.Outcome != 0 {
		t.Fatalf("outcome bonus = %d, want 0 on forfeit", b.Outcome)
	}
	if b.Total() != 5 {
		t.Fatalf("total = %d, want 5 (word xp only)", b.Total())
	}
}

func TestComputeOutcomeBonuses(t *testing.T) {
	s := snapWithWords(nil, "B", "")
	c := &Calculator{}
	tests := []struct {
		outcome Outcome
		want    int
	}{
		{Victory, 50},
		{CloseDefeat, 15},
		{Defeat, 0},
	}
	for _, tt := range tests {
		if b := c.Compute(context.Background(), s, "A", tt.outcome, 1); b.Outcome != tt.want {
			t.Errorf("outcome %s bonus = %d, want %d", tt.outcome, b.Outcome, tt.want)
		}
	}
}

func TestComputeLongChainBonus(t *testing.T) {
	var gws []game.GameWord
	texts := []string{"사과", "과자", "자두", "두부", "부채", "채소", "소금", "금붕어", "어항", "항구"}
	for i, txt := range texts {
		p := "A"
		if i%2 == 1 {
			p = "B"
		}
		gws = append(gws, played(txt, p))
	}
	c := &Calculator{}
	b := c.Compute(context.Background(), snapWithWords(gws, "A", ""), "A", Defeat, 1)
	if b.Bonus != 10 {
		t.Fatalf("bonus = %d, want 10 for 10-word session", b.Bonus)
	}
}

func TestComputeSteadyWordBonus(t *testing.T) {
	// 3 words by A, each 3+ syllables.
	s := snapWithWords([]game.GameWord{
		played("자동차", "A"), played("차표", "B"),
		played("표범", "B"), played("무지개", "A"),
		played("개구리", "A"),
	}, "A", "")
	c := &Calculator{}
	b := c.Compute(context.Background(), s, "A", Defeat, 1)
	if b.Bonus != 15 {
		t.Fatalf("bonus = %d, want 15 steady-word bonus", b.Bonus)
	}
}

func TestDailyBonusIdempotent(t *testing.T) {
	led := daily.NewMemLedger()
	c := &Calculator{Ledger: led}
	s := snapWithWords(nil, "A", "")

	first := c.Compute(context.Background(), s, "A", Defeat, 1)
	if first.Bonus != 20 {
		t.Fatalf("first game bonus = %d, want 20", first.Bonus)
	}
	second := c.Compute(context.Background(), s, "A", Defeat, 2)
	if second.Bonus != 0 {
		t.Fatalf("repeat bonus = %d, want 0 (same day)", second.Bonus)
	}
}

func TestFiveGamesBonus(t *testing.T) {
	led := daily.NewMemLedger()
	c := &Calculator{Ledger: led}
	s := snapWithWords(nil, "A", "")

	// First call claims the first-game flag; fifth game adds +30 once.
	if b := c.Compute(context.Background(), s, "A", Defeat, 5); b.Bonus != 20+30 {
		t.Fatalf("bonus = %d, want 50 (first game + five games)", b.Bonus)
	}
	if b := c.Compute(context.Background(), s, "A", Defeat, 6); b.Bonus != 0 {
		t.Fatalf("bonus = %d, want 0 after both flags set", b.Bonus)
	}
}

func TestClassify(t *testing.T) {
	chain := []game.GameWord{
		played("사과", "A"), played("과자", "B"), played("자두", "A"),
	}
	tests := []struct {
		name   string
		snap   game.Snapshot
		player string
		margin int
		want   Outcome
	}{
		{"winner", snapWithWords(chain, "A", ""), "A", 1, Victory},
		{"forfeit loser", withLoser(snapWithWords(chain, "B", game.ReasonForfeit), "A"), "A", 1, Forfeit},
		{"timeout loser", withLoser(snapWithWords(chain, "B", game.ReasonTimeout), "A"), "A", 1, Forfeit},
		{"close defeat", snapWithWords(chain, "A", game.ReasonAIStuck), "B", 1, CloseDefeat},
		{"close defeat disabled", snapWithWords(chain, "A", game.ReasonAIStuck), "B", -1, Defeat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.snap, tt.player, tt.margin); got != tt.want {
				t.Fatalf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyMultiTimeoutBystander(t *testing.T) {
	// C ran out the clock in a 3-player match; B finished the game and still
	// earns the completion bonus.
	snap := game.Snapshot{
		ID:        "test",
		Status:    game.StatusFinished,
		Players:   []string{"A", "B", "C"},
		Words:     []game.GameWord{played("사과", "A"), played("과자", "B"), played("자두", "A")},
		Winner:    "A",
		Loser:     "C",
		EndReason: game.ReasonTimeout,
	}
	if got := Classify(snap, "C", 1); got != Forfeit {
		t.Fatalf("Classify(C) = %s, want %s", got, Forfeit)
	}
	if got := Classify(snap, "B", -1); got != Defeat {
		t.Fatalf("Classify(B) = %s, want %s", got, Defeat)
	}

	c := &Calculator{}
	b := c.Compute(context.Background(), snap, "B", Classify(snap, "B", -1), 1)
	if b.Completion != 20 {
		t.Fatalf("bystander completion = %d, want 20", b.Completion)
	}
}

func TestClassifySoloTimeout(t *testing.T) {
	// Single-mode timeout has no winner; the player who quit gets no
	// completion bonus.
	snap := game.Snapshot{
		ID:        "test",
		Status:    game.StatusFinished,
		Players:   []string{"A"},
		Words:     []game.GameWord{played("사과", "A")},
		Loser:     "A",
		EndReason: game.ReasonTimeout,
	}
	if got := Classify(snap, "A", 1); got != Forfeit {
		t.Fatalf("Classify = %s, want %s", got, Forfeit)
	}
	c := &Calculator{}
	if b := c.Compute(context.Background(), snap, "A", Forfeit, 1); b.Completion != 0 {
		t.Fatalf("completion = %d, want 0 for the player who quit", b.Completion)
	}
}

// internal/progression/award.go
//
// Experience award calculator: converts a finished session plus an outcome
// classification into an additive experience breakdown.
//
// All amounts are fixed constants and combinable. Daily bonuses go through
// the flag ledger so they are awarded at most once per calendar day per
// player, no matter how often the calculator runs.

package progression

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saebyeokjang/WordChainLeague/internal/daily"
	"github.com/saebyeokjang/WordChainLeague/internal/game"
)

// Outcome classifies how a finished session ended for one player.
type Outcome string

const (
	Victory     Outcome = "victory"
	Defeat      Outcome = "defeat"
	CloseDefeat Outcome = "closeDefeat"
	Forfeit     Outcome = "forfeit"
)

// Award constants.
const (
	completionBonus = 20 // finishing a game (not by own forfeit)
	victoryBonus    = 50
	closeLossBonus  = 15
	firstGameBonus  = 20 // first game of the calendar day
	fiveGamesBonus  = 30 // fifth game of the calendar day
	longChainBonus  = 10 // session reached 10+ total words
	steadyWordBonus = 15 // 3+ own words, every one 3+ syllables
)

const longChainWords = 10

// Breakdown is the per-game experience decomposition. Ephemeral: only the
// total is ever applied to a user's cumulative experience.
type Breakdown struct {
	Completion int `json:"completion"`
	WordXP     int `json:"wordXp"`
	WordCount  int `json:"wordCount"`
	Outcome    int `json:"outcome"`
	Bonus      int `json:"bonus"` // situational bonuses, summed
}

// Total is the sum of all parts.
func (b Breakdown) Total() int {
	return b.Completion + b.WordXP + b.Outcome + b.Bonus
}

// Calculator computes breakdowns. Ledger enforces daily idempotency; a nil
// Ledger skips the daily bonuses. Clock defaults to time.Now.
type Calculator struct {
	Ledger daily.Ledger
	Clock  func() time.Time
}

// Compute builds the breakdown for player's part in a finished session.
// gamesToday is the player's completed game count for the current day,
// including this one (supplied by the caller from its game history).
func (c *Calculator) Compute(ctx context.Context, s game.Snapshot, player string, outcome Outcome, gamesToday int) Breakdown {
	var b Breakdown

	if outcome != Forfeit {
		b.Completion = completionBonus
	}

	allSteady := true
	for _, gw := range s.Words {
		if gw.Player != player {
			continue
		}
		b.WordXP += gw.Word.Experience()
		b.WordCount++
		if gw.Word.Len() < 3 {
			allSteady = false
		}
	}

	switch outcome {
	case Victory:
		b.Outcome = victoryBonus
	case CloseDefeat:
		b.Outcome = closeLossBonus
	case Defeat, Forfeit:
		// No outcome bonus.
	}

	if len(s.Words) >= longChainWords {
		b.Bonus += longChainBonus
	}
	if allSteady && b.WordCount >= 3 {
		b.Bonus += steadyWordBonus
	}
	b.Bonus += c.dailyBonuses(ctx, player, gamesToday)

	return b
}

// dailyBonuses awards the once-per-day bonuses through the ledger.
func (c *Calculator) dailyBonuses(ctx context.Context, player string, gamesToday int) int {
	if c.Ledger == nil || player == "" {
		return 0
	}
	now := time.Now
	if c.Clock != nil {
		now = c.Clock
	}
	date := daily.DateKey(now())

	total := 0
	if ok, err := c.claim(ctx, daily.ActFirstGame, date, player); err == nil && ok {
		total += firstGameBonus
	}
	if gamesToday >= 5 {
		if ok, err := c.claim(ctx, daily.ActFiveGames, date, player); err == nil && ok {
			total += fiveGamesBonus
		}
	}
	return total
}

// claim atomically tests and sets one daily flag.
// Returns true when this call won the flag for the day.
func (c *Calculator) claim(ctx context.Context, activity, date, player string) (bool, error) {
	has, err := c.Ledger.Has(ctx, activity, date, player)
	if err != nil {
		log.Warn().Err(err).Str("activity", activity).Msg("daily ledger read")
		return false, err
	}
	if has {
		return false, nil
	}
	if err := c.Ledger.Set(ctx, activity, date, player); err != nil {
		log.Warn().Err(err).Str("activity", activity).Msg("daily ledger write")
		return false, err
	}
	return true, nil
}

// Classify derives a player's outcome from a finished session.
//
// closeMargin is the configuration point for the close-defeat category: a
// loss counts as close when the loser played within closeMargin words of the
// winner. A negative margin disables the category.
func Classify(s game.Snapshot, player string, closeMargin int) Outcome {
	if s.Winner == player {
		return Victory
	}
	// Only the player who actually quit or ran out the clock forfeits; other
	// losers in a multi-player roster still completed the game.
	lostByQuit := s.EndReason == game.ReasonForfeit || s.EndReason == game.ReasonTimeout
	if lostByQuit && s.Loser == player {
		return Forfeit
	}
	if s.Winner != "" && closeMargin >= 0 {
		mine, theirs := 0, 0
		for _, gw := range s.Words {
			if gw.Player == player {
				mine++
			} else if gw.Player == s.Winner {
				theirs++
			}
		}
		if theirs-mine <= closeMargin {
			return CloseDefeat
		}
	}
	return Defeat
}

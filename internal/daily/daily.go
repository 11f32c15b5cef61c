package daily

import "time"

// Activities tracked once per calendar day per player.
const (
	ActFirstGame = "first_game"
	ActFiveGames = "five_games"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// internal/progression/engine.go
//
// Progression engine: applies an experience award to a user record and
// detects level-ups against the curve.

package progression

import (
	"strconv"

	"github.com/saebyeokjang/WordChainLeague/internal/store"
)

// LevelUpEvent is the outward notification for a level gain.
// Reward IDs are cosmetic unlock keys; the reward catalog itself lives
// outside this package.
type LevelUpEvent struct {
	Player    string   `json:"player"`
	PrevLevel int      `json:"prevLevel"`
	NewLevel  int      `json:"newLevel"`
	Title     string   `json:"title"`
	Gained    int      `json:"gained"`
	Rewards   []string `json:"rewards,omitempty"`
}

// ApplyExperience adds amount to the user's cumulative experience and
// recomputes the level. Returns a LevelUpEvent when the level rose, nil
// otherwise. amount <= 0 and nil users are no-ops, not errors.
func ApplyExperience(user *store.User, amount int) *LevelUpEvent {
	if user == nil || amount <= 0 {
		return nil
	}
	prev := Info(user.Experience).Level
	user.Experience += amount
	info := Info(user.Experience)
	user.Level = info.Level
	if info.Level <= prev {
		return nil
	}
	return &LevelUpEvent{
		Player:    user.Username,
		PrevLevel: prev,
		NewLevel:  info.Level,
		Title:     info.Title,
		Gained:    amount,
		Rewards:   rewardsBetween(prev, info.Level),
	}
}

// rewardsBetween collects cosmetic unlock keys for every reward level
// crossed going from prev (exclusive) to next (inclusive).
// Reward levels: 5, 20, 50, and every multiple of 10.
func rewardsBetween(prev, next int) []string {
	var out []string
	for l := prev + 1; l <= next; l++ {
		if rewardLevel(l) {
			out = append(out, rewardKey(l))
		}
	}
	return out
}

func rewardLevel(l int) bool {
	return l == 5 || l == 20 || l == 50 || l%10 == 0
}

func rewardKey(l int) string {
	switch l {
	case 5:
		return "frame_bronze"
	case 10:
		return "frame_silver"
	case 20:
		return "frame_gold"
	case 50:
		return "frame_platinum"
	default:
		return "emblem_lv" + strconv.Itoa(l)
	}
}

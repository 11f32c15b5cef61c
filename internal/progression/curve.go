// internal/progression/curve.go
//
// Progression curve: cumulative experience → level, title, and progress.
// The curve is a sparse level→threshold table over levels 1–100; levels
// absent from the table are estimated by linear interpolation between the
// nearest known neighbours. Level 100 is the cap.
//
// The mapping is total over non-negative experience: there are no error
// conditions, and negative input is coerced to 0.

package progression

import "sort"

// MaxLevel is the progression cap.
const MaxLevel = 100

// curveTable is the sparse cumulative-experience table.
// Levels between keys are linearly interpolated.
var curveTable = map[int]int{
	1:   0,
	2:   100,
	3:   250,
	4:   450,
	5:   700,
	6:   1000,
	7:   1350,
	8:   1750,
	9:   1950,
	10:  2190,
	11:  2640,
	12:  3150,
	15:  5000,
	20:  9000,
	25:  14000,
	30:  20000,
	40:  35000,
	50:  55000,
	60:  80000,
	70:  110000,
	80:  145000,
	90:  185000,
	100: 230000,
}

// curveKeys holds the table's levels in ascending order.
var curveKeys = func() []int {
	keys := make([]int, 0, len(curveTable))
	for k := range curveTable {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}()

// LevelInfo is the derived progression state for a raw experience total.
type LevelInfo struct {
	Level         int     `json:"level"`
	Title         string  `json:"title"`
	Experience    int     `json:"experience"`
	Threshold     int     `json:"threshold"`     // this level's cumulative floor
	NextThreshold int     `json:"nextThreshold"` // next level's cumulative floor
	Progress      float64 `json:"progress"`      // fraction into next level, [0,1]
}

// ThresholdForLevel returns the cumulative experience floor for a level.
// Exact table keys are returned as-is; other levels interpolate linearly
// between the nearest lower and upper keys (truncating). Levels beyond the
// table clamp to its maximum value; levels below 1 clamp to level 1.
func ThresholdForLevel(level int) int {
	if level <= curveKeys[0] {
		return curveTable[curveKeys[0]]
	}
	if v, ok := curveTable[level]; ok {
		return v
	}
	maxKey := curveKeys[len(curveKeys)-1]
	if level >= maxKey {
		return curveTable[maxKey]
	}
	// Nearest lower and upper keys around the missing level.
	i := sort.SearchInts(curveKeys, level)
	lowerKey, upperKey := curveKeys[i-1], curveKeys[i]
	lower, upper := curveTable[lowerKey], curveTable[upperKey]
	return lower + (upper-lower)*(level-lowerKey)/(upperKey-lowerKey)
}

// Info derives the full progression state from cumulative experience.
func Info(experience int) LevelInfo {
	if experience < 0 {
		experience = 0
	}
	level := 1
	for l := MaxLevel; l >= 1; l-- {
		if ThresholdForLevel(l) <= experience {
			level = l
			break
		}
	}
	cur := ThresholdForLevel(level)
	next := ThresholdForLevel(level + 1) // clamps to level 100 at the cap
	progress := 1.0
	if next > cur {
		progress = float64(experience-cur) / float64(next-cur)
		if progress < 0 {
			progress = 0
		} else if progress > 1 {
			progress = 1
		}
	}
	return LevelInfo{
		Level:         level,
		Title:         TitleForLevel(level),
		Experience:    experience,
		Threshold:     cur,
		NextThreshold: next,
		Progress:      progress,
	}
}

// TitleForLevel maps a level to its band title. Bands are fixed,
// non-overlapping, and exhaustive over 1..∞.
func TitleForLevel(level int) string {
	switch {
	case level <= 5:
		return "끝말잇기 새싹"
	case level <= 15:
		return "끝말잇기 견습생"
	case level <= 30:
		return "끝말잇기 도전자"
	case level <= 50:
		return "끝말잇기 숙련자"
	case level <= 70:
		return "끝말잇기 전문가"
	case level <= 85:
		return "끝말잇기 달인"
	default:
		return "끝말잇기 명인"
	}
}

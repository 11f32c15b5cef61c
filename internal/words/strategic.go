// internal/words/strategic.go
//
// Difficulty-biased word selection for the AI opponent.
// The bias looks only at the last syllable of each candidate — how easy or
// hard it is for the next player to continue from — with no lookahead over
// future turns.

package words

// Difficulty is the AI selection tier.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Onward-count thresholds for the last-syllable bias.
const (
	easyOnwardMin = 5 // easy: ≥ this many continuations for the next player
	hardOnwardMax = 2 // hard: ≤ this many continuations
)

// rareEndings are syllables that almost no dictionary word starts with.
// A candidate ending in one of these counts as hard regardless of its
// onward count (unordered union with the low-onward filter).
var rareEndings = map[rune]bool{
	'엌': true,
	'릎': true,
	'늪': true,
	'숲': true,
	'즐': true,
	'퍼': true,
}

// ParseDifficulty maps a string to a Difficulty, defaulting to Medium.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case Easy, Hard:
		return Difficulty(s)
	default:
		return Medium
	}
}

// Strategic picks a word starting with first, biased by difficulty.
// first == 0 means any starting syllable (opening move).
//
// Fallback chain when the biased filter matches nothing:
//   biased bucket → (hard only) any candidate of 4+ syllables → any candidate.
func (d *Dict) Strategic(first rune, diff Difficulty, excluding map[string]struct{}) (string, bool) {
	bucket := d.candidates(first, excluding)
	if len(bucket) == 0 {
		return "", false
	}

	var biased []string
	switch diff {
	case Easy:
		for _, w := range bucket {
			if d.Count(LastRune(w)) >= easyOnwardMin {
				biased = append(biased, w)
			}
		}
	case Hard:
		for _, w := range bucket {
			last := LastRune(w)
			if d.Count(last) <= hardOnwardMax || rareEndings[last] {
				biased = append(biased, w)
			}
		}
	case Medium:
		// No bias: any candidate.
	}
	if w, ok := pick(biased); ok {
		return w, true
	}

	if diff == Hard {
		var long []string
		for _, w := range bucket {
			if RuneLen(w) >= 4 {
				long = append(long, w)
			}
		}
		if w, ok := pick(long); ok {
			return w, true
		}
	}

	return pick(bucket)
}

// internal/words/words.go
//
// Dictionary index for the word-chain game.
//
// Responsibilities:
//   - Load the baseline corpus (embedded) merged with an optional external
//     word list, dropping entries that fail the length/alphabet rules.
//   - Maintain a membership set plus two indices: words by first syllable and
//     words by last syllable (buckets kept sorted for deterministic listing).
//   - Supply lookup and random-selection primitives used by game validation
//     and the AI chooser.
//
// Word constraints:
//   • At least 2 syllables.
//   • Hangul syllable block only (가–힣).
//
// Environment variables:
//   WORDS_EXTRA_FILE=/path/to/extra.txt   (optional, merged at load)

package words

import (
	"bufio"
	"crypto/rand"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/saebyeokjang/WordChainLeague/assets"
)

// Dict is the in-memory word corpus with first/last-syllable indices.
// Built once at startup; Add is the only mutation and is not expected to
// race with reads (single-threaded access by design).
type Dict struct {
	all     map[string]struct{} // membership set
	byFirst map[rune][]string   // first syllable → sorted words
	byLast  map[rune][]string   // last syllable → sorted words
}

// New builds a dictionary from a word list.
// Entries failing the length or alphabet rules are silently dropped.
func New(list []string) *Dict {
	d := &Dict{all: make(map[string]struct{}, len(list))}
	for _, w := range list {
		w = strings.TrimSpace(w)
		if !Valid(w) {
			continue
		}
		d.all[w] = struct{}{}
	}
	d.rebuild()
	return d
}

// Load builds the dictionary from the embedded baseline corpus merged with
// the optional WORDS_EXTRA_FILE list.
func Load() (*Dict, error) {
	base, err := assets.WordList()
	if err != nil {
		return nil, err
	}
	if path := os.Getenv("WORDS_EXTRA_FILE"); path != "" {
		extra, err := readWordFile(path)
		if err != nil {
			return nil, err
		}
		base = append(base, extra...)
	}
	return New(base), nil
}

// readWordFile loads one word per line; blank lines and # comments skipped.
// Invalid entries are dropped later by New.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// rebuild regenerates both indices from the membership set.
// Buckets are sorted so listing operations are deterministic.
func (d *Dict) rebuild() {
	d.byFirst = make(map[rune][]string)
	d.byLast = make(map[rune][]string)
	for w := range d.all {
		f, l := FirstRune(w), LastRune(w)
		d.byFirst[f] = append(d.byFirst[f], w)
		d.byLast[l] = append(d.byLast[l], w)
	}
	for _, bucket := range d.byFirst {
		sort.Strings(bucket)
	}
	for _, bucket := range d.byLast {
		sort.Strings(bucket)
	}
}

// Contains reports whether w is in the corpus (exact match).
func (d *Dict) Contains(w string) bool {
	_, ok := d.all[w]
	return ok
}

// Add inserts a custom word into the corpus and rebuilds the indices.
// Returns false for duplicates and for words failing the length/alphabet
// rules.
func (d *Dict) Add(w string) bool {
	w = strings.TrimSpace(w)
	if !Valid(w) {
		return false
	}
	if _, dup := d.all[w]; dup {
		return false
	}
	d.all[w] = struct{}{}
	d.rebuild()
	return true
}

// Size returns the number of words in the corpus.
func (d *Dict) Size() int { return len(d.all) }

// StartingWith returns the sorted bucket of words whose first syllable is ch.
func (d *Dict) StartingWith(ch rune) []string { return d.byFirst[ch] }

// EndingWith returns the sorted bucket of words whose last syllable is ch.
func (d *Dict) EndingWith(ch rune) []string { return d.byLast[ch] }

// Count returns how many words start with ch.
func (d *Dict) Count(ch rune) int { return len(d.byFirst[ch]) }

// Random picks a random word starting with first, skipping excluded texts.
// first == 0 means any starting syllable. Returns ok=false when nothing
// qualifies.
func (d *Dict) Random(first rune, excluding map[string]struct{}) (string, bool) {
	return pick(d.candidates(first, excluding))
}

// candidates collects the selectable words for a starting syllable.
func (d *Dict) candidates(first rune, excluding map[string]struct{}) []string {
	var src []string
	if first == 0 {
		src = make([]string, 0, len(d.all))
		for w := range d.all {
			src = append(src, w)
		}
		sort.Strings(src)
	} else {
		src = d.byFirst[first]
	}
	if len(excluding) == 0 {
		return src
	}
	out := make([]string, 0, len(src))
	for _, w := range src {
		if _, used := excluding[w]; !used {
			out = append(out, w)
		}
	}
	return out
}

// pick returns a cryptographically random element of list.
func pick(list []string) (string, bool) {
	if len(list) == 0 {
		return "", false
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	return list[nBig.Int64()], true
}

// ---------------------------- rune helpers ---------------------------------

// FirstRune returns the first syllable of w (0 for empty).
func FirstRune(w string) rune {
	for _, r := range w {
		return r
	}
	return 0
}

// LastRune returns the last syllable of w (0 for empty).
func LastRune(w string) rune {
	var last rune
	for _, r := range w {
		last = r
	}
	return last
}

// RuneLen returns the syllable count of w.
func RuneLen(w string) int { return len([]rune(w)) }

// IsHangul reports whether s consists only of Hangul syllables (가–힣).
func IsHangul(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 0xAC00 || r > 0xD7A3 {
			return false
		}
	}
	return true
}

// Valid reports whether w satisfies the corpus constraints:
// at least 2 syllables, Hangul only.
func Valid(w string) bool {
	return RuneLen(w) >= 2 && IsHangul(w)
}

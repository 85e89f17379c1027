package keyboard

import (
	"fmt"
	"sort"

	"github.com/phonochord/chordgen/internal/lexicon"
)

// Keyboard couples a Physical description with the fixed syllabic-position
// key partition and the live stroke → phoneme layout (§4.5).
type Keyboard struct {
	physical *Physical

	keyIDInSyllabicPart [3][]int
	maxKeysPerPhoneme   [3]int

	layout          [3]map[string][]string // pos -> stroke key -> phonemes
	phonemeToStroke [3]map[string]string   // pos -> phoneme -> stroke key
}

// NewKeyboard builds a Keyboard, validating that keyIDInSyllabicPart
// partitions the physical keyboard's keys exactly (§7, fatal on
// mismatch).
func NewKeyboard(physical *Physical, keyIDInSyllabicPart [3][]int, maxKeysPerPhoneme [3]int) (*Keyboard, error) {
	seen := make(map[int]struct{})
	total := 0
	for _, pos := range lexicon.Positions {
		for _, k := range keyIDInSyllabicPart[pos] {
			if _, dup := seen[k]; dup {
				return nil, fmt.Errorf("keyboard partition mismatch: key %d assigned to more than one position", k)
			}
			seen[k] = struct{}{}
			total++
		}
	}
	if total != len(physical.Keys) {
		return nil, &errPartitionMismatch{Got: total, Want: len(physical.Keys)}
	}

	kb := &Keyboard{
		physical:            physical,
		keyIDInSyllabicPart: keyIDInSyllabicPart,
		maxKeysPerPhoneme:   maxKeysPerPhoneme,
	}
	kb.clearLayoutLocked()
	return kb, nil
}

// KeyIDInSyllabicPart returns the key IDs partitioned to pos.
func (kb *Keyboard) KeyIDInSyllabicPart(pos lexicon.Position) []int {
	return kb.keyIDInSyllabicPart[pos]
}

// MaxKeysPerPhoneme returns the maximum stroke length allowed at pos.
func (kb *Keyboard) MaxKeysPerPhoneme(pos lexicon.Position) int {
	return kb.maxKeysPerPhoneme[pos]
}

// getPossibleStrokes enumerates every distinct key-set of exactly n keys,
// all drawn from pos's partition, reachable by some combination of
// per-finger allowed keypresses.
func (kb *Keyboard) getPossibleStrokes(pos lexicon.Position, n int) []Stroke {
	allowed := make(map[int]struct{}, len(kb.keyIDInSyllabicPart[pos]))
	for _, k := range kb.keyIDInSyllabicPart[pos] {
		allowed[k] = struct{}{}
	}
	perFinger := kb.physical.fingersReaching(allowed)

	seen := make(map[string]Stroke)
	var rec func(fingerIdx int, chosen []int)
	rec = func(fingerIdx int, chosen []int) {
		if len(chosen) == n {
			s := newStroke(chosen)
			seen[s.Key()] = s
			return
		}
		if len(chosen) > n || fingerIdx >= len(perFinger) {
			return
		}
		// skip this finger
		rec(fingerIdx+1, chosen)
		// use one of this finger's reachable keypresses
		for _, kp := range perFinger[fingerIdx] {
			if len(chosen)+len(kp) > n {
				continue
			}
			conflict := false
			for _, k := range kp {
				for _, c := range chosen {
					if c == k {
						conflict = true
					}
				}
			}
			if conflict {
				continue
			}
			rec(fingerIdx+1, append(append([]int{}, chosen...), kp...))
		}
	}
	rec(0, nil)

	out := make([]Stroke, 0, len(seen))
	for _, s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return strokeIsLowerThen(out[i], out[j]) < 0 })
	return out
}

// getStrokeCostFor is a package-internal wrapper calling getStrokeCost
// with a Stroke value rather than a raw key slice; GetStrokeCost is the
// exported entry point.
func (kb *Keyboard) getStrokeCostFor(s Stroke, pos lexicon.Position) float64 {
	return kb.getStrokeCost(s, pos)
}

// GetPossibleStrokes enumerates every distinct n-key stroke available at
// pos, in canonical (strokeIsLowerThen) order.
func (kb *Keyboard) GetPossibleStrokes(pos lexicon.Position, n int) []Stroke {
	return kb.getPossibleStrokes(pos, n)
}

// GetStrokeCost returns the ergonomic cost of stroke s pressed at pos.
// The geometry term of §4.5 only applies to onset and coda strokes.
func (kb *Keyboard) GetStrokeCost(s Stroke, pos lexicon.Position) float64 {
	return kb.getStrokeCost(s, pos)
}

func (kb *Keyboard) clearLayoutLocked() {
	for _, pos := range lexicon.Positions {
		kb.layout[pos] = make(map[string][]string)
		kb.phonemeToStroke[pos] = make(map[string]string)
	}
}

// ClearLayout removes every phoneme assignment at every position.
func (kb *Keyboard) ClearLayout() {
	kb.clearLayoutLocked()
}

// ClearLayoutAt removes every phoneme assignment at one position only.
func (kb *Keyboard) ClearLayoutAt(pos lexicon.Position) {
	kb.layout[pos] = make(map[string][]string)
	kb.phonemeToStroke[pos] = make(map[string]string)
}

// AddToLayout assigns phoneme to stroke at pos, replacing any previous
// assignment the phoneme held at that position.
func (kb *Keyboard) AddToLayout(pos lexicon.Position, phoneme string, s Stroke) {
	kb.RemoveFromLayout(pos, phoneme)
	key := s.Key()
	kb.layout[pos][key] = append(kb.layout[pos][key], phoneme)
	kb.phonemeToStroke[pos][phoneme] = key
}

// RemoveFromLayout clears phoneme's assignment at pos, if any.
func (kb *Keyboard) RemoveFromLayout(pos lexicon.Position, phoneme string) {
	key, ok := kb.phonemeToStroke[pos][phoneme]
	if !ok {
		return
	}
	phonemes := kb.layout[pos][key]
	for i, p := range phonemes {
		if p == phoneme {
			kb.layout[pos][key] = append(phonemes[:i], phonemes[i+1:]...)
			break
		}
	}
	if len(kb.layout[pos][key]) == 0 {
		delete(kb.layout[pos], key)
	}
	delete(kb.phonemeToStroke[pos], phoneme)
}

// GetPhonemesOfStroke returns the phonemes sharing stroke s at pos.
func (kb *Keyboard) GetPhonemesOfStroke(pos lexicon.Position, s Stroke) []string {
	return kb.layout[pos][s.Key()]
}

// GetStrokesOfPhoneme returns phoneme's assigned stroke at pos, and
// whether one exists.
func (kb *Keyboard) GetStrokesOfPhoneme(pos lexicon.Position, phoneme string) (Stroke, bool) {
	key, ok := kb.phonemeToStroke[pos][phoneme]
	if !ok {
		return nil, false
	}
	s, err := ParseStrokeKey(key)
	if err != nil {
		return nil, false
	}
	return s, true
}

// GetStrokeOfSyllableByPart returns the assigned stroke for each of the
// syllable's positional phoneme symbols, in canonical [onset, nucleus,
// coda] order. A position with no phoneme (e.g. empty nucleus) yields an
// empty Stroke.
func (kb *Keyboard) GetStrokeOfSyllableByPart(syl *lexicon.Syllable) [3]Stroke {
	var out [3]Stroke
	for _, pos := range lexicon.Positions {
		symbols := syl.PositionSlice(pos)
		if len(symbols) == 0 {
			continue
		}
		var combined Stroke
		for _, sym := range symbols {
			if s, ok := kb.GetStrokesOfPhoneme(pos, sym); ok {
				combined = append(combined, s...)
			}
		}
		out[pos] = newStroke(combined)
	}
	return out
}

// StrokesToString renders a syllable's chord strokes in pretty form.
func (kb *Keyboard) StrokesToString(strokes [3]Stroke) string {
	return strokesToString(strokes)
}

package ambiguity

import (
	"context"
	"sort"
	"strings"

	"github.com/phonochord/chordgen/internal/lexicon"
	"github.com/phonochord/chordgen/internal/pipeline"
	"github.com/phonochord/chordgen/internal/stats"
)

// MaxMultiphonemes caps the number of multiphoneme pairs kept, ranked by
// ambiguity, to keep the downstream chord-assignment model tractable.
const MaxMultiphonemes = 2000

// maxTupleLen bounds multiphoneme tuple length considered at each
// position; longer tuples are rare and contribute negligible signal
// relative to the combinatorial cost of tracking them.
const maxTupleLen = 3

// MultiphonemeTable is the multiphoneme-ambiguity result for each of the
// three positions, each slice already capped to MaxMultiphonemes entries
// and sorted by increasing ambiguity.
type MultiphonemeTable struct {
	ByPosition [3][]Score
}

// MultiphonemeAmbiguity extends the pairwise syllabic-ambiguity scoring to
// ordered multiphoneme tuples drawn from each syllabic position (§4.4),
// run in parallel across the three positions.
func MultiphonemeAmbiguity(ctx context.Context, sc *stats.Context) (*MultiphonemeTable, error) {
	var table MultiphonemeTable
	results, err := pipeline.PerPosition(ctx, func(_ context.Context, pos lexicon.Position) ([]Score, error) {
		return multiphonemeAmbiguityAtPosition(sc, pos), nil
	})
	if err != nil {
		return nil, err
	}
	for _, pos := range lexicon.Positions {
		table.ByPosition[pos] = results[pos]
	}
	return &table, nil
}

func multiphonemeAmbiguityAtPosition(sc *stats.Context, pos lexicon.Position) []Score {
	occurrences := collectMultiphonemes(sc, pos)
	tuples := make([]string, 0, len(occurrences))
	for k := range occurrences {
		tuples = append(tuples, k)
	}
	sort.Strings(tuples)

	var scores []Score
	for i, t1 := range tuples {
		for _, t2 := range tuples[i+1:] {
			s := multiphonemePairScore(sc, pos, occurrences, t1, t2)
			scores = append(scores, Score{Key: unordered(t1, t2), Value: s})
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Value != scores[j].Value {
			return scores[i].Value < scores[j].Value
		}
		return pairLess(scores[i].Key, scores[j].Key)
	})
	if len(scores) > MaxMultiphonemes {
		scores = scores[:MaxMultiphonemes]
	}
	return scores
}

// collectMultiphonemes enumerates every contiguous sub-tuple (length 1..
// maxTupleLen) observed at pos across all syllables, keyed by its joined
// form, mapping to the syllables it occurs in.
func collectMultiphonemes(sc *stats.Context, pos lexicon.Position) map[string][]*lexicon.Syllable {
	out := make(map[string][]*lexicon.Syllable)
	for _, syl := range sc.Syllables {
		symbols := syl.PositionSlice(pos)
		seenInSyllable := make(map[string]struct{})
		for l := 1; l <= maxTupleLen && l <= len(symbols); l++ {
			for start := 0; start+l <= len(symbols); start++ {
				tuple := symbols[start : start+l]
				key := joinTuple(tuple)
				if _, ok := seenInSyllable[key]; ok {
					continue
				}
				seenInSyllable[key] = struct{}{}
				out[key] = append(out[key], syl)
			}
		}
	}
	return out
}

func multiphonemePairScore(sc *stats.Context, pos lexicon.Position, occurrences map[string][]*lexicon.Syllable, t1, t2 string) float64 {
	tuple1 := strings.Split(t1, "\x1f")
	tuple2 := strings.Split(t2, "\x1f")

	var score float64
	for _, s := range occurrences[t1] {
		symbols := s.PositionSlice(pos)
		if containsTuple(symbols, tuple2) {
			freqOrig := s.Frequency
			name1, _ := replaceTuple(s, tuple1, nil, pos)
			name2, _ := replaceTuple(s, tuple2, nil, pos)
			freq1 := syllableFrequency(sc, name1)
			freq2 := syllableFrequency(sc, name2)
			score += sumMinusMax(freqOrig, freq1, freq2)
		} else {
			substName, ok := replaceTuple(s, tuple1, tuple2, pos)
			if !ok {
				continue
			}
			freqOrig := s.Frequency
			freqSubst := syllableFrequency(sc, substName)
			score += minOf(freqOrig, freqSubst)
		}
	}
	return score
}

func containsTuple(symbols, tuple []string) bool {
	return findSubslice(symbols, tuple) >= 0
}

func findSubslice(haystack, needle []string) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for start := 0; start+len(needle) <= len(haystack); start++ {
		match := true
		for i, v := range needle {
			if haystack[start+i] != v {
				match = false
				break
			}
		}
		if match {
			return start
		}
	}
	return -1
}

// replaceTuple substitutes the first contiguous occurrence of tupleA with
// tupleB (nil meaning removal) within the given position of s, returning
// the resulting full syllable name.
func replaceTuple(s *lexicon.Syllable, tupleA, tupleB []string, pos lexicon.Position) (string, bool) {
	onset := append([]string{}, s.Onset...)
	nucleus := append([]string{}, s.Nucleus...)
	coda := append([]string{}, s.Coda...)

	var target *[]string
	switch pos {
	case lexicon.Onset:
		target = &onset
	case lexicon.Nucleus:
		target = &nucleus
	case lexicon.Coda:
		target = &coda
	}

	idx := findSubslice(*target, tupleA)
	if idx < 0 {
		return s.Name, false
	}
	rebuilt := append([]string{}, (*target)[:idx]...)
	rebuilt = append(rebuilt, tupleB...)
	rebuilt = append(rebuilt, (*target)[idx+len(tupleA):]...)
	*target = rebuilt

	return strings.Join(onset, "") + strings.Join(nucleus, "") + strings.Join(coda, ""), true
}

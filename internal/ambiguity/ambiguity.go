// Package ambiguity computes the syllabic, lexical and multiphoneme
// ambiguity scores of §4.4: how confusable two phonemes (or phoneme
// tuples) would be if they shared the same physical keys.
package ambiguity

import (
	"context"
	"sort"
	"strings"

	"github.com/phonochord/chordgen/internal/lexicon"
	"github.com/phonochord/chordgen/internal/pipeline"
	"github.com/phonochord/chordgen/internal/stats"
)

// PairKey identifies an unordered pair of tuple keys (phoneme symbols or
// joined multiphoneme tuples).
type PairKey [2]string

// Score pairs a key with its ambiguity score, used for sorted output.
type Score struct {
	Key   PairKey
	Value float64
}

// Table is the per-position ambiguity result: Map<Position, Map<pair,
// score>>, emitted sorted by increasing ambiguity via Sorted.
type Table struct {
	ByPosition [3]map[PairKey]float64
}

func newTable() *Table {
	var t Table
	for _, pos := range lexicon.Positions {
		t.ByPosition[pos] = make(map[PairKey]float64)
	}
	return &t
}

// Sorted returns the pairs for one position, sorted by increasing score.
func (t *Table) Sorted(pos lexicon.Position) []Score {
	out := make([]Score, 0, len(t.ByPosition[pos]))
	for k, v := range t.ByPosition[pos] {
		out = append(out, Score{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value < out[j].Value
		}
		return pairLess(out[i].Key, out[j].Key)
	})
	return out
}

func pairLess(a, b PairKey) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

func unordered(a, b string) PairKey {
	if a <= b {
		return PairKey{a, b}
	}
	return PairKey{b, a}
}

// sumMinusMax subtracts the maximum of three values from their sum, leaving
// the sum of the two smallest.
func sumMinusMax(a, b, c float64) float64 {
	max := a
	if b > max {
		max = b
	}
	if c > max {
		max = c
	}
	return a + b + c - max
}

func minOf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// SyllabicAmbiguity computes the syllabic ambiguity score (§4.4) for every
// pair of phonemes observed at pos, run across the three positions in
// parallel via pipeline.PerPosition.
func SyllabicAmbiguity(ctx context.Context, sc *stats.Context, idx *stats.Index) (*Table, error) {
	table := newTable()
	results, err := pipeline.PerPosition(ctx, func(_ context.Context, pos lexicon.Position) (map[PairKey]float64, error) {
		return syllabicAmbiguityAtPosition(sc, idx, pos), nil
	})
	if err != nil {
		return nil, err
	}
	for _, pos := range lexicon.Positions {
		table.ByPosition[pos] = results[pos]
	}
	return table, nil
}

func syllabicAmbiguityAtPosition(sc *stats.Context, idx *stats.Index, pos lexicon.Position) map[PairKey]float64 {
	out := make(map[PairKey]float64)
	names := sc.Phonemes[pos].Names()
	sort.Strings(names)

	for i, p1 := range names {
		for _, p2 := range names[i+1:] {
			out[unordered(p1, p2)] = syllabicPairScore(sc, idx, pos, p1, p2)
		}
	}
	return out
}

func syllabicPairScore(sc *stats.Context, idx *stats.Index, pos lexicon.Position, p1, p2 string) float64 {
	if p1 == p2 {
		return 0
	}
	var score float64
	for _, s := range idx.BySymbol[pos][p1] {
		if containsSymbol(s.PositionSlice(pos), p2) {
			freqOrig := s.Frequency
			freqP1Removed := syllableFrequency(sc, s.ReplacePhoneme(p1, "", pos))
			freqP2Removed := syllableFrequency(sc, s.ReplacePhoneme(p2, "", pos))
			score += sumMinusMax(freqOrig, freqP1Removed, freqP2Removed)
		} else {
			freqOrig := s.Frequency
			freqSubst := syllableFrequency(sc, s.ReplacePhoneme(p1, p2, pos))
			score += minOf(freqOrig, freqSubst)
		}
	}
	return score
}

func syllableFrequency(sc *stats.Context, name string) float64 {
	if s, ok := sc.Syllables[name]; ok {
		return s.Frequency
	}
	return 0
}

func containsSymbol(symbols []string, sym string) bool {
	for _, s := range symbols {
		if s == sym {
			return true
		}
	}
	return false
}

// joinTuple canonicalizes a multiphoneme tuple into a map key.
func joinTuple(tuple []string) string { return strings.Join(tuple, "\x1f") }

// SplitTuple reverses joinTuple, recovering a multiphoneme tuple's
// constituent phoneme symbols from its Score.Key string form. A plain
// single-phoneme key (no tuple separator) splits to itself.
func SplitTuple(key string) []string { return strings.Split(key, "\x1f") }

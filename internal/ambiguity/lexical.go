package ambiguity

import (
	"context"
	"sort"

	"github.com/phonochord/chordgen/internal/lexicon"
	"github.com/phonochord/chordgen/internal/pipeline"
	"github.com/phonochord/chordgen/internal/stats"
)

// LexicalAmbiguity computes the lexical (word-level) ambiguity score of
// §4.4 for every phoneme pair at each position, in parallel.
func LexicalAmbiguity(ctx context.Context, sc *stats.Context, idx *stats.Index) (*Table, error) {
	table := newTable()
	results, err := pipeline.PerPosition(ctx, func(_ context.Context, pos lexicon.Position) (map[PairKey]float64, error) {
		return lexicalAmbiguityAtPosition(sc, idx, pos), nil
	})
	if err != nil {
		return nil, err
	}
	for _, pos := range lexicon.Positions {
		table.ByPosition[pos] = results[pos]
	}
	return table, nil
}

func lexicalAmbiguityAtPosition(sc *stats.Context, idx *stats.Index, pos lexicon.Position) map[PairKey]float64 {
	out := make(map[PairKey]float64)
	names := sc.Phonemes[pos].Names()
	sort.Strings(names)

	for i, p1 := range names {
		for _, p2 := range names[i+1:] {
			out[unordered(p1, p2)] = lexicalPairScore(idx, pos, p1, p2)
		}
	}
	return out
}

func lexicalPairScore(idx *stats.Index, pos lexicon.Position, p1, p2 string) float64 {
	if p1 == p2 {
		return 0
	}
	var score float64
	for _, s := range idx.BySymbol[pos][p1] {
		hasP2 := containsSymbol(s.PositionSlice(pos), p2)
		altName1 := s.ReplacePhoneme(p1, "", pos)
		altName2 := s.ReplacePhoneme(p2, "", pos)
		substName := s.ReplacePhoneme(p1, p2, pos)

		for phonology := range s.PhonoWords {
			origFreq := idx.WordGroupFrequency(phonology)

			if hasP2 {
				freq1 := idx.WordGroupFrequency(lexicon.ReplaceSyllables(phonology, s.Name, altName1))
				freq2 := idx.WordGroupFrequency(lexicon.ReplaceSyllables(phonology, s.Name, altName2))
				score += sumMinusMax(origFreq, freq1, freq2)
			} else {
				substPhonology := lexicon.ReplaceSyllables(phonology, s.Name, substName)
				if substFreq := idx.WordGroupFrequency(substPhonology); substFreq > 0 {
					score += minOf(origFreq, substFreq)
				}
			}
		}
	}
	return score
}

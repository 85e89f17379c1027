package stats

import "github.com/phonochord/chordgen/internal/lexicon"

// Index holds read-only lookup structures derived from a frozen Context,
// used by the ambiguity analyzer (§4.4). Built once after Freeze.
type Index struct {
	// BySymbol[pos][phoneme] lists every syllable containing phoneme at
	// that syllabic position (SYLL(p) in §4.4).
	BySymbol [3]map[string][]*lexicon.Syllable

	// WordsByPhonology groups words by their full phonology string, used
	// by the lexical-ambiguity word-group frequency lookups.
	WordsByPhonology map[string][]*lexicon.Word
}

// BuildIndex derives an Index from the (frozen) Context's Syllable table.
func (c *Context) BuildIndex() *Index {
	idx := &Index{WordsByPhonology: make(map[string][]*lexicon.Word)}
	for _, pos := range lexicon.Positions {
		idx.BySymbol[pos] = make(map[string][]*lexicon.Syllable)
	}

	for _, syl := range c.Syllables {
		registerUnique(idx.BySymbol[lexicon.Onset], syl.Onset, syl)
		registerUnique(idx.BySymbol[lexicon.Nucleus], syl.Nucleus, syl)
		registerUnique(idx.BySymbol[lexicon.Coda], syl.Coda, syl)

		for phonology, words := range syl.PhonoWords {
			idx.WordsByPhonology[phonology] = append(idx.WordsByPhonology[phonology], words...)
		}
	}
	return idx
}

func registerUnique(m map[string][]*lexicon.Syllable, symbols []string, syl *lexicon.Syllable) {
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		m[s] = append(m[s], syl)
	}
}

// WordGroupFrequency sums the frequency of every word sharing phonology.
func (idx *Index) WordGroupFrequency(phonology string) float64 {
	var total float64
	for _, w := range idx.WordsByPhonology[phonology] {
		total += w.Frequency
	}
	return total
}

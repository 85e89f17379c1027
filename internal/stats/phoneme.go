// Package stats aggregates per-syllabic-position phoneme and biphoneme
// frequency statistics over a syllabified lexicon (§4.2, §3).
package stats

// maxPositionalIndex bounds the forward/reverse positional frequency
// arrays; indices beyond it are folded into the last bucket.
const maxPositionalIndex = 6

// Phoneme accumulates frequency statistics for one phoneme symbol within
// a single syllabic position.
type Phoneme struct {
	Name           string
	TotalFrequency float64

	// PositionalFrequency[i] is the frequency contributed by occurrences
	// at forward index i (0-based from the start of the position's
	// substring); ReversePositionalFrequency is the same from the end.
	PositionalFrequency        [maxPositionalIndex + 1]float64
	ReversePositionalFrequency [maxPositionalIndex + 1]float64
}

func clampIndex(i int) int {
	if i > maxPositionalIndex {
		return maxPositionalIndex
	}
	if i < 0 {
		return 0
	}
	return i
}

// PhonemeCollection maps phoneme name to its accumulated Phoneme stats,
// for one syllabic position.
type PhonemeCollection struct {
	byName map[string]*Phoneme
}

// NewPhonemeCollection returns an empty collection.
func NewPhonemeCollection() *PhonemeCollection {
	return &PhonemeCollection{byName: make(map[string]*Phoneme)}
}

// Register increments a phoneme's total and positional frequencies by
// freq for one occurrence at forward index fwdIdx, reverse index revIdx.
func (c *PhonemeCollection) Register(name string, fwdIdx, revIdx int, freq float64) {
	p, ok := c.byName[name]
	if !ok {
		p = &Phoneme{Name: name}
		c.byName[name] = p
	}
	p.TotalFrequency += freq
	p.PositionalFrequency[clampIndex(fwdIdx)] += freq
	p.ReversePositionalFrequency[clampIndex(revIdx)] += freq
}

// Get returns the Phoneme for name, or nil if unseen.
func (c *PhonemeCollection) Get(name string) *Phoneme { return c.byName[name] }

// Names returns every phoneme symbol registered in this collection.
func (c *PhonemeCollection) Names() []string {
	out := make([]string, 0, len(c.byName))
	for n := range c.byName {
		out = append(out, n)
	}
	return out
}

// Len reports how many distinct phonemes are registered.
func (c *PhonemeCollection) Len() int { return len(c.byName) }

// All returns the underlying name->Phoneme map, for snapshot
// persistence; callers must not mutate it.
func (c *PhonemeCollection) All() map[string]*Phoneme { return c.byName }

// FromMap rebuilds a PhonemeCollection from a previously snapshotted
// name->Phoneme map (internal/snapshot's restore path).
func FromMap(byName map[string]*Phoneme) *PhonemeCollection {
	if byName == nil {
		byName = make(map[string]*Phoneme)
	}
	return &PhonemeCollection{byName: byName}
}

// Frequency returns the total frequency of name, or 0 if unseen.
func (c *PhonemeCollection) Frequency(name string) float64 {
	if p, ok := c.byName[name]; ok {
		return p.TotalFrequency
	}
	return 0
}

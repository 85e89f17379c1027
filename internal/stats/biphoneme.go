package stats

// PairOrder is the relative typing-order verdict for a phoneme pair.
type PairOrder byte

const (
	OrderUnknown PairOrder = 0
	OrderBefore  PairOrder = '<'
	OrderAfter   PairOrder = '>'
	OrderEqual   PairOrder = '='
)

// PairKey identifies an ordered phoneme pair (a,b).
type PairKey [2]string

// Biphoneme counts ordered co-occurrences of (A,B) within the same
// syllable-position substring.
type Biphoneme struct {
	A, B      string
	Frequency float64
}

// BiphonemeCollection holds every Biphoneme observed in one syllabic
// position, plus the derived fields populated by the phoneme-order
// optimizer (§4.3): the best permutation found, its score, and the
// resulting pairwise order verdicts/scores.
type BiphonemeCollection struct {
	pairs map[PairKey]*Biphoneme

	BestPermutation      []string
	BestPermutationScore float64

	PairwiseOrder      map[PairKey]PairOrder
	PairwiseOrderScore map[PairKey]float64
}

// NewBiphonemeCollection returns an empty collection.
func NewBiphonemeCollection() *BiphonemeCollection {
	return &BiphonemeCollection{
		pairs:              make(map[PairKey]*Biphoneme),
		PairwiseOrder:      make(map[PairKey]PairOrder),
		PairwiseOrderScore: make(map[PairKey]float64),
	}
}

// Register increments the ordered-pair frequency for (a,b) by freq.
func (c *BiphonemeCollection) Register(a, b string, freq float64) {
	key := PairKey{a, b}
	bp, ok := c.pairs[key]
	if !ok {
		bp = &Biphoneme{A: a, B: b}
		c.pairs[key] = bp
	}
	bp.Frequency += freq
}

// Get returns the Biphoneme for (a,b), or nil if unseen.
func (c *BiphonemeCollection) Get(a, b string) *Biphoneme { return c.pairs[PairKey{a, b}] }

// Frequency returns the ordered-pair frequency for (a,b), or 0.
func (c *BiphonemeCollection) Frequency(a, b string) float64 {
	if bp, ok := c.pairs[PairKey{a, b}]; ok {
		return bp.Frequency
	}
	return 0
}

// Pairs returns every registered ordered pair.
func (c *BiphonemeCollection) Pairs() []PairKey {
	out := make([]PairKey, 0, len(c.pairs))
	for k := range c.pairs {
		out = append(out, k)
	}
	return out
}

// SetOrder records the order verdict and score delta for the unordered
// pair {a,b} once the phoneme-order optimizer has converged.
func (c *BiphonemeCollection) SetOrder(a, b string, order PairOrder, score float64) {
	c.PairwiseOrder[PairKey{a, b}] = order
	c.PairwiseOrderScore[PairKey{a, b}] = score
}

// Order returns the recorded order verdict for (a,b), defaulting to
// OrderUnknown, and its score delta.
func (c *BiphonemeCollection) Order(a, b string) (PairOrder, float64) {
	return c.PairwiseOrder[PairKey{a, b}], c.PairwiseOrderScore[PairKey{a, b}]
}

// BiphonemeSnapshot is the gob-friendly (exported-only) view of a
// BiphonemeCollection, used by internal/snapshot.
type BiphonemeSnapshot struct {
	Pairs                map[PairKey]*Biphoneme
	BestPermutation      []string
	BestPermutationScore float64
	PairwiseOrder        map[PairKey]PairOrder
	PairwiseOrderScore   map[PairKey]float64
}

// ToSnapshot extracts c's state into a gob-encodable BiphonemeSnapshot.
func (c *BiphonemeCollection) ToSnapshot() BiphonemeSnapshot {
	return BiphonemeSnapshot{
		Pairs:                c.pairs,
		BestPermutation:      c.BestPermutation,
		BestPermutationScore: c.BestPermutationScore,
		PairwiseOrder:        c.PairwiseOrder,
		PairwiseOrderScore:   c.PairwiseOrderScore,
	}
}

// FromSnapshot rebuilds a BiphonemeCollection from a BiphonemeSnapshot.
func FromSnapshot(s BiphonemeSnapshot) *BiphonemeCollection {
	c := &BiphonemeCollection{
		pairs:              s.Pairs,
		BestPermutation:    s.BestPermutation,
		BestPermutationScore: s.BestPermutationScore,
		PairwiseOrder:      s.PairwiseOrder,
		PairwiseOrderScore: s.PairwiseOrderScore,
	}
	if c.pairs == nil {
		c.pairs = make(map[PairKey]*Biphoneme)
	}
	if c.PairwiseOrder == nil {
		c.PairwiseOrder = make(map[PairKey]PairOrder)
	}
	if c.PairwiseOrderScore == nil {
		c.PairwiseOrderScore = make(map[PairKey]float64)
	}
	return c
}

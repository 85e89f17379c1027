package stats

import (
	"strings"
	"sync"

	"github.com/phonochord/chordgen/internal/lexicon"
)

// Context is the process-wide, append-only statistics state (§9 "process
// wide state"): one PhonemeCollection and one BiphonemeCollection per
// syllabic position, plus the shared Syllable table. It is append-only
// during ingestion and frozen before the parallel stages begin; after
// freezing Ingest registers nothing further. The only later writes are
// the phoneme-order optimizer's derived fields on each position's
// BiphonemeCollection, each written by that position's own worker.
type Context struct {
	mu        sync.Mutex
	frozen    bool
	Syllables map[string]*lexicon.Syllable

	Phonemes   [3]*PhonemeCollection
	Biphonemes [3]*BiphonemeCollection
}

// NewContext returns an empty, unfrozen Context.
func NewContext() *Context {
	c := &Context{Syllables: make(map[string]*lexicon.Syllable)}
	for _, pos := range lexicon.Positions {
		c.Phonemes[pos] = NewPhonemeCollection()
		c.Biphonemes[pos] = NewBiphonemeCollection()
	}
	return c
}

// Freeze forbids further registration. Idempotent.
func (c *Context) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = true
}

// Frozen reports whether Freeze has been called.
func (c *Context) Frozen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frozen
}

// Ingest registers every non-frequent-word Word's syllables into the
// shared statistics context, building the Syllable table and phoneme /
// biphoneme collections as it goes (§4.1, §4.2). Frequent words (§6) are
// excluded from syllable-frequency statistics but still get their
// syllables recorded as zero-frequency entries so theory lookups succeed.
func (c *Context) Ingest(words []*lexicon.Word, alpha *lexicon.Alphabet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return nil
	}
	for _, w := range words {
		freq := w.Frequency
		if w.IsFrequentWord {
			freq = 0
		}
		for si, phonemes := range w.SyllCV {
			spelling := ""
			if si < len(w.OrthoSyllCV) {
				spelling = strings.Join(w.OrthoSyllCV[si], "")
			}
			syl, err := c.registerOccurrence(phonemes, spelling, freq, alpha)
			if err != nil {
				return err
			}
			syl.PhonoWords[w.Phonology] = append(syl.PhonoWords[w.Phonology], w)
		}
	}
	return nil
}

// registerOccurrence implements §4.2's "first construction vs. re-observed"
// distinction: a brand-new syllable name creates the Syllable and registers
// its phonemes/biphonemes once; a pre-existing syllable re-observed with
// another spelling or additional frequency propagates the increment to
// every embedded phoneme and biphoneme exactly once, by the same delta.
func (c *Context) registerOccurrence(phonemes []string, spelling string, freqDelta float64, alpha *lexicon.Alphabet) (*lexicon.Syllable, error) {
	name := strings.Join(phonemes, "")
	syl, ok := c.Syllables[name]
	if !ok {
		var err error
		syl, err = lexicon.NewSyllable(phonemes, alpha, spelling)
		if err != nil {
			return nil, err
		}
		c.Syllables[name] = syl
	}
	syl.Frequency += freqDelta
	if spelling != "" {
		syl.Spellings[spelling] += freqDelta
	}

	c.registerPositionStats(syl.Onset, lexicon.Onset, freqDelta)
	c.registerPositionStats(syl.Nucleus, lexicon.Nucleus, freqDelta)
	c.registerPositionStats(syl.Coda, lexicon.Coda, freqDelta)

	return syl, nil
}

func (c *Context) registerPositionStats(symbols []string, pos lexicon.Position, freqDelta float64) {
	n := len(symbols)
	if n == 0 {
		return
	}
	phonemes := c.Phonemes[pos]
	biphonemes := c.Biphonemes[pos]

	for i, p := range symbols {
		phonemes.Register(p, i, n-1-i, freqDelta)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			biphonemes.Register(symbols[i], symbols[j], freqDelta)
		}
	}
}

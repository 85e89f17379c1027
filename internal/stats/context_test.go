package stats

import (
	"testing"

	"github.com/phonochord/chordgen/internal/lexicon"
)

func testAlphabet() *lexicon.Alphabet {
	return lexicon.NewAlphabet([]string{"a", "i"}, []string{"t", "p", "k"})
}

func word(ortho string, syllCV [][]string, freq float64) *lexicon.Word {
	return &lexicon.Word{Ortho: ortho, SyllCV: syllCV, OrthoSyllCV: syllCV, Frequency: freq}
}

func TestFrequencyConservation(t *testing.T) {
	ctx := NewContext()
	words := []*lexicon.Word{
		word("tap", [][]string{{"t", "a", "p"}}, 10),
		word("tip", [][]string{{"t", "i", "p"}}, 5),
	}
	if err := ctx.Ingest(words, testAlphabet()); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	// "t" appears once in each syllable's onset: freq(t) == 10+5.
	got := ctx.Phonemes[lexicon.Onset].Frequency("t")
	if got != 15 {
		t.Errorf("freq(t) = %v, want 15", got)
	}
	got = ctx.Phonemes[lexicon.Coda].Frequency("p")
	if got != 15 {
		t.Errorf("freq(p) coda = %v, want 15", got)
	}
}

func TestFrequentWordExclusion(t *testing.T) {
	alpha := testAlphabet()

	base := []*lexicon.Word{word("tap", [][]string{{"t", "a", "p"}}, 10)}
	ctxBase := NewContext()
	if err := ctxBase.Ingest(base, alpha); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	withX := append([]*lexicon.Word{}, base...)
	frequentX := word("X", [][]string{{"t", "i", "k"}}, 999)
	frequentX.IsFrequentWord = true
	withX = append(withX, frequentX)

	ctxWithX := NewContext()
	if err := ctxWithX.Ingest(withX, alpha); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	baseFreq := ctxBase.Phonemes[lexicon.Onset].Frequency("t")
	withXFreq := ctxWithX.Phonemes[lexicon.Onset].Frequency("t")
	if baseFreq != withXFreq {
		t.Errorf("frequent word contaminated shared phoneme stats: %v != %v", baseFreq, withXFreq)
	}
	// The frequent word's own phonemes are recorded at zero frequency.
	if got := ctxWithX.Phonemes[lexicon.Coda].Frequency("k"); got != 0 {
		t.Errorf("freq(k) from frequent word = %v, want 0", got)
	}
}

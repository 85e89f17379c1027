package ambiguity

import (
	"context"
	"testing"

	"github.com/phonochord/chordgen/internal/lexicon"
	"github.com/phonochord/chordgen/internal/stats"
)

func buildContext(t *testing.T) (*stats.Context, *stats.Index) {
	t.Helper()
	alpha := lexicon.NewAlphabet([]string{"a", "i"}, []string{"t", "p", "k"})
	words := []*lexicon.Word{
		{Ortho: "tap", Phonology: "tap", SyllCV: [][]string{{"t", "a", "p"}}, OrthoSyllCV: [][]string{{"t", "a", "p"}}, Frequency: 10},
		{Ortho: "tak", Phonology: "tak", SyllCV: [][]string{{"t", "a", "k"}}, OrthoSyllCV: [][]string{{"t", "a", "k"}}, Frequency: 4},
	}
	sc := stats.NewContext()
	if err := sc.Ingest(words, alpha); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	sc.Freeze()
	return sc, sc.BuildIndex()
}

func TestSamePhonemeAmbiguityIsZero(t *testing.T) {
	sc, idx := buildContext(t)
	score := syllabicPairScore(sc, idx, lexicon.Coda, "p", "p")
	if score != 0 {
		t.Errorf("p1==p2 ambiguity = %v, want 0", score)
	}
}

func TestSyllabicAmbiguityParallel(t *testing.T) {
	sc, idx := buildContext(t)
	table, err := SyllabicAmbiguity(context.Background(), sc, idx)
	if err != nil {
		t.Fatalf("SyllabicAmbiguity: %v", err)
	}
	if table.ByPosition[lexicon.Coda] == nil {
		t.Fatal("expected coda position table")
	}
	// "p" vs "k" in the coda position should be substitution-confusable
	// since "tap"/"tak" differ only in their coda.
	if _, ok := table.ByPosition[lexicon.Coda][unordered("p", "k")]; !ok {
		t.Error("expected p/k pair to be scored")
	}
}

func TestLexicalAmbiguityParallel(t *testing.T) {
	sc, idx := buildContext(t)
	table, err := LexicalAmbiguity(context.Background(), sc, idx)
	if err != nil {
		t.Fatalf("LexicalAmbiguity: %v", err)
	}
	if table.ByPosition[lexicon.Coda] == nil {
		t.Fatal("expected coda position table")
	}
}

func TestMultiphonemeAmbiguityCap(t *testing.T) {
	sc, _ := buildContext(t)
	table, err := MultiphonemeAmbiguity(context.Background(), sc)
	if err != nil {
		t.Fatalf("MultiphonemeAmbiguity: %v", err)
	}
	for _, pos := range lexicon.Positions {
		if len(table.ByPosition[pos]) > MaxMultiphonemes {
			t.Errorf("position %v has %d entries, want <= %d", pos, len(table.ByPosition[pos]), MaxMultiphonemes)
		}
	}
}

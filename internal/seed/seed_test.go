package seed

import (
	"testing"

	"github.com/phonochord/chordgen/internal/ambiguity"
	"github.com/phonochord/chordgen/internal/keyboard"
	"github.com/phonochord/chordgen/internal/lexicon"
	"github.com/phonochord/chordgen/internal/stats"
)

func testKeyboard(t *testing.T) *keyboard.Keyboard {
	t.Helper()
	keys := []keyboard.Key{{ID: 0}, {ID: 1}, {ID: 2}, {ID: 3}}
	fingers := []keyboard.Finger{
		{Name: "f1", Weight: 1, AllowedKeypresses: [][]int{{0}, {1}, {0, 1}}},
		{Name: "f2", Weight: 1, AllowedKeypresses: [][]int{{2}, {3}, {2, 3}}},
	}
	var partition [3][]int
	partition[lexicon.Onset] = []int{0, 1, 2, 3}
	kb, err := keyboard.NewKeyboard(keyboard.NewPhysical(keys, fingers), partition, [3]int{4, 4, 4})
	if err != nil {
		t.Fatalf("NewKeyboard: %v", err)
	}
	return kb
}

func TestGreedySeedAssignsAllPhonemes(t *testing.T) {
	kb := testKeyboard(t)
	phonemes := stats.NewPhonemeCollection()
	phonemes.Register("t", 0, 0, 10)
	phonemes.Register("p", 0, 0, 8)
	phonemes.Register("k", 0, 0, 6)
	phonemes.Register("s", 0, 0, 1)
	phonemes.Register("m", 0, 0, 1)

	bc := stats.NewBiphonemeCollection()
	bc.BestPermutation = []string{"t", "p", "k", "s", "m"}

	lex := &ambiguity.Table{}
	for _, pos := range lexicon.Positions {
		lex.ByPosition[pos] = map[ambiguity.PairKey]float64{}
	}
	lex.ByPosition[lexicon.Onset][ambiguity.PairKey{"m", "s"}] = 0.1
	lex.ByPosition[lexicon.Onset][ambiguity.PairKey{"m", "t"}] = 5

	leftover := Assign(lexicon.Onset, phonemes, bc, kb, lex)
	if len(leftover) != 0 {
		t.Errorf("expected every phoneme placed, leftover = %v", leftover)
	}
	for _, name := range []string{"t", "p", "k", "s", "m"} {
		if _, ok := kb.GetStrokesOfPhoneme(lexicon.Onset, name); !ok {
			t.Errorf("phoneme %q was not assigned a stroke", name)
		}
	}
}

func TestGreedySeedFallsBackToLexicalSharing(t *testing.T) {
	// One finger reaching either key but never both: no multi-key stroke
	// exists, so k can only be placed by sharing a stroke.
	keys := []keyboard.Key{{ID: 0}, {ID: 1}}
	fingers := []keyboard.Finger{
		{Name: "f1", Weight: 1, AllowedKeypresses: [][]int{{0}, {1}}},
	}
	var partition [3][]int
	partition[lexicon.Onset] = []int{0, 1}
	kb, err := keyboard.NewKeyboard(keyboard.NewPhysical(keys, fingers), partition, [3]int{2, 2, 2})
	if err != nil {
		t.Fatalf("NewKeyboard: %v", err)
	}

	phonemes := stats.NewPhonemeCollection()
	phonemes.Register("t", 0, 0, 10)
	phonemes.Register("p", 0, 0, 8)
	phonemes.Register("k", 0, 0, 1)

	bc := stats.NewBiphonemeCollection()
	bc.BestPermutation = []string{"t", "p", "k"}

	lex := &ambiguity.Table{}
	for _, pos := range lexicon.Positions {
		lex.ByPosition[pos] = map[ambiguity.PairKey]float64{}
	}
	lex.ByPosition[lexicon.Onset][ambiguity.PairKey{"k", "t"}] = 0.1
	lex.ByPosition[lexicon.Onset][ambiguity.PairKey{"k", "p"}] = 9

	leftover := Assign(lexicon.Onset, phonemes, bc, kb, lex)
	if len(leftover) != 0 {
		t.Fatalf("expected k to be shared, leftover = %v", leftover)
	}
	kStroke, ok := kb.GetStrokesOfPhoneme(lexicon.Onset, "k")
	if !ok {
		t.Fatal("k was not assigned any stroke")
	}
	tStroke, _ := kb.GetStrokesOfPhoneme(lexicon.Onset, "t")
	if kStroke.Key() != tStroke.Key() {
		t.Errorf("expected k to share t's stroke (lowest ambiguity), got k=%v t=%v", kStroke, tStroke)
	}
}

func TestOveruseThreshold(t *testing.T) {
	if overuseThreshold(2) != 2 {
		t.Errorf("overuseThreshold(2) = %d, want 2", overuseThreshold(2))
	}
	if overuseThreshold(4) != 6 {
		t.Errorf("overuseThreshold(4) = %d, want 6", overuseThreshold(4))
	}
}

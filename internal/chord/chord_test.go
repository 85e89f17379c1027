package chord

import (
	"math/rand"
	"testing"
	"time"

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
	kb, err := keyboard.NewKeyboard(keyboard.NewPhysical(keys, fingers), partition, [3]int{2, 2, 2})
	if err != nil {
		t.Fatalf("NewKeyboard: %v", err)
	}
	return kb
}

func TestOptimizeImprovesOrMaintainsCost(t *testing.T) {
	kb := testKeyboard(t)
	kb.AddToLayout(lexicon.Onset, "t", keyboard.Stroke{0})
	kb.AddToLayout(lexicon.Onset, "p", keyboard.Stroke{1})
	kb.AddToLayout(lexicon.Onset, "k", keyboard.Stroke{2})
	kb.AddToLayout(lexicon.Onset, "s", keyboard.Stroke{3})

	phonemes := stats.NewPhonemeCollection()
	phonemes.Register("t", 0, 0, 10)
	phonemes.Register("p", 0, 0, 8)
	phonemes.Register("k", 0, 0, 6)
	phonemes.Register("s", 0, 0, 4)

	bc := stats.NewBiphonemeCollection()
	bc.Register("t", "p", 5)
	bc.Register("k", "s", 3)

	multi := []ambiguity.Score{
		{Key: ambiguity.PairKey{"t", "p"}, Value: 1},
	}

	before := seedFromKeyboard(lexicon.Onset, kb, phonemes.Names())
	beforeCost := objective(before, lexicon.Onset, kb, phonemes, bc, multi)

	Optimize(lexicon.Onset, kb, phonemes, bc, multi, Options{
		Budget: 50 * time.Millisecond,
		Rng:    rand.New(rand.NewSource(42)),
	})

	after := seedFromKeyboard(lexicon.Onset, kb, phonemes.Names())
	afterCost := objective(after, lexicon.Onset, kb, phonemes, bc, multi)

	if afterCost > beforeCost {
		t.Errorf("optimized cost %v worse than seed cost %v", afterCost, beforeCost)
	}
	for _, name := range []string{"t", "p", "k", "s"} {
		if _, ok := kb.GetStrokesOfPhoneme(lexicon.Onset, name); !ok {
			t.Errorf("phoneme %q lost its assignment after optimization", name)
		}
	}
}

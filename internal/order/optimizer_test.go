package order

import (
	"math/rand"
	"testing"

	"github.com/phonochord/chordgen/internal/stats"
)

func TestOptimizeSinglePhoneme(t *testing.T) {
	bc := stats.NewBiphonemeCollection()
	bc.Register("a", "a", 0) // force registration with no real pair signal
	rng := rand.New(rand.NewSource(1))
	res := Optimize(bc, rng)
	if len(res.Permutation) > 1 {
		t.Fatalf("expected at most one phoneme, got %v", res.Permutation)
	}
}

func TestOptimizeScoreMonotone(t *testing.T) {
	bc := stats.NewBiphonemeCollection()
	bc.Register("t", "a", 50)
	bc.Register("a", "p", 30)
	bc.Register("p", "t", 5)

	rng := rand.New(rand.NewSource(42))
	names := []string{"t", "a", "p"}
	shuffled := append([]string{}, names...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	initialScore := score(shuffled, bc)

	res := Optimize(bc, rng)
	if res.Score < initialScore {
		t.Errorf("optimized score %v < a valid initial score %v", res.Score, initialScore)
	}
}

func TestPairwiseMatrix(t *testing.T) {
	bc := stats.NewBiphonemeCollection()
	bc.Register("a", "b", 10)
	PairwiseMatrix(bc, []string{"a", "b"})
	order, delta := bc.Order("a", "b")
	if order != stats.OrderBefore {
		t.Errorf("order = %v, want OrderBefore", order)
	}
	if delta != 10 {
		t.Errorf("delta = %v, want 10", delta)
	}
}

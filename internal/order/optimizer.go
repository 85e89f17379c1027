// Package order implements the stochastic phoneme-order search of §4.3:
// for each syllabic position, find a permutation of its phonemes that
// maximizes left-to-right typing-order agreement with biphoneme evidence.
package order

import (
	"math/rand"
	"sort"

	"github.com/MaxHalford/eaopt"
	"github.com/phonochord/chordgen/internal/stats"
)

const (
	// windowScans is the default number of search rounds per position.
	windowScans = 400
	windowLen   = 4
)

// Result is the outcome of optimizing one position's phoneme order.
type Result struct {
	Permutation []string
	Score       float64
}

// permGenome is an eaopt.Genome wrapping a phoneme-name permutation. Its
// Mutate operator performs one full windowed-scan round (§4.3) rather than
// a generic permutation mutator, since the windowed scan is itself the
// local-search step; eaopt supplies the surrounding generation/acceptance
// loop and hall-of-fame bookkeeping.
type permGenome struct {
	names []string
	bc    *stats.BiphonemeCollection
}

func (g *permGenome) Evaluate() (float64, error) {
	// eaopt minimizes; the order-agreement objective is maximized, so negate it.
	return -score(g.names, g.bc), nil
}

func (g *permGenome) Mutate(rng *rand.Rand) {
	g.names = windowScanRound(g.names, g.bc, rng)
}

func (g *permGenome) Crossover(other eaopt.Genome, rng *rand.Rand) {
	// No recombination: each candidate refines independently through its
	// own windowed local search, a single-candidate hill-climbing
	// procedure rather than population recombination.
}

func (g *permGenome) Clone() eaopt.Genome {
	cp := make([]string, len(g.names))
	copy(cp, g.names)
	return &permGenome{names: cp, bc: g.bc}
}

// score computes Σ freq(a,b) * sign(pos(b) - pos(a)) over every ordered
// pair the collection tracks, for the given permutation.
func score(perm []string, bc *stats.BiphonemeCollection) float64 {
	index := make(map[string]int, len(perm))
	for i, n := range perm {
		index[n] = i
	}
	var total float64
	for _, key := range bc.Pairs() {
		a, b := key[0], key[1]
		pa, oka := index[a]
		pb, okb := index[b]
		if !oka || !okb {
			continue
		}
		freq := bc.Frequency(a, b)
		switch {
		case pa < pb:
			total += freq
		case pa > pb:
			total -= freq
		}
	}
	return total
}

// windowScanRound performs one round of §4.3's algorithm: rotate a random
// k in [2,6] contiguous positions of the current permutation to produce a
// candidate, then slide a length-4 window left-to-right across the
// candidate and across a fully reversed copy of it, trying all 24
// permutations of the window's contents at each position, keeping the
// best candidate seen across the whole round. The window is not slid
// right-to-left over the candidate itself.
func windowScanRound(current []string, bc *stats.BiphonemeCollection, rng *rand.Rand) []string {
	best := append([]string{}, current...)
	bestScore := score(best, bc)

	if len(current) < 2 {
		return best
	}

	k := 2
	if len(current) > 2 {
		maxK := 6
		if maxK > len(current) {
			maxK = len(current)
		}
		k = 2 + rng.Intn(maxK-2+1)
	}
	candidate := rotateWindow(current, k, rng)

	tryWindow := func(cand []string) {
		n := len(cand)
		if n < windowLen {
			if s := score(cand, bc); s > bestScore {
				bestScore = s
				best = append([]string{}, cand...)
			}
			return
		}
		for start := 0; start <= n-windowLen; start++ {
			for _, perm := range windowPermutations(cand[start : start+windowLen]) {
				trial := append([]string{}, cand...)
				copy(trial[start:start+windowLen], perm)
				if s := score(trial, bc); s > bestScore {
					bestScore = s
					best = trial
				}
			}
		}
	}

	tryWindow(candidate)

	reversed := make([]string, len(candidate))
	for i, v := range candidate {
		reversed[len(candidate)-1-i] = v
	}
	tryWindow(reversed)

	return best
}

// rotateWindow cyclically shifts a random contiguous run of k positions
// in perm by one step.
func rotateWindow(perm []string, k int, rng *rand.Rand) []string {
	n := len(perm)
	if k > n {
		k = n
	}
	start := 0
	if n-k > 0 {
		start = rng.Intn(n - k + 1)
	}
	out := append([]string{}, perm...)
	window := out[start : start+k]
	rotated := append([]string{}, window[1:]...)
	rotated = append(rotated, window[0])
	copy(window, rotated)
	return out
}

// windowPermutations enumerates all 4! = 24 permutations of a length-4
// window.
func windowPermutations(window []string) [][]string {
	var out [][]string
	perm := append([]string{}, window...)
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			out = append(out, append([]string{}, perm...))
			return
		}
		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				perm[i], perm[k-1] = perm[k-1], perm[i]
			} else {
				perm[0], perm[k-1] = perm[k-1], perm[0]
			}
		}
	}
	generate(len(perm))
	return out
}

// Optimize finds a near-optimal permutation for one position's phonemes,
// warm-started from a random initial order, running windowScans rounds
// through eaopt's generation loop. The result is also recorded onto bc
// (BestPermutation/BestPermutationScore) for downstream consumers such
// as the greedy seed assignment (§4.6).
func Optimize(bc *stats.BiphonemeCollection, rng *rand.Rand) Result {
	res := optimize(bc, rng)
	bc.BestPermutation = res.Permutation
	bc.BestPermutationScore = res.Score
	return res
}

func optimize(bc *stats.BiphonemeCollection, rng *rand.Rand) Result {
	names := uniqueNames(bc)
	if len(names) <= 1 {
		return Result{Permutation: names, Score: 0}
	}

	initial := append([]string{}, names...)
	rng.Shuffle(len(initial), func(i, j int) { initial[i], initial[j] = initial[j], initial[i] })
	initialScore := score(initial, bc)

	cfg := eaopt.NewDefaultGAConfig()
	cfg.NPops = 1
	cfg.PopSize = 1
	cfg.NGenerations = uint(windowScans)

	ga, err := cfg.NewGA()
	if err != nil {
		return bestOf(initial, initialScore, bc, rng)
	}

	ga.Callback = nil
	err = ga.Minimize(func(rng *rand.Rand) eaopt.Genome {
		cp := append([]string{}, initial...)
		return &permGenome{names: cp, bc: bc}
	})
	if err != nil || ga.HallOfFame == nil || len(ga.HallOfFame) == 0 {
		return bestOf(initial, initialScore, bc, rng)
	}

	best := ga.HallOfFame[0].Genome.(*permGenome)
	bestScore := score(best.names, bc)
	if bestScore < initialScore {
		return Result{Permutation: initial, Score: initialScore}
	}
	return Result{Permutation: best.names, Score: bestScore}
}

// bestOf runs the windowed scan directly (bypassing eaopt) as a fallback
// path, guaranteeing the result is never worse than the initial candidate
// even if the GA driver fails to construct.
func bestOf(initial []string, initialScore float64, bc *stats.BiphonemeCollection, rng *rand.Rand) Result {
	best := initial
	bestScore := initialScore
	for i := 0; i < windowScans; i++ {
		candidate := windowScanRound(best, bc, rng)
		if s := score(candidate, bc); s > bestScore {
			bestScore = s
			best = candidate
		}
	}
	return Result{Permutation: best, Score: bestScore}
}

// PairwiseMatrix computes, for every unordered pair {a,b} among names, the
// order verdict and signed score delta comparing "a just before b" to
// "b just before a" (§4.3).
func PairwiseMatrix(bc *stats.BiphonemeCollection, names []string) {
	sorted := append([]string{}, names...)
	sort.Strings(sorted)
	for i, a := range sorted {
		for _, b := range sorted[i+1:] {
			fwd := bc.Frequency(a, b)
			bwd := bc.Frequency(b, a)
			delta := fwd - bwd
			switch {
			case delta > 0:
				bc.SetOrder(a, b, stats.OrderBefore, delta)
			case delta < 0:
				bc.SetOrder(a, b, stats.OrderAfter, delta)
			default:
				bc.SetOrder(a, b, stats.OrderEqual, 0)
			}
		}
	}
}

func uniqueNames(bc *stats.BiphonemeCollection) []string {
	seen := make(map[string]struct{})
	for _, key := range bc.Pairs() {
		seen[key[0]] = struct{}{}
		seen[key[1]] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

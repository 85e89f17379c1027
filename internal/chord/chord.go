// Package chord implements the chord-assignment optimizer of §4.7: a
// per-position local search over phoneme→stroke assignments, warm
// started from the greedy seed (internal/seed), minimizing a weighted
// sum of multiphoneme-collision ambiguity, stroke ergonomic cost and
// biphoneme-order agreement. No constraint-solver dependency addressing
// boolean-variable CSPs of this shape exists anywhere in the corpus, so
// this is implemented as simulated annealing over the same boolean
// variables an ILP formulation of this problem would use (the
// formulation's own notes allow any solver supporting boolean
// variables).
package chord

import (
	"math"
	"math/rand"
	"time"

	"github.com/phonochord/chordgen/internal/ambiguity"
	"github.com/phonochord/chordgen/internal/keyboard"
	"github.com/phonochord/chordgen/internal/lexicon"
	"github.com/phonochord/chordgen/internal/stats"
)

// Default objective weights (§4.7).
const (
	WeightAmbiguity = 30000.0
	WeightStroke    = 1.0
)

// MaxMultiphonemes caps the ambiguity pairs considered, matching
// internal/ambiguity's own cap.
const MaxMultiphonemes = ambiguity.MaxMultiphonemes

// DefaultBudget is the per-position optimization time cap.
const DefaultBudget = 90 * time.Second

// Options tunes one position's optimization run.
type Options struct {
	Budget time.Duration
	Rng    *rand.Rand
}

// assignment is the optimizer's working state: phoneme -> stroke, held
// independently of the Keyboard until a run completes so a timed-out or
// failed run never corrupts the prior layout (§4.7 failure semantics).
type assignment map[string]keyboard.Stroke

// Optimize refines the seeded layout at pos in place on kb. multi holds
// the top-ranked multiphoneme ambiguity pairs for pos (already capped).
// On any failure to find a feasible starting point, kb is left
// untouched.
func Optimize(pos lexicon.Position, kb *keyboard.Keyboard, phonemes *stats.PhonemeCollection, bc *stats.BiphonemeCollection, multi []ambiguity.Score, opts Options) {
	if opts.Budget <= 0 {
		opts.Budget = DefaultBudget
	}
	if opts.Rng == nil {
		opts.Rng = rand.New(rand.NewSource(1))
	}

	names := phonemes.Names()
	current := seedFromKeyboard(pos, kb, names)
	if len(current) == 0 {
		return
	}

	strokesByLen := make(map[int][]keyboard.Stroke)
	maxLen := kb.MaxKeysPerPhoneme(pos)
	for n := 1; n <= maxLen; n++ {
		strokesByLen[n] = kb.GetPossibleStrokes(pos, n)
	}

	if len(multi) > MaxMultiphonemes {
		multi = multi[:MaxMultiphonemes]
	}

	cost := func(a assignment) float64 {
		return objective(a, pos, kb, phonemes, bc, multi)
	}

	best := cloneAssignment(current)
	bestCost := cost(best)
	curCost := bestCost

	start := time.Now()
	temperature := 1.0
	for iter := 0; time.Since(start) < opts.Budget; iter++ {
		if iter%256 == 0 {
			elapsed := time.Since(start)
			frac := float64(elapsed) / float64(opts.Budget)
			temperature = math.Max(0.01, 1.0-frac)
		}

		candidate := mutate(current, names, strokesByLen, opts.Rng)
		candCost := cost(candidate)

		if candCost <= curCost || acceptWorse(curCost, candCost, temperature, opts.Rng) {
			current = candidate
			curCost = candCost
			if curCost < bestCost {
				best = cloneAssignment(current)
				bestCost = curCost
			}
		}
	}

	applyAssignment(pos, kb, best)
}

func seedFromKeyboard(pos lexicon.Position, kb *keyboard.Keyboard, names []string) assignment {
	a := make(assignment, len(names))
	for _, n := range names {
		if s, ok := kb.GetStrokesOfPhoneme(pos, n); ok {
			a[n] = s
		}
	}
	return a
}

func cloneAssignment(a assignment) assignment {
	out := make(assignment, len(a))
	for k, v := range a {
		out[k] = append(keyboard.Stroke{}, v...)
	}
	return out
}

func applyAssignment(pos lexicon.Position, kb *keyboard.Keyboard, a assignment) {
	kb.ClearLayoutAt(pos)
	for phoneme, stroke := range a {
		kb.AddToLayout(pos, phoneme, stroke)
	}
}

// mutate returns a copy of current with one random phoneme reassigned to
// a random stroke of a random valid length.
func mutate(current assignment, names []string, strokesByLen map[int][]keyboard.Stroke, rng *rand.Rand) assignment {
	out := cloneAssignment(current)
	if len(names) == 0 {
		return out
	}
	p := names[rng.Intn(len(names))]

	lens := make([]int, 0, len(strokesByLen))
	for l := range strokesByLen {
		if len(strokesByLen[l]) > 0 {
			lens = append(lens, l)
		}
	}
	if len(lens) == 0 {
		return out
	}
	l := lens[rng.Intn(len(lens))]
	options := strokesByLen[l]
	out[p] = options[rng.Intn(len(options))]
	return out
}

func acceptWorse(curCost, candCost, temperature float64, rng *rand.Rand) bool {
	if temperature <= 0 {
		return false
	}
	delta := candCost - curCost
	prob := math.Exp(-delta / (temperature * math.Max(curCost, 1)))
	return rng.Float64() < prob
}

// objective evaluates the weighted sum of §4.7: multiphoneme-collision
// ambiguity, per-stroke ergonomic cost weighted by phoneme frequency,
// and biphoneme-order agreement over every phoneme pair.
func objective(a assignment, pos lexicon.Position, kb *keyboard.Keyboard, phonemes *stats.PhonemeCollection, bc *stats.BiphonemeCollection, multi []ambiguity.Score) float64 {
	var total float64

	for _, sc := range multi {
		tuple1 := ambiguity.SplitTuple(sc.Key[0])
		tuple2 := ambiguity.SplitTuple(sc.Key[1])
		if sameKeyUnion(a, tuple1, tuple2) {
			total += WeightAmbiguity * sc.Value
		}
	}

	for p, s := range a {
		total += WeightStroke * kb.GetStrokeCost(s, pos) * phonemes.Frequency(p)
	}

	names := make([]string, 0, len(a))
	for p := range a {
		names = append(names, p)
	}
	canonical := canonicalStrokeOrder(a)
	for i, p := range names {
		for _, q := range names[i+1:] {
			pp, pq := canonical[p], canonical[q]
			scorePQ := bc.Frequency(p, q) - bc.Frequency(q, p)
			scoreQP := -scorePQ
			switch {
			case pp == pq:
				total += (scorePQ + scoreQP) / 2
			case pp < pq:
				total += scorePQ
			default:
				total += scoreQP
			}
		}
	}
	return total
}

// canonicalStrokeOrder maps each phoneme to its stroke's rank in sorted
// (strokeIsLowerThen) order, giving pos[p] of §4.7. Phonemes sharing a
// stroke get the same rank.
func canonicalStrokeOrder(a assignment) map[string]int {
	type pair struct {
		name   string
		stroke keyboard.Stroke
	}
	pairs := make([]pair, 0, len(a))
	for n, s := range a {
		pairs = append(pairs, pair{n, s})
	}
	for i := 1; i < len(pairs); i++ {
		j := i
		for j > 0 && keyboard.StrokeLess(pairs[j].stroke, pairs[j-1].stroke) {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
			j--
		}
	}
	out := make(map[string]int, len(pairs))
	rank := 0
	for i, p := range pairs {
		if i > 0 && keyboard.StrokeLess(pairs[i-1].stroke, p.stroke) {
			rank++
		}
		out[p.name] = rank
	}
	return out
}

// sameKeyUnion reports whether the key sets claimed by tuple1 and tuple2
// under assignment a are identical (a collision, §4.7's I[m1,m2]).
func sameKeyUnion(a assignment, tuple1, tuple2 []string) bool {
	u1 := keyUnion(a, tuple1)
	u2 := keyUnion(a, tuple2)
	if len(u1) != len(u2) {
		return false
	}
	for k := range u1 {
		if _, ok := u2[k]; !ok {
			return false
		}
	}
	return true
}

func keyUnion(a assignment, tuple []string) map[int]struct{} {
	out := make(map[int]struct{})
	for _, sym := range tuple {
		if s, ok := a[sym]; ok {
			for _, k := range s {
				out[k] = struct{}{}
			}
		}
	}
	return out
}

// Package seed builds the greedy starting layout of §4.6: a feasible,
// if not optimal, phoneme → stroke assignment used to warm-start the
// chord-assignment optimizer (internal/chord).
package seed

import (
	"sort"

	"github.com/phonochord/chordgen/internal/ambiguity"
	"github.com/phonochord/chordgen/internal/keyboard"
	"github.com/phonochord/chordgen/internal/lexicon"
	"github.com/phonochord/chordgen/internal/stats"
)

// MaxOveruseBase and MaxOveruseSlope parametrize the per-key overuse
// threshold for multi-key strokes: a stroke of length n is rejected once
// any of its keys has already been used more than
// MaxOveruseBase + MaxOveruseSlope*(n-2) times.
const (
	MaxOveruseBase  = 2
	MaxOveruseSlope = 2
)

func overuseThreshold(strokeLen int) int {
	return MaxOveruseBase + MaxOveruseSlope*(strokeLen-2)
}

// Assign builds the greedy seed layout for one position directly onto
// kb, returning any phoneme that could not be placed (the guarantee in
// §4.6 step 3 is best-effort: it requires another phoneme at the same
// position to already hold a single-occupant stroke).
func Assign(pos lexicon.Position, phonemes *stats.PhonemeCollection, bc *stats.BiphonemeCollection, kb *keyboard.Keyboard, lex *ambiguity.Table) []string {
	names := phonemes.Names()
	sort.Slice(names, func(i, j int) bool {
		fi, fj := phonemes.Frequency(names[i]), phonemes.Frequency(names[j])
		if fi != fj {
			return fi > fj
		}
		return names[i] < names[j]
	})

	singleStrokes := kb.GetPossibleStrokes(pos, 1)
	k1 := len(singleStrokes)
	if k1 > len(names) {
		k1 = len(names)
	}

	top := names[:k1]
	remaining := append([]string{}, names[k1:]...)

	ordered := orderByPermutation(top, bc.BestPermutation)
	for i, name := range ordered {
		if i >= len(singleStrokes) {
			break
		}
		kb.AddToLayout(pos, name, singleStrokes[i])
	}

	keyUsage := make(map[int]int)
	unassigned := make(map[string]bool, len(remaining))
	for _, n := range remaining {
		unassigned[n] = true
	}

	for _, strokeLen := range []int{2, 3, 4} {
		candidates := kb.GetPossibleStrokes(pos, strokeLen)
		threshold := overuseThreshold(strokeLen)
		used := make(map[string]bool, len(candidates))

		for _, name := range remaining {
			if !unassigned[name] {
				continue
			}
			for _, s := range candidates {
				key := s.Key()
				if used[key] {
					continue
				}
				if strokeFits(s, keyUsage, threshold) {
					kb.AddToLayout(pos, name, s)
					used[key] = true
					for _, k := range s {
						keyUsage[k]++
					}
					unassigned[name] = false
					break
				}
			}
		}
	}

	var leftover []string
	for _, n := range remaining {
		if unassigned[n] {
			leftover = append(leftover, n)
		}
	}
	if len(leftover) == 0 || lex == nil {
		return leftover
	}

	var stillUnassigned []string
	for _, p := range leftover {
		q, ok := bestAmbiguityPartner(lex, pos, p, kb)
		if !ok {
			stillUnassigned = append(stillUnassigned, p)
			continue
		}
		s, _ := kb.GetStrokesOfPhoneme(pos, q)
		kb.AddToLayout(pos, p, s)
	}
	return stillUnassigned
}

// orderByPermutation orders items according to their index in perm,
// appending items absent from perm at the end in their original order.
func orderByPermutation(items, perm []string) []string {
	index := make(map[string]int, len(perm))
	for i, n := range perm {
		index[n] = i
	}
	inPerm := make([]string, 0, len(items))
	absent := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := index[it]; ok {
			inPerm = append(inPerm, it)
		} else {
			absent = append(absent, it)
		}
	}
	sort.Slice(inPerm, func(i, j int) bool { return index[inPerm[i]] < index[inPerm[j]] })
	return append(inPerm, absent...)
}

func strokeFits(s keyboard.Stroke, keyUsage map[int]int, threshold int) bool {
	for _, k := range s {
		if keyUsage[k]+1 > threshold {
			return false
		}
	}
	return true
}

// bestAmbiguityPartner finds the phoneme q (q != p) already holding a
// single-occupant stroke at pos, minimizing lexical ambiguity with p.
func bestAmbiguityPartner(lex *ambiguity.Table, pos lexicon.Position, p string, kb *keyboard.Keyboard) (string, bool) {
	scores := lex.Sorted(pos)
	for _, sc := range scores {
		var q string
		switch {
		case sc.Key[0] == p:
			q = sc.Key[1]
		case sc.Key[1] == p:
			q = sc.Key[0]
		default:
			continue
		}
		s, ok := kb.GetStrokesOfPhoneme(pos, q)
		if !ok {
			continue
		}
		if len(kb.GetPhonemesOfStroke(pos, s)) == 1 {
			return q, true
		}
	}
	return "", false
}

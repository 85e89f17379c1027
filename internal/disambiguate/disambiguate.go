// Package disambiguate implements the three-phase greedy homophone
// disambiguator of §4.9: rank morphological features by how well they
// split apart orthographs sharing a chord key, then greedily assign each
// colliding word group the first feature (in rank order) that uniquely
// identifies one of its still-unclaimed orthographs.
package disambiguate

import (
	"sort"
	"strings"

	"github.com/phonochord/chordgen/internal/lexicon"
)

const sentinelFeature = "nofeature"

// groupKey identifies a (theory-key, lemmeGramCat) group for feature
// ranking (phase 1).
func groupKey(theoryKey string, w *lexicon.Word) string {
	return theoryKey + "\x1f" + w.LemmeGramCat()
}

// RankFeatures runs phases 1 and 2: it returns every feature observed
// across theory, ordered by decreasing discriminating power. The
// ordering is total — every feature appears, per §4.9's guarantee that
// the output is an ordering, not a cutoff.
func RankFeatures(theory map[string][]*lexicon.Word) []string {
	groups := make(map[string][]*lexicon.Word)
	allFeatures := make(map[string]struct{})

	for theoryKey, words := range theory {
		for _, w := range words {
			gk := groupKey(theoryKey, w)
			groups[gk] = append(groups[gk], w)
			for _, f := range w.Features() {
				allFeatures[f] = struct{}{}
			}
		}
	}

	active := make(map[string][]*lexicon.Word, len(groups))
	for k, v := range groups {
		active[k] = append([]*lexicon.Word{}, v...)
	}

	remaining := make(map[string]struct{}, len(allFeatures))
	for f := range allFeatures {
		remaining[f] = struct{}{}
	}

	var selected []string
	for len(remaining) > 0 {
		bestFeature := ""
		bestPrimary, bestSecondary := -1, -1
		candidates := make([]string, 0, len(remaining))
		for f := range remaining {
			candidates = append(candidates, f)
		}
		sort.Strings(candidates)

		for _, f := range candidates {
			primary, secondary := featureScore(active, f)
			if primary > bestPrimary || (primary == bestPrimary && secondary > bestSecondary) {
				bestFeature, bestPrimary, bestSecondary = f, primary, secondary
			}
		}

		selected = append(selected, bestFeature)
		delete(remaining, bestFeature)
		discharge(active, bestFeature)
	}

	return selected
}

// featureScore computes, for feature f, the primary rank (count of
// distinct words uniquely discriminated by f across every active group)
// and the secondary tie-break (count of other words in those same groups
// that f thereby discriminates from).
func featureScore(active map[string][]*lexicon.Word, f string) (primary, secondary int) {
	for _, words := range active {
		byOrtho := orthoGroups(words)
		var singleOrtho string
		count := 0
		for ortho, ws := range byOrtho {
			if hasFeature(ws[0], f) {
				singleOrtho = ortho
				count++
			}
		}
		if count == 1 {
			claimed := byOrtho[singleOrtho]
			primary += len(claimed)
			secondary += len(words) - len(claimed)
		}
	}
	return primary, secondary
}

// discharge removes, from every active group, the words belonging to the
// orthograph that f uniquely discriminates (they no longer need further
// discrimination once f has been selected).
func discharge(active map[string][]*lexicon.Word, f string) {
	for gk, words := range active {
		byOrtho := orthoGroups(words)
		var singleOrtho string
		count := 0
		for ortho, ws := range byOrtho {
			if hasFeature(ws[0], f) {
				singleOrtho = ortho
				count++
			}
		}
		if count != 1 {
			continue
		}
		var remaining []*lexicon.Word
		for _, w := range words {
			if w.Ortho != singleOrtho {
				remaining = append(remaining, w)
			}
		}
		active[gk] = remaining
	}
}

func orthoGroups(words []*lexicon.Word) map[string][]*lexicon.Word {
	out := make(map[string][]*lexicon.Word)
	for _, w := range words {
		out[w.Ortho] = append(out[w.Ortho], w)
	}
	return out
}

func hasFeature(w *lexicon.Word, f string) bool {
	for _, wf := range w.Features() {
		if wf == f {
			return true
		}
	}
	return false
}

// Assignment is one claimed set of words sharing a featureset (phase 3).
type Assignment struct {
	Features []string
	Words    []*lexicon.Word
}

// Build runs phase 3: for every (theory-key, lemma) group, walks the
// ranked feature order, and on each feature that singles out one
// still-unclaimed orthograph, claims that orthograph's representative
// word under that feature. The whole group collapses into a single
// Assignment keyed by the combined tuple of every claimed feature (in
// claim order), one per distinct orthograph in the group, with Words
// holding the corresponding representative words in the same order —
// matching featuresetWords's "tuple-of-features -> tuple-of-words"
// shape, not one entry per feature. Orthographs no feature ever singles
// out claim the "nofeature" sentinel, one entry each. Groups of size 1
// get the empty feature tuple (the §4.9 guarantee). Results are sorted
// by descending claimed-group size.
func Build(theory map[string][]*lexicon.Word, ranked []string) []Assignment {
	lemmaGroups := make(map[string][]*lexicon.Word)
	for theoryKey, words := range theory {
		for _, w := range words {
			key := theoryKey + "\x1f" + w.Lemma
			lemmaGroups[key] = append(lemmaGroups[key], w)
		}
	}

	var out []Assignment
	for _, words := range lemmaGroups {
		if len(words) <= 1 {
			out = append(out, Assignment{Features: nil, Words: words})
			continue
		}
		out = append(out, assignGroup(words, ranked))
	}

	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Words) != len(out[j].Words) {
			return len(out[i].Words) > len(out[j].Words)
		}
		return strings.Join(out[i].Features, ",") < strings.Join(out[j].Features, ",")
	})
	return out
}

// assignGroup walks unclaimed orthographs against the ranked feature
// order, claiming one representative word per orthograph under the
// first feature that singles it out among what remains, and folding
// every claim into one combined-feature Assignment for the group.
// Grounded on greedyoptimizer.py's selectedFeatureWord/featureSet.
func assignGroup(words []*lexicon.Word, ranked []string) Assignment {
	unclaimed := append([]*lexicon.Word{}, words...)
	var features []string
	var claimed []*lexicon.Word

	for _, f := range ranked {
		if len(unclaimed) == 0 {
			break
		}
		byOrtho := orthoGroups(unclaimed)
		var singleOrtho string
		count := 0
		for ortho, ws := range byOrtho {
			if hasFeature(ws[0], f) {
				singleOrtho = ortho
				count++
			}
		}
		if count != 1 {
			continue
		}
		features = append(features, f)
		claimed = append(claimed, byOrtho[singleOrtho][0])

		var rest []*lexicon.Word
		for _, w := range unclaimed {
			if w.Ortho != singleOrtho {
				rest = append(rest, w)
			}
		}
		unclaimed = rest
	}

	byOrtho := orthoGroups(unclaimed)
	for _, ws := range byOrtho {
		features = append(features, sentinelFeature)
		claimed = append(claimed, ws[0])
	}

	return Assignment{Features: features, Words: claimed}
}

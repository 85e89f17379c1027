package disambiguate

import (
	"testing"

	"github.com/phonochord/chordgen/internal/lexicon"
)

func TestRankFeaturesCoversEveryFeature(t *testing.T) {
	theory := map[string][]*lexicon.Word{
		"key1": {
			{Ortho: "sot", Lemma: "sot", GramCat: "ADJ", Gender: "m", Number: "s"},
			{Ortho: "sotte", Lemma: "sot", GramCat: "ADJ", Gender: "f", Number: "s"},
		},
	}
	ranked := RankFeatures(theory)
	if len(ranked) == 0 {
		t.Fatal("expected at least one feature ranked")
	}
	seen := make(map[string]bool)
	for _, f := range ranked {
		if seen[f] {
			t.Errorf("feature %q ranked twice", f)
		}
		seen[f] = true
	}
}

func TestBuildSingleWordGroupGetsEmptyFeatureTuple(t *testing.T) {
	theory := map[string][]*lexicon.Word{
		"key1": {
			{Ortho: "chat", Lemma: "chat", GramCat: "NOM", Gender: "m", Number: "s"},
		},
	}
	out := Build(theory, RankFeatures(theory))
	if len(out) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(out))
	}
	if len(out[0].Features) != 0 {
		t.Errorf("expected empty feature tuple for singleton group, got %v", out[0].Features)
	}
}

func TestBuildDisambiguatesHomophonesByGender(t *testing.T) {
	theory := map[string][]*lexicon.Word{
		"key1": {
			{Ortho: "sot", Lemma: "sot", GramCat: "ADJ", Gender: "m", Number: "s"},
			{Ortho: "sotte", Lemma: "sot", GramCat: "ADJ", Gender: "f", Number: "s"},
		},
	}
	ranked := RankFeatures(theory)
	out := Build(theory, ranked)

	total := 0
	for _, a := range out {
		total += len(a.Words)
		if len(a.Words) > 0 && len(a.Features) == 0 {
			t.Errorf("non-empty-group assignment has no feature: %+v", a)
		}
	}
	if total != 2 {
		t.Errorf("expected all 2 words claimed, got %d", total)
	}
}

func TestBuildUnclaimedWordsGetSentinel(t *testing.T) {
	// Two words that are fully identical in every feature: no feature can
	// discriminate them, so they fall through to the sentinel.
	theory := map[string][]*lexicon.Word{
		"key1": {
			{Ortho: "vis", Lemma: "vis", GramCat: "NOM", Gender: "m", Number: "s"},
			{Ortho: "vît", Lemma: "vis", GramCat: "NOM", Gender: "m", Number: "s"},
		},
	}
	ranked := RankFeatures(theory)
	out := Build(theory, ranked)

	if len(out) != 1 {
		t.Fatalf("expected 1 combined assignment for the group, got %d", len(out))
	}
	a := out[0]
	if len(a.Words) != 2 {
		t.Fatalf("expected both words claimed in the combined assignment, got %d", len(a.Words))
	}
	if len(a.Features) != len(a.Words) {
		t.Fatalf("expected one feature per claimed word, got %d features for %d words", len(a.Features), len(a.Words))
	}
	for _, f := range a.Features {
		if f != sentinelFeature {
			t.Errorf("expected every feature to be the sentinel for indistinguishable words, got %q", f)
		}
	}
}

package lexicon

import (
	"errors"
	"strings"
	"testing"
)

const testHeader = "ortho\tphon\tlemme\tcgram\tcgramortho\tgenre\tnombre\tinfover\tsyll_cv\torthosyll_cv\tfreqlivres\tfreqfilms2"

func testAlphabet() *Alphabet {
	return NewAlphabet(
		[]string{"@", "i", "e"},
		[]string{"n", "v", "R", "r", "#"},
	)
}

func TestNasalFix(t *testing.T) {
	row := "enivre\t@nivR\tenivrer\tVER\tVER\t\t\t\t@|n_i_v_R_#\te|n_i_v_r_e\t1.0\t2.0"
	tsv := testHeader + "\n" + row
	words, err := LoadTSV(strings.NewReader(tsv), testAlphabet(), nil)
	if err != nil {
		t.Fatalf("LoadTSV: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}
	w := words[0]
	wantSyll := [][]string{{"@"}, {"i", "v", "R", "#"}}
	if !equalSyllCV(w.SyllCV, wantSyll) {
		t.Errorf("syllCV = %v, want %v", w.SyllCV, wantSyll)
	}
	wantOrtho := [][]string{{"en"}, {"i", "v", "r", "e"}}
	if !equalSyllCV(w.OrthoSyllCV, wantOrtho) {
		t.Errorf("orthosyllCV = %v, want %v", w.OrthoSyllCV, wantOrtho)
	}
}

func TestFeaturePowerset(t *testing.T) {
	w := &Word{GramCat: "VER", InfoVerb: "ind:pre:1s"}
	features := w.Features()
	want := []string{
		"indicatif", "présent", "pers_1", "nbr_s",
		"indicatif:présent", "indicatif:pers_1", "présent:pers_1",
		"indicatif:présent:pers_1",
		"indicatif:nbr_s", "présent:nbr_s", "pers_1:nbr_s",
		"indicatif:présent:nbr_s", "indicatif:pers_1:nbr_s", "présent:pers_1:nbr_s",
		"indicatif:présent:pers_1:nbr_s",
	}
	for _, f := range want {
		if !contains(features, f) {
			t.Errorf("missing feature %q in %v", f, features)
		}
	}
}

func TestReplaceSyllables(t *testing.T) {
	phonology := "@nivR"
	if got := ReplaceSyllables(phonology, "ni", "mi"); got != "@mivR" {
		t.Errorf("ReplaceSyllables(ni,mi) = %q, want @mivR", got)
	}
	if got := ReplaceSyllables(phonology, "fa", "ta"); got != phonology {
		t.Errorf("ReplaceSyllables(fa,ta) = %q, want unchanged %q", got, phonology)
	}
}

func TestEmptyNucleusRejected(t *testing.T) {
	_, err := NewSyllable([]string{"n", "v"}, testAlphabet(), "nv")
	if err == nil {
		t.Fatal("expected error for empty-nucleus syllable")
	}
	if _, ok := err.(*EmptyNucleusError); !ok {
		t.Errorf("expected *EmptyNucleusError, got %T", err)
	}
}

func TestSyllablePartitionInvariant(t *testing.T) {
	syl, err := NewSyllable([]string{"n", "v", "i", "R"}, testAlphabet(), "nviR")
	if err != nil {
		t.Fatalf("NewSyllable: %v", err)
	}
	got := strings.Join(syl.Onset, "") + strings.Join(syl.Nucleus, "") + strings.Join(syl.Coda, "")
	if got != syl.Name {
		t.Errorf("onset+nucleus+coda = %q, want %q", got, syl.Name)
	}
}

func TestUnknownPhonemeSymbolFatal(t *testing.T) {
	row := "mot\tzz\tmot\tNOM\tNOM\t\t\t\tzz\tzz\t1.0\t1.0"
	tsv := testHeader + "\n" + row
	_, err := LoadTSV(strings.NewReader(tsv), testAlphabet(), nil)
	// Unlike a malformed row, an unknown phoneme symbol aborts the load
	// with an *AlphabetError naming the offending word.
	if err == nil {
		t.Fatal("expected LoadTSV to fail on an unknown phoneme symbol")
	}
	var alphaErr *AlphabetError
	if !errors.As(err, &alphaErr) || alphaErr.Ortho != "mot" {
		t.Errorf("expected *AlphabetError naming word %q, got %v", "mot", err)
	}
}

func equalSyllCV(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

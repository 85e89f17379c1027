package keyboard

import (
	"encoding/json"
	"testing"

	"github.com/phonochord/chordgen/internal/lexicon"
)

func testPhysical() *Physical {
	keys := []Key{
		{ID: 0, Row: 0, Col: 0}, {ID: 1, Row: 0, Col: 1}, {ID: 2, Row: 0, Col: 2},
		{ID: 10, Row: 1, Col: 0}, {ID: 11, Row: 1, Col: 1},
	}
	fingers := []Finger{
		{Name: "left-index", Weight: 1.0, AllowedKeypresses: [][]int{{0}, {1}, {0, 1}}},
		{Name: "left-middle", Weight: 1.1, AllowedKeypresses: [][]int{{2}}},
		{Name: "right-index", Weight: 1.0, AllowedKeypresses: [][]int{{10}, {11}}},
	}
	return NewPhysical(keys, fingers)
}

func testKeyboard(t *testing.T) *Keyboard {
	t.Helper()
	var partition [3][]int
	partition[lexicon.Onset] = []int{0, 1}
	partition[lexicon.Nucleus] = []int{2}
	partition[lexicon.Coda] = []int{10, 11}
	var maxKeys [3]int
	maxKeys[lexicon.Onset] = 2
	maxKeys[lexicon.Nucleus] = 1
	maxKeys[lexicon.Coda] = 2

	kb, err := NewKeyboard(testPhysical(), partition, maxKeys)
	if err != nil {
		t.Fatalf("NewKeyboard: %v", err)
	}
	return kb
}

func TestPartitionMismatchRejected(t *testing.T) {
	var partition [3][]int
	partition[lexicon.Onset] = []int{0, 1}
	partition[lexicon.Nucleus] = []int{2}
	// coda left empty: 3 keys partitioned vs 5 physical keys
	if _, err := NewKeyboard(testPhysical(), partition, [3]int{2, 1, 2}); err == nil {
		t.Fatal("expected partition mismatch error")
	}
}

func TestStrokeIsLowerThen(t *testing.T) {
	cases := []struct {
		a, b Stroke
		want int
	}{
		{Stroke{0, 1, 10}, Stroke{0, 2, 10}, -1},
		{Stroke{0, 1, 10}, Stroke{0, 1, 10}, 0},
		{Stroke{0, 2, 10}, Stroke{0, 1, 10}, 1},
		{Stroke{1}, Stroke{0}, 1},
	}
	for _, c := range cases {
		got := strokeIsLowerThen(c.a, c.b)
		if got != c.want {
			t.Errorf("strokeIsLowerThen(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestGetPossibleStrokesWithinPartition(t *testing.T) {
	kb := testKeyboard(t)
	strokes := kb.getPossibleStrokes(lexicon.Onset, 1)
	if len(strokes) == 0 {
		t.Fatal("expected at least one single-key onset stroke")
	}
	for _, s := range strokes {
		for _, k := range s {
			if k != 0 && k != 1 {
				t.Errorf("stroke %v uses key outside onset partition", s)
			}
		}
	}
}

func TestLayoutAddRemoveClear(t *testing.T) {
	kb := testKeyboard(t)
	kb.AddToLayout(lexicon.Onset, "t", Stroke{0})
	kb.AddToLayout(lexicon.Onset, "p", Stroke{0})
	phonemes := kb.GetPhonemesOfStroke(lexicon.Onset, Stroke{0})
	if len(phonemes) != 2 {
		t.Fatalf("expected 2 phonemes sharing stroke, got %v", phonemes)
	}

	kb.RemoveFromLayout(lexicon.Onset, "t")
	if phonemes := kb.GetPhonemesOfStroke(lexicon.Onset, Stroke{0}); len(phonemes) != 1 {
		t.Fatalf("expected 1 phoneme after removal, got %v", phonemes)
	}

	kb.ClearLayout()
	if phonemes := kb.GetPhonemesOfStroke(lexicon.Onset, Stroke{0}); len(phonemes) != 0 {
		t.Fatalf("expected empty layout after clear, got %v", phonemes)
	}
}

func TestStrokeCostMonotoneInLength(t *testing.T) {
	kb := testKeyboard(t)
	one := kb.getStrokeCostFor(Stroke{0}, lexicon.Onset)
	two := kb.getStrokeCostFor(Stroke{0, 1}, lexicon.Onset)
	if two <= one {
		t.Errorf("expected 2-key stroke cost (%v) > 1-key stroke cost (%v)", two, one)
	}
}

func TestStrokeShapeCostOnlyAppliesToOnsetAndCoda(t *testing.T) {
	kb := testKeyboard(t)
	// Keys 1 and 2 are a zig-zag jump (odd-to-even, one apart): under
	// the onset/coda geometry term this carries a +100 penalty on top
	// of the base finger weights; at the nucleus the geometry term
	// never applies, so only the base weights are summed.
	onset := kb.getStrokeCostFor(Stroke{1, 2}, lexicon.Onset)
	nucleus := kb.getStrokeCostFor(Stroke{1, 2}, lexicon.Nucleus)
	if onset <= nucleus {
		t.Errorf("expected onset geometry cost (%v) > nucleus cost (%v) for a zig-zag stroke", onset, nucleus)
	}
}

func TestStrokeZigZagCost(t *testing.T) {
	if got := strokeZigZagCost([]int{0, 3}); got != 100 {
		t.Errorf("strokeZigZagCost(0,3) = %v, want 100", got)
	}
	if got := strokeZigZagCost([]int{1, 2}); got != 100 {
		t.Errorf("strokeZigZagCost(1,2) = %v, want 100", got)
	}
	if got := strokeZigZagCost([]int{0, 1}); got != 0 {
		t.Errorf("strokeZigZagCost(0,1) = %v, want 0", got)
	}
}

func TestStrokeGapCost(t *testing.T) {
	if got := strokeGapCost([]int{0, 4}); got != 100 {
		t.Errorf("strokeGapCost(0,4) = %v, want 100", got)
	}
	if got := strokeGapCost([]int{1, 4}); got != 100 {
		t.Errorf("strokeGapCost(1,4) = %v, want 100", got)
	}
	if got := strokeGapCost([]int{0, 2}); got != 0 {
		t.Errorf("strokeGapCost(0,2) = %v, want 0", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	kb := testKeyboard(t)
	kb.AddToLayout(lexicon.Onset, "t", Stroke{0})
	kb.AddToLayout(lexicon.Nucleus, "a", Stroke{2})
	kb.AddToLayout(lexicon.Coda, "p", Stroke{10, 11})

	data, err := json.Marshal(kb)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	restored := testKeyboard(t)
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if s, ok := restored.GetStrokesOfPhoneme(lexicon.Onset, "t"); !ok || s.Key() != "0" {
		t.Errorf("onset 't' stroke = %v, %v", s, ok)
	}
	if s, ok := restored.GetStrokesOfPhoneme(lexicon.Coda, "p"); !ok || s.Key() != "10,11" {
		t.Errorf("coda 'p' stroke = %v, %v", s, ok)
	}
}

func TestGetStrokeOfSyllableByPart(t *testing.T) {
	kb := testKeyboard(t)
	kb.AddToLayout(lexicon.Onset, "t", Stroke{0})
	kb.AddToLayout(lexicon.Nucleus, "a", Stroke{2})
	kb.AddToLayout(lexicon.Coda, "p", Stroke{10})

	syl, err := lexicon.NewSyllable([]string{"t", "a", "p"}, lexicon.NewAlphabet([]string{"a"}, []string{"t", "p"}), "tap")
	if err != nil {
		t.Fatalf("NewSyllable: %v", err)
	}
	strokes := kb.GetStrokeOfSyllableByPart(syl)
	if strokes[lexicon.Onset].Key() != "0" || strokes[lexicon.Nucleus].Key() != "2" || strokes[lexicon.Coda].Key() != "10" {
		t.Errorf("unexpected strokes: %+v", strokes)
	}
	if got := kb.StrokesToString(strokes); got != "0|2|10" {
		t.Errorf("StrokesToString = %q, want 0|2|10", got)
	}
}

package keyboard

import (
	"math"

	"github.com/phonochord/chordgen/internal/lexicon"
)

// getStrokeCost scores the ergonomic cost of pressing the given key IDs
// together in a syllabic position (§4.5): a base cost summing each key's
// finger weight, plus — for onset and coda strokes only — a geometry
// penalty keyed off key-ID parity and spacing (strokeShapeCost), the
// whole sum discounted by 0.85^(fingers used) since chording more
// fingers at once spreads the load rather than multiplying it. Grounded
// on keyboard.py's getStrokeCost/getStrokeShapeCost.
func (kb *Keyboard) getStrokeCost(keys []int, pos lexicon.Position) float64 {
	if len(keys) == 0 {
		return 0
	}

	var base float64
	fingersUsed := make(map[int]struct{})
	for _, kID := range keys {
		fIdx, weight := kb.fingerForKey(kID)
		fingersUsed[fIdx] = struct{}{}
		base += weight
	}

	var shape float64
	if pos == lexicon.Onset || pos == lexicon.Coda {
		shape = strokeShapeCost(keys)
	}

	discount := math.Pow(0.85, float64(len(fingersUsed)))
	return (base + shape) * discount
}

// strokeShapeCost penalizes zig-zag hand alternation and row gaps
// between a stroke's first two keys, and adjusts 3- and 4-key runs up
// or down depending on key-ID parity and spacing. A stroke of 3 or more
// keys is scored as the cost of its leading pair plus, recursively, the
// cost of the stroke without its first key, plus the 3-key run adjustment
// for its first 3 keys and, if present, the 4-key adjustment for its
// first 4 keys.
func strokeShapeCost(stroke []int) float64 {
	switch {
	case len(stroke) == 2:
		return strokeZigZagCost(stroke) + strokeGapCost(stroke)
	case len(stroke) >= 3:
		cost := strokeShapeCost(stroke[:2]) + strokeShapeCost(stroke[1:])
		s1, s3 := stroke[0], stroke[2]
		switch {
		case s1%2 == 0 && s3-s1 == 2: // the 2,3,4 case
			cost -= 50
		case s1%2 == 0 && s3-s1 == 3: // the 2,3,5 / 2,4,5 case
			cost += 50
		case s1%2 == 1 && s3-s1 == 2: // the 3,4,5 case
			cost += 50
		}
		if len(stroke) >= 4 && s1%2 == 0 && stroke[3]-s1 == 3 { // the 2,3,4,5 case
			cost -= 100
		}
		return cost
	default:
		return 0
	}
}

// strokeZigZagCost penalizes a 2-key stroke that jumps between the two
// halves of the keyboard: even-to-odd IDs three apart, or odd-to-even
// IDs one apart.
func strokeZigZagCost(stroke []int) float64 {
	s1, s2 := stroke[0], stroke[1]
	switch {
	case s1%2 == 0 && s2%2 == 1 && s2-s1 == 3:
		return 100
	case s1%2 == 1 && s2%2 == 0 && s2-s1 == 1:
		return 100
	}
	return 0
}

// strokeGapCost penalizes a 2-key stroke whose keys straddle an empty
// row.
func strokeGapCost(stroke []int) float64 {
	s1, s2 := stroke[0], stroke[1]
	if (s1%2 == 0 && s2-s1 >= 4) || (s1%2 == 1 && s2-s1 >= 3) {
		return 100
	}
	return 0
}

// fingerForKey finds the finger index and weight responsible for kID,
// falling back to a weight of 1 if no finger claims it (a key reachable
// by no registered finger, which construction validation should prevent
// but a cost lookup must still tolerate).
func (kb *Keyboard) fingerForKey(kID int) (int, float64) {
	for idx, f := range kb.physical.Fingers {
		for _, kp := range f.AllowedKeypresses {
			for _, k := range kp {
				if k == kID {
					return idx, f.Weight
				}
			}
		}
	}
	return -1, 1
}

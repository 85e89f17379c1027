package keyboard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Stroke is a set of simultaneously-pressed key IDs, always kept sorted
// ascending so two strokes with the same keys compare equal as strings.
type Stroke []int

func newStroke(keys []int) Stroke {
	s := append(Stroke{}, keys...)
	sort.Ints(s)
	return s
}

// Key returns the canonical map key for a stroke: its sorted key IDs
// joined by commas.
func (s Stroke) Key() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = strconv.Itoa(k)
	}
	return strings.Join(parts, ",")
}

// ParseStrokeKey parses a Stroke.Key() string back into a Stroke.
func ParseStrokeKey(key string) (Stroke, error) {
	if key == "" {
		return Stroke{}, nil
	}
	parts := strings.Split(key, ",")
	out := make(Stroke, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("parse stroke key %q: %w", key, err)
		}
		out[i] = n
	}
	return out, nil
}

// StrokeLess reports whether a sorts before b under the canonical stroke
// ordering (strokeIsLowerThen).
func StrokeLess(a, b Stroke) bool { return strokeIsLowerThen(a, b) < 0 }

// strokeIsLowerThen implements the canonical stroke ordering: compare
// first key ascending, then last key, then recurse on the remaining
// middle keys. Returns -1, 0 or 1.
func strokeIsLowerThen(a, b Stroke) int {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	if len(a) == 0 {
		return -1
	}
	if len(b) == 0 {
		return 1
	}
	if a[0] != b[0] {
		if a[0] < b[0] {
			return -1
		}
		return 1
	}
	la, lb := a[len(a)-1], b[len(b)-1]
	if la != lb {
		if la < lb {
			return -1
		}
		return 1
	}
	if len(a) <= 2 && len(b) <= 2 {
		return 0
	}
	var midA, midB Stroke
	if len(a) > 2 {
		midA = a[1 : len(a)-1]
	}
	if len(b) > 2 {
		midB = b[1 : len(b)-1]
	}
	return strokeIsLowerThen(midA, midB)
}

// strokesToString renders a [3]Stroke (onset, nucleus, coda) in the
// pretty "onset|nucleus|coda" form, with "-" standing in for an empty
// nucleus stroke.
func strokesToString(strokes [3]Stroke) string {
	parts := make([]string, 3)
	for _, pos := range []int{0, 1, 2} {
		if len(strokes[pos]) == 0 {
			parts[pos] = "-"
			continue
		}
		ids := make([]string, len(strokes[pos]))
		for i, k := range strokes[pos] {
			ids[i] = strconv.Itoa(k)
		}
		parts[pos] = strings.Join(ids, "+")
	}
	return strings.Join(parts, "|")
}

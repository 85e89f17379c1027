// Package keyboard models the fixed physical keyboard (§4.5): key
// geometry, per-finger allowed keypresses, stroke costs, and the
// stroke → phoneme layout mapping. It knows nothing about what phonemes
// mean; callers supply symbols and read back stroke assignments.
package keyboard

import "fmt"

// Key describes one physical key's position on the keyboard grid, used
// by the stroke-cost geometry penalties.
type Key struct {
	ID  int
	Row int
	Col int
}

// Finger describes one finger's reach: a weight used in stroke cost, and
// the keypresses (simultaneous key-sets) it is allowed to perform. A
// keypress of more than one key models a finger that can press two
// adjacent keys at once (e.g. a thumb cluster).
type Finger struct {
	Name              string
	Weight            float64
	AllowedKeypresses [][]int
}

// Physical is the fixed keyboard description: a value the core consumes
// without assuming any specific geometry beyond this interface.
type Physical struct {
	Keys    []Key
	Fingers []Finger

	keyByID map[int]Key
}

// NewPhysical builds a Physical from its keys and fingers, indexing keys
// by ID for geometry lookups.
func NewPhysical(keys []Key, fingers []Finger) *Physical {
	p := &Physical{Keys: keys, Fingers: fingers, keyByID: make(map[int]Key, len(keys))}
	for _, k := range keys {
		p.keyByID[k.ID] = k
	}
	return p
}

// Key returns the Key geometry for id, and whether it exists.
func (p *Physical) Key(id int) (Key, bool) {
	k, ok := p.keyByID[id]
	return k, ok
}

// AllKeyIDs returns every key ID on the physical keyboard.
func (p *Physical) AllKeyIDs() []int {
	out := make([]int, 0, len(p.Keys))
	for _, k := range p.Keys {
		out = append(out, k.ID)
	}
	return out
}

// fingersReaching returns, for each finger, the subset of its allowed
// keypresses whose keys all lie within allowed (a syllabic-position key
// set).
func (p *Physical) fingersReaching(allowed map[int]struct{}) [][][]int {
	out := make([][][]int, 0, len(p.Fingers))
	for _, f := range p.Fingers {
		var reachable [][]int
		for _, kp := range f.AllowedKeypresses {
			ok := true
			for _, k := range kp {
				if _, in := allowed[k]; !in {
					ok = false
					break
				}
			}
			if ok {
				reachable = append(reachable, kp)
			}
		}
		out = append(out, reachable)
	}
	return out
}

// errPartitionMismatch reports a syllabic-position key partition that
// does not exactly cover the physical keyboard's keys (§7, fatal).
type errPartitionMismatch struct {
	Got, Want int
}

func (e *errPartitionMismatch) Error() string {
	return fmt.Sprintf("keyboard partition mismatch: partitioned %d keys, physical keyboard has %d", e.Got, e.Want)
}

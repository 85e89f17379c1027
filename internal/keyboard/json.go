package keyboard

import (
	"encoding/json"

	"github.com/phonochord/chordgen/internal/lexicon"
)

// schemaVersion guards the on-disk layout format; bump it whenever the
// JSON shape below changes incompatibly.
const schemaVersion = 1

type keyboardDoc struct {
	SchemaVersion int                    `json:"schemaVersion"`
	Layout        [3]map[string][]string `json:"layout"`
}

// MarshalJSON serializes the live layout (not the physical keyboard
// description, which is supplied at construction by the caller). Stroke
// keys are serialized as their canonical comma-joined string form.
func (kb *Keyboard) MarshalJSON() ([]byte, error) {
	doc := keyboardDoc{SchemaVersion: schemaVersion}
	for _, pos := range lexicon.Positions {
		doc.Layout[pos] = make(map[string][]string, len(kb.layout[pos]))
		for k, v := range kb.layout[pos] {
			doc.Layout[pos][k] = append([]string{}, v...)
		}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON restores a layout previously produced by MarshalJSON onto
// an already-constructed Keyboard (its physical description and position
// partition must already be set via NewKeyboard).
func (kb *Keyboard) UnmarshalJSON(data []byte) error {
	var doc keyboardDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	kb.clearLayoutLocked()
	for _, pos := range lexicon.Positions {
		for key, phonemes := range doc.Layout[pos] {
			s, err := ParseStrokeKey(key)
			if err != nil {
				return err
			}
			for _, p := range phonemes {
				kb.AddToLayout(pos, p, s)
			}
		}
	}
	return nil
}

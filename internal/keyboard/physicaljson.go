package keyboard

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/phonochord/chordgen/internal/lexicon"
)

// physicalDoc is the on-disk physical-keyboard description: keys,
// fingers, and the syllabic-position key partition, all supplied by the
// caller so swapping keyboards never touches the optimizers (§4.5).
type physicalDoc struct {
	SchemaVersion int   `json:"schemaVersion"`
	Keys          []Key `json:"keys"`
	Fingers       []struct {
		Name              string  `json:"name"`
		Weight            float64 `json:"weight"`
		AllowedKeypresses [][]int `json:"allowedKeypresses"`
	} `json:"fingers"`
	KeyIDInSyllabicPart struct {
		Onset   []int `json:"onset"`
		Nucleus []int `json:"nucleus"`
		Coda    []int `json:"coda"`
	} `json:"keyIDInSyllabicPart"`
	MaxKeysPerPhoneme struct {
		Onset   int `json:"onset"`
		Nucleus int `json:"nucleus"`
		Coda    int `json:"coda"`
	} `json:"maxKeysPerPhoneme"`
}

// LoadPhysicalDescription reads a keyboard description JSON document and
// builds the Physical plus the partition/maxKeys arguments NewKeyboard
// needs.
func LoadPhysicalDescription(r io.Reader) (*Physical, [3][]int, [3]int, error) {
	var doc physicalDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, [3][]int{}, [3]int{}, fmt.Errorf("decode keyboard description: %w", err)
	}

	fingers := make([]Finger, len(doc.Fingers))
	for i, f := range doc.Fingers {
		fingers[i] = Finger{Name: f.Name, Weight: f.Weight, AllowedKeypresses: f.AllowedKeypresses}
	}

	var partition [3][]int
	partition[lexicon.Onset] = doc.KeyIDInSyllabicPart.Onset
	partition[lexicon.Nucleus] = doc.KeyIDInSyllabicPart.Nucleus
	partition[lexicon.Coda] = doc.KeyIDInSyllabicPart.Coda

	var maxKeys [3]int
	maxKeys[lexicon.Onset] = doc.MaxKeysPerPhoneme.Onset
	maxKeys[lexicon.Nucleus] = doc.MaxKeysPerPhoneme.Nucleus
	maxKeys[lexicon.Coda] = doc.MaxKeysPerPhoneme.Coda

	return NewPhysical(doc.Keys, fingers), partition, maxKeys, nil
}

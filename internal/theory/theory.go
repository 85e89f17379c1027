// Package theory builds the word -> chord-key map of §4.8: for every
// word, the concatenation of its syllables' strokes becomes a key that
// groups every word (homophones included) typed by the same sequence of
// chords.
package theory

import (
	"strings"

	"github.com/phonochord/chordgen/internal/keyboard"
	"github.com/phonochord/chordgen/internal/lexicon"
)

// Theory holds in Groups every word sharing one theory key, the key being
// the pretty concatenation of each syllable's strokesToString.
type Theory struct {
	Groups map[string][]*lexicon.Word

	MaxGroupKey     string
	MaxGroupSize    int
	MaxFrequencyKey string
	MaxFrequency    float64
}

// Build maps every word in words to its theory key via kb, recording the
// key with the most homophones and the key with the largest summed
// frequency. A word's syllables are its SyllCV field (one phoneme list per
// syllable, split into onset/nucleus/coda here via lexicon.NewSyllable).
func Build(words []*lexicon.Word, kb *keyboard.Keyboard, alpha *lexicon.Alphabet) (*Theory, error) {
	th := &Theory{Groups: make(map[string][]*lexicon.Word)}

	for _, w := range words {
		key, err := wordKey(w, kb, alpha)
		if err != nil {
			return nil, err
		}
		th.Groups[key] = append(th.Groups[key], w)
	}

	for key, group := range th.Groups {
		if len(group) > th.MaxGroupSize {
			th.MaxGroupSize = len(group)
			th.MaxGroupKey = key
		}
		var freq float64
		for _, w := range group {
			freq += w.Frequency
		}
		if freq > th.MaxFrequency {
			th.MaxFrequency = freq
			th.MaxFrequencyKey = key
		}
	}

	return th, nil
}

// wordKey builds a word's theory key: the pretty stroke string of every
// syllable, joined by a space.
func wordKey(w *lexicon.Word, kb *keyboard.Keyboard, alpha *lexicon.Alphabet) (string, error) {
	parts := make([]string, 0, len(w.SyllCV))
	for _, phonemes := range w.SyllCV {
		syl, err := lexicon.NewSyllable(phonemes, alpha, w.Ortho)
		if err != nil {
			return "", err
		}
		strokes := kb.GetStrokeOfSyllableByPart(syl)
		parts = append(parts, kb.StrokesToString(strokes))
	}
	return strings.Join(parts, " "), nil
}

package lexicon

import "strings"

// Syllable is an ordered phoneme sequence partitioned into onset, nucleus
// and coda by locating the first and last vowel index. Its identity is
// the concatenation of phoneme symbols (Name).
type Syllable struct {
	Name    string
	Onset   []string
	Nucleus []string
	Coda    []string

	Frequency float64

	// Spellings maps an orthographic realization to its frequency.
	Spellings map[string]float64

	// PhonoWords maps a word's full phonology string to the list of
	// Words producing it (populated by the ingestion pass).
	PhonoWords map[string][]*Word
}

// splitSyllable partitions phonemes into (onset, nucleus, coda) by finding
// the first and last vowel index. Invariant: exactly one contiguous
// nucleus region; anything before it is onset, anything after is coda.
func splitSyllable(phonemes []string, alpha *Alphabet) (onset, nucleus, coda []string, err error) {
	first, last := -1, -1
	for i, p := range phonemes {
		if alpha.IsVowel(p) {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return nil, nil, nil, &EmptyNucleusError{Name: strings.Join(phonemes, "")}
	}
	onset = append(onset, phonemes[:first]...)
	nucleus = append(nucleus, phonemes[first:last+1]...)
	coda = append(coda, phonemes[last+1:]...)
	return onset, nucleus, coda, nil
}

// NewSyllable builds a Syllable from a raw phoneme list, validating every
// symbol against alpha and splitting it into onset/nucleus/coda.
func NewSyllable(phonemes []string, alpha *Alphabet, ortho string) (*Syllable, error) {
	for _, p := range phonemes {
		if !alpha.IsKnown(p) {
			return nil, &AlphabetError{Ortho: ortho, Symbol: p}
		}
	}
	onset, nucleus, coda, err := splitSyllable(phonemes, alpha)
	if err != nil {
		if ee, ok := err.(*EmptyNucleusError); ok {
			ee.Ortho = ortho
		}
		return nil, err
	}
	return &Syllable{
		Name:       strings.Join(phonemes, ""),
		Onset:      onset,
		Nucleus:    nucleus,
		Coda:       coda,
		Spellings:  make(map[string]float64),
		PhonoWords: make(map[string][]*Word),
	}, nil
}

// Phonemes returns the full ordered phoneme list across all three
// positions, reconstructing the original sequence.
func (s *Syllable) Phonemes() []string {
	out := make([]string, 0, len(s.Onset)+len(s.Nucleus)+len(s.Coda))
	out = append(out, s.Onset...)
	out = append(out, s.Nucleus...)
	out = append(out, s.Coda...)
	return out
}

// PositionSlice returns the phoneme slice for the given position.
func (s *Syllable) PositionSlice(pos Position) []string {
	switch pos {
	case Onset:
		return s.Onset
	case Nucleus:
		return s.Nucleus
	case Coda:
		return s.Coda
	default:
		return nil
	}
}

// ReplacePhoneme returns the name of the syllable obtained by substituting
// the first occurrence of a with b at the given position. Returns the
// syllable's own Name unchanged if a is not present at pos.
func (s *Syllable) ReplacePhoneme(a, b string, pos Position) string {
	slice := s.PositionSlice(pos)
	found := false
	onset, nucleus, coda := append([]string{}, s.Onset...), append([]string{}, s.Nucleus...), append([]string{}, s.Coda...)
	var target []string
	switch pos {
	case Onset:
		target = onset
	case Nucleus:
		target = nucleus
	case Coda:
		target = coda
	}
	for i, p := range slice {
		if p == a && !found {
			target[i] = b
			found = true
		}
	}
	if !found {
		return s.Name
	}
	if b == "" {
		target = removeEmpty(target)
	}
	switch pos {
	case Onset:
		onset = target
	case Nucleus:
		nucleus = target
	case Coda:
		coda = target
	}
	return strings.Join(onset, "") + strings.Join(nucleus, "") + strings.Join(coda, "")
}

func removeEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

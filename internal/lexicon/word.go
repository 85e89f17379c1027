package lexicon

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// Word is an immutable lexicon record. Identity is the hash of
// (ortho, phonology, lemma, gramCat, gender, number).
type Word struct {
	Ortho     string
	Phonology string
	Lemma     string
	GramCat   string

	// GramCatOrtho is the comma-separated cgramortho field split into its
	// per-orthograph grammatical categories.
	GramCatOrtho []string

	Gender string
	Number string

	InfoVerb string

	// SyllCV is the phonemic syllable breakdown: one []string per
	// syllable, each holding that syllable's ordered phoneme symbols.
	SyllCV [][]string

	// OrthoSyllCV is the orthographic counterpart of SyllCV (graphemes
	// instead of phonemes), same shape.
	OrthoSyllCV [][]string

	FreqLivres float64
	FreqFilms  float64

	// Frequency is the word frequency used throughout the pipeline.
	// Currently equals FreqFilms; a blended formula with FreqLivres was
	// present as a commented-out alternative upstream and is preserved
	// here only as a possibility, never wired in (see open question i).
	Frequency float64

	// IsFrequentWord marks words sourced from the frequent-word file
	// (§6): they contribute to the word total but are excluded from
	// syllable-frequency statistics.
	IsFrequentWord bool
}

// Key returns the stable identity string for this Word.
func (w *Word) Key() string {
	h := sha1.New()
	for _, f := range []string{w.Ortho, w.Phonology, w.Lemma, w.GramCat, w.Gender, w.Number} {
		h.Write([]byte(f))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LemmeGramCat identifies the morphological family this Word belongs to.
func (w *Word) LemmeGramCat() string {
	return w.Lemma + "_" + w.GramCat
}

// Features enumerates the discriminating features used by the homophone
// disambiguator (§4.1, §4.9).
func (w *Word) Features() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(f string) {
		if f == "" {
			return
		}
		if _, ok := seen[f]; ok {
			return
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}

	add(w.GramCat)
	add(w.Gender)
	add(w.Number)

	if w.Gender != "" && w.Number != "" {
		pair := w.Gender + "_" + w.Number
		add(pair)
		if pair != "m_s" {
			add("not_m_s")
		}
	}

	isVerb := w.GramCat == "VER"
	if isVerb && w.Gender != "" && w.Number != "" {
		add(strings.Join([]string{w.GramCat, w.Gender, w.Number}, "_"))
	}

	if isVerb {
		for _, f := range conjugationFeatures(w.InfoVerb) {
			add(f)
		}
	}

	return out
}

// ReplaceSyllables returns w's phonology with every occurrence of
// syllable name "from" substituted with syllable name "to". When
// from == to the phonology is returned unchanged.
func ReplaceSyllables(phonology, from, to string) string {
	if from == "" {
		return phonology
	}
	return strings.ReplaceAll(phonology, from, to)
}

// Package snapshot persists the Dictionary + Syllable class-state blob
// of §5 ("Persistence"): the full ingested lexicon plus phoneme/biphoneme
// statistics are written to a single binary cache. cmd/chordgen writes it
// right after ingestion, so a restart skips lexicon ingestion and
// statistics only; the phoneme-order search and the ambiguity analyses
// are rerun after every load.
package snapshot

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/phonochord/chordgen/internal/lexicon"
	"github.com/phonochord/chordgen/internal/stats"
)

// doc is the on-disk shape: everything needed to reconstruct a frozen
// stats.Context plus the word list it was built from, without
// re-ingesting the TSV lexicon.
type doc struct {
	Words      []*lexicon.Word
	Syllables  map[string]*lexicon.Syllable
	Phonemes   [3]map[string]*stats.Phoneme
	Biphonemes [3]stats.BiphonemeSnapshot
}

// Save encodes words and ctx's frozen statistics as a single gob blob.
func Save(w io.Writer, words []*lexicon.Word, ctx *stats.Context) error {
	d := doc{
		Words:     words,
		Syllables: ctx.Syllables,
	}
	for _, pos := range lexicon.Positions {
		d.Phonemes[pos] = ctx.Phonemes[pos].All()
		d.Biphonemes[pos] = ctx.Biphonemes[pos].ToSnapshot()
	}
	if err := gob.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Load decodes a snapshot written by Save, rebuilding the frozen
// stats.Context and word list verbatim.
func Load(r io.Reader) ([]*lexicon.Word, *stats.Context, error) {
	var d doc
	if err := gob.NewDecoder(r).Decode(&d); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}

	ctx := &stats.Context{Syllables: d.Syllables}
	if ctx.Syllables == nil {
		ctx.Syllables = make(map[string]*lexicon.Syllable)
	}
	for _, pos := range lexicon.Positions {
		ctx.Phonemes[pos] = stats.FromMap(d.Phonemes[pos])
		ctx.Biphonemes[pos] = stats.FromSnapshot(d.Biphonemes[pos])
	}
	ctx.Freeze()

	return d.Words, ctx, nil
}

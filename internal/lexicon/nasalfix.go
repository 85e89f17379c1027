package lexicon

import (
	"strings"

	"github.com/phonochord/chordgen/pkg/conversion"
)

// nasalFixRule rewrites the raw syll_cv / orthosyll_cv strings, merging the
// nasal-vowel + trailing-n markers the source lexicon encodes separately.
//
// Whenever "@|n_" or "e|n_" occur, they are merged into "@|" and "en|"
// respectively. Applied repeatedly until neither pattern remains, since a
// single pass can expose a new match at the merge boundary. It implements
// conversion.Rule so it plugs into the same rule pipeline shape used
// elsewhere for grapheme rewriting, even though it needs no file to load.
type nasalFixRule struct{}

var _ conversion.Rule = nasalFixRule{}

// Convert applies the nasal-fix rewrite to a raw syll_cv or orthosyll_cv
// field.
func (nasalFixRule) Convert(s string) string {
	for strings.Contains(s, "@|n_") || strings.Contains(s, "e|n_") {
		s = strings.ReplaceAll(s, "@|n_", "@|")
		s = strings.ReplaceAll(s, "e|n_", "en|")
	}
	return s
}

// Load is a no-op: the rule is fixed, not file-defined.
func (r nasalFixRule) Load(path string) (conversion.Rule, error) { return r, nil }

// LoadBlob is a no-op: the rule is fixed, not file-defined.
func (r nasalFixRule) LoadBlob(blob []byte) (conversion.Rule, error) { return r, nil }

// applyNasalFix is the entry point used by the TSV row parser.
func applyNasalFix(s string) string {
	return nasalFixRule{}.Convert(s)
}

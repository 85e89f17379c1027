// Package ipa provides a reference IPA character set used to annotate
// phoneme symbols in reports: no hard validation is performed against it
// since this system's phoneme alphabet uses conventional (non-strict-IPA)
// transcription symbols such as "@" or "R".
package ipa

import "sort"

// Charset is a deduplicated, rune-sorted string of common IPA base
// letters, diacritics and suprasegmentals.
var Charset string

func init() {
	Charset = buildIPACharSet()
}

// baseIPARunes lists the base IPA letters and commonly used extensions
// consulted when annotating a phoneme symbol as "IPA-like" in a report.
const baseIPARunes = "abdefhijklmnoprstuvwxyzɑɐɒæɓʙβɔɕçɗɖðʤəɘɚɛɜɝɞɟʄɡɠɢʛɦɧʜɥʰɨɪʝɭɬɫɮʟɱɯɰŋɳɲɴøɵɸθœɶʘɹɺɾɻʀʁɽʂʃʈʧʉʊʋⱱʌɣɤʍχʎʏʑʐʒʔʕʢʡɴ̥ˈˌːˑ̃ˤʲʷ"

func buildIPACharSet() string {
	uniq := make(map[rune]struct{})
	for _, r := range baseIPARunes {
		uniq[r] = struct{}{}
	}

	runes := make([]rune, 0, len(uniq))
	for r := range uniq {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	return string(runes)
}

// Contains reports whether r is present in Charset.
func Contains(r rune) bool {
	for _, c := range Charset {
		if c == r {
			return true
		}
	}
	return false
}

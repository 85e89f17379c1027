package lexicon

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phonochord/chordgen/pkg/phono"
)

const (
	nbFrequentWords = 200
	sniffLen        = 4 * 1024
)

// FrequentWords is the parsed result of the frequent-word file (§6).
type FrequentWords struct {
	Total float64
	Words map[string]float64
}

// LoadFrequentWords parses the frequent-word file: the first line's last
// tab-separated field is a total-frequency constant; subsequent lines are
// word<TAB>frequency; only the first nbFrequentWords entries are kept.
//
// The body (everything after the header line) is sniffed with
// pkg/phono.SniffFrequentWordTxt before parsing, so a file that doesn't
// match the expected tab-separated shape fails fast with a clear error
// instead of silently yielding zero entries. Line parsing for the
// word/frequency pairs is delegated to pkg/phono.ParseFrequentWordLine.
func LoadFrequentWords(r io.Reader) (*FrequentWords, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read frequent-word file: %w", err)
	}

	headerEnd := bytes.IndexByte(raw, '\n')
	if headerEnd < 0 {
		headerEnd = len(raw)
	}
	header := strings.Split(string(raw[:headerEnd]), "\t")
	if len(header) == 0 {
		return nil, fmt.Errorf("malformed frequent-word header")
	}
	total, err := strconv.ParseFloat(strings.TrimSpace(header[len(header)-1]), 64)
	if err != nil {
		return nil, fmt.Errorf("parse frequent-word total: %w", err)
	}

	body := raw[headerEnd:]
	sniff := body
	isEOF := true
	if len(sniff) > sniffLen {
		sniff = sniff[:sniffLen]
		isEOF = false
	}
	if len(bytes.TrimSpace(sniff)) > 0 && !phono.SniffFrequentWordTxt(sniff, isEOF) {
		return nil, fmt.Errorf("frequent-word body does not match the word<TAB>frequency format")
	}

	out := &FrequentWords{Total: total, Words: make(map[string]float64)}
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() && len(out.Words) < nbFrequentWords {
		word, freqStr, ok := phono.ParseFrequentWordLine(scanner.Text())
		if !ok {
			continue
		}
		freq, err := strconv.ParseFloat(freqStr, 64)
		if err != nil {
			continue
		}
		out.Words[word] = freq
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read frequent-word file: %w", err)
	}
	return out, nil
}

// ApplyFrequentWords marks the given orthographs as frequent on any word
// record in words whose Ortho matches; it also synthesizes a minimal Word
// record for frequent words with no corresponding lexicon entry, so the
// caller always has one Word per frequent-word-file entry contributing to
// the word total, even though these synthetic words carry no syllables
// and are therefore excluded from syllable-frequency statistics.
func ApplyFrequentWords(words []*Word, fw *FrequentWords) []*Word {
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if _, ok := fw.Words[w.Ortho]; ok {
			w.IsFrequentWord = true
			seen[w.Ortho] = true
		}
	}
	for ortho, freq := range fw.Words {
		if seen[ortho] {
			continue
		}
		words = append(words, &Word{
			Ortho:          ortho,
			Frequency:      freq,
			FreqFilms:      freq,
			IsFrequentWord: true,
		})
	}
	return words
}

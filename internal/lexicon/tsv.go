package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// requiredColumns lists the TSV header fields consumed by ingestion (§6).
var requiredColumns = []string{
	"ortho", "phon", "lemme", "cgram", "cgramortho", "genre", "nombre",
	"infover", "syll_cv", "orthosyll_cv", "freqlivres", "freqfilms2",
}

// LoadTSV parses a tab-separated lexicon source. The header row is
// required. Rows whose ortho starts with '#' are treated as comments and
// skipped. Rows with an unparsable frequency field are logged at warn
// and skipped. A row naming a phoneme symbol outside the known
// alphabet is fatal (§7): LoadTSV aborts and returns the wrapped
// *AlphabetError naming the offending word.
func LoadTSV(r io.Reader, alpha *Alphabet, log *zap.SugaredLogger) ([]*Word, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("empty lexicon source")
	}
	header := strings.Split(scanner.Text(), "\t")
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.TrimSpace(h)] = i
	}
	for _, want := range requiredColumns {
		if _, ok := colIdx[want]; !ok {
			return nil, fmt.Errorf("lexicon header missing required column %q", want)
		}
	}

	var words []*Word
	row := 1
	for scanner.Scan() {
		row++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")

		get := func(col string) string {
			idx := colIdx[col]
			if idx >= len(fields) {
				return ""
			}
			return fields[idx]
		}

		ortho := strings.TrimSpace(get("ortho"))
		if ortho == "" || strings.HasPrefix(ortho, "#") {
			continue
		}

		w, err := parseRow(get, alpha)
		if err != nil {
			var alphaErr *AlphabetError
			if errors.As(err, &alphaErr) {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				rowErr.Row = row
			}
			log.Warnw("skipping malformed lexicon row", "row", row, "ortho", ortho, "error", err)
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return words, nil
}

func parseRow(get func(string) string, alpha *Alphabet) (*Word, error) {
	ortho := strings.TrimSpace(get("ortho"))

	freqLivres, err := parseFreq(get("freqlivres"))
	if err != nil {
		return nil, &RowError{Field: "freqlivres", Err: err}
	}
	freqFilms, err := parseFreq(get("freqfilms2"))
	if err != nil {
		return nil, &RowError{Field: "freqfilms2", Err: err}
	}

	rawSyllCV := applyNasalFix(get("syll_cv"))
	rawOrthoSyllCV := applyNasalFix(get("orthosyll_cv"))

	syllCV, err := splitSyllField(rawSyllCV)
	if err != nil {
		return nil, &RowError{Field: "syll_cv", Err: err}
	}
	orthoSyllCV, err := splitSyllField(rawOrthoSyllCV)
	if err != nil {
		return nil, &RowError{Field: "orthosyll_cv", Err: err}
	}

	for _, syl := range syllCV {
		for _, p := range syl {
			if p == "" {
				continue
			}
			if !alpha.IsKnown(p) {
				return nil, &AlphabetError{Ortho: ortho, Symbol: p}
			}
		}
	}

	w := &Word{
		Ortho:        ortho,
		Phonology:    strings.TrimSpace(get("phon")),
		Lemma:        strings.TrimSpace(get("lemme")),
		GramCat:      strings.TrimSpace(get("cgram")),
		GramCatOrtho: splitComma(get("cgramortho")),
		Gender:       strings.TrimSpace(get("genre")),
		Number:       strings.TrimSpace(get("nombre")),
		InfoVerb:     strings.TrimSpace(get("infover")),
		SyllCV:       syllCV,
		OrthoSyllCV:  orthoSyllCV,
		FreqLivres:   freqLivres,
		FreqFilms:    freqFilms,
		Frequency:    freqFilms,
	}
	return w, nil
}

func parseFreq(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

func splitComma(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitSyllField splits a raw "s1p1_s1p2|s2p1_…" field into a list of
// syllables, each a list of symbols.
func splitSyllField(raw string) ([][]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	syllables := strings.Split(raw, "|")
	out := make([][]string, 0, len(syllables))
	for _, syl := range syllables {
		symbols := strings.Split(syl, "_")
		out = append(out, symbols)
	}
	return out, nil
}

// Package phono holds the small phonetic-dictionary text-format helpers
// carried over from the pluggable loader this module's pronunciation
// dictionary was originally built around: parsing the frequent-word
// list format used by the lexicon ingestion pipeline.
package phono

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// stripInlineCommentAndTrim removes leading/trailing whitespace and strips
// inline comments introduced by '#' (one or more). Lines that are empty
// or pure comments return the empty string.
func stripInlineCommentAndTrim(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return ""
	}
	if idx := strings.Index(line, "#"); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	return line
}

// SniffFrequentWordTxt detects the frequent-word list format:
//
//	word<TAB>frequency
//
// The first non-empty, non-comment line decides: it qualifies when it
// splits into at least two tab-separated fields and the last one parses
// as a float.
func SniffFrequentWordTxt(sniff []byte, isEOF bool) bool {
	if len(sniff) == 0 {
		return false
	}
	scanner := bufio.NewScanner(bytes.NewReader(sniff))
	for scanner.Scan() {
		line := stripInlineCommentAndTrim(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return false
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(fields[len(fields)-1]), 64); err != nil {
			return false
		}
		return true
	}
	return false
}

// ParseFrequentWordLine parses a single "word<TAB>frequency" line from the
// frequent-word file, returning the word and its raw frequency field.
// The caller handles the file's total-frequency header line separately.
func ParseFrequentWordLine(line string) (word, freq string, ok bool) {
	line = stripInlineCommentAndTrim(line)
	if line == "" {
		return "", "", false
	}
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return "", "", false
	}
	word = strings.TrimSpace(fields[0])
	freq = strings.TrimSpace(fields[len(fields)-1])
	if word == "" || freq == "" {
		return "", "", false
	}
	return word, freq, true
}

package lexicon

import (
	"strings"
	"testing"
)

func TestLoadFrequentWords(t *testing.T) {
	data := "total\t1000\nle\t500\nde\t300\n"
	fw, err := LoadFrequentWords(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadFrequentWords: %v", err)
	}
	if fw.Total != 1000 {
		t.Errorf("Total = %v, want 1000", fw.Total)
	}
	if fw.Words["le"] != 500 || fw.Words["de"] != 300 {
		t.Errorf("unexpected words map: %v", fw.Words)
	}
}

func TestLoadFrequentWordsCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("total\t1000\n")
	for i := 0; i < nbFrequentWords+50; i++ {
		b.WriteString("w\t1\n")
	}
	fw, err := LoadFrequentWords(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("LoadFrequentWords: %v", err)
	}
	if len(fw.Words) > nbFrequentWords {
		t.Errorf("len(Words) = %d, want <= %d", len(fw.Words), nbFrequentWords)
	}
}

func TestApplyFrequentWordsSynthesizesMissingEntries(t *testing.T) {
	words := []*Word{{Ortho: "chat"}}
	fw := &FrequentWords{Total: 10, Words: map[string]float64{"chat": 3, "le": 7}}
	out := ApplyFrequentWords(words, fw)
	if len(out) != 2 {
		t.Fatalf("expected 2 words, got %d", len(out))
	}
	var foundLe, chatFlagged bool
	for _, w := range out {
		if w.Ortho == "le" {
			foundLe = true
			if !w.IsFrequentWord {
				t.Error("synthesized frequent word not flagged")
			}
		}
		if w.Ortho == "chat" && w.IsFrequentWord {
			chatFlagged = true
		}
	}
	if !foundLe {
		t.Error("missing synthesized word 'le'")
	}
	if !chatFlagged {
		t.Error("existing word 'chat' not flagged as frequent")
	}
}

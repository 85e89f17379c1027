// Command chordgen designs a phonetic chorded-keyboard layout from a
// syllabified lexicon: it ingests the lexicon, computes phoneme and
// ambiguity statistics, assigns phonemes to chords on a fixed physical
// keyboard, and reports the resulting theory and homophone
// disambiguation rules.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/phonochord/chordgen/internal/ambiguity"
	"github.com/phonochord/chordgen/internal/chord"
	"github.com/phonochord/chordgen/internal/config"
	"github.com/phonochord/chordgen/internal/disambiguate"
	"github.com/phonochord/chordgen/internal/keyboard"
	"github.com/phonochord/chordgen/internal/lexicon"
	"github.com/phonochord/chordgen/internal/order"
	"github.com/phonochord/chordgen/internal/pipeline"
	"github.com/phonochord/chordgen/internal/seed"
	"github.com/phonochord/chordgen/internal/snapshot"
	"github.com/phonochord/chordgen/internal/stats"
	"github.com/phonochord/chordgen/internal/theory"
	"github.com/phonochord/chordgen/pkg/conversion"
	"github.com/phonochord/chordgen/pkg/ipa"
)

func main() {
	v := viper.New()
	root := &cobra.Command{
		Use:   "chordgen",
		Short: "Design a phonetic chorded-keyboard layout from a syllabified lexicon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	config.BindFlags(root, v)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level string) *zap.SugaredLogger {
	zc := zap.NewProductionConfig()
	_ = zc.Level.UnmarshalText([]byte(level))
	logger, err := zc.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

func run(ctx context.Context, cfg *config.Config) error {
	log := newLogger(cfg.LogLevel)
	defer log.Sync()

	alpha := lexicon.NewAlphabet(
		[]string{"a", "e", "i", "o", "u", "y", "@", "2", "9", "°"},
		[]string{"p", "t", "k", "b", "d", "g", "f", "s", "S", "v", "z", "Z", "j", "l", "R", "m", "n", "N", "w", "H"},
	)

	words, sc, err := loadOrIngest(cfg, alpha, log)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	log.Infow("ingestion complete", "words", len(words))
	warnNonIPASymbols(alpha, log)

	bar := progressbar.Default(4, "optimizing phoneme order")
	_, err = pipeline.PerPosition(ctx, func(_ context.Context, pos lexicon.Position) (struct{}, error) {
		order.Optimize(sc.Biphonemes[pos], rand.New(rand.NewSource(int64(pos)+1)))
		order.PairwiseMatrix(sc.Biphonemes[pos], sc.Phonemes[pos].Names())
		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("phoneme order optimization: %w", err)
	}
	bar.Add(1)

	idx := sc.BuildIndex()
	syllAmb, err := ambiguity.SyllabicAmbiguity(ctx, sc, idx)
	if err != nil {
		return fmt.Errorf("syllabic ambiguity: %w", err)
	}
	lexAmb, err := ambiguity.LexicalAmbiguity(ctx, sc, idx)
	if err != nil {
		return fmt.Errorf("lexical ambiguity: %w", err)
	}
	multiAmb, err := ambiguity.MultiphonemeAmbiguity(ctx, sc)
	if err != nil {
		return fmt.Errorf("multiphoneme ambiguity: %w", err)
	}
	bar.Add(1)

	kb, err := loadKeyboard(cfg.KeyboardPath)
	if err != nil {
		return fmt.Errorf("keyboard: %w", err)
	}

	for _, pos := range lexicon.Positions {
		leftover := seed.Assign(pos, sc.Phonemes[pos], sc.Biphonemes[pos], kb, lexAmb)
		if len(leftover) > 0 {
			log.Warnw("greedy seed left phonemes unplaced", "position", pos.String(), "phonemes", leftover)
		}
	}
	bar.Add(1)

	_, err = pipeline.PerPosition(ctx, func(_ context.Context, pos lexicon.Position) (struct{}, error) {
		chord.Optimize(pos, kb, sc.Phonemes[pos], sc.Biphonemes[pos], multiAmb.ByPosition[pos], chord.Options{
			Budget: cfg.ChordBudget,
		})
		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("chord assignment optimization: %w", err)
	}
	bar.Add(1)

	th, err := theory.Build(words, kb, alpha)
	if err != nil {
		return fmt.Errorf("theory: %w", err)
	}

	ranked := disambiguate.RankFeatures(th.Groups)
	assignments := disambiguate.Build(th.Groups, ranked)

	printReport(th, assignments, syllAmb)
	return nil
}

func loadOrIngest(cfg *config.Config, alpha *lexicon.Alphabet, log *zap.SugaredLogger) ([]*lexicon.Word, *stats.Context, error) {
	if cfg.UseSnapshot {
		if f, err := os.Open(cfg.SnapshotPath); err == nil {
			defer f.Close()
			words, sc, err := snapshot.Load(f)
			if err == nil {
				log.Infow("loaded ingestion snapshot", "path", cfg.SnapshotPath)
				return words, sc, nil
			}
			log.Warnw("snapshot present but unreadable, re-ingesting", "error", err)
		}
	}

	lexiconReader, err := openLexicon(cfg)
	if err != nil {
		return nil, nil, err
	}

	words, err := lexicon.LoadTSV(lexiconReader, alpha, log)
	if err != nil {
		return nil, nil, err
	}

	if cfg.FrequentWordsPath != "" {
		fwFile, err := os.Open(cfg.FrequentWordsPath)
		if err != nil {
			return nil, nil, err
		}
		defer fwFile.Close()
		fw, err := lexicon.LoadFrequentWords(fwFile)
		if err != nil {
			return nil, nil, err
		}
		words = lexicon.ApplyFrequentWords(words, fw)
	}

	sc := stats.NewContext()
	if err := sc.Ingest(words, alpha); err != nil {
		return nil, nil, err
	}
	sc.Freeze()

	if out, err := os.Create(cfg.SnapshotPath); err == nil {
		defer out.Close()
		if err := snapshot.Save(out, words, sc); err != nil {
			log.Warnw("failed to write ingestion snapshot", "error", err)
		}
	}

	return words, sc, nil
}

// openLexicon opens the configured lexicon file and, when cfg.Encoding
// names a non-UTF-8 source encoding (§6: French lexicon exports are
// historically distributed in Latin-1/Windows-1252 as well as UTF-8),
// transcodes its bytes to UTF-8 via pkg/conversion before TSV parsing
// ever sees them.
func openLexicon(cfg *config.Config) (io.Reader, error) {
	raw, err := os.ReadFile(cfg.LexiconPath)
	if err != nil {
		return nil, err
	}
	if cfg.Encoding == "" || strings.EqualFold(cfg.Encoding, "utf-8") {
		return bytes.NewReader(raw), nil
	}
	enc, err := conversion.ParseEncoding(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("lexicon encoding: %w", err)
	}
	utf8Text, err := conversion.ToUTF8(raw, enc)
	if err != nil {
		return nil, fmt.Errorf("transcode lexicon to UTF-8: %w", err)
	}
	return strings.NewReader(utf8Text), nil
}

// warnNonIPASymbols logs every configured phoneme symbol that falls
// outside the reference IPA character set, as a one-time sanity check on
// the alphabet rather than a hard validation (this domain's symbols,
// such as "@" or "R", are conventional substitutes for strict IPA).
func warnNonIPASymbols(alpha *lexicon.Alphabet, log *zap.SugaredLogger) {
	var nonIPA []string
	for sym := range alpha.Vowels {
		if !isIPASymbol(sym) {
			nonIPA = append(nonIPA, sym)
		}
	}
	for sym := range alpha.Consonants {
		if !isIPASymbol(sym) {
			nonIPA = append(nonIPA, sym)
		}
	}
	if len(nonIPA) > 0 {
		log.Infow("phoneme alphabet uses non-IPA transcription symbols", "symbols", nonIPA)
	}
}

func isIPASymbol(sym string) bool {
	for _, r := range sym {
		if !ipa.Contains(r) {
			return false
		}
	}
	return len(sym) > 0
}

func loadKeyboard(path string) (*keyboard.Keyboard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	physical, partition, maxKeys, err := keyboard.LoadPhysicalDescription(f)
	if err != nil {
		return nil, err
	}
	return keyboard.NewKeyboard(physical, partition, maxKeys)
}

func printReport(th *theory.Theory, assignments []disambiguate.Assignment, syllAmb *ambiguity.Table) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Theory summary")
	t.AppendHeader(table.Row{"Metric", "Key", "Value"})
	t.AppendRow(table.Row{"Largest homophone group", th.MaxGroupKey, th.MaxGroupSize})
	t.AppendRow(table.Row{"Highest-frequency chord", th.MaxFrequencyKey, th.MaxFrequency})
	for _, pos := range lexicon.Positions {
		scores := syllAmb.Sorted(pos)
		if len(scores) == 0 {
			continue
		}
		worst := scores[len(scores)-1]
		t.AppendRow(table.Row{
			fmt.Sprintf("Most ambiguous %s pair (syllabic)", pos),
			fmt.Sprintf("%s/%s", worst.Key[0], worst.Key[1]),
			worst.Value,
		})
	}
	t.Render()

	ft := table.NewWriter()
	ft.SetOutputMirror(os.Stdout)
	ft.SetTitle("Homophone disambiguation")
	ft.AppendHeader(table.Row{"Features", "Words"})
	for _, a := range assignments {
		if len(a.Words) <= 1 {
			continue
		}
		orthos := make([]string, 0, len(a.Words))
		for _, w := range a.Words {
			orthos = append(orthos, w.Ortho)
		}
		ft.AppendRow(table.Row{a.Features, orthos})
	}
	ft.Render()
}

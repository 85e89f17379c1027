// Package config loads chordgen's run configuration via viper, matching
// the ambient config stack established across the corpus. Only the
// command-line flags are bound to viper's keys; no config file is read
// and no environment variables are consulted.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds every tunable surfaced on the CLI (§6, §4.7's budget).
// The greedy seed's overuse threshold is not among them: it is fixed by
// seed.MaxOveruseBase and seed.MaxOveruseSlope.
type Config struct {
	LexiconPath       string
	FrequentWordsPath string
	Encoding          string
	KeyboardPath      string
	SnapshotPath      string
	UseSnapshot       bool

	ChordBudget time.Duration

	LogLevel string
}

// BindFlags registers every Config field as a cobra flag and binds it
// into v, adopting cobra+viper as the ambient config layer for the whole
// pipeline.
func BindFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()
	flags.String("lexicon", "", "path to the tab-separated lexicon file")
	flags.String("frequent-words", "", "path to the frequent-word list")
	flags.String("encoding", "", "optional source encoding to transcode from before parsing")
	flags.String("keyboard", "", "path to the keyboard layout JSON")
	flags.String("snapshot", "chordgen.snapshot", "path to the ingestion snapshot cache")
	flags.Bool("use-snapshot", true, "load from the snapshot cache when present, skipping re-ingestion")
	flags.Duration("chord-budget", 90*time.Second, "per-position time budget for the chord-assignment optimizer")
	flags.String("log-level", "info", "zap log level (debug, info, warn, error)")

	for _, name := range []string{
		"lexicon", "frequent-words", "encoding", "keyboard", "snapshot",
		"use-snapshot", "chord-budget", "log-level",
	} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
}

// Load materializes a Config from v after the flags bound by BindFlags
// have been parsed.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		LexiconPath:       v.GetString("lexicon"),
		FrequentWordsPath: v.GetString("frequent-words"),
		Encoding:          v.GetString("encoding"),
		KeyboardPath:      v.GetString("keyboard"),
		SnapshotPath:      v.GetString("snapshot"),
		UseSnapshot:       v.GetBool("use-snapshot"),
		ChordBudget:       v.GetDuration("chord-budget"),
		LogLevel:          v.GetString("log-level"),
	}
	if cfg.LexiconPath == "" {
		return nil, fmt.Errorf("config: --lexicon is required")
	}
	if cfg.KeyboardPath == "" {
		return nil, fmt.Errorf("config: --keyboard is required")
	}
	return cfg, nil
}

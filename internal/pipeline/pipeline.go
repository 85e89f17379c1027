// Package pipeline runs the four fixed, 3-wide parallel regions named in
// §5: phoneme order, syllabic ambiguity, lexical ambiguity, and the
// chord-assignment solves. Each region is one worker per syllabic
// position, with deterministic fixed-slot aggregation rather than
// completion-order aggregation, so downstream stages see identical input
// across runs given identical seeds.
//
// The shape is adapted from a context-cancellable channel pipeline
// (Processor/CancellableProcessor) used for streaming grapheme-to-phoneme
// conversion elsewhere in this lineage: here it is generalized from a
// single stream to a fixed 3-slot fan-out/fan-in over onset, nucleus and
// coda, driven by golang.org/x/sync/errgroup instead of a hand-rolled
// done channel, since errgroup already gives first-error propagation and
// context cancellation for free.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/phonochord/chordgen/internal/lexicon"
)

// PerPosition runs work for onset, nucleus and coda concurrently and
// returns their results in fixed slot order [onset, nucleus, coda],
// regardless of completion order. If any worker returns an error, the
// context passed to the remaining workers is canceled and the first
// error is returned.
func PerPosition[T any](ctx context.Context, work func(ctx context.Context, pos lexicon.Position) (T, error)) ([3]T, error) {
	var results [3]T
	g, gctx := errgroup.WithContext(ctx)

	for _, pos := range lexicon.Positions {
		pos := pos
		g.Go(func() error {
			r, err := work(gctx, pos)
			if err != nil {
				return err
			}
			results[pos] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

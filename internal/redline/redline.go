// Package redline compares two versions of a structurally repetitive
// document and localizes every edit to the smallest plausible span. The
// pipeline is strictly forward: normalize both sides, split each into
// anchored chunks, align the chunk sequences preserving document order,
// then diff inside each aligned pair. The output is stable, order
// preserving and human legible — a stricter objective than minimal edit
// distance, which it does not promise.
package redline

import (
	"sync"

	"github.com/dgallion1/redline/internal/align"
	"github.com/dgallion1/redline/internal/chunker"
	"github.com/dgallion1/redline/internal/inline"
	"github.com/dgallion1/redline/internal/normalize"
)

// PairDiff is one aligned pair plus its span decomposition. For unmatched
// pairs the spans are a single whole-body Delete or Insert.
type PairDiff struct {
	Pair     align.Pair
	Spans    []inline.Span
	Degraded bool
}

// Result is a complete comparison: every chunk from both inputs appears in
// exactly one pair, in order.
type Result struct {
	Pairs     []PairDiff
	OldChunks int
	NewChunks int
	Degraded  int // pairs whose diff hit the time budget
}

// Stats counts inserted and deleted characters across all pairs.
func (r *Result) Stats() (inserted, deleted int) {
	for _, pd := range r.Pairs {
		for _, s := range pd.Spans {
			switch s.Kind {
			case inline.Insert:
				inserted += len(s.Text)
			case inline.Delete:
				deleted += len(s.Text)
			}
		}
	}
	return inserted, deleted
}

// Changed reports whether any pair carries a non-equal span.
func (r *Result) Changed() bool {
	ins, del := r.Stats()
	return ins > 0 || del > 0
}

// Compare runs the full alignment and diff pipeline on two normalized-once,
// never-mutated input strings. Empty inputs are valid: an empty old side
// yields all insertions, an empty new side all deletions. Per-pair diffing
// has no data dependency between pairs and fans out over opts.MaxConcurrentDiff
// goroutines; results are reassembled in alignment order before returning.
func Compare(old, new string, opts Options) *Result {
	opts = opts.withDefaults()

	normOpt := opts.normalizeOptions()
	oldChunks := chunker.Split(normalize.Normalize(old, normOpt), opts.Boundary)
	newChunks := chunker.Split(normalize.Normalize(new, normOpt), opts.Boundary)

	pairs := align.Align(oldChunks, newChunks, opts.SimilarityThreshold)

	res := &Result{
		Pairs:     make([]PairDiff, len(pairs)),
		OldChunks: len(oldChunks),
		NewChunks: len(newChunks),
	}

	sem := make(chan struct{}, opts.MaxConcurrentDiff)
	var wg sync.WaitGroup
	for i, p := range pairs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, p align.Pair) {
			defer wg.Done()
			defer func() { <-sem }()
			res.Pairs[i] = diffPair(p, opts)
		}(i, p)
	}
	wg.Wait()

	for _, pd := range res.Pairs {
		if pd.Degraded {
			res.Degraded++
		}
	}
	return res
}

func diffPair(p align.Pair, opts Options) PairDiff {
	pd := PairDiff{Pair: p}
	switch {
	case p.New == nil:
		pd.Spans = inline.Whole(inline.Delete, p.Old.Body)
	case p.Old == nil:
		pd.Spans = inline.Whole(inline.Insert, p.New.Body)
	case opts.Strategy == StrategyToken:
		pd.Spans = inline.Tokens(p.Old.Body, p.New.Body)
	default:
		pd.Spans, pd.Degraded = inline.Semantic(p.Old.Body, p.New.Body, opts.DiffTimeout)
	}
	return pd
}
